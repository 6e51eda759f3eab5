// Package transcript persists recognized text beside the other run outputs.
package transcript

import (
	"path/filepath"

	"vidscribe/internal/fileutil"
	"vidscribe/internal/services"
)

const stepName = "save"

// PathFor returns <outputDir>/<stem>.txt for videoPath.
func PathFor(outputDir, videoPath string) string {
	return filepath.Join(outputDir, fileutil.Stem(videoPath)+".txt")
}

// Write stores text as the transcript of videoPath, replacing any previous
// transcript atomically, and returns the file path. Text is written verbatim
// as UTF-8.
func Write(outputDir, videoPath, text string) (string, error) {
	path := PathFor(outputDir, videoPath)
	if err := fileutil.WriteFileAtomic(path, []byte(text), 0o644); err != nil {
		return "", services.Wrap(services.ErrExternalTool, stepName, "write transcript", path, err)
	}
	return path, nil
}
