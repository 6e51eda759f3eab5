package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"

	"vidscribe/internal/fileutil"
	"vidscribe/internal/services"
)

// LockPath returns the advisory lock file guarding videoPath in outputDir.
func LockPath(outputDir, videoPath string) string {
	return filepath.Join(outputDir, "."+fileutil.Stem(videoPath)+".lock")
}

func acquireLock(outputDir, videoPath string) (*flock.Flock, error) {
	path := LockPath(outputDir, videoPath)
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, StepPrepare, "acquire lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(
			services.ErrValidation,
			StepPrepare,
			"acquire lock",
			fmt.Sprintf("another run is already processing %s (lock %s)", filepath.Base(videoPath), path),
			nil,
		)
	}
	return lock, nil
}
