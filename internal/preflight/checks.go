package preflight

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"vidscribe/internal/config"
	"vidscribe/internal/deps"
)

// EnvApplicationCredentials is consulted when no credentials file is configured.
const EnvApplicationCredentials = "GOOGLE_APPLICATION_CREDENTIALS"

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckMediaBinaries reports whether ffmpeg and ffprobe resolve.
func CheckMediaBinaries(cfg *config.Config) []Result {
	statuses := deps.CheckBinaries(deps.MediaRequirements(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
	results := make([]Result, 0, len(statuses))
	for _, s := range statuses {
		if s.Available {
			results = append(results, Result{Name: s.Name, Passed: true, Detail: s.Path})
			continue
		}
		results = append(results, Result{Name: s.Name, Detail: s.Detail})
	}
	return results
}

// CheckCredentials verifies that an explicit key file is readable. Without one,
// the Google client libraries fall back to application default credentials,
// which are only inspected when GOOGLE_APPLICATION_CREDENTIALS names a file.
func CheckCredentials(credentialsFile string) Result {
	const name = "Credentials"

	path := strings.TrimSpace(credentialsFile)
	source := "gcp.credentials_file"
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvApplicationCredentials))
		source = EnvApplicationCredentials
	}
	if path == "" {
		return Result{Name: name, Passed: true, Detail: "application default credentials"}
	}
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s %s (error: %v)", source, path, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s %s (error: is a directory)", source, path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s %s (error: unreadable: %v)", source, path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s %s", source, path)}
}

// CheckVideo verifies that the source video is an existing regular file.
func CheckVideo(path string) Result {
	const name = "Video"

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a regular file)", path)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}
