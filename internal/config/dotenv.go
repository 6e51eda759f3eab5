package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotenv merges KEY=VALUE pairs from path into the process environment.
// Variables already present in the environment are left untouched. A missing
// file is not an error; the returned bool reports whether it was read.
func LoadDotenv(path string) (bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultDotenvPath
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat env file: %w", err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("env file %q is a directory", path)
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("load env file %q: %w", path, err)
	}
	return true, nil
}
