package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"vidscribe/internal/config"
)

func TestLoadDotenvDoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	contents := "# settings\n\nGCP_PROJECT_ID=y\nGCS_BUCKET_NAME=\"quoted-bucket\"\nAUDIO_LANGUAGE_CODE='es-ES'\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(config.EnvProjectID, "x")
	// Registered for cleanup, then removed so the file can supply them.
	t.Setenv(config.EnvBucket, "")
	t.Setenv(config.EnvLanguageCode, "")
	os.Unsetenv(config.EnvBucket)
	os.Unsetenv(config.EnvLanguageCode)

	loaded, err := config.LoadDotenv(path)
	if err != nil {
		t.Fatalf("LoadDotenv returned error: %v", err)
	}
	if !loaded {
		t.Fatal("expected env file to be reported as loaded")
	}
	if got := os.Getenv(config.EnvProjectID); got != "x" {
		t.Fatalf("expected pre-set value to win, got %q", got)
	}
	if got := os.Getenv(config.EnvBucket); got != "quoted-bucket" {
		t.Fatalf("expected unquoted bucket, got %q", got)
	}
	if got := os.Getenv(config.EnvLanguageCode); got != "es-ES" {
		t.Fatalf("expected unquoted language, got %q", got)
	}
}

func TestLoadDotenvMissingFile(t *testing.T) {
	loaded, err := config.LoadDotenv(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if loaded {
		t.Fatal("expected loaded=false for missing file")
	}
}

func TestLoadDotenvRejectsDirectory(t *testing.T) {
	if _, err := config.LoadDotenv(t.TempDir()); err == nil {
		t.Fatal("expected error for directory path")
	}
}
