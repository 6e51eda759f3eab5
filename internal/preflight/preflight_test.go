package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vidscribe/internal/services"
	"vidscribe/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckVideo(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "talk.mp4")
	testsupport.WriteFile(t, video, 16)

	if r := CheckVideo(video); !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if r := CheckVideo(filepath.Join(dir, "absent.mp4")); r.Passed {
		t.Fatal("expected failure for missing video")
	}
	if r := CheckVideo(dir); r.Passed {
		t.Fatal("expected failure for directory")
	}
}

func TestCheckCredentials(t *testing.T) {
	t.Setenv(EnvApplicationCredentials, "")
	if r := CheckCredentials(""); !r.Passed {
		t.Fatalf("expected ADC fallback to pass, got %s", r.Detail)
	}

	key := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(key, []byte("{}"), 0o600); err != nil {
		t.Fatal(err)
	}
	if r := CheckCredentials(key); !r.Passed {
		t.Fatalf("expected key file to pass, got %s", r.Detail)
	}
	if r := CheckCredentials(key + ".missing"); r.Passed {
		t.Fatal("expected failure for missing key file")
	}

	t.Setenv(EnvApplicationCredentials, filepath.Dir(key))
	if r := CheckCredentials(""); r.Passed {
		t.Fatal("expected failure when the env credentials path is a directory")
	}
}

func TestRunAllWithStubbedBinaries(t *testing.T) {
	t.Setenv(EnvApplicationCredentials, "")
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg)
	if err := Failures(results); err != nil {
		t.Fatalf("expected all checks to pass, got %v", err)
	}
}

func TestRunAllReportsMissingBinaries(t *testing.T) {
	t.Setenv(EnvApplicationCredentials, "")
	cfg := testsupport.NewConfig(t)
	cfg.Media.FFmpegBinary = "vidscribe-missing-ffmpeg"
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}

	err := Failures(RunAll(context.Background(), cfg))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil); results != nil {
		t.Fatalf("expected nil results, got %#v", results)
	}
}
