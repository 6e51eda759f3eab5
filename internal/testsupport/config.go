package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"vidscribe/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a valid config rooted in a per-test temp directory.
// It defaults the required settings and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.GCP.ProjectID = "test-project"
	cfgVal.GCP.Bucket = "test-bucket"
	cfgVal.Speech.LanguageCode = "en-US"
	cfgVal.Paths.OutputDir = filepath.Join(base, "outputs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBucket overrides the destination bucket on the test config.
func WithBucket(bucket string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.GCP.Bucket = bucket
	}
}

// WithLanguage overrides the recognition language on the test config.
func WithLanguage(code string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Speech.LanguageCode = code
	}
}

// WithKeepAudio toggles audio retention after a successful run.
func WithKeepAudio(keep bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.KeepAudio = keep
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg and ffprobe are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		StubBinaries(b.t, filepath.Join(b.baseDir, "bin"), names...)
	}
}

// StubBinaries writes executables that exit 0 into dir and prepends dir to
// PATH for the rest of the test. If names is empty, ffmpeg and ffprobe are
// stubbed.
func StubBinaries(t testing.TB, dir string, names ...string) {
	t.Helper()
	if len(names) == 0 {
		names = []string{"ffmpeg", "ffprobe"}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	script := []byte("#!/bin/sh\nexit 0\n")
	for _, name := range names {
		target := filepath.Join(dir, name)
		if err := os.WriteFile(target, script, 0o755); err != nil {
			t.Fatalf("write stub %s: %v", name, err)
		}
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
