package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// GCP contains the cloud project and storage settings.
type GCP struct {
	ProjectID       string `toml:"project_id"`
	Bucket          string `toml:"bucket"`
	CredentialsFile string `toml:"credentials_file"`
}

// Speech contains the recognition request settings.
type Speech struct {
	LanguageCode string `toml:"language_code"`
	// SampleRateHertz overrides the rate sent with the recognition request.
	// Zero means probe the extracted audio.
	SampleRateHertz      int  `toml:"sample_rate_hertz"`
	TimeoutSeconds       int  `toml:"timeout_seconds"`
	PollIntervalSeconds  int  `toml:"poll_interval_seconds"`
	AutomaticPunctuation bool `toml:"automatic_punctuation"`
}

// Paths contains filesystem locations.
type Paths struct {
	OutputDir string `toml:"output_dir"`
}

// Media contains audio extraction settings.
type Media struct {
	FFmpegBinary    string `toml:"ffmpeg_binary"`
	FFprobeBinary   string `toml:"ffprobe_binary"`
	AudioSampleRate int    `toml:"audio_sample_rate"`
	AudioBitrate    string `toml:"audio_bitrate"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Pipeline contains run behaviour toggles.
type Pipeline struct {
	KeepAudio bool `toml:"keep_audio"`
}

// Config encapsulates all configuration values for vidscribe.
//
// Configuration sections by subsystem:
//   - GCP: project, bucket, and optional service account key file
//   - Speech: recognition language, sample rate, and operation timing
//   - Paths: output directory for audio artifacts and transcripts
//   - Media: ffmpeg/ffprobe binaries and MP3 encoding parameters
//   - Logging: log format and level
//   - Pipeline: cleanup behaviour
type Config struct {
	GCP      GCP      `toml:"gcp"`
	Speech   Speech   `toml:"speech"`
	Paths    Paths    `toml:"paths"`
	Media    Media    `toml:"media"`
	Logging  Logging  `toml:"logging"`
	Pipeline Pipeline `toml:"pipeline"`
}

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file using the process
// environment for the required settings.
func Load(path string) (*Config, string, bool, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment lookup. The returned config
// has all path fields expanded and normalized.
func LoadWithEnv(path string, lookup LookupFunc) (*Config, string, bool, error) {
	cfg, resolvedPath, exists, err := Read(path, lookup)
	if err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return cfg, resolvedPath, exists, nil
}

// Read parses and normalizes the configuration without validating it.
func Read(path string, lookup LookupFunc) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.applyEnv(lookup)

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output directory.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.OutputDir, err)
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable used for audio extraction.
func (c *Config) FFmpegBinary() string {
	if bin := strings.TrimSpace(c.Media.FFmpegBinary); bin != "" {
		return bin
	}
	return defaultFFmpegBinary
}

// FFprobeBinary returns the ffprobe executable used for media inspection.
func (c *Config) FFprobeBinary() string {
	if bin := strings.TrimSpace(c.Media.FFprobeBinary); bin != "" {
		return bin
	}
	return defaultFFprobeBinary
}

// SpeechTimeout returns the deadline for the long-running recognition job.
func (c *Config) SpeechTimeout() time.Duration {
	return time.Duration(c.Speech.TimeoutSeconds) * time.Second
}

// SpeechPollInterval returns the delay between operation status checks.
func (c *Config) SpeechPollInterval() time.Duration {
	return time.Duration(c.Speech.PollIntervalSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
