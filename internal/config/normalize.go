package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// applyEnv overlays the required settings from the environment. Present
// environment values win over the config file.
func (c *Config) applyEnv(lookup LookupFunc) {
	if value, ok := lookup(EnvProjectID); ok && strings.TrimSpace(value) != "" {
		c.GCP.ProjectID = value
	}
	if value, ok := lookup(EnvBucket); ok && strings.TrimSpace(value) != "" {
		c.GCP.Bucket = value
	}
	if value, ok := lookup(EnvLanguageCode); ok && strings.TrimSpace(value) != "" {
		c.Speech.LanguageCode = value
	}
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeGCP()
	if err := c.normalizeSpeech(); err != nil {
		return err
	}
	c.normalizeMedia()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.GCP.CredentialsFile) != "" {
		if c.GCP.CredentialsFile, err = expandPath(strings.TrimSpace(c.GCP.CredentialsFile)); err != nil {
			return fmt.Errorf("gcp.credentials_file: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeGCP() {
	c.GCP.ProjectID = strings.TrimSpace(c.GCP.ProjectID)
	c.GCP.Bucket = strings.TrimSpace(c.GCP.Bucket)
	c.GCP.Bucket = strings.TrimPrefix(c.GCP.Bucket, "gs://")
	c.GCP.Bucket = strings.TrimRight(c.GCP.Bucket, "/")
}

func (c *Config) normalizeSpeech() error {
	code := strings.TrimSpace(c.Speech.LanguageCode)
	if code != "" {
		tag, err := language.Parse(code)
		if err != nil {
			return fmt.Errorf("speech.language_code: invalid BCP-47 tag %q: %w", code, err)
		}
		code = tag.String()
	}
	c.Speech.LanguageCode = code
	if c.Speech.TimeoutSeconds == 0 {
		c.Speech.TimeoutSeconds = defaultSpeechTimeout
	}
	if c.Speech.PollIntervalSeconds == 0 {
		c.Speech.PollIntervalSeconds = defaultSpeechPollInterval
	}
	return nil
}

func (c *Config) normalizeMedia() {
	c.Media.FFmpegBinary = strings.TrimSpace(c.Media.FFmpegBinary)
	if c.Media.FFmpegBinary == "" {
		c.Media.FFmpegBinary = defaultFFmpegBinary
	}
	c.Media.FFprobeBinary = strings.TrimSpace(c.Media.FFprobeBinary)
	if c.Media.FFprobeBinary == "" {
		c.Media.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Media.AudioSampleRate == 0 {
		c.Media.AudioSampleRate = defaultAudioSampleRate
	}
	c.Media.AudioBitrate = strings.TrimSpace(c.Media.AudioBitrate)
	if c.Media.AudioBitrate == "" {
		c.Media.AudioBitrate = defaultAudioBitrate
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
