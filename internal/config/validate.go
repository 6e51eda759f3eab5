package config

import (
	"errors"
	"fmt"
	"strings"

	"vidscribe/internal/services"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRequired(); err != nil {
		return err
	}
	if err := c.validateSpeech(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// MissingRequired lists the environment variables whose settings are empty.
func (c *Config) MissingRequired() []string {
	var missing []string
	if c.GCP.ProjectID == "" {
		missing = append(missing, EnvProjectID)
	}
	if c.GCP.Bucket == "" {
		missing = append(missing, EnvBucket)
	}
	if c.Speech.LanguageCode == "" {
		missing = append(missing, EnvLanguageCode)
	}
	return missing
}

func (c *Config) validateRequired() error {
	missing := c.MissingRequired()
	if len(missing) == 0 {
		return nil
	}
	return services.Wrap(
		services.ErrConfiguration,
		"config",
		"required settings",
		fmt.Sprintf("missing %s; define them in the .env file or the environment", strings.Join(missing, ", ")),
		nil,
	)
}

func (c *Config) validateSpeech() error {
	if c.Speech.TimeoutSeconds <= 0 {
		return errors.New("speech.timeout_seconds must be positive")
	}
	if c.Speech.PollIntervalSeconds <= 0 {
		return errors.New("speech.poll_interval_seconds must be positive")
	}
	if c.Speech.PollIntervalSeconds >= c.Speech.TimeoutSeconds {
		return errors.New("speech.poll_interval_seconds must be less than speech.timeout_seconds")
	}
	if c.Speech.SampleRateHertz < 0 {
		return errors.New("speech.sample_rate_hertz must be >= 0 (0 probes the audio)")
	}
	return nil
}

func (c *Config) validateMedia() error {
	if c.Media.AudioSampleRate <= 0 {
		return errors.New("media.audio_sample_rate must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
