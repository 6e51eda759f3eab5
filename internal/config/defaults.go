package config

const (
	defaultConfigPath           = "~/.config/vidscribe/config.toml"
	projectConfigName           = "vidscribe.toml"
	defaultDotenvPath           = ".env"
	defaultOutputDir            = "outputs"
	defaultFFmpegBinary         = "ffmpeg"
	defaultFFprobeBinary        = "ffprobe"
	defaultAudioSampleRate      = 44100
	defaultAudioBitrate         = "192k"
	defaultSpeechTimeout        = 900
	defaultSpeechPollInterval   = 10
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultAutomaticPunctuation = true
)

// Environment variables holding the required settings.
const (
	EnvProjectID    = "GCP_PROJECT_ID"
	EnvBucket       = "GCS_BUCKET_NAME"
	EnvLanguageCode = "AUDIO_LANGUAGE_CODE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Speech: Speech{
			TimeoutSeconds:       defaultSpeechTimeout,
			PollIntervalSeconds:  defaultSpeechPollInterval,
			AutomaticPunctuation: defaultAutomaticPunctuation,
		},
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Media: Media{
			FFmpegBinary:    defaultFFmpegBinary,
			FFprobeBinary:   defaultFFprobeBinary,
			AudioSampleRate: defaultAudioSampleRate,
			AudioBitrate:    defaultAudioBitrate,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

// DefaultDotenvPath returns the dotenv file consulted when none is given.
func DefaultDotenvPath() string {
	return defaultDotenvPath
}
