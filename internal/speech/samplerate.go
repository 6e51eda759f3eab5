package speech

import (
	"context"
	"log/slog"

	"vidscribe/internal/logging"
)

// FallbackSampleRateHertz is used when the audio cannot be probed and no
// extraction rate is known.
const FallbackSampleRateHertz = 44100

// RateProbe reports the sample rate of an audio file.
type RateProbe func(ctx context.Context, path string) (int, error)

// ResolveSampleRate picks the rate sent with the request: a positive
// configured value wins, then the probed rate of audioPath, then the
// extraction rate the audio was encoded at. FallbackSampleRateHertz stands in
// for a non-positive extraction rate. Probe failures are logged as a warning.
func ResolveSampleRate(ctx context.Context, configured, extraction int, audioPath string, probe RateProbe, logger *slog.Logger) int {
	if configured > 0 {
		return configured
	}
	fallback := extraction
	if fallback <= 0 {
		fallback = FallbackSampleRateHertz
	}
	if probe == nil {
		return fallback
	}
	rate, err := probe(ctx, audioPath)
	if err == nil && rate > 0 {
		return rate
	}
	attrs := []logging.Attr{
		logging.String("path", audioPath),
		logging.Int("fallback_hz", fallback),
		logging.String(logging.FieldErrorHint, "set speech.sample_rate_hertz to skip probing"),
	}
	if err != nil {
		attrs = append(attrs, logging.Error(err))
	}
	logger = logging.WithContext(ctx, logger)
	logging.WarnWithContext(logger, "sample rate probe failed", "sample_rate_fallback", attrs...)
	return fallback
}
