package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"vidscribe/internal/config"
	"vidscribe/internal/gcp"
	"vidscribe/internal/media/audio"
	"vidscribe/internal/media/ffprobe"
	"vidscribe/internal/pipeline"
	"vidscribe/internal/speech"
	"vidscribe/internal/storage/gcs"
)

// runtime bundles the pipeline collaborators and the clients they hold open.
type runtime struct {
	deps    pipeline.Deps
	closers []func() error
}

func (r *runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func newGoogleRuntime(ctx context.Context, cfg *config.Config, logger *slog.Logger, progress io.Writer) (*runtime, error) {
	creds := gcp.Credentials{
		ProjectID:       cfg.GCP.ProjectID,
		CredentialsFile: cfg.GCP.CredentialsFile,
	}
	rt := &runtime{}

	store, err := gcs.NewGoogleStore(ctx, creds)
	if err != nil {
		return nil, err
	}
	rt.closers = append(rt.closers, store.Close)

	recognizer, err := speech.NewGoogleRecognizer(ctx, creds)
	if err != nil {
		_ = rt.Close()
		return nil, err
	}
	rt.closers = append(rt.closers, recognizer.Close)

	ffprobeBinary := cfg.FFprobeBinary()
	rt.deps = pipeline.Deps{
		Extractor: audio.NewExtractor(audio.Options{
			FFmpegBinary:  cfg.FFmpegBinary(),
			FFprobeBinary: ffprobeBinary,
			SampleRate:    cfg.Media.AudioSampleRate,
			Bitrate:       cfg.Media.AudioBitrate,
			Language:      cfg.Speech.LanguageCode,
			Logger:        logger,
		}),
		Uploader: gcs.NewUploader(store, gcs.UploaderOptions{
			Logger:   logger,
			Progress: progress,
		}),
		Transcriber: speech.NewTranscriber(recognizer, speech.Options{
			LanguageCode:         cfg.Speech.LanguageCode,
			AutomaticPunctuation: cfg.Speech.AutomaticPunctuation,
			Timeout:              cfg.SpeechTimeout(),
			PollInterval:         cfg.SpeechPollInterval(),
			Logger:               logger,
		}),
		Probe: func(ctx context.Context, path string) (int, error) {
			result, err := ffprobe.Inspect(ctx, ffprobeBinary, path)
			if err != nil {
				return 0, err
			}
			return result.SampleRateHertz(), nil
		},
		Logger: logger,
	}
	return rt, nil
}
