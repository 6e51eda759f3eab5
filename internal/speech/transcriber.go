package speech

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"vidscribe/internal/logging"
	"vidscribe/internal/services"
	"vidscribe/internal/storage/gcs"
)

const (
	stepName            = "transcribe"
	defaultTimeout      = 900 * time.Second
	defaultPollInterval = 10 * time.Second
)

// Options configures a Transcriber.
type Options struct {
	LanguageCode         string
	AutomaticPunctuation bool
	Timeout              time.Duration
	PollInterval         time.Duration
	Logger               *slog.Logger
}

// Transcript is the outcome of a completed job.
type Transcript struct {
	Text      string
	Segments  int
	Operation string
	Elapsed   time.Duration
}

// Transcriber runs recognition jobs to completion.
type Transcriber struct {
	recognizer   Recognizer
	language     string
	punctuation  bool
	timeout      time.Duration
	pollInterval time.Duration
	logger       *slog.Logger
}

// NewTranscriber builds a Transcriber over recognizer.
func NewTranscriber(recognizer Recognizer, opts Options) *Transcriber {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	poll := opts.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	return &Transcriber{
		recognizer:   recognizer,
		language:     strings.TrimSpace(opts.LanguageCode),
		punctuation:  opts.AutomaticPunctuation,
		timeout:      timeout,
		pollInterval: poll,
		logger:       logging.NewComponentLogger(opts.Logger, "speech"),
	}
}

// Transcribe submits the object at uri and waits for its transcript. An empty
// transcript is reported as ErrNotFound.
func (t *Transcriber) Transcribe(ctx context.Context, uri string, sampleRateHertz int) (Transcript, error) {
	if t.recognizer == nil {
		return Transcript{}, services.Wrap(services.ErrConfiguration, stepName, "resolve recognizer", "speech client unavailable", nil)
	}
	if t.language == "" {
		return Transcript{}, services.Wrap(services.ErrConfiguration, stepName, "resolve language", "language code is empty", nil)
	}
	if sampleRateHertz <= 0 {
		return Transcript{}, services.Wrap(services.ErrValidation, stepName, "resolve sample rate", fmt.Sprintf("invalid sample rate %d", sampleRateHertz), nil)
	}
	object, err := gcs.ParseURI(uri)
	if err != nil {
		return Transcript{}, services.Wrap(services.ErrValidation, stepName, "resolve audio uri", "", err)
	}
	logger := logging.WithContext(ctx, t.logger)

	req := Request{
		URI:                  object.String(),
		Encoding:             EncodingMP3,
		SampleRateHertz:      sampleRateHertz,
		LanguageCode:         t.language,
		AutomaticPunctuation: t.punctuation,
	}
	started := time.Now()
	op, err := t.recognizer.Submit(ctx, req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Transcript{}, ctxErr
		}
		return Transcript{}, services.Wrap(services.ErrExternalTool, stepName, "submit recognition", uri, err)
	}
	logger.Info("recognition submitted",
		logging.String("operation", op.Name()),
		logging.String("uri", uri),
		logging.String("language", t.language),
		logging.Int("sample_rate_hz", sampleRateHertz),
	)

	result, err := t.Await(ctx, op)
	if err != nil {
		return Transcript{}, err
	}

	text := result.Text()
	if strings.TrimSpace(text) == "" {
		return Transcript{}, services.Wrap(services.ErrNotFound, stepName, "collect transcript", "no speech recognized", nil)
	}
	transcript := Transcript{
		Text:      text,
		Segments:  len(result.Segments),
		Operation: op.Name(),
		Elapsed:   time.Since(started),
	}
	logger.Info("recognition complete",
		logging.String("operation", transcript.Operation),
		logging.Int("segments", transcript.Segments),
		logging.Duration("elapsed", transcript.Elapsed),
	)
	return transcript, nil
}

// Await polls op every poll interval until it completes, ctx is cancelled, or
// the timeout elapses. Timeouts are reported as ErrTimeout; cancellation
// returns the context error.
func (t *Transcriber) Await(ctx context.Context, op Operation) (*Result, error) {
	waitCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	logger := logging.WithContext(ctx, t.logger)
	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()

	lastProgress := int32(-1)
	for {
		status, err := op.Poll(waitCtx)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			if waitCtx.Err() != nil {
				return nil, t.timeoutError(op)
			}
			return nil, services.Wrap(services.ErrExternalTool, stepName, "poll operation", op.Name(), err)
		}
		if status.Done {
			if status.Result == nil {
				return &Result{}, nil
			}
			return status.Result, nil
		}
		if status.ProgressPercent != lastProgress {
			lastProgress = status.ProgressPercent
			logger.Info("recognition in progress",
				logging.String("operation", op.Name()),
				logging.Int("progress_percent", int(status.ProgressPercent)),
			)
		}

		select {
		case <-waitCtx.Done():
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, t.timeoutError(op)
		case <-ticker.C:
		}
	}
}

func (t *Transcriber) timeoutError(op Operation) error {
	return services.Wrap(
		services.ErrTimeout,
		stepName,
		"await operation",
		fmt.Sprintf("%s did not complete within %s", op.Name(), t.timeout),
		nil,
	)
}
