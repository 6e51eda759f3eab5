package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"vidscribe/internal/config"
	"vidscribe/internal/fileutil"
	"vidscribe/internal/logging"
	"vidscribe/internal/preflight"
	"vidscribe/internal/services"
	"vidscribe/internal/speech"
	"vidscribe/internal/storage/gcs"
	"vidscribe/internal/transcript"
)

// Extractor produces the local audio artifact for a video.
type Extractor interface {
	Extract(ctx context.Context, videoPath, outputDir string) (string, error)
}

// Uploader copies the audio artifact to object storage.
type Uploader interface {
	Upload(ctx context.Context, localPath, bucket string) (gcs.URI, error)
}

// Transcriber runs recognition over an uploaded object.
type Transcriber interface {
	Transcribe(ctx context.Context, uri string, sampleRateHertz int) (speech.Transcript, error)
}

// PreflightFunc reports readiness before any step runs.
type PreflightFunc func(ctx context.Context, cfg *config.Config) []preflight.Result

// Deps are the collaborators a Pipeline drives.
type Deps struct {
	Extractor   Extractor
	Uploader    Uploader
	Transcriber Transcriber
	// Probe reads the sample rate of the extracted audio. Nil skips probing.
	Probe  speech.RateProbe
	Logger *slog.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithPreflight replaces the readiness checks. Nil disables them.
func WithPreflight(fn PreflightFunc) Option {
	return func(p *Pipeline) {
		p.preflight = fn
	}
}

// WithRunIDGenerator overrides run ID generation.
func WithRunIDGenerator(fn func() string) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.newRunID = fn
		}
	}
}

// WithClock overrides the time source used for the report.
func WithClock(fn func() time.Time) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.now = fn
		}
	}
}

// Pipeline transcribes videos using the configured collaborators.
type Pipeline struct {
	cfg         *config.Config
	extractor   Extractor
	uploader    Uploader
	transcriber Transcriber
	probe       speech.RateProbe
	preflight   PreflightFunc
	logger      *slog.Logger
	newRunID    func() string
	now         func() time.Time
}

// New builds a Pipeline. Preflight defaults to preflight.RunAll.
func New(cfg *config.Config, deps Deps, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:         cfg,
		extractor:   deps.Extractor,
		uploader:    deps.Uploader,
		transcriber: deps.Transcriber,
		probe:       deps.Probe,
		preflight:   preflight.RunAll,
		logger:      logging.NewComponentLogger(deps.Logger, "pipeline"),
		newRunID:    uuid.NewString,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run processes videoPath. The returned Report is populated even on failure.
func (p *Pipeline) Run(ctx context.Context, videoPath string) (Report, error) {
	runID := p.newRunID()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithSource(ctx, videoPath)

	report := Report{
		RunID:   runID,
		Video:   videoPath,
		State:   StateInit,
		Started: p.now(),
	}
	logger := logging.WithContext(ctx, p.logger)

	if err := p.validate(); err != nil {
		return p.fail(ctx, &report, StepPrepare, err)
	}
	outputDir := p.cfg.Paths.OutputDir

	if err := p.cfg.EnsureDirectories(); err != nil {
		return p.fail(ctx, &report, StepPrepare, services.Wrap(services.ErrConfiguration, StepPrepare, "create output directory", outputDir, err))
	}
	if check := preflight.CheckVideo(videoPath); !check.Passed {
		return p.fail(ctx, &report, StepPrepare, services.Wrap(services.ErrValidation, StepPrepare, "check video", check.Detail, nil))
	}
	if p.preflight != nil {
		if err := preflight.Failures(p.preflight(ctx, p.cfg)); err != nil {
			return p.fail(ctx, &report, StepPrepare, err)
		}
	}

	lock, err := acquireLock(outputDir, videoPath)
	if err != nil {
		return p.fail(ctx, &report, StepPrepare, err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", logging.String("lock", lock.Path()), logging.Error(err))
		}
	}()

	logger.Info("transcription started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("output_dir", outputDir),
		logging.String("bucket", p.cfg.GCP.Bucket),
		logging.String("language", p.cfg.Speech.LanguageCode),
	)

	if err := p.step(ctx, &report, StepExtract, func(ctx context.Context) (string, error) {
		path, err := p.extractor.Extract(ctx, videoPath, outputDir)
		if err != nil {
			return "", err
		}
		report.AudioPath = path
		return path, nil
	}); err != nil {
		return p.fail(ctx, &report, StepExtract, err)
	}
	report.State = StateAudioExtracted

	if err := p.step(ctx, &report, StepUpload, func(ctx context.Context) (string, error) {
		uri, err := p.uploader.Upload(ctx, report.AudioPath, p.cfg.GCP.Bucket)
		if err != nil {
			return "", err
		}
		report.RemoteURI = uri.String()
		return report.RemoteURI, nil
	}); err != nil {
		return p.fail(ctx, &report, StepUpload, err)
	}
	report.State = StateUploaded

	var text string
	if err := p.step(ctx, &report, StepTranscribe, func(ctx context.Context) (string, error) {
		report.SampleRateHertz = speech.ResolveSampleRate(ctx, p.cfg.Speech.SampleRateHertz, p.cfg.Media.AudioSampleRate, report.AudioPath, p.probe, p.logger)
		result, err := p.transcriber.Transcribe(ctx, report.RemoteURI, report.SampleRateHertz)
		if err != nil {
			return "", err
		}
		text = result.Text
		report.Segments = result.Segments
		report.TranscriptChars = len([]rune(text))
		return fmt.Sprintf("%d segments, %s chars at %d Hz", result.Segments, humanize.Comma(int64(report.TranscriptChars)), report.SampleRateHertz), nil
	}); err != nil {
		return p.fail(ctx, &report, StepTranscribe, err)
	}
	report.State = StateTranscribed

	if err := p.step(ctx, &report, StepSave, func(ctx context.Context) (string, error) {
		path, err := transcript.Write(outputDir, videoPath, text)
		if err != nil {
			return "", err
		}
		report.TranscriptPath = path
		return path, nil
	}); err != nil {
		return p.fail(ctx, &report, StepSave, err)
	}
	report.State = StateSaved

	p.cleanup(ctx, &report)

	report.State = StateDone
	report.Finished = p.now()
	logger.Info("transcription complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.String("transcript", report.TranscriptPath),
		logging.Int("chars", report.TranscriptChars),
		logging.Duration("elapsed", report.Elapsed()),
	)
	return report, nil
}

func (p *Pipeline) validate() error {
	switch {
	case p.cfg == nil:
		return services.Wrap(services.ErrConfiguration, StepPrepare, "validate", "configuration unavailable", nil)
	case p.extractor == nil:
		return services.Wrap(services.ErrConfiguration, StepPrepare, "validate", "audio extractor unavailable", nil)
	case p.uploader == nil:
		return services.Wrap(services.ErrConfiguration, StepPrepare, "validate", "uploader unavailable", nil)
	case p.transcriber == nil:
		return services.Wrap(services.ErrConfiguration, StepPrepare, "validate", "transcriber unavailable", nil)
	}
	return nil
}

// step runs fn with step-scoped logging and records it on the report.
func (p *Pipeline) step(ctx context.Context, report *Report, name string, fn func(context.Context) (string, error)) error {
	ctx = logging.WithStep(ctx, name)
	logger := logging.WithContext(ctx, p.logger)
	logger.Info("step started", logging.String(logging.FieldEventType, "step_start"))

	started := time.Now()
	detail, err := fn(ctx)
	record := StepRecord{Name: name, Duration: time.Since(started), Detail: detail, Err: err}
	report.Steps = append(report.Steps, record)
	if err != nil {
		return err
	}

	logger.Info("step completed",
		logging.String(logging.FieldEventType, "step_complete"),
		logging.Duration("duration", record.Duration),
		logging.String("detail", detail),
	)
	return nil
}

func (p *Pipeline) cleanup(ctx context.Context, report *Report) {
	ctx = logging.WithStep(ctx, StepCleanup)
	logger := logging.WithContext(ctx, p.logger)
	if p.cfg.Pipeline.KeepAudio {
		report.AudioKept = true
		logger.Info("audio retained", logging.String("path", report.AudioPath))
		return
	}
	if err := fileutil.RemoveIfExists(report.AudioPath); err != nil {
		report.AudioKept = true
		logging.WarnWithContext(logger, "failed to remove audio artifact", "cleanup_failure",
			logging.String("path", report.AudioPath),
			logging.String(logging.FieldImpact, "audio file remains in the output directory"),
			logging.Error(err),
		)
		return
	}
	logger.Debug("audio removed", logging.String("path", report.AudioPath))
}

func (p *Pipeline) fail(ctx context.Context, report *Report, step string, err error) (Report, error) {
	report.State = StateFailed
	report.FailedStep = step
	report.Finished = p.now()
	if n := len(report.Steps); n == 0 || report.Steps[n-1].Name != step {
		report.Steps = append(report.Steps, StepRecord{Name: step, Err: err})
	}

	ctx = logging.WithStep(ctx, step)
	logger := logging.WithContext(ctx, p.logger)
	if errors.Is(err, context.Canceled) {
		logger.Warn("transcription interrupted", logging.String(logging.FieldEventType, "run_interrupted"))
		return *report, err
	}
	logging.ErrorWithContext(logger, "transcription failed", "run_failure",
		logging.String(logging.FieldErrorHint, hintFor(err)),
		logging.Error(err),
	)
	return *report, err
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, services.ErrConfiguration):
		return "check the .env file, config file, and installed tools (vidscribe doctor)"
	case errors.Is(err, services.ErrValidation):
		return "check the video path and that no other run is active"
	case errors.Is(err, services.ErrTimeout):
		return "raise speech.timeout_seconds for long recordings"
	case errors.Is(err, services.ErrNotFound):
		return "confirm the audio contains speech in the configured language"
	default:
		return "audio and uploaded objects were kept; rerun after fixing the cause"
	}
}
