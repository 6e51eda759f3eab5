package audio

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"vidscribe/internal/fileutil"
	"vidscribe/internal/logging"
	"vidscribe/internal/media/ffprobe"
	"vidscribe/internal/services"
)

const stepName = "extract"

// CommandRunner executes an external command.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// ProbeFunc inspects a media file.
type ProbeFunc func(ctx context.Context, binary, path string) (ffprobe.Result, error)

// Options configures an Extractor.
type Options struct {
	FFmpegBinary  string
	FFprobeBinary string
	SampleRate    int
	Bitrate       string
	// Language is the recognition language used to pick among audio streams.
	Language string
	Logger   *slog.Logger
}

// Extractor writes a video's audio track to an MP3 file using ffmpeg.
type Extractor struct {
	opts   Options
	run    CommandRunner
	probe  ProbeFunc
	logger *slog.Logger
}

// NewExtractor builds an Extractor that shells out to ffmpeg and ffprobe.
func NewExtractor(opts Options) *Extractor {
	if strings.TrimSpace(opts.FFmpegBinary) == "" {
		opts.FFmpegBinary = "ffmpeg"
	}
	if strings.TrimSpace(opts.FFprobeBinary) == "" {
		opts.FFprobeBinary = "ffprobe"
	}
	if opts.SampleRate <= 0 {
		opts.SampleRate = 44100
	}
	if strings.TrimSpace(opts.Bitrate) == "" {
		opts.Bitrate = "192k"
	}
	return &Extractor{
		opts:   opts,
		run:    runCommand,
		probe:  ffprobe.Inspect,
		logger: logging.NewComponentLogger(opts.Logger, "audio"),
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (e *Extractor) WithCommandRunner(runner CommandRunner) {
	if runner != nil {
		e.run = runner
	}
}

// WithProbe sets a custom media probe (for testing).
func (e *Extractor) WithProbe(probe ProbeFunc) {
	if probe != nil {
		e.probe = probe
	}
}

// ArtifactPath returns where the audio for videoPath is written inside outputDir.
func ArtifactPath(outputDir, videoPath string) string {
	return filepath.Join(outputDir, fileutil.Stem(videoPath)+".mp3")
}

// Extract writes the audio track of videoPath to <outputDir>/<stem>.mp3 and
// returns the new file's path. No file is left behind on failure.
func (e *Extractor) Extract(ctx context.Context, videoPath, outputDir string) (string, error) {
	logger := logging.WithContext(ctx, e.logger)

	dest := ArtifactPath(outputDir, videoPath)
	if samePath(dest, videoPath) {
		return "", services.Wrap(services.ErrValidation, stepName, "plan", fmt.Sprintf("audio artifact %s would overwrite the source video", dest), nil)
	}

	probe, err := e.probe(ctx, e.opts.FFprobeBinary, videoPath)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, stepName, "probe video", "", err)
	}
	selection := Select(probe.Streams, e.opts.Language)
	if selection.PrimaryIndex < 0 {
		return "", services.Wrap(services.ErrNotFound, stepName, "select audio", fmt.Sprintf("%s has no audio track", filepath.Base(videoPath)), nil)
	}
	logger.Debug("audio stream selected",
		logging.Int("stream_index", selection.PrimaryIndex),
		logging.String("codec", selection.Primary.CodecName),
		logging.String("stream_language", selection.Primary.Language()),
		logging.Bool("language_matched", selection.LanguageMatched),
		logging.Int("audio_streams", probe.AudioStreamCount()),
		logging.Duration("video_duration", probedDuration(probe)),
		logging.String("video_size", humanize.Bytes(uint64(probe.SizeBytes()))),
	)

	args := BuildArgs(videoPath, selection.PrimaryIndex, e.opts.SampleRate, e.opts.Bitrate, dest)
	if err := e.run(ctx, e.opts.FFmpegBinary, args...); err != nil {
		_ = os.Remove(dest)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", services.Wrap(services.ErrExternalTool, stepName, "ffmpeg", "", err)
	}

	info, err := os.Stat(dest)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, stepName, "verify output", "ffmpeg produced no file", err)
	}
	if info.Size() == 0 {
		_ = os.Remove(dest)
		return "", services.Wrap(services.ErrExternalTool, stepName, "verify output", "ffmpeg produced an empty file", nil)
	}

	logger.Info("audio extracted",
		logging.String("audio_path", dest),
		logging.String("audio_size", humanize.Bytes(uint64(info.Size()))),
		logging.Int("sample_rate", e.opts.SampleRate),
	)
	return dest, nil
}

// BuildArgs returns the ffmpeg arguments that encode one audio stream to MP3.
func BuildArgs(source string, streamIndex, sampleRate int, bitrate, dest string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", source,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		"-vn",
		"-sn",
		"-dn",
		"-c:a", "libmp3lame",
		"-ar", strconv.Itoa(sampleRate),
		"-b:a", bitrate,
		dest,
	}
}

// probedDuration converts the container duration to a time.Duration, reporting
// 0 when ffprobe gave none.
func probedDuration(result ffprobe.Result) time.Duration {
	secs := result.DurationSeconds()
	if math.IsNaN(secs) || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return false
	}
	if absA == absB {
		return true
	}
	infoA, errA := os.Stat(absA)
	infoB, errB := os.Stat(absB)
	if errA != nil || errB != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

