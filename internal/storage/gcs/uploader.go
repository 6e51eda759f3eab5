package gcs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"vidscribe/internal/logging"
	"vidscribe/internal/services"
)

const stepName = "upload"

// UploaderOptions configures an Uploader.
type UploaderOptions struct {
	Logger *slog.Logger
	// Progress receives a byte progress bar when it is an interactive terminal.
	Progress io.Writer
}

// Uploader copies local files into a bucket.
type Uploader struct {
	store    ObjectStore
	logger   *slog.Logger
	progress io.Writer
}

// NewUploader builds an Uploader over store.
func NewUploader(store ObjectStore, opts UploaderOptions) *Uploader {
	return &Uploader{
		store:    store,
		logger:   logging.NewComponentLogger(opts.Logger, "gcs"),
		progress: opts.Progress,
	}
}

// Upload streams localPath to gs://<bucket>/<basename>, overwriting any
// existing object, and returns its URI.
func (u *Uploader) Upload(ctx context.Context, localPath, bucket string) (URI, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return URI{}, services.Wrap(services.ErrConfiguration, stepName, "resolve bucket", "bucket name is empty", nil)
	}
	if u.store == nil {
		return URI{}, services.Wrap(services.ErrConfiguration, stepName, "resolve store", "object store unavailable", nil)
	}
	logger := logging.WithContext(ctx, u.logger)

	file, err := os.Open(localPath)
	if err != nil {
		return URI{}, services.Wrap(services.ErrNotFound, stepName, "open audio", "", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return URI{}, services.Wrap(services.ErrExternalTool, stepName, "stat audio", "", err)
	}

	uri := URI{Bucket: bucket, Object: filepath.Base(localPath)}

	uploadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	writer, err := u.store.NewWriter(uploadCtx, uri.Bucket, uri.Object)
	if err != nil {
		return URI{}, services.Wrap(services.ErrExternalTool, stepName, "open object", uri.String(), err)
	}

	var dst io.Writer = writer
	var bar *progressbar.ProgressBar
	if u.progress != nil && logging.IsTerminal(u.progress) {
		bar = newProgressBar(u.progress, info.Size(), uri.Object)
		dst = io.MultiWriter(writer, bar)
	}

	started := time.Now()
	written, copyErr := io.Copy(dst, file)
	if copyErr != nil {
		// Cancelling before Close aborts the upload instead of committing a
		// truncated object.
		cancel()
		_ = writer.Close()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return URI{}, ctxErr
		}
		return URI{}, services.Wrap(services.ErrExternalTool, stepName, "write object", uri.String(), copyErr)
	}
	if err := writer.Close(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return URI{}, ctxErr
		}
		return URI{}, services.Wrap(services.ErrExternalTool, stepName, "commit object", uri.String(), err)
	}
	if bar != nil {
		_ = bar.Finish()
	}
	if written != info.Size() {
		return URI{}, services.Wrap(services.ErrExternalTool, stepName, "verify object", fmt.Sprintf("wrote %d of %d bytes", written, info.Size()), nil)
	}

	logger.Info("audio uploaded",
		logging.String("uri", uri.String()),
		logging.String("size", humanize.Bytes(uint64(written))),
		logging.Duration("elapsed", time.Since(started)),
	)
	return uri, nil
}

func newProgressBar(w io.Writer, size int64, name string) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("uploading "+name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
