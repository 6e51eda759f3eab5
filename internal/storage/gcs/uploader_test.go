package gcs

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"vidscribe/internal/services"
	"vidscribe/internal/testsupport"
)

func writeAudio(t *testing.T, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talk.mp3")
	testsupport.WriteFile(t, path, size)
	return path
}

func TestUploadStoresObjectUnderBaseName(t *testing.T) {
	store := testsupport.NewObjectStore()
	uploader := NewUploader(store, UploaderOptions{})
	path := writeAudio(t, 70*1024)

	uri, err := uploader.Upload(context.Background(), path, "media")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if uri.String() != "gs://media/talk.mp3" {
		t.Fatalf("unexpected uri %q", uri)
	}
	data, ok := store.Object("media", "talk.mp3")
	if !ok {
		t.Fatal("object not committed")
	}
	want, _ := os.ReadFile(path)
	if !bytes.Equal(data, want) {
		t.Fatalf("object content mismatch: got %d bytes, want %d", len(data), len(want))
	}
}

func TestUploadOverwritesExistingObject(t *testing.T) {
	store := testsupport.NewObjectStore()
	uploader := NewUploader(store, UploaderOptions{})
	path := writeAudio(t, 10)

	if _, err := uploader.Upload(context.Background(), path, "media"); err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if err := os.WriteFile(path, []byte("second"), 0o644); err != nil {
		t.Fatalf("rewrite audio: %v", err)
	}
	if _, err := uploader.Upload(context.Background(), path, "media"); err != nil {
		t.Fatalf("second upload: %v", err)
	}
	data, _ := store.Object("media", "talk.mp3")
	if string(data) != "second" {
		t.Fatalf("expected overwritten object, got %q", data)
	}
	if store.Len() != 1 {
		t.Fatalf("expected one object, got %d", store.Len())
	}
}

func TestUploadMissingFile(t *testing.T) {
	uploader := NewUploader(testsupport.NewObjectStore(), UploaderOptions{})
	_, err := uploader.Upload(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"), "media")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUploadEmptyBucket(t *testing.T) {
	uploader := NewUploader(testsupport.NewObjectStore(), UploaderOptions{})
	_, err := uploader.Upload(context.Background(), writeAudio(t, 1), "  ")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestUploadWriteFailureLeavesNoObject(t *testing.T) {
	store := testsupport.NewObjectStore()
	store.WriteErr = errors.New("connection reset")
	uploader := NewUploader(store, UploaderOptions{})

	_, err := uploader.Upload(context.Background(), writeAudio(t, 128), "media")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no committed objects, got %d", store.Len())
	}
}

func TestUploadCommitFailure(t *testing.T) {
	store := testsupport.NewObjectStore()
	store.CloseErr = errors.New("permission denied")
	uploader := NewUploader(store, UploaderOptions{})

	_, err := uploader.Upload(context.Background(), writeAudio(t, 128), "media")
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestUploadCancelledContext(t *testing.T) {
	store := testsupport.NewObjectStore()
	uploader := NewUploader(store, UploaderOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uploader.Upload(ctx, writeAudio(t, 128), "media")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected no committed objects, got %d", store.Len())
	}
}

func TestUploadSkipsProgressForNonTerminal(t *testing.T) {
	var progress bytes.Buffer
	uploader := NewUploader(testsupport.NewObjectStore(), UploaderOptions{Progress: &progress})
	if _, err := uploader.Upload(context.Background(), writeAudio(t, 64), "media"); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if progress.Len() != 0 {
		t.Fatalf("expected no progress output for a buffer, got %q", progress.String())
	}
}
