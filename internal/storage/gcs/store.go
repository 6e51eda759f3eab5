package gcs

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"cloud.google.com/go/storage"

	"vidscribe/internal/gcp"
)

// ObjectStore opens writers for named objects. Writing replaces any existing
// object of the same name; the object becomes visible when the writer closes.
type ObjectStore interface {
	NewWriter(ctx context.Context, bucket, object string) (io.WriteCloser, error)
}

// GoogleStore is an ObjectStore backed by Cloud Storage.
type GoogleStore struct {
	client *storage.Client
}

// NewGoogleStore dials Cloud Storage with the supplied credentials.
func NewGoogleStore(ctx context.Context, creds gcp.Credentials) (*GoogleStore, error) {
	client, err := storage.NewClient(ctx, gcp.ClientOptions(creds)...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GoogleStore{client: client}, nil
}

// NewWriter opens a resumable upload for bucket/object.
func (s *GoogleStore) NewWriter(ctx context.Context, bucket, object string) (io.WriteCloser, error) {
	w := s.client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType(object)
	return w, nil
}

// Close releases the underlying client.
func (s *GoogleStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

func contentType(object string) string {
	switch ext := filepath.Ext(object); ext {
	case ".mp3":
		return "audio/mpeg"
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return "application/octet-stream"
	}
}
