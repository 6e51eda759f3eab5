package testsupport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// ObjectStore is an in-memory object store. Objects become visible when the
// writer is closed, mirroring Cloud Storage commit semantics.
type ObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte

	// OpenErr fails NewWriter when set.
	OpenErr error
	// WriteErr fails every Write when set.
	WriteErr error
	// CloseErr fails the commit when set.
	CloseErr error
}

// NewObjectStore returns an empty store.
func NewObjectStore() *ObjectStore {
	return &ObjectStore{objects: make(map[string][]byte)}
}

// NewWriter opens a buffered writer for bucket/object.
func (s *ObjectStore) NewWriter(ctx context.Context, bucket, object string) (io.WriteCloser, error) {
	if s.OpenErr != nil {
		return nil, s.OpenErr
	}
	return &memoryWriter{ctx: ctx, store: s, key: bucket + "/" + object}, nil
}

// Object returns the committed contents of bucket/object.
func (s *ObjectStore) Object(bucket, object string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[bucket+"/"+object]
	return data, ok
}

// Len reports the number of committed objects.
func (s *ObjectStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type memoryWriter struct {
	ctx    context.Context
	store  *ObjectStore
	key    string
	buf    bytes.Buffer
	closed bool
}

func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, errors.New("write on closed writer")
	}
	if w.store.WriteErr != nil {
		return 0, w.store.WriteErr
	}
	if err := w.ctx.Err(); err != nil {
		return 0, err
	}
	return w.buf.Write(p)
}

func (w *memoryWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.ctx.Err(); err != nil {
		return err
	}
	if w.store.CloseErr != nil {
		return w.store.CloseErr
	}
	w.store.mu.Lock()
	defer w.store.mu.Unlock()
	w.store.objects[w.key] = append([]byte(nil), w.buf.Bytes()...)
	return nil
}
