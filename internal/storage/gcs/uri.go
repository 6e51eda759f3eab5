package gcs

import (
	"fmt"
	"strings"
)

const scheme = "gs://"

// URI identifies an object inside a Cloud Storage bucket.
type URI struct {
	Bucket string
	Object string
}

// String returns the gs://<bucket>/<object> form.
func (u URI) String() string {
	return scheme + u.Bucket + "/" + u.Object
}

// ParseURI splits a gs://<bucket>/<object> string.
func ParseURI(raw string) (URI, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, scheme) {
		return URI{}, fmt.Errorf("parse gcs uri %q: missing %s prefix", raw, scheme)
	}
	bucket, object, ok := strings.Cut(strings.TrimPrefix(trimmed, scheme), "/")
	if !ok || bucket == "" || object == "" {
		return URI{}, fmt.Errorf("parse gcs uri %q: expected gs://<bucket>/<object>", raw)
	}
	return URI{Bucket: bucket, Object: object}, nil
}
