package gcs

import "testing"

func TestURIString(t *testing.T) {
	uri := URI{Bucket: "media", Object: "talk.mp3"}
	if got := uri.String(); got != "gs://media/talk.mp3" {
		t.Fatalf("String() = %q", got)
	}
}

func TestParseURI(t *testing.T) {
	tests := []struct {
		raw     string
		want    URI
		wantErr bool
	}{
		{raw: "gs://media/talk.mp3", want: URI{Bucket: "media", Object: "talk.mp3"}},
		{raw: "gs://media/nested/talk.mp3", want: URI{Bucket: "media", Object: "nested/talk.mp3"}},
		{raw: "media/talk.mp3", wantErr: true},
		{raw: "gs://media", wantErr: true},
		{raw: "gs:///talk.mp3", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseURI(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseURI(%q) expected error", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseURI(%q): %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseURI(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestContentType(t *testing.T) {
	if got := contentType("talk.mp3"); got != "audio/mpeg" {
		t.Fatalf("contentType(mp3) = %q", got)
	}
	if got := contentType("blob"); got != "application/octet-stream" {
		t.Fatalf("contentType(no ext) = %q", got)
	}
}
