package speech

import (
	"context"
	"strings"
)

// Encoding names the audio container sent to the recognizer.
type Encoding string

// EncodingMP3 is the only encoding the extractor produces.
const EncodingMP3 Encoding = "MP3"

// Request describes one recognition job over a stored audio object.
type Request struct {
	URI                  string
	Encoding             Encoding
	SampleRateHertz      int
	LanguageCode         string
	AutomaticPunctuation bool
}

// Alternative is one candidate transcription of a result.
type Alternative struct {
	Transcript string
	Confidence float32
}

// Segment is one consecutive portion of the audio. Alternatives are ordered
// most likely first.
type Segment struct {
	Alternatives []Alternative
	LanguageCode string
}

// Result is the completed output of a recognition job.
type Result struct {
	Segments []Segment
}

// Text writes the top alternative of every segment in order, each followed
// by a newline. Segments without alternatives are skipped.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	var b strings.Builder
	for _, seg := range r.Segments {
		if len(seg.Alternatives) == 0 {
			continue
		}
		b.WriteString(seg.Alternatives[0].Transcript)
		b.WriteByte('\n')
	}
	return b.String()
}

// Status is a snapshot of an in-flight operation.
type Status struct {
	Done            bool
	ProgressPercent int32
	// Result is set once Done is true.
	Result *Result
}

// Operation is a handle to a submitted job.
type Operation interface {
	Name() string
	// Poll fetches the latest state. An error means the job failed or its
	// state could not be retrieved.
	Poll(ctx context.Context) (Status, error)
}

// Recognizer accepts recognition jobs.
type Recognizer interface {
	Submit(ctx context.Context, req Request) (Operation, error)
}
