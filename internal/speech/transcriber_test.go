package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vidscribe/internal/services"
)

type fakeOperation struct {
	mu       sync.Mutex
	name     string
	statuses []Status
	errAt    int
	err      error
	polls    int
}

func (o *fakeOperation) Name() string { return o.name }

func (o *fakeOperation) Poll(ctx context.Context) (Status, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.polls++
	if err := ctx.Err(); err != nil {
		return Status{}, err
	}
	if o.err != nil && o.polls >= o.errAt {
		return Status{}, o.err
	}
	if len(o.statuses) == 0 {
		return Status{}, nil
	}
	next := o.statuses[0]
	if len(o.statuses) > 1 {
		o.statuses = o.statuses[1:]
	}
	return next, nil
}

type fakeRecognizer struct {
	op        Operation
	err       error
	submitted []Request
}

func (r *fakeRecognizer) Submit(_ context.Context, req Request) (Operation, error) {
	r.submitted = append(r.submitted, req)
	if r.err != nil {
		return nil, r.err
	}
	return r.op, nil
}

func doneWith(lines ...string) Status {
	result := &Result{}
	for _, line := range lines {
		result.Segments = append(result.Segments, Segment{Alternatives: []Alternative{{Transcript: line, Confidence: 0.9}}})
	}
	return Status{Done: true, ProgressPercent: 100, Result: result}
}

func fastOptions() Options {
	return Options{
		LanguageCode:         "en-US",
		AutomaticPunctuation: true,
		Timeout:              2 * time.Second,
		PollInterval:         time.Millisecond,
	}
}

func TestTranscribeSubmitsRequestAndJoinsSegments(t *testing.T) {
	op := &fakeOperation{name: "op-1", statuses: []Status{
		{ProgressPercent: 10},
		{ProgressPercent: 60},
		doneWith("hello world.", "second line."),
	}}
	rec := &fakeRecognizer{op: op}
	tr := NewTranscriber(rec, fastOptions())

	got, err := tr.Transcribe(context.Background(), "gs://media/talk.mp3", 48000)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got.Text != "hello world.\nsecond line.\n" {
		t.Fatalf("unexpected text %q", got.Text)
	}
	if got.Segments != 2 || got.Operation != "op-1" {
		t.Fatalf("unexpected transcript metadata %+v", got)
	}
	if op.polls != 3 {
		t.Fatalf("expected 3 polls, got %d", op.polls)
	}
	if len(rec.submitted) != 1 {
		t.Fatalf("expected one submission, got %d", len(rec.submitted))
	}
	req := rec.submitted[0]
	want := Request{URI: "gs://media/talk.mp3", Encoding: EncodingMP3, SampleRateHertz: 48000, LanguageCode: "en-US", AutomaticPunctuation: true}
	if req != want {
		t.Fatalf("request = %+v, want %+v", req, want)
	}
}

func TestTranscribeEmptyResultIsNotFound(t *testing.T) {
	op := &fakeOperation{name: "op-empty", statuses: []Status{{Done: true, Result: &Result{Segments: []Segment{{}}}}}}
	tr := NewTranscriber(&fakeRecognizer{op: op}, fastOptions())

	_, err := tr.Transcribe(context.Background(), "gs://media/silence.mp3", 44100)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTranscribeSubmitFailure(t *testing.T) {
	tr := NewTranscriber(&fakeRecognizer{err: errors.New("permission denied")}, fastOptions())
	_, err := tr.Transcribe(context.Background(), "gs://media/talk.mp3", 44100)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
}

func TestTranscribeRejectsInvalidInputs(t *testing.T) {
	op := &fakeOperation{name: "op", statuses: []Status{doneWith("x")}}
	noLang := fastOptions()
	noLang.LanguageCode = " "
	if _, err := NewTranscriber(&fakeRecognizer{op: op}, noLang).Transcribe(context.Background(), "gs://b/o.mp3", 44100); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for empty language, got %v", err)
	}
	if _, err := NewTranscriber(&fakeRecognizer{op: op}, fastOptions()).Transcribe(context.Background(), "gs://b/o.mp3", 0); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for zero sample rate, got %v", err)
	}
	if _, err := NewTranscriber(nil, fastOptions()).Transcribe(context.Background(), "gs://b/o.mp3", 44100); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration for nil recognizer, got %v", err)
	}
	rec := &fakeRecognizer{op: op}
	if _, err := NewTranscriber(rec, fastOptions()).Transcribe(context.Background(), "/outputs/talk.mp3", 44100); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for a local path, got %v", err)
	}
	if len(rec.submitted) != 0 {
		t.Fatalf("expected nothing submitted for an invalid uri, got %d", len(rec.submitted))
	}
}

func TestAwaitTimesOut(t *testing.T) {
	opts := fastOptions()
	opts.Timeout = 30 * time.Millisecond
	tr := NewTranscriber(nil, opts)
	op := &fakeOperation{name: "op-slow", statuses: []Status{{ProgressPercent: 5}}}

	_, err := tr.Await(context.Background(), op)
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("timeout should not surface as a raw deadline error: %v", err)
	}
}

func TestAwaitHonorsCancellation(t *testing.T) {
	tr := NewTranscriber(nil, fastOptions())
	op := &fakeOperation{name: "op-cancel", statuses: []Status{{ProgressPercent: 1}}}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	_, err := tr.Await(ctx, op)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAwaitPollFailure(t *testing.T) {
	tr := NewTranscriber(nil, fastOptions())
	op := &fakeOperation{name: "op-fail", statuses: []Status{{}}, errAt: 2, err: errors.New("invalid audio")}

	_, err := tr.Await(context.Background(), op)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", err)
	}
	if op.polls != 2 {
		t.Fatalf("expected failure on second poll, got %d polls", op.polls)
	}
}

func TestAwaitDoneWithoutResult(t *testing.T) {
	tr := NewTranscriber(nil, fastOptions())
	op := &fakeOperation{name: "op", statuses: []Status{{Done: true}}}
	result, err := tr.Await(context.Background(), op)
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	if result == nil || len(result.Segments) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestNewTranscriberDefaults(t *testing.T) {
	tr := NewTranscriber(nil, Options{LanguageCode: "en-US"})
	if tr.timeout != 900*time.Second {
		t.Fatalf("expected 900s default timeout, got %s", tr.timeout)
	}
	if tr.pollInterval != 10*time.Second {
		t.Fatalf("expected 10s default poll interval, got %s", tr.pollInterval)
	}
}
