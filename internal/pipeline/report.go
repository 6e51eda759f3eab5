package pipeline

import "time"

// StepRecord captures the outcome of a single step.
type StepRecord struct {
	Name     string
	Duration time.Duration
	Detail   string
	Err      error
}

// Succeeded reports whether the step finished without error.
func (r StepRecord) Succeeded() bool {
	return r.Err == nil
}

// Report summarizes a run for the CLI.
type Report struct {
	RunID      string
	Video      string
	State      State
	FailedStep string
	Steps      []StepRecord

	AudioPath       string
	AudioKept       bool
	RemoteURI       string
	SampleRateHertz int
	TranscriptPath  string
	TranscriptChars int
	Segments        int

	Started  time.Time
	Finished time.Time
}

// Elapsed returns the wall time of a finished run, or 0 before the run
// reaches a terminal state.
func (r Report) Elapsed() time.Duration {
	if !r.State.Terminal() || r.Started.IsZero() || r.Finished.IsZero() {
		return 0
	}
	return r.Finished.Sub(r.Started)
}
