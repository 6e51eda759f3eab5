package pipeline

import (
	"testing"
	"time"
)

func TestReportElapsedOnlyForFinishedRuns(t *testing.T) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	report := Report{State: StateUploaded, Started: start, Finished: start.Add(time.Minute)}
	if got := report.Elapsed(); got != 0 {
		t.Fatalf("expected 0 for an in-progress run, got %s", got)
	}
	for _, state := range []State{StateDone, StateFailed} {
		report.State = state
		if got := report.Elapsed(); got != time.Minute {
			t.Fatalf("state %s: expected 1m, got %s", state, got)
		}
	}
}

func TestStepRecordSucceeded(t *testing.T) {
	if !(StepRecord{Name: StepSave}).Succeeded() {
		t.Fatal("expected a record without error to succeed")
	}
}
