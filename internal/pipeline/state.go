package pipeline

// State tracks how far a run progressed.
type State string

const (
	StateInit           State = "init"
	StateAudioExtracted State = "audio_extracted"
	StateUploaded       State = "uploaded"
	StateTranscribed    State = "transcribed"
	StateSaved          State = "saved"
	StateDone           State = "done"
	StateFailed         State = "failed"
)

// Step names used in logs, reports, and wrapped errors.
const (
	StepPrepare    = "prepare"
	StepExtract    = "extract"
	StepUpload     = "upload"
	StepTranscribe = "transcribe"
	StepSave       = "save"
	StepCleanup    = "cleanup"
)

func (s State) String() string {
	return string(s)
}

// Terminal reports whether no further transitions are possible.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}
