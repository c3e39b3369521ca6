package advisor

import "errors"

// Error kinds recorded by the stages.
var (
	ErrValidation = errors.New("validation error")
	ErrNetwork    = errors.New("network error")
	ErrParse      = errors.New("parse error")
	ErrGeneration = errors.New("generation failure")
	// ErrInternal marks a stage that panicked.
	ErrInternal = errors.New("internal error")
)

// StageError is what a stage leaves in Record.Err. Its message is what the
// user sees.
type StageError struct {
	Stage   string
	Kind    error
	Message string
	Err     error
}

func (e *StageError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *StageError) Is(target error) bool {
	return e.Kind != nil && target == e.Kind
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func newStageError(stage string, kind error, message string, cause error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Message: message, Err: cause}
}
