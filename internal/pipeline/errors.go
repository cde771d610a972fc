package pipeline

import "errors"

// Fatal error categories. A failed stage's error matches exactly one of
// them with errors.Is, and still matches its underlying cause.
var (
	ErrMissingInput = errors.New("input audio not found")
	ErrTranscode    = errors.New("audio conversion failed")
	ErrModelLoad    = errors.New("failed to load whisper model")
	ErrInference    = errors.New("transcription failed")
)

// stageError ties an underlying failure to its category.
type stageError struct {
	category error
	err      error
}

func (e *stageError) Error() string {
	return e.category.Error() + ": " + e.err.Error()
}

func (e *stageError) Unwrap() []error {
	return []error{e.category, e.err}
}

func fail(category, err error) error {
	return &stageError{category: category, err: err}
}
