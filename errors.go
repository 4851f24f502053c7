package inquire

import "errors"

// Common errors
var (
	// ErrEOF is returned when EOF is encountered before an answer was produced
	ErrEOF = errors.New("EOF")
	// ErrInterrupted is returned when the user presses Ctrl+C
	ErrInterrupted = errors.New("interrupted")
	// ErrCanceled is returned when the user aborts the prompt (Escape)
	ErrCanceled = errors.New("canceled")
	// ErrInvalidConfiguration is returned when a prompt is constructed with an
	// inconsistent configuration, e.g. a starting date outside declared bounds.
	// The specific condition is wrapped around this sentinel.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
