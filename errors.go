package mdpdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request or option failed validation.
	ErrValidation = errors.New("validation error")

	// ErrEmptyDocument indicates the document is blank after trimming.
	ErrEmptyDocument = errors.New("document is empty")
)

// Error is the normalised failure of a call to the PDF service. Transport
// failures carry StatusCode 0. Message is meant for humans: it is the
// server's detail when one was sent, otherwise a generic status message.
type Error struct {
	StatusCode int
	Message    string
	Err        error // underlying transport error, if any
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusError builds the generic message used when a non-2xx response has
// no usable detail, e.g. "Failed to generate PDF: 502".
func StatusError(op string, status int) *Error {
	return &Error{StatusCode: status, Message: fmt.Sprintf("Failed to %s: %d", op, status)}
}
