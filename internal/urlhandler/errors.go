package urlhandler

import (
	"errors"
	"fmt"
)

// Error represents a general error in the urlhandler package.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WrapError wraps an existing error with a message.
func WrapError(err error, message string) error {
	return &Error{Message: message, Err: err}
}

var (
	// ErrEmptyURL is returned for blank input
	ErrEmptyURL = errors.New("URL is empty or only whitespace")
	// ErrNoHost is returned when a URL has no authority to probe
	ErrNoHost = errors.New("URL lacks a valid hostname")
	// ErrNoFilename is returned when a URL has no trailing path segment to name the download
	ErrNoFilename = errors.New("URL has no file name segment")
)
