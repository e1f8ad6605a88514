package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks network failures and non-success HTTP statuses.
	ErrTransport = errors.New("transport error")
	// ErrFormat marks responses that do not have the expected shape.
	ErrFormat = errors.New("format error")
)

// TransportError is returned by a Source when a page could not be retrieved.
type TransportError struct {
	Offset     int
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("page at offset %d: unexpected status %d", e.Offset, e.StatusCode)
	}
	return fmt.Sprintf("page at offset %d: %v", e.Offset, e.Err)
}

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// FormatError is returned by a Source when a page body is malformed.
type FormatError struct {
	Offset int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("page at offset %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("page at offset %d: %s", e.Offset, e.Reason)
}

func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }
