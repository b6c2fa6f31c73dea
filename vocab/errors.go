package vocab

import "errors"

// Failure classes shared by the counting pipeline. Callers match them with errors.Is.
var (
	// ErrResourceExhausted is returned when the table cannot index another entry.
	ErrResourceExhausted = errors.New("vocab: resource exhausted")
	// ErrIOUnavailable wraps failures to open, read or write the corpus and vocabulary streams.
	ErrIOUnavailable = errors.New("vocab: io unavailable")
)
