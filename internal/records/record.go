package records

import (
	"errors"
	"fmt"
)

// Record is the persistence shape of one block. Field names and JSON keys are
// fixed; Content is the block's full payload and is versioned only by Type.
type Record struct {
	Type     string         `json:"type"`
	Position int            `json:"position"`
	Title    *string        `json:"title"`
	Content  map[string]any `json:"content"`
	Style    map[string]any `json:"style"`
	Schedule map[string]any `json:"schedule"`
}

var (
	// ErrMalformedBlock marks a block that must never reach serialization.
	ErrMalformedBlock = errors.New("records: malformed block")
	// ErrInvalidRecord marks a stored record that cannot be rehydrated.
	ErrInvalidRecord = errors.New("records: invalid record")
)

// StructuralError reports the list position of a malformed block.
type StructuralError struct {
	Position int
	Reason   string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("records: block at position %d: %s", e.Position, e.Reason)
}

func (e *StructuralError) Unwrap() error {
	return ErrMalformedBlock
}

// RecordError reports a stored record that failed its shape check or could not
// be parsed back into a block.
type RecordError struct {
	Position int
	Cause    error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("records: record at position %d: %v", e.Position, e.Cause)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrInvalidRecord, e.Cause}
}
