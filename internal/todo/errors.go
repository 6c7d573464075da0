package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDate is returned for dates that are not YYYY-MM-DD calendar dates.
	ErrInvalidDate = errors.New("invalid date")
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
	// ErrMalformedRecord is returned when a stored record cannot be decoded.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrIO marks filesystem failures while preparing or writing storage.
	ErrIO = errors.New("storage i/o failure")
	// ErrEmptyTitle is returned when a task would be created without a title.
	ErrEmptyTitle = errors.New("title must not be empty")
	// ErrInvalidPriority is returned for priorities outside alto, médio, baixo.
	ErrInvalidPriority = errors.New("invalid priority")
)

// MalformedRecordError describes why a record failed to decode.
type MalformedRecordError struct {
	Field string // record key at fault
	Err   error  // underlying error
}

func (e *MalformedRecordError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", ErrMalformedRecord, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %s", ErrMalformedRecord, e.Err)
}

// Unwrap returns the underlying error.
func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrMalformedRecord) match.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// IOError wraps a filesystem error with the operation and path involved.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrIO) match.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
