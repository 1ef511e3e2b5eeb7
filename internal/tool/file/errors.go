package file

import (
	"errors"
	"fmt"
)

// -- Error Types --

// FileNotFoundError is returned when the target of an edit does not exist.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}
func (e *FileNotFoundError) Is(target error) bool { return target == ErrFileNotFound }

// OutOfRangeError is returned when a line number argument is outside [Min, Max].
type OutOfRangeError struct {
	Arg   string
	Value int
	Min   int
	Max   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %d is out of range: must be between %d and %d", e.Arg, e.Value, e.Min, e.Max)
}
func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// StatError is returned when a file cannot be inspected for a reason other than absence.
type StatError struct {
	Path  string
	Cause error
}

func (e *StatError) Error() string {
	return fmt.Sprintf("failed to stat %s: %v", e.Path, e.Cause)
}
func (e *StatError) Unwrap() error { return e.Cause }

// WriteError is returned when the edited content cannot be written back.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}
func (e *WriteError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrFileNotFound = errors.New("file not found")
	ErrOutOfRange   = errors.New("line number out of range")
	ErrIsDirectory  = errors.New("path is a directory")
	ErrBinaryFile   = errors.New("file is binary")
	ErrFileTooLarge = errors.New("file too large")
	ErrPathRequired = errors.New("path is required")
	ErrLineRequired = errors.New("line number is required")
)
