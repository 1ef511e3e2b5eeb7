package path

import (
	"errors"
	"fmt"
)

// -- Error Types --

// BaseDirError is returned when the base directory is invalid.
type BaseDirError struct {
	Root  string
	Cause error
}

func (e *BaseDirError) Error() string {
	return fmt.Sprintf("invalid base directory %s: %v", e.Root, e.Cause)
}
func (e *BaseDirError) Unwrap() error { return e.Cause }

// SymlinkError is returned when symlinks under the base directory cannot be evaluated.
type SymlinkError struct {
	Path  string
	Cause error
}

func (e *SymlinkError) Error() string {
	return fmt.Sprintf("failed to evaluate symlinks in %s: %v", e.Path, e.Cause)
}
func (e *SymlinkError) Unwrap() error { return e.Cause }

// -- Sentinels --

var (
	ErrAccessDenied  = errors.New("access denied: path is outside the base directory")
	ErrBaseDirNotSet = errors.New("base directory not set")
	ErrNotADirectory = errors.New("not a directory")
)
