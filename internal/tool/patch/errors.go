package patch

import "errors"

var (
	ErrInvalidStrip = errors.New("strip level must not be negative")
	ErrEmptyPatch   = errors.New("patch text is empty")
)
