package directory

import "errors"

var ErrInvalidDepth = errors.New("max_depth must not be negative")
