package filter

import (
	"errors"
)

// Evaluation errors are wrapped around one of these; use errors.Is to classify them. There is
// no allocation failure error: the Go runtime aborts instead.
var (
	ErrInvalidTree = errors.New("invalid filter tree")
	ErrCast        = errors.New("cannot cast value")
	ErrResolution  = errors.New("cannot resolve column")
	ErrCompare     = errors.New("cannot compare values")
)
