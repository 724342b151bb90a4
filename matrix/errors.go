package matrix

import "errors"

// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
var ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
var ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

// ErrNaNInf signals a NaN or ±Inf value where a finite value is required.
var ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
