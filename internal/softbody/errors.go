package softbody

import "errors"

// Construction errors. The grid refuses to exist in a malformed state; all
// validation happens once, up front.
var (
	// ErrBadSubdivisions indicates a non-positive row or column count.
	ErrBadSubdivisions = errors.New("softbody: rows and cols must be positive")

	// ErrBadExtent indicates a non-positive sheet width or height.
	ErrBadExtent = errors.New("softbody: sheet width and height must be positive")

	// ErrNegativeStiffness indicates a spring coefficient below zero.
	ErrNegativeStiffness = errors.New("softbody: spring coefficient must be >= 0")

	// ErrNegativeDamping indicates a damping coefficient below zero.
	ErrNegativeDamping = errors.New("softbody: damping coefficient must be >= 0")

	// ErrNegativeMass indicates a point-mass mass below zero.
	ErrNegativeMass = errors.New("softbody: mass must be >= 0")
)
