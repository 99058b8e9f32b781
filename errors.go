package dualmesh

import "fmt"

// DegenerateInputError is returned when a point set cannot support a
// triangulation: fewer than three points, all points collinear, or a
// coordinate that is not finite.
type DegenerateInputError struct {
	Reason string
}

func (e *DegenerateInputError) Error() string {
	return "degenerate input: " + e.Reason
}

// NewDegenerateInputError returns a DegenerateInputError with the
// given reason.
func NewDegenerateInputError(format string, args ...interface{}) *DegenerateInputError {
	return &DegenerateInputError{Reason: fmt.Sprintf(format, args...)}
}

// DuplicatePointError is returned when a point coincides with a point
// already in the set. Index is the position of the existing point.
type DuplicatePointError struct {
	Point Point
	Index int
}

func (e *DuplicatePointError) Error() string {
	return fmt.Sprintf("duplicate point (%g, %g) already present at index %d", e.Point.X, e.Point.Y, e.Index)
}

// NewDuplicatePointError returns a DuplicatePointError for the point p
// clashing with the existing point at index i.
func NewDuplicatePointError(p Point, i int) *DuplicatePointError {
	return &DuplicatePointError{Point: p, Index: i}
}
