package dualmesh

import (
	"math"

	"github.com/golang/geo/r2"
)

// Point is a single point in a 2D euclidean space.
type Point r2.Point

// epsilon is the tolerance used for coordinate comparisons. Two points
// closer than this on both axes are treated as the same point.
const epsilon = 1e-9

// R2 converts the point back to its r2 representation.
func (p Point) R2() r2.Point {
	return r2.Point(p)
}

func (p Point) sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) squaredDistance(q Point) float64 {
	dx, dy := p.X-q.X, p.Y-q.Y
	return dx*dx + dy*dy
}

func (p Point) distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

func (p Point) approxEq(q Point) bool {
	return math.Abs(p.X-q.X) < epsilon && math.Abs(p.Y-q.Y) < epsilon
}

func (p Point) finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// dot returns the dot product of p and q taken as vectors.
func dot(p, q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// cross returns the z component of the cross product (b-a)x(c-a).
// It is positive when a, b, c wind counterclockwise, negative when
// clockwise and zero when the three points are collinear.
func cross(a, b, c Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// collinear reports whether the three points lie on a common line,
// within a tolerance relative to the span of the triple.
func collinear(a, b, c Point) bool {
	scale := a.distance(b) * a.distance(c)
	if scale < 1 {
		scale = 1
	}
	return math.Abs(cross(a, b, c)) <= epsilon*scale
}
