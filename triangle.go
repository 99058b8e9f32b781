package dualmesh

import "math"

// Triangle is a single triangle of a triangulation. A, B and C index
// into the owning triangulation's point slice and always wind
// counterclockwise. The circumcircle is computed once at construction
// and reused by every incircle query.
type Triangle struct {
	A, B, C int

	center Point
	rsq    float64
}

// newTriangle builds the counterclockwise triangle over the point
// indices a, b, c. It reports false when the three points are
// collinear and no circumcircle exists.
func newTriangle(points []Point, a, b, c int) (Triangle, bool) {
	pa, pb, pc := points[a], points[b], points[c]
	if cross(pa, pb, pc) < 0 {
		b, c = c, b
		pb, pc = pc, pb
	}
	if collinear(pa, pb, pc) {
		return Triangle{}, false
	}

	// Circumcenter relative to the first vertex. Working in relative
	// coordinates keeps the subtractions small and the result stable
	// even when the absolute coordinates are large.
	bx, by := pb.X-pa.X, pb.Y-pa.Y
	cx, cy := pc.X-pa.X, pc.Y-pa.Y
	d := 2 * (bx*cy - by*cx)
	bl := bx*bx + by*by
	cl := cx*cx + cy*cy
	ux := (cy*bl - by*cl) / d
	uy := (bx*cl - cx*bl) / d

	return Triangle{
		A:      a,
		B:      b,
		C:      c,
		center: Point{X: pa.X + ux, Y: pa.Y + uy},
		rsq:    ux*ux + uy*uy,
	}, true
}

// Circumcenter returns the center of the triangle's circumcircle,
// which is the Voronoi vertex dual to this triangle.
func (t Triangle) Circumcenter() Point {
	return t.center
}

// CircumradiusSquared returns the squared circumcircle radius.
func (t Triangle) CircumradiusSquared() float64 {
	return t.rsq
}

// InCircumcircle reports whether p lies inside the triangle's
// circumcircle. A point exactly on the circle counts as inside, so a
// co-circular insertion always re-triangulates the triangles it ties
// with instead of leaving a stale triangle behind.
func (t Triangle) InCircumcircle(p Point) bool {
	tol := epsilon * math.Max(t.rsq, 1)
	return t.center.squaredDistance(p) <= t.rsq+tol
}

// Vertices resolves the triangle's corners against the owning point
// slice, in counterclockwise order.
func (t Triangle) Vertices(points []Point) [3]Point {
	return [3]Point{points[t.A], points[t.B], points[t.C]}
}

// Centroid returns the triangle's center of mass.
func (t Triangle) Centroid(points []Point) Point {
	pa, pb, pc := points[t.A], points[t.B], points[t.C]
	return Point{X: (pa.X + pb.X + pc.X) / 3, Y: (pa.Y + pb.Y + pc.Y) / 3}
}

// area returns the triangle's area. The result is non-negative since
// triangles are normalized to counterclockwise winding.
func (t Triangle) area(points []Point) float64 {
	return cross(points[t.A], points[t.B], points[t.C]) / 2
}

// hasVertex reports whether i is one of the triangle's corners.
func (t Triangle) hasVertex(i int) bool {
	return t.A == i || t.B == i || t.C == i
}
