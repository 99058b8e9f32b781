package dualmesh

// Mesh is one immutable snapshot of the engine: the grown point set
// together with the Delaunay triangulation and Voronoi diagram over
// it. New and AddPoint hand back fresh snapshots and never touch an
// existing one, so callers can keep any number of steps alive at once.
type Mesh struct {
	points  []Point
	tri     *Triangulation
	voronoi *Diagram
}

// New builds the initial mesh over the seed points. The seed must
// contain at least three points, free of duplicates and not all
// collinear, otherwise a DegenerateInputError or DuplicatePointError
// is returned.
func New(seed []Point) (*Mesh, error) {
	tri, err := Triangulate(seed)
	if err != nil {
		return nil, err
	}
	return &Mesh{points: tri.Points, tri: tri, voronoi: NewDiagram(tri)}, nil
}

// AddPoint grows the mesh by a single point and returns the new
// snapshot, with triangulation and diagram recomputed over the
// extended set. A point coinciding with an existing one is refused
// with a DuplicatePointError and the receiver is returned unchanged
// alongside it.
func (m *Mesh) AddPoint(p Point) (*Mesh, error) {
	if !p.finite() {
		return m, NewDegenerateInputError("point (%g, %g) is not finite", p.X, p.Y)
	}
	for i, q := range m.points {
		if q.approxEq(p) {
			return m, NewDuplicatePointError(p, i)
		}
	}

	pts := make([]Point, len(m.points)+1)
	copy(pts, m.points)
	pts[len(m.points)] = p

	tri, err := Triangulate(pts)
	if err != nil {
		return m, err
	}
	return &Mesh{points: tri.Points, tri: tri, voronoi: NewDiagram(tri)}, nil
}

// Len returns the number of points in the mesh.
func (m *Mesh) Len() int {
	return len(m.points)
}

// Points returns a copy of the mesh's points in insertion order.
func (m *Mesh) Points() []Point {
	out := make([]Point, len(m.points))
	copy(out, m.points)
	return out
}

// Triangulation returns the mesh's Delaunay triangulation. The result
// is computed when the mesh is built and shared between calls; treat
// it as read-only.
func (m *Mesh) Triangulation() *Triangulation {
	return m.tri
}

// Voronoi returns the mesh's Voronoi diagram, computed when the mesh
// is built and shared between calls; treat it as read-only.
func (m *Mesh) Voronoi() *Diagram {
	return m.voronoi
}

// Hull returns the convex hull of the mesh's points in
// counterclockwise order.
func (m *Mesh) Hull() []Point {
	return m.tri.ConvexHull()
}

// DefaultSeedPoints returns the canonical three point seed used by the
// command line tool: a triangle sitting well inside the unit square.
func DefaultSeedPoints() []Point {
	return []Point{{X: 0.2, Y: 0.2}, {X: 0.8, Y: 0.2}, {X: 0.5, Y: 0.8}}
}
