package dualmesh

// Triangulation is the Delaunay triangulation of a point set. Points
// holds the sites in insertion order and Triangles indexes into it.
// Every circumcircle is empty: no triangle's circumcircle strictly
// contains a site that is not one of its own corners.
type Triangulation struct {
	Points    []Point
	Triangles []Triangle
}

// edge is an undirected edge between two point indices.
type edge struct {
	a, b int
}

func (e edge) eq(o edge) bool {
	return e.a == o.a && e.b == o.b || e.a == o.b && e.b == o.a
}

// key returns the edge with its indices in ascending order, usable as
// a map key.
func (e edge) key() [2]int {
	if e.a > e.b {
		return [2]int{e.b, e.a}
	}
	return [2]int{e.a, e.b}
}

// Triangulate computes the Delaunay triangulation of points using the
// Bowyer-Watson algorithm. The whole set is triangulated from scratch:
// a seed triangle over the first non-collinear triple starts the mesh,
// a sentinel vertex caps the open plane beyond each hull edge, and the
// remaining points are inserted one by one. Triangles touching the
// sentinel are dropped at the end.
func Triangulate(points []Point) (*Triangulation, error) {
	if err := validate(points); err != nil {
		return nil, err
	}

	n := len(points)
	pts := make([]Point, n)
	copy(pts, points)

	// The sentinel index carries no coordinates. A triangle holding it
	// in C stands for the open plane beyond its directed hull edge
	// A->B, with the triangulated region on the edge's left.
	outer := n
	third := 2
	for collinear(pts[0], pts[1], pts[third]) {
		third++
	}
	seed, ok := newTriangle(pts, 0, 1, third)
	if !ok {
		return nil, NewDegenerateInputError("seed triangle collapsed")
	}
	work := []Triangle{
		seed,
		{A: seed.A, B: seed.B, C: outer},
		{A: seed.B, B: seed.C, C: outer},
		{A: seed.C, B: seed.A, C: outer},
	}
	for i := 2; i < n; i++ {
		if i == third {
			continue
		}
		work = insertVertex(pts, work, i, outer)
	}

	tris := make([]Triangle, 0, len(work))
	for _, t := range work {
		if t.C != outer {
			tris = append(tris, t)
		}
	}
	return &Triangulation{Points: pts, Triangles: tris}, nil
}

// insertVertex retires the triangles invalidated by vertex i and fans
// the cavity boundary back out to i. Boundary edges holding the
// sentinel fan into new sentinel triangles, keeping the hull capped.
func insertVertex(points []Point, tris []Triangle, i, outer int) []Triangle {
	p := points[i]

	kept := make([]Triangle, 0, len(tris)+2)
	cavity := make([]edge, 0, 12)
	for _, t := range tris {
		if inCavity(points, t, p, outer) {
			cavity = append(cavity, edge{t.A, t.B}, edge{t.B, t.C}, edge{t.C, t.A})
		} else {
			kept = append(kept, t)
		}
	}

	// An edge shared by two cavity triangles is interior to the cavity
	// and cancels against its twin. The survivors form the boundary
	// polygon.
	polygon := make([]edge, 0, len(cavity))
edgesLoop:
	for _, e := range cavity {
		for j, o := range polygon {
			if e.eq(o) {
				polygon = append(polygon[:j], polygon[j+1:]...)
				continue edgesLoop
			}
		}
		polygon = append(polygon, e)
	}

	for _, e := range polygon {
		switch {
		case e.a == outer:
			kept = append(kept, Triangle{A: e.b, B: i, C: outer})
		case e.b == outer:
			kept = append(kept, Triangle{A: i, B: e.a, C: outer})
		default:
			if t, ok := newTriangle(points, e.a, e.b, i); ok {
				kept = append(kept, t)
			}
		}
	}
	return kept
}

// inCavity reports whether inserting p must retire t. A finite
// triangle is retired when p falls inside its circumcircle, no matter
// how large the circle of a near-flat triangle grows. A sentinel
// triangle is retired when p lies strictly beyond its hull edge, or
// splits the open edge itself.
func inCavity(points []Point, t Triangle, p Point, outer int) bool {
	if t.C != outer {
		return t.InCircumcircle(p)
	}
	u, v := points[t.A], points[t.B]
	if !collinear(u, v, p) {
		return cross(u, v, p) < 0
	}
	along := dot(p.sub(u), v.sub(u))
	return along > 0 && along < u.squaredDistance(v)
}

// validate rejects point sets that cannot be triangulated: too few
// points, non-finite or duplicate coordinates, or all points on one
// line.
func validate(points []Point) error {
	if len(points) < 3 {
		return NewDegenerateInputError("need at least 3 points, got %d", len(points))
	}
	for i, p := range points {
		if !p.finite() {
			return NewDegenerateInputError("point %d (%g, %g) is not finite", i, p.X, p.Y)
		}
	}
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[i].approxEq(points[j]) {
				return NewDuplicatePointError(points[j], i)
			}
		}
	}
	a, b := points[0], points[1]
	for _, c := range points[2:] {
		if !collinear(a, b, c) {
			return nil
		}
	}
	return NewDegenerateInputError("all %d points are collinear", len(points))
}

// Edges returns every undirected edge of the triangulation exactly
// once, as pairs of point indices with the smaller index first.
func (tr *Triangulation) Edges() [][2]int {
	seen := make(map[[2]int]struct{}, 3*len(tr.Triangles)/2)
	out := make([][2]int, 0, 3*len(tr.Triangles)/2)
	for _, t := range tr.Triangles {
		for _, e := range [3]edge{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			k := e.key()
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// edgeTriangles maps each undirected edge to the triangles sharing it,
// by index into Triangles. Interior edges map to two triangles, hull
// edges to one.
func (tr *Triangulation) edgeTriangles() map[[2]int][]int {
	m := make(map[[2]int][]int, 3*len(tr.Triangles)/2)
	for i, t := range tr.Triangles {
		for _, e := range [3]edge{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			k := e.key()
			m[k] = append(m[k], i)
		}
	}
	return m
}

// ConvexHull returns the hull of the triangulated points in
// counterclockwise order. The hull is read off the triangulation
// boundary: edges belonging to exactly one triangle, chained in the
// winding direction of their triangle.
func (tr *Triangulation) ConvexHull() []Point {
	counts := tr.edgeTriangles()

	// Directed boundary edges wind counterclockwise around the hull
	// because triangles wind counterclockwise.
	next := make(map[int]int)
	start := -1
	for _, t := range tr.Triangles {
		for _, e := range [3]edge{{t.A, t.B}, {t.B, t.C}, {t.C, t.A}} {
			if len(counts[e.key()]) != 1 {
				continue
			}
			next[e.a] = e.b
			if start == -1 || e.a < start {
				start = e.a
			}
		}
	}
	if start == -1 {
		return nil
	}

	hull := make([]Point, 0, len(next))
	for i, steps := start, 0; steps < len(next); steps++ {
		hull = append(hull, tr.Points[i])
		i = next[i]
		if i == start {
			break
		}
	}
	return hull
}
