package dualmesh

import "github.com/golang/geo/r2"

// Diagram is the Voronoi diagram dual to a Delaunay triangulation.
// Vertices of the diagram are triangle circumcenters. Cells is indexed
// by site: Cells[i] is the region of Sites[i].
type Diagram struct {
	Sites []Point
	Cells []Cell
	Edges []Edge
}

// Cell is the Voronoi region of a single site. Verts holds the cell's
// circumcenter vertices ordered counterclockwise around the site by
// walking the site's incident triangles. Neighbors lists the adjacent
// sites in the same walk order. An unbounded cell is an open chain:
// its first and last vertices sit on hull-edge bisectors that continue
// as rays (see Edges).
type Cell struct {
	Site      int
	Verts     []Point
	Neighbors []int
	Unbounded bool
}

// Edge is a single edge of the diagram, the dual of one Delaunay
// edge. An interior Delaunay edge yields the segment A-B between the
// two adjacent circumcenters. A hull edge yields a ray from A along
// the unit direction Dir, pointing away from the triangulation.
type Edge struct {
	A, B Point
	Dir  Point
	Ray  bool
}

// NewDiagram derives the Voronoi diagram from a triangulation.
func NewDiagram(tr *Triangulation) *Diagram {
	adj := tr.edgeTriangles()

	d := &Diagram{
		Sites: tr.Points,
		Cells: make([]Cell, len(tr.Points)),
		Edges: make([]Edge, 0, len(adj)),
	}

	for _, k := range tr.Edges() {
		tris := adj[k]
		switch len(tris) {
		case 2:
			d.Edges = append(d.Edges, Edge{
				A: tr.Triangles[tris[0]].Circumcenter(),
				B: tr.Triangles[tris[1]].Circumcenter(),
			})
		case 1:
			t := tr.Triangles[tris[0]]
			d.Edges = append(d.Edges, Edge{
				A:   t.Circumcenter(),
				Dir: rayDirection(tr.Points, k, otherVertex(t, k[0], k[1])),
				Ray: true,
			})
		}
	}

	incident := make([][]int, len(tr.Points))
	for ti, t := range tr.Triangles {
		incident[t.A] = append(incident[t.A], ti)
		incident[t.B] = append(incident[t.B], ti)
		incident[t.C] = append(incident[t.C], ti)
	}
	for i := range tr.Points {
		d.Cells[i] = cellWalk(tr, incident[i], i)
	}
	return d
}

// rayDirection returns the unit normal of the hull edge (k[0], k[1])
// pointing away from the triangle's remaining vertex, which is the
// direction the dual ray leaves the triangulation in.
func rayDirection(points []Point, k [2]int, third int) Point {
	a, b := points[k[0]], points[k[1]]
	n := r2.Point(b.sub(a)).Ortho().Normalize()
	mid := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	if dot(Point(n), points[third].sub(mid)) > 0 {
		n = n.Mul(-1)
	}
	return Point(n)
}

// otherVertex returns the vertex of t that is neither a nor b.
func otherVertex(t Triangle, a, b int) int {
	for _, v := range [3]int{t.A, t.B, t.C} {
		if v != a && v != b {
			return v
		}
	}
	return -1
}

// cellWalk orders the circumcenters of the triangles incident to site
// i by stepping from triangle to triangle across shared spokes. A site
// on the hull produces an open chain walked end to end; an interior
// site produces a closed ring. The result is normalized to wind
// counterclockwise around the site.
func cellWalk(tr *Triangulation, incident []int, i int) Cell {
	cell := Cell{Site: i}
	if len(incident) == 0 {
		return cell
	}

	// spokes maps each neighboring vertex to the local incident
	// triangles sharing the edge (i, vertex). Hull spokes belong to
	// one triangle, interior spokes to two.
	spokes := make(map[int][]int, len(incident)+1)
	for li, ti := range incident {
		t := tr.Triangles[ti]
		for _, v := range [3]int{t.A, t.B, t.C} {
			if v != i {
				spokes[v] = append(spokes[v], li)
			}
		}
	}

	cur, enter := 0, -1
	for v, ts := range spokes {
		if len(ts) == 1 && (enter == -1 || v < enter) {
			cur, enter = ts[0], v
		}
	}
	cell.Unbounded = enter != -1
	if enter == -1 {
		// Closed ring: start at the first incident triangle, entering
		// via its smaller spoke.
		t := tr.Triangles[incident[0]]
		for _, v := range [3]int{t.A, t.B, t.C} {
			if v != i && (enter == -1 || v < enter) {
				enter = v
			}
		}
	} else {
		cell.Neighbors = append(cell.Neighbors, enter)
	}

	start := cur
	for {
		ti := incident[cur]
		t := tr.Triangles[ti]
		out := otherVertex(t, i, enter)
		cell.Verts = append(cell.Verts, t.Circumcenter())
		cell.Neighbors = append(cell.Neighbors, out)

		next := -1
		for _, lj := range spokes[out] {
			if lj != cur {
				next = lj
			}
		}
		if next == -1 || next == start {
			break
		}
		cur, enter = next, out
	}

	if windingAround(tr.Points[i], cell.Verts) < 0 {
		reversePoints(cell.Verts)
		reverseInts(cell.Neighbors)
	}
	return cell
}

// windingAround sums the cross products of consecutive vertex pairs
// seen from center. Positive means the chain winds counterclockwise.
func windingAround(center Point, verts []Point) float64 {
	var sum float64
	for i := 0; i+1 < len(verts); i++ {
		sum += cross(center, verts[i], verts[i+1])
	}
	return sum
}

func reversePoints(s []Point) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// ClipCell intersects the cell of site i with box and returns the
// polygon in counterclockwise order, empty when the cell misses the
// box. Bounded and unbounded cells are handled uniformly: the box is
// cut by the bisector half-plane of every neighboring site, which is
// exactly the cell's defining intersection.
func (d *Diagram) ClipCell(i int, box r2.Rect) []Point {
	poly := boxPolygon(box)
	site := d.Sites[i]
	for _, j := range d.Cells[i].Neighbors {
		other := d.Sites[j]
		mid := Point{X: (site.X + other.X) / 2, Y: (site.Y + other.Y) / 2}
		poly = clipHalfPlane(poly, mid, other.sub(site))
		if len(poly) == 0 {
			break
		}
	}
	return poly
}

func boxPolygon(box r2.Rect) []Point {
	vs := box.Vertices()
	return []Point{Point(vs[0]), Point(vs[1]), Point(vs[2]), Point(vs[3])}
}

// clipHalfPlane keeps the part of poly with dot(p-origin, nrm) <= 0,
// one Sutherland-Hodgman pass against a single plane.
func clipHalfPlane(poly []Point, origin, nrm Point) []Point {
	if len(poly) == 0 {
		return nil
	}
	side := func(p Point) float64 {
		return dot(p.sub(origin), nrm)
	}
	out := make([]Point, 0, len(poly)+1)
	for i := range poly {
		s, e := poly[i], poly[(i+1)%len(poly)]
		ss, es := side(s), side(e)
		if ss <= 0 {
			out = append(out, s)
		}
		if (ss < 0) != (es < 0) && ss != es {
			t := ss / (ss - es)
			out = append(out, Point{X: s.X + t*(e.X-s.X), Y: s.Y + t*(e.Y-s.Y)})
		}
	}
	return out
}

// ClipEdge clips a diagram edge to box, extending rays well past the
// box first. ok reports whether any part of the edge crosses the box.
func ClipEdge(e Edge, box r2.Rect) (a, b Point, ok bool) {
	pa, pb := e.A, e.B
	if e.Ray {
		reach := 4 * (box.Size().X + box.Size().Y + pa.distance(Point(box.Center())))
		pb = Point{X: pa.X + e.Dir.X*reach, Y: pa.Y + e.Dir.Y*reach}
	}
	return clipSegment(pa, pb, box)
}

// clipSegment clips the segment a-b to box with the Liang-Barsky
// parametric test.
func clipSegment(a, b Point, box r2.Rect) (Point, Point, bool) {
	t0, t1 := 0.0, 1.0
	dx, dy := b.X-a.X, b.Y-a.Y

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	if clip(-dx, a.X-box.X.Lo) && clip(dx, box.X.Hi-a.X) &&
		clip(-dy, a.Y-box.Y.Lo) && clip(dy, box.Y.Hi-a.Y) {
		return Point{X: a.X + t0*dx, Y: a.Y + t0*dy},
			Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
	}
	return Point{}, Point{}, false
}

// Bounded returns how many cells of the diagram are bounded.
func (d *Diagram) Bounded() int {
	n := 0
	for _, c := range d.Cells {
		if !c.Unbounded && len(c.Verts) > 0 {
			n++
		}
	}
	return n
}
