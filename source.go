package dualmesh

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// Source yields the points an animation feeds into a mesh, one per
// frame. Next reports false once the source is exhausted.
type Source interface {
	Next() (Point, bool)
}

// SliceSource replays a fixed sequence of points.
type SliceSource struct {
	points []Point
	next   int
}

// NewSliceSource returns a source replaying the given points in order.
func NewSliceSource(points ...Point) *SliceSource {
	return &SliceSource{points: points}
}

func (s *SliceSource) Next() (Point, bool) {
	if s.next >= len(s.points) {
		return Point{}, false
	}
	p := s.points[s.next]
	s.next++
	return p, true
}

// RandomSource yields uniformly distributed points inside a rectangle.
// The generator is seeded so the same seed replays the same sequence.
type RandomSource struct {
	rng  *rand.Rand
	rect r2.Rect
	left int
}

// NewRandomSource returns a source of n random points inside rect.
func NewRandomSource(n int, rect r2.Rect, seed int64) *RandomSource {
	return &RandomSource{
		rng:  rand.New(rand.NewSource(seed)),
		rect: rect,
		left: n,
	}
}

func (s *RandomSource) Next() (Point, bool) {
	if s.left <= 0 {
		return Point{}, false
	}
	s.left--
	return Point{
		X: s.rect.X.Lo + s.rng.Float64()*s.rect.X.Length(),
		Y: s.rect.Y.Lo + s.rng.Float64()*s.rect.Y.Length(),
	}, true
}
