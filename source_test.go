package dualmesh

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"go.viam.com/test"
)

func drain(src Source) []Point {
	var out []Point
	for {
		p, ok := src.Next()
		if !ok {
			return out
		}
		out = append(out, p)
	}
}

func TestSliceSource(t *testing.T) {
	pts := []Point{{X: 0.1, Y: 0.2}, {X: 0.3, Y: 0.4}, {X: 0.5, Y: 0.6}}
	src := NewSliceSource(pts...)
	test.That(t, drain(src), test.ShouldResemble, pts)

	_, ok := src.Next()
	test.That(t, ok, test.ShouldBeFalse)
}

func TestRandomSource(t *testing.T) {
	world := UnitSquare()

	t.Run("bounds and count", func(t *testing.T) {
		pts := drain(NewRandomSource(50, world, 7))
		test.That(t, len(pts), test.ShouldEqual, 50)
		seen := map[Point]struct{}{}
		for _, p := range pts {
			test.That(t, world.ContainsPoint(p.R2()), test.ShouldBeTrue)
			seen[p] = struct{}{}
		}
		test.That(t, len(seen), test.ShouldEqual, 50)
	})

	t.Run("deterministic", func(t *testing.T) {
		first := drain(NewRandomSource(25, world, 7))
		second := drain(NewRandomSource(25, world, 7))
		test.That(t, first, test.ShouldResemble, second)
	})

	t.Run("exhaustion", func(t *testing.T) {
		src := NewRandomSource(3, world, 7)
		test.That(t, len(drain(src)), test.ShouldEqual, 3)
		_, ok := src.Next()
		test.That(t, ok, test.ShouldBeFalse)
	})
}

// halfToneImage renders a PNG that is black on the left, white on the
// right, giving a single strong vertical edge down the middle.
func halfToneImage(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{A: 0xff}
			if x >= w/2 {
				c = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	test.That(t, png.Encode(&buf, img), test.ShouldBeNil)
	return &buf
}

func TestImageSource(t *testing.T) {
	world := UnitSquare()

	t.Run("edge points", func(t *testing.T) {
		src, err := NewImageSource(halfToneImage(t, 64, 64), world, ImageOptions{})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, src.Len(), test.ShouldBeGreaterThan, 0)

		pts := drain(src)
		test.That(t, len(pts), test.ShouldEqual, src.Len())
		for _, p := range pts {
			test.That(t, world.ContainsPoint(p.R2()), test.ShouldBeTrue)
			// The only edge runs down the middle of the image.
			test.That(t, p.X, test.ShouldBeBetween, 0.3, 0.7)
		}
	})

	t.Run("max points", func(t *testing.T) {
		src, err := NewImageSource(halfToneImage(t, 64, 64), world, ImageOptions{MaxPoints: 10})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, src.Len(), test.ShouldEqual, 10)
	})

	t.Run("negative max points", func(t *testing.T) {
		src, err := NewImageSource(halfToneImage(t, 64, 64), world, ImageOptions{MaxPoints: -5})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, src.Len(), test.ShouldBeGreaterThan, 0)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, err := NewImageSource(halfToneImage(t, 64, 64), world, ImageOptions{Seed: 3})
		test.That(t, err, test.ShouldBeNil)
		second, err := NewImageSource(halfToneImage(t, 64, 64), world, ImageOptions{Seed: 3})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, drain(first), test.ShouldResemble, drain(second))
	})

	t.Run("flat image", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
		for i := range img.Pix {
			img.Pix[i] = 0x80
		}
		var buf bytes.Buffer
		test.That(t, png.Encode(&buf, img), test.ShouldBeNil)

		_, err := NewImageSource(&buf, world, ImageOptions{})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "no edge points")
	})

	t.Run("bad data", func(t *testing.T) {
		_, err := NewImageSource(strings.NewReader("not an image"), world, ImageOptions{})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "unable to decode image")
	})
}
