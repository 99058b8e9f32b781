package dualmesh

import (
	"bytes"
	"image"
	"testing"

	"go.viam.com/test"
)

func testMesh(t *testing.T) *Mesh {
	t.Helper()
	m, err := New(DefaultSeedPoints())
	test.That(t, err, test.ShouldBeNil)
	for _, p := range []Point{{X: 0.4, Y: 0.5}, {X: 0.7, Y: 0.6}, {X: 0.3, Y: 0.3}} {
		m, err = m.AddPoint(p)
		test.That(t, err, test.ShouldBeNil)
	}
	return m
}

func rgbaPix(t *testing.T, img image.Image) []byte {
	t.Helper()
	rgba, ok := img.(*image.RGBA)
	test.That(t, ok, test.ShouldBeTrue)
	return rgba.Pix
}

func TestFrameBounds(t *testing.T) {
	m := testMesh(t)

	t.Run("defaults", func(t *testing.T) {
		r := &Renderer{}
		img := r.Frame(m, 1)
		test.That(t, img.Bounds().Dx(), test.ShouldEqual, DefaultSize)
		test.That(t, img.Bounds().Dy(), test.ShouldEqual, DefaultSize)
	})

	t.Run("custom size", func(t *testing.T) {
		r := &Renderer{Width: 200, Height: 150}
		img := r.Frame(m, 1)
		test.That(t, img.Bounds().Dx(), test.ShouldEqual, 200)
		test.That(t, img.Bounds().Dy(), test.ShouldEqual, 150)
	})
}

func TestFrameDeterministic(t *testing.T) {
	m := testMesh(t)
	r := &Renderer{Width: 120, Height: 120}
	first := rgbaPix(t, r.Frame(m, 1))
	second := rgbaPix(t, r.Frame(m, 1))
	test.That(t, bytes.Equal(first, second), test.ShouldBeTrue)
}

func TestFrameDrawsSites(t *testing.T) {
	m, err := New(DefaultSeedPoints())
	test.That(t, err, test.ShouldBeNil)

	r := &Renderer{Width: 100, Height: 100, HideLabel: true}
	img := r.Frame(m, 1)

	// Site (0.5, 0.8) lands at canvas (50, 20) with the y axis flipped.
	red, green, blue, _ := img.At(50, 20).RGBA()
	test.That(t, red>>8, test.ShouldBeGreaterThan, 200)
	test.That(t, green>>8, test.ShouldBeLessThan, 100)
	test.That(t, blue>>8, test.ShouldBeLessThan, 100)

	// A corner well away from the mesh stays background white.
	red, green, blue, _ = img.At(97, 97).RGBA()
	test.That(t, red>>8, test.ShouldEqual, 255)
	test.That(t, green>>8, test.ShouldEqual, 255)
	test.That(t, blue>>8, test.ShouldEqual, 255)
}

func TestFrameOptions(t *testing.T) {
	m := testMesh(t)
	base := rgbaPix(t, (&Renderer{Width: 120, Height: 120, HideLabel: true}).Frame(m, 1))

	t.Run("label", func(t *testing.T) {
		labeled := rgbaPix(t, (&Renderer{Width: 120, Height: 120}).Frame(m, 1))
		test.That(t, bytes.Equal(base, labeled), test.ShouldBeFalse)
	})

	t.Run("fill cells", func(t *testing.T) {
		filled := rgbaPix(t, (&Renderer{Width: 120, Height: 120, HideLabel: true, FillCells: true}).Frame(m, 1))
		test.That(t, bytes.Equal(base, filled), test.ShouldBeFalse)
	})

	t.Run("noise", func(t *testing.T) {
		img := (&Renderer{Width: 120, Height: 120, HideLabel: true, Noise: 40}).Frame(m, 1)
		noisy, ok := img.(*image.NRGBA)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, bytes.Equal(base, noisy.Pix), test.ShouldBeFalse)
	})
}
