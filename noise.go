package dualmesh

import (
	"image"
	"image/color"
)

// prng is a Park-Miller linear congruential generator. Grain comes
// from a fixed sequence, so re-rendering a frame reproduces the exact
// same pixels.
type prng struct {
	a, m, state int
	div         float64
}

func newPrng() *prng {
	return &prng{a: 16807, m: 0x7fffffff, state: 1, div: 1.0 / 0x7fffffff}
}

func (p *prng) next() float64 {
	lo := p.a * (p.state & 0xffff)
	hi := p.a * (p.state >> 16)
	lo += (hi & 0x7fff) << 16
	if lo > p.m {
		lo &= p.m
		lo++
	}
	lo += hi >> 15
	if lo > p.m {
		lo &= p.m
		lo++
	}
	p.state = lo
	return float64(lo) * p.div
}

// Noise overlays film style grain on the image, amount controlling the
// strength.
func Noise(amount int, img image.Image, w, h int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	rng := newPrng()
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			noise := (rng.next() - 0.1) * float64(amount)
			r, g, b, a := img.At(x, y).RGBA()
			out.Set(x, y, color.NRGBA{
				R: clampChannel(float64(r>>8) + noise),
				G: clampChannel(float64(g>>8) + noise),
				B: clampChannel(float64(b>>8) + noise),
				A: uint8(a >> 8),
			})
		}
	}
	return out
}

func clampChannel(v float64) uint8 {
	return uint8(Max(Min(int(v), 255), 0))
}
