package dualmesh

import (
	"image"
	"image/color"
	"io"
	"math"
	"math/rand"

	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// pointRate caps how much of the edge candidate pool is sampled.
// Lowering it produces sparser meshes.
const pointRate = 0.875

// ImageOptions control how edge points are extracted from an image.
// Zero values select the defaults.
type ImageOptions struct {
	// BlurRadius is the box blur half width applied before edge
	// detection, smoothing out pixel level noise.
	BlurRadius int
	// SobelThreshold is the minimum gradient magnitude for a pixel to
	// register as an edge.
	SobelThreshold int
	// PointsThreshold is the minimum mean edge intensity of a pixel's
	// 3x3 neighborhood for the pixel to become a candidate point.
	PointsThreshold int
	// MaxPoints bounds how many candidates are sampled.
	MaxPoints int
	// Seed drives the candidate sampling.
	Seed int64
}

func (o ImageOptions) withDefaults() ImageOptions {
	if o.BlurRadius == 0 {
		o.BlurRadius = 4
	}
	if o.SobelThreshold == 0 {
		o.SobelThreshold = 10
	}
	if o.PointsThreshold == 0 {
		o.PointsThreshold = 20
	}
	if o.MaxPoints <= 0 {
		o.MaxPoints = 2500
	}
	return o
}

// ImageSource yields the edge points of an image, mapped into a world
// rectangle, in a seeded random order. Feeding them into a mesh grows
// a triangulation that traces the image's contours.
type ImageSource struct {
	points []Point
	next   int
}

// NewImageSource decodes an image from r and extracts its edge points.
// The pixel grid is mapped onto world with the vertical axis flipped,
// so the image reads upright in a y-up coordinate system.
func NewImageSource(r io.Reader, world r2.Rect, o ImageOptions) (*ImageSource, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode image")
	}
	o = o.withDefaults()

	gray := grayscale(toNRGBA(img))
	if o.BlurRadius > 0 {
		side := o.BlurRadius*2 + 1
		convolve(blurMatrix(o.BlurRadius), gray, float64(side*side))
	}
	sobelEdges(gray, float64(o.SobelThreshold))

	pts := edgePoints(gray, o.PointsThreshold, o.MaxPoints, o.Seed)
	if len(pts) == 0 {
		return nil, errors.New("no edge points detected in image")
	}

	w := float64(gray.Bounds().Dx())
	h := float64(gray.Bounds().Dy())
	for i, p := range pts {
		pts[i] = Point{
			X: world.X.Lo + (p.X+0.5)/w*world.X.Length(),
			Y: world.Y.Lo + (1-(p.Y+0.5)/h)*world.Y.Length(),
		}
	}
	return &ImageSource{points: pts}, nil
}

func (s *ImageSource) Next() (Point, bool) {
	if s.next >= len(s.points) {
		return Point{}, false
	}
	p := s.points[s.next]
	s.next++
	return p, true
}

// Len returns how many points the source started with.
func (s *ImageSource) Len() int {
	return len(s.points)
}

// edgePoints collects the pixels whose 3x3 neighborhood mean exceeds
// threshold and samples a capped, seeded random subset of them.
func edgePoints(img *image.NRGBA, threshold, maxPoints int, seed int64) []Point {
	r := rand.New(rand.NewSource(seed))
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	var points []Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sum, total := 0, 0
			for row := -1; row <= 1; row++ {
				sy := y + row
				if sy < 0 || sy >= height {
					continue
				}
				for col := -1; col <= 1; col++ {
					sx := x + col
					if sx < 0 || sx >= width {
						continue
					}
					sum += int(img.Pix[(sx+sy*width)<<2])
					total++
				}
			}
			if total > 0 {
				sum /= total
			}
			if sum > threshold {
				points = append(points, Point{X: float64(x), Y: float64(y)})
			}
		}
	}

	limit := Min(int(float64(len(points))*pointRate), maxPoints)
	out := make([]Point, 0, limit)
	for _, j := range r.Perm(len(points))[:limit] {
		out = append(out, points[j])
	}
	return out
}

var (
	sobelX = [3][3]float64{{-1, 0, 1}, {-2, 0, 2}, {-1, 0, 1}}
	sobelY = [3][3]float64{{-1, -2, -1}, {0, 0, 0}, {1, 2, 1}}
)

// sobelEdges replaces the image with its thresholded gradient
// magnitudes. The input is expected to be grayscale.
func sobelEdges(img *image.NRGBA, threshold float64) {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	src := make([]float64, width*height)
	for i := range src {
		src[i] = float64(img.Pix[i*4])
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var v uint8
			if x > 0 && y > 0 && x < width-1 && y < height-1 {
				var gx, gy float64
				for ky := 0; ky < 3; ky++ {
					for kx := 0; kx < 3; kx++ {
						px := src[(x+kx-1)+(y+ky-1)*width]
						gx += px * sobelX[ky][kx]
						gy += px * sobelY[ky][kx]
					}
				}
				if m := math.Hypot(gx, gy); m > threshold {
					v = uint8(Min(int(m), 255))
				}
			}
			i := (x + y*width) * 4
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, 0xff
		}
	}
}

// convolve runs the kernel matrix over the image's red channel and
// writes the clamped result back to all color channels. The matrix is
// scaled by 1/divisor first.
func convolve(matrix []float64, img *image.NRGBA, divisor float64) {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	side := int(math.Sqrt(float64(len(matrix))))
	dim := side / 2

	if divisor != 1 {
		for k := range matrix {
			matrix[k] /= divisor
		}
	}
	src := make([]float64, width*height)
	for i := range src {
		src[i] = float64(img.Pix[i*4])
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r float64
			for row := -dim; row <= dim; row++ {
				sy := y + row
				if sy < 0 || sy >= height {
					continue
				}
				for col := -dim; col <= dim; col++ {
					sx := x + col
					if sx < 0 || sx >= width {
						continue
					}
					r += src[sx+sy*width] * matrix[(col+dim)+(row+dim)*side]
				}
			}
			v := uint8(Max(Min(int(r), 255), 0))
			i := (x + y*width) * 4
			img.Pix[i], img.Pix[i+1], img.Pix[i+2] = v, v, v
		}
	}
}

// blurMatrix returns a flat box blur kernel of the given radius.
func blurMatrix(radius int) []float64 {
	side := radius*2 + 1
	matrix := make([]float64, side*side)
	for i := range matrix {
		matrix[i] = 1
	}
	return matrix
}

// grayscale converts the image to grayscale in place using the
// luminosity weights.
func grayscale(img *image.NRGBA) *image.NRGBA {
	for i := 0; i < len(img.Pix); i += 4 {
		r := float64(img.Pix[i])
		g := float64(img.Pix[i+1])
		b := float64(img.Pix[i+2])
		lum := uint8(0.299*r + 0.587*g + 0.114*b)
		img.Pix[i], img.Pix[i+1], img.Pix[i+2] = lum, lum, lum
	}
	return img
}

// toNRGBA converts any image to *image.NRGBA with its origin at
// (0, 0).
func toNRGBA(img image.Image) *image.NRGBA {
	if src, ok := img.(*image.NRGBA); ok && src.Bounds().Min == (image.Point{}) {
		return src
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			i := dst.PixOffset(x, y)
			dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = c.R, c.G, c.B, c.A
		}
	}
	return dst
}

// Min returns the smallest of the given values.
func Min[T constraints.Ordered](values ...T) T {
	acc := values[0]
	for _, v := range values {
		if v < acc {
			acc = v
		}
	}
	return acc
}

// Max returns the biggest of the given values.
func Max[T constraints.Ordered](values ...T) T {
	acc := values[0]
	for _, v := range values {
		if v > acc {
			acc = v
		}
	}
	return acc
}
