package dualmesh

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/golang/geo/r2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultSize is the canvas width and height used when a Renderer
// leaves them unset.
const DefaultSize = 800

var labelFont *truetype.Font

func init() {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
	labelFont = f
}

// UnitSquare returns the [0,1]x[0,1] world rectangle.
func UnitSquare() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1})
}

// Renderer draws mesh snapshots onto a fixed canvas: sites in red, the
// Delaunay wireframe in blue and the Voronoi diagram in green over a
// white background. The world rectangle is mapped to the full canvas
// with the y axis pointing up.
type Renderer struct {
	// Width and Height are the canvas size in pixels.
	Width, Height int
	// World is the region of the plane shown on the canvas.
	World r2.Rect
	// LineWidth is the stroke width for both wireframes.
	LineWidth float64
	// PointRadius is the radius of the site markers.
	PointRadius float64
	// FillCells shades each Voronoi cell from a warm palette.
	FillCells bool
	// HideLabel drops the step label from the corner.
	HideLabel bool
	// Noise overlays grain on the finished frame when positive.
	Noise int
}

// Frame renders the mesh as one animation frame. step is the 1-based
// position of the frame in its animation and appears in the label.
func (r *Renderer) Frame(m *Mesh, step int) image.Image {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = DefaultSize
	}
	if h <= 0 {
		h = DefaultSize
	}
	world := r.World
	if world.Size().X <= 0 || world.Size().Y <= 0 {
		world = UnitSquare()
	}
	lineWidth := r.LineWidth
	if lineWidth <= 0 {
		lineWidth = 1
	}
	pointRadius := r.PointRadius
	if pointRadius <= 0 {
		pointRadius = 3
	}

	sx := float64(w) / world.Size().X
	sy := float64(h) / world.Size().Y
	toCanvas := func(p Point) (float64, float64) {
		return (p.X - world.X.Lo) * sx, float64(h) - (p.Y-world.Y.Lo)*sy
	}

	ctx := gg.NewContext(w, h)
	ctx.DrawRectangle(0, 0, float64(w), float64(h))
	ctx.SetRGBA(1, 1, 1, 1)
	ctx.Fill()

	tr := m.Triangulation()
	vd := m.Voronoi()

	if r.FillCells {
		palette := colorful.FastWarmPalette(len(vd.Cells))
		for i := range vd.Cells {
			poly := vd.ClipCell(i, world)
			if len(poly) < 3 {
				continue
			}
			ctx.Push()
			x, y := toCanvas(poly[0])
			ctx.MoveTo(x, y)
			for _, p := range poly[1:] {
				x, y = toCanvas(p)
				ctx.LineTo(x, y)
			}
			ctx.ClosePath()
			c := palette[i]
			ctx.SetRGBA(c.R, c.G, c.B, 0.3)
			ctx.Fill()
			ctx.Pop()
		}
	}

	ctx.Push()
	ctx.SetRGB(0, 0.5, 0)
	ctx.SetLineWidth(lineWidth)
	for _, e := range vd.Edges {
		a, b, ok := ClipEdge(e, world)
		if !ok {
			continue
		}
		ax, ay := toCanvas(a)
		bx, by := toCanvas(b)
		ctx.DrawLine(ax, ay, bx, by)
		ctx.Stroke()
	}
	ctx.Pop()

	ctx.Push()
	ctx.SetRGB(0, 0, 1)
	ctx.SetLineWidth(lineWidth)
	for _, e := range tr.Edges() {
		ax, ay := toCanvas(tr.Points[e[0]])
		bx, by := toCanvas(tr.Points[e[1]])
		ctx.DrawLine(ax, ay, bx, by)
		ctx.Stroke()
	}
	ctx.Pop()

	ctx.Push()
	ctx.SetRGB(1, 0, 0)
	for _, p := range tr.Points {
		x, y := toCanvas(p)
		ctx.DrawCircle(x, y, pointRadius)
		ctx.Fill()
	}
	ctx.Pop()

	if !r.HideLabel {
		size := float64(h) * 0.035
		ctx.SetFontFace(truetype.NewFace(labelFont, &truetype.Options{Size: size}))
		ctx.SetRGB(0, 0, 0)
		ctx.DrawString(fmt.Sprintf("Step %d: %d Points", step, m.Len()), size/6+4, size+4)
	}

	img := ctx.Image()
	if r.Noise > 0 {
		return Noise(r.Noise, img, w, h)
	}
	return img
}
