package dualmesh

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// FrameSink receives rendered animation frames in order. Close must be
// called once all frames are written; some sinks only produce their
// output then.
type FrameSink interface {
	WriteFrame(image.Image) error
	Close() error
}

// PNGDirSink writes frames as numbered PNG files into a directory.
type PNGDirSink struct {
	dir string
	n   int
}

// NewPNGDirSink returns a sink writing frame_0001.png, frame_0002.png
// and so on into dir, creating the directory if needed.
func NewPNGDirSink(dir string) (*PNGDirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "unable to create frame directory %q", dir)
	}
	return &PNGDirSink{dir: dir}, nil
}

func (s *PNGDirSink) WriteFrame(img image.Image) error {
	s.n++
	name := filepath.Join(s.dir, fmt.Sprintf("frame_%04d.png", s.n))
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrapf(err, "unable to create %q", name)
	}
	if err := png.Encode(f, img); err != nil {
		return multierr.Combine(errors.Wrapf(err, "unable to encode %q", name), f.Close())
	}
	return f.Close()
}

func (s *PNGDirSink) Close() error {
	return nil
}

// Frames returns how many frames the sink has written.
func (s *PNGDirSink) Frames() int {
	return s.n
}

// GIFSink collects frames in memory and encodes them as a looping
// animated GIF on Close. Memory use grows with the frame count, so
// very long animations are better written as PNG frames.
type GIFSink struct {
	path  string
	delay int
	g     gif.GIF
}

// NewGIFSink returns a sink writing an animated GIF to path with the
// given delay between frames.
func NewGIFSink(path string, delay time.Duration) *GIFSink {
	d := int(delay / (10 * time.Millisecond))
	if d < 2 {
		d = 2
	}
	return &GIFSink{path: path, delay: d}
}

func (s *GIFSink) WriteFrame(img image.Image) error {
	b := img.Bounds()
	pal := image.NewPaletted(b, palette.Plan9)
	draw.Draw(pal, b, img, b.Min, draw.Src)
	s.g.Image = append(s.g.Image, pal)
	s.g.Delay = append(s.g.Delay, s.delay)
	return nil
}

func (s *GIFSink) Close() error {
	if len(s.g.Image) == 0 {
		return errors.Errorf("no frames written to %q", s.path)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %q", s.path)
	}
	if err := gif.EncodeAll(f, &s.g); err != nil {
		return multierr.Combine(errors.Wrapf(err, "unable to encode %q", s.path), f.Close())
	}
	return f.Close()
}

// Frames returns how many frames the sink holds.
func (s *GIFSink) Frames() int {
	return len(s.g.Image)
}

// MultiSink fans every frame out to all of its sinks.
type MultiSink []FrameSink

func (ms MultiSink) WriteFrame(img image.Image) error {
	var err error
	for _, s := range ms {
		err = multierr.Combine(err, s.WriteFrame(img))
	}
	return err
}

func (ms MultiSink) Close() error {
	var err error
	for _, s := range ms {
		err = multierr.Combine(err, s.Close())
	}
	return err
}
