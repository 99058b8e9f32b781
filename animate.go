package dualmesh

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// DefaultInterval is the animation clock's default step.
const DefaultInterval = 500 * time.Millisecond

// Player grows a mesh from a point source and renders every step as a
// frame: first the starting mesh, then one frame per inserted point.
type Player struct {
	// Renderer draws the frames; nil uses a default Renderer.
	Renderer *Renderer
	// Interval paces the animation. Zero means DefaultInterval; a
	// negative interval renders as fast as frames can be written.
	Interval time.Duration
	// Logger receives per-step debug output; nil uses a default.
	Logger golog.Logger
	// Clock drives the pacing and can be mocked in tests; nil uses
	// the wall clock.
	Clock clock.Clock
}

// Run plays every point the source yields into the mesh, writing each
// rendered frame to sink. A point already present in the mesh is
// skipped with a warning rather than stopping the animation. Run
// returns the grown mesh, and the error that ended playback early if
// any; canceling the context between steps ends it with the context's
// error.
func (p *Player) Run(ctx context.Context, m *Mesh, src Source, sink FrameSink) (*Mesh, error) {
	renderer := p.Renderer
	if renderer == nil {
		renderer = &Renderer{}
	}
	logger := p.Logger
	if logger == nil {
		logger = golog.NewLogger("dualmesh")
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.New()
	}
	interval := p.Interval
	if interval == 0 {
		interval = DefaultInterval
	}

	step := 1
	if err := sink.WriteFrame(renderer.Frame(m, step)); err != nil {
		return m, errors.Wrap(err, "unable to write frame")
	}

	var ticker *clock.Ticker
	if interval > 0 {
		ticker = clk.Ticker(interval)
		defer ticker.Stop()
	}

	for {
		pt, ok := src.Next()
		if !ok {
			return m, nil
		}
		if ticker != nil {
			if !goutils.SelectContextOrWaitChan(ctx, ticker.C) {
				return m, ctx.Err()
			}
		} else if err := ctx.Err(); err != nil {
			return m, err
		}

		next, err := m.AddPoint(pt)
		if err != nil {
			var dup *DuplicatePointError
			if errors.As(err, &dup) {
				logger.Warnw("skipping duplicate point",
					"x", pt.X, "y", pt.Y, "existing", dup.Index)
				continue
			}
			return m, err
		}
		m = next
		step++
		if err := sink.WriteFrame(renderer.Frame(m, step)); err != nil {
			return m, errors.Wrap(err, "unable to write frame")
		}
		logger.Debugw("frame",
			"step", step,
			"points", m.Len(),
			"triangles", len(m.Triangulation().Triangles))
	}
}
