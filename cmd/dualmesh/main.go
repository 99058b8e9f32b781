// Package main implements a command rendering the incremental growth
// of a Delaunay triangulation and its Voronoi dual as an animation.
package main

import (
	"context"
	"fmt"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"strings"
	"time"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"golang.org/x/term"

	"github.com/esimov/dualmesh"
	"github.com/esimov/dualmesh/utils"
)

var logger = golog.NewDevelopmentLogger("dualmesh")

func main() {
	goutils.ContextualMainQuit(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Out       string `flag:"out,usage=animated GIF output path"`
	FramesDir string `flag:"frames,usage=directory receiving per step PNG frames"`
	In        string `flag:"in,usage=image whose edge points feed the mesh (path or URL)"`
	Count     int    `flag:"count,default=1000,usage=number of points to add"`
	Interval  int    `flag:"interval,default=500,usage=animation step in milliseconds, 0 renders at full speed"`
	Size      int    `flag:"size,default=800,usage=canvas size in pixels"`
	Seed      int    `flag:"seed,default=42,usage=point sampling seed"`
	Width     int    `flag:"width,default=1,usage=wireframe line width"`
	Fill      bool   `flag:"fill,usage=shade the voronoi cells"`
	NoLabel   bool   `flag:"nolabel,usage=hide the step label"`
	Noise     int    `flag:"noise,default=0,usage=noise factor applied to the frames"`
}

func mainWithArgs(ctx context.Context, args []string, logger golog.Logger) error {
	var argsParsed Arguments
	if err := goutils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.Count < 1 {
		return errors.Errorf("count must be at least 1, got %d", argsParsed.Count)
	}
	if argsParsed.Out == "" && argsParsed.FramesDir == "" {
		argsParsed.Out = "dualmesh.gif"
	}
	interval := time.Duration(argsParsed.Interval) * time.Millisecond

	world := dualmesh.UnitSquare()
	mesh, err := dualmesh.New(dualmesh.DefaultSeedPoints())
	if err != nil {
		return err
	}
	src, err := pointSource(argsParsed, world)
	if err != nil {
		return err
	}
	sink, err := buildSink(argsParsed, interval)
	if err != nil {
		return err
	}

	playInterval := interval
	if playInterval == 0 {
		// Negative disables pacing, zero would mean the default.
		playInterval = -1
	}
	player := &dualmesh.Player{
		Renderer: &dualmesh.Renderer{
			Width:     argsParsed.Size,
			Height:    argsParsed.Size,
			World:     world,
			LineWidth: float64(argsParsed.Width),
			FillCells: argsParsed.Fill,
			HideLabel: argsParsed.NoLabel,
			Noise:     argsParsed.Noise,
		},
		Interval: playInterval,
		Logger:   logger,
	}

	var spin *utils.Spinner
	if term.IsTerminal(int(os.Stderr.Fd())) {
		spin = utils.NewSpinner()
		spin.Start("Generating frames...")
	}
	start := time.Now()
	final, runErr := player.Run(ctx, mesh, src, sink)
	if spin != nil {
		spin.Stop()
	}
	if err := multierr.Combine(runErr, sink.Close()); err != nil {
		fmt.Printf("\n%sFrame generation failed.%s\n", utils.ErrorColor, utils.DefaultColor)
		return err
	}

	frames := final.Len() - mesh.Len() + 1
	tri := final.Triangulation()
	fmt.Printf("\nGenerated %s%d%s frames in %s\n",
		utils.SuccessColor, frames, utils.DefaultColor, utils.FormatTime(time.Since(start)))
	fmt.Printf("Total number of %s%d%s triangles and %s%d%s voronoi cells out of %s%d%s points\n",
		utils.SuccessColor, len(tri.Triangles), utils.DefaultColor,
		utils.SuccessColor, len(final.Voronoi().Cells), utils.DefaultColor,
		utils.SuccessColor, final.Len(), utils.DefaultColor)
	if argsParsed.Out != "" {
		fmt.Printf("Saved as: %s %s✓%s\n\n", path.Base(argsParsed.Out), utils.SuccessColor, utils.DefaultColor)
	}
	return nil
}

// pointSource picks where the animation's points come from: the edge
// points of an image when -in is given, a seeded random scatter
// otherwise.
func pointSource(args Arguments, world r2.Rect) (dualmesh.Source, error) {
	if args.In == "" {
		return dualmesh.NewRandomSource(args.Count, world, int64(args.Seed)), nil
	}

	var file *os.File
	if strings.HasPrefix(args.In, "http://") || strings.HasPrefix(args.In, "https://") {
		f, err := utils.DownloadImage(args.In)
		if err != nil {
			return nil, err
		}
		defer os.Remove(f.Name())
		file = f
	} else {
		f, err := os.Open(args.In)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to open source file %s", args.In)
		}
		file = f
	}
	defer file.Close()

	src, err := dualmesh.NewImageSource(file, world, dualmesh.ImageOptions{
		MaxPoints: args.Count,
		Seed:      int64(args.Seed),
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("extracted edge points", "points", src.Len(), "source", args.In)
	return src, nil
}

// buildSink assembles the frame outputs requested by the flags.
func buildSink(args Arguments, interval time.Duration) (dualmesh.FrameSink, error) {
	delay := interval
	if delay <= 0 {
		delay = dualmesh.DefaultInterval
	}

	var sinks dualmesh.MultiSink
	if args.Out != "" {
		sinks = append(sinks, dualmesh.NewGIFSink(args.Out, delay))
	}
	if args.FramesDir != "" {
		s, err := dualmesh.NewPNGDirSink(args.FramesDir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return sinks, nil
}
