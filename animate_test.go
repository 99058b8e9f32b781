package dualmesh

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"go.viam.com/test"
)

// recordingSink keeps frames in memory and can be told to refuse the
// nth write.
type recordingSink struct {
	mu     sync.Mutex
	frames []image.Image
	failAt int
}

func (s *recordingSink) WriteFrame(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAt > 0 && len(s.frames)+1 == s.failAt {
		return errors.New("sink failed")
	}
	s.frames = append(s.frames, img)
	return nil
}

func (s *recordingSink) Close() error { return nil }

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func testPlayer(t *testing.T) *Player {
	t.Helper()
	return &Player{
		Renderer: &Renderer{Width: 64, Height: 64, HideLabel: true},
		Interval: -1,
		Logger:   golog.NewTestLogger(t),
	}
}

func TestPlayerRun(t *testing.T) {
	m, err := New(DefaultSeedPoints())
	test.That(t, err, test.ShouldBeNil)

	sink := &recordingSink{}
	src := NewSliceSource(Point{X: 0.5, Y: 0.4}, Point{X: 0.3, Y: 0.6})
	final, err := testPlayer(t).Run(context.Background(), m, src, sink)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, final.Len(), test.ShouldEqual, 5)
	test.That(t, sink.count(), test.ShouldEqual, 3)
}

func TestPlayerSkipsDuplicates(t *testing.T) {
	m, err := New(DefaultSeedPoints())
	test.That(t, err, test.ShouldBeNil)

	sink := &recordingSink{}
	src := NewSliceSource(Point{X: 0.2, Y: 0.2}, Point{X: 0.5, Y: 0.4})
	final, err := testPlayer(t).Run(context.Background(), m, src, sink)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, final.Len(), test.ShouldEqual, 4)
	test.That(t, sink.count(), test.ShouldEqual, 2)
}

func TestPlayerPaced(t *testing.T) {
	m, err := New(DefaultSeedPoints())
	test.That(t, err, test.ShouldBeNil)

	clk := clock.NewMock()
	player := &Player{
		Renderer: &Renderer{Width: 64, Height: 64, HideLabel: true},
		Logger:   golog.NewTestLogger(t),
		Clock:    clk,
	}
	sink := &recordingSink{}
	src := NewSliceSource(Point{X: 0.5, Y: 0.4}, Point{X: 0.3, Y: 0.6})

	done := make(chan struct{})
	var final *Mesh
	var runErr error
	go func() {
		defer close(done)
		final, runErr = player.Run(context.Background(), m, src, sink)
	}()

	// The starting frame goes out before any tick.
	for sink.count() == 0 {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(5 * time.Millisecond)
	test.That(t, sink.count(), test.ShouldEqual, 1)

	for {
		select {
		case <-done:
			test.That(t, runErr, test.ShouldBeNil)
			test.That(t, final.Len(), test.ShouldEqual, 5)
			test.That(t, sink.count(), test.ShouldEqual, 3)
			return
		default:
			clk.Add(DefaultInterval)
			time.Sleep(time.Millisecond)
		}
	}
}

func TestPlayerContextCanceled(t *testing.T) {
	m, err := New(DefaultSeedPoints())
	test.That(t, err, test.ShouldBeNil)

	clk := clock.NewMock()
	player := &Player{
		Renderer: &Renderer{Width: 64, Height: 64, HideLabel: true},
		Logger:   golog.NewTestLogger(t),
		Clock:    clk,
	}
	sink := &recordingSink{}
	src := NewSliceSource(Point{X: 0.5, Y: 0.4})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var final *Mesh
	var runErr error
	go func() {
		defer close(done)
		final, runErr = player.Run(ctx, m, src, sink)
	}()

	// Wait for the starting frame, then cancel while the player waits
	// for a tick that never comes.
	for sink.count() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done

	test.That(t, errors.Is(runErr, context.Canceled), test.ShouldBeTrue)
	test.That(t, final.Len(), test.ShouldEqual, 3)
	test.That(t, sink.count(), test.ShouldEqual, 1)
}

func TestPlayerSinkError(t *testing.T) {
	t.Run("starting frame", func(t *testing.T) {
		m, err := New(DefaultSeedPoints())
		test.That(t, err, test.ShouldBeNil)

		sink := &recordingSink{failAt: 1}
		src := NewSliceSource(Point{X: 0.5, Y: 0.4})
		final, err := testPlayer(t).Run(context.Background(), m, src, sink)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "unable to write frame")
		test.That(t, final.Len(), test.ShouldEqual, 3)
	})

	t.Run("mid animation", func(t *testing.T) {
		m, err := New(DefaultSeedPoints())
		test.That(t, err, test.ShouldBeNil)

		sink := &recordingSink{failAt: 2}
		src := NewSliceSource(Point{X: 0.5, Y: 0.4}, Point{X: 0.3, Y: 0.6})
		final, err := testPlayer(t).Run(context.Background(), m, src, sink)
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "unable to write frame")
		test.That(t, final.Len(), test.ShouldEqual, 4)
		test.That(t, sink.count(), test.ShouldEqual, 1)
	})
}
