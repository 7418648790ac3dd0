// Package loop provides the main game loop: Input → Tick → Draw at a fixed rate.
package loop

import (
	"bufio"
	"context"
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/asteroid-destroyer/internal/draw"
	"github.com/tomz197/asteroid-destroyer/internal/game"
	"github.com/tomz197/asteroid-destroyer/internal/input"
	"github.com/tomz197/asteroid-destroyer/internal/render"
	"github.com/tomz197/asteroid-destroyer/internal/score"
)

const targetFrameTime = time.Second / game.TicksPerSecond

// idleNotice is shown once three quarters of the idle timeout have passed.
const idleNotice = "No input detected -- press any key to stay connected"

// ErrIdle is returned by Run when no input arrived within Options.IdleTimeout.
var ErrIdle = errors.New("idle timeout")

// Options configures a game run.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the local terminal
	Sink         game.Sink         // Extra event consumer, e.g. audio
	Store        *score.Store      // Optional high score persistence
	Logger       *log.Logger
	Seed         int64 // 0 picks a time-based seed
	Curve        game.Curve
	IdleTimeout  time.Duration // 0 disables the idle disconnect
}

// Run plays the game on w, reading keys from r, until the player quits, the
// reader closes, ctx is cancelled, or the idle timeout passes.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	highScore := 0
	sinks := game.MultiSink{}
	if opts.Store != nil {
		hs, err := opts.Store.HighScore(ctx)
		if err != nil {
			logger.Warn("load high score", "err", err)
		}
		highScore = hs
		sinks = append(sinks, &persister{store: opts.Store, logger: logger})
	}
	if opts.Sink != nil {
		sinks = append(sinks, opts.Sink)
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	session := game.NewSession(game.Options{
		Rand:      rng,
		Sink:      sinks,
		Curve:     opts.Curve,
		HighScore: highScore,
	})

	renderer := render.New(w, opts.TermSizeFunc)
	stream := input.StartStream(r)
	defer stream.Stop()

	draw.HideCursor(w)
	draw.EnableMouse(w)
	draw.ClearScreen(w)
	defer func() {
		draw.DisableMouse(w)
		io.WriteString(w, draw.ColorReset)
		draw.ClearScreen(w)
		draw.ShowCursor(w)
	}()

	idle := newIdleTracker(opts.IdleTimeout, time.Now())
	prevState := session.State

	for {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// ===== INPUT PHASE =====
		in := input.ReadInput(stream)
		if in.Quit || in.Closed {
			return nil
		}

		switch idle.update(in.Any, frameStart) {
		case idleExpired:
			logger.Info("idle timeout", "after", opts.IdleTimeout)
			return ErrIdle
		case idleWarn:
			renderer.SetNotice(idleNotice)
		default:
			renderer.SetNotice("")
		}

		// ===== UPDATE PHASE =====
		session.Tick(controlsFrom(in, renderer.PointerToLogical))
		if session.State != prevState {
			logger.Debug("state", "from", prevState, "to", session.State, "score", session.Score)
			prevState = session.State
			stream.ResetKeyInput()
		}

		// ===== DRAW PHASE =====
		if err := renderer.Frame(session.Snapshot()); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}
}

// controlsFrom converts terminal input into game controls. toLogical maps a
// clicked terminal cell onto the playfield.
func controlsFrom(in input.Input, toLogical func(col, row int) (float64, float64)) game.Controls {
	c := game.Controls{
		Left:   in.Left,
		Right:  in.Right,
		Up:     in.Up,
		Down:   in.Down,
		Fire:   in.Fire,
		Launch: in.Enter,
		Pause:  in.Pause,
		Retry:  in.Retry,
	}
	if in.Click {
		c.Click = true
		c.PointerX, c.PointerY = toLogical(in.ClickCol, in.ClickRow)
	}
	return c
}

type idleStatus int

const (
	idleActive idleStatus = iota
	idleWarn
	idleExpired
)

// idleTracker follows the time since the last keypress.
type idleTracker struct {
	timeout   time.Duration
	warnAfter time.Duration
	lastInput time.Time
}

func newIdleTracker(timeout time.Duration, now time.Time) *idleTracker {
	return &idleTracker{
		timeout:   timeout,
		warnAfter: timeout * 3 / 4,
		lastInput: now,
	}
}

func (t *idleTracker) update(gotInput bool, now time.Time) idleStatus {
	if gotInput {
		t.lastInput = now
		return idleActive
	}
	if t.timeout <= 0 {
		return idleActive
	}
	since := now.Sub(t.lastInput)
	switch {
	case since > t.timeout:
		return idleExpired
	case since > t.warnAfter:
		return idleWarn
	}
	return idleActive
}
