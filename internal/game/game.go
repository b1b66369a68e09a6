// Package game implements the main loop driving one curve animation.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/bezier-trace/internal/animation"
	"github.com/Faultbox/bezier-trace/internal/control"
	"github.com/Faultbox/bezier-trace/internal/logger"
	"github.com/Faultbox/bezier-trace/internal/scene"
)

// Config holds loop settings.
type Config struct {
	// FPSLimit caps the frame rate; 0 leaves pacing to the backend
	// (vsync or none).
	FPSLimit int
	Palette  scene.Palette

	// Title is shown with the animation status on canvases that have a
	// title. Empty disables it.
	Title string
}

// Titler is implemented by canvases with a title bar.
type Titler interface {
	SetTitle(title string)
}

// Game ties an animation to an input source and a canvas.
type Game struct {
	config  Config
	running bool
	anim    *animation.State
	canvas  scene.Canvas
	input   control.Source
	title   string

	now   func() time.Time
	sleep func(time.Duration)
	log   *zap.Logger
}

// New creates a game loop. Nothing runs until Run or Step is called.
func New(cfg Config, anim *animation.State, canvas scene.Canvas, input control.Source) *Game {
	return &Game{
		config:  cfg,
		running: true,
		anim:    anim,
		canvas:  canvas,
		input:   input,
		now:     time.Now,
		sleep:   time.Sleep,
		log:     logger.Named("game"),
	}
}

// Animation returns the animation being driven.
func (g *Game) Animation() *animation.State {
	return g.anim
}

// Run loops until a quit action arrives, ctx is cancelled, or drawing
// fails.
func (g *Game) Run(ctx context.Context) error {
	var frameBudget time.Duration
	if g.config.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(g.config.FPSLimit)
	}

	lastTime := g.now()
	frameCount := 0
	fpsTimer := lastTime

	g.log.Info("starting loop", zap.Int("fps_limit", g.config.FPSLimit))

	for g.running {
		if err := ctx.Err(); err != nil {
			g.log.Info("loop cancelled", zap.Error(err))
			return nil
		}

		frameStart := g.now()
		dt := frameStart.Sub(lastTime)
		lastTime = frameStart

		if err := g.Step(dt); err != nil {
			return err
		}
		if !g.running {
			break
		}

		if frameBudget > 0 {
			if spent := g.now().Sub(frameStart); spent < frameBudget {
				g.sleep(frameBudget - spent)
			}
		}

		frameCount++
		if now := g.now(); now.Sub(fpsTimer) >= time.Second {
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
				zap.Float32("t", g.anim.Progress()),
			)
			frameCount = 0
			fpsTimer = now
		}
	}

	g.log.Info("loop stopped")
	return nil
}

// Step runs a single frame: input, update by dt, draw, present. After a
// quit action the animation is not updated and Run stops.
func (g *Game) Step(dt time.Duration) error {
	for _, a := range g.input.Poll() {
		g.apply(a)
	}
	if !g.running {
		return nil
	}

	g.anim.Update(float32(dt.Seconds()))

	scene.Draw(g.canvas, g.anim, g.config.Palette)
	if err := g.canvas.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	g.updateTitle()
	return nil
}

func (g *Game) updateTitle() {
	tt, ok := g.canvas.(Titler)
	if !ok || g.config.Title == "" {
		return
	}
	if title := Status(g.config.Title, g.anim); title != g.title {
		tt.SetTitle(title)
		g.title = title
	}
}

// Status formats title with the progress of a.
func Status(title string, a *animation.State) string {
	pct := int(a.Progress() * 100)
	switch {
	case a.Finished():
		return title + " - done"
	case a.Paused():
		return fmt.Sprintf("%s - %d%% (paused)", title, pct)
	default:
		return fmt.Sprintf("%s - %d%%", title, pct)
	}
}

// Running reports whether the loop would continue.
func (g *Game) Running() bool {
	return g.running
}

func (g *Game) apply(a control.Action) {
	switch a {
	case control.Quit:
		g.running = false
	case control.Reset:
		g.anim.Reset()
	case control.Pause:
		g.anim.Pause()
	}
	g.log.Debug("action", zap.Stringer("action", a))
}
