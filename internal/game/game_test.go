package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Faultbox/bezier-trace/internal/animation"
	"github.com/Faultbox/bezier-trace/internal/control"
	"github.com/Faultbox/bezier-trace/internal/scene"
	"github.com/Faultbox/bezier-trace/pkg/math"
)

// script returns the actions for each Poll call in turn, then nothing.
type script struct {
	frames [][]control.Action
	calls  int
}

func (s *script) Poll() []control.Action {
	defer func() { s.calls++ }()
	if s.calls < len(s.frames) {
		return s.frames[s.calls]
	}
	return nil
}

// quitAfter returns a script that quits on Poll call n.
func quitAfter(n int) *script {
	frames := make([][]control.Action, n+1)
	frames[n] = []control.Action{control.Quit}
	return &script{frames: frames}
}

type canvas struct {
	presents int
	squares  int
	err      error
}

func (c *canvas) Clear(scene.Color)                          {}
func (c *canvas) DrawLine(math.Vec2, math.Vec2, scene.Color) {}
func (c *canvas) FillSquare(math.Vec2, float32, scene.Color) { c.squares++ }
func (c *canvas) Present() error {
	c.presents++
	return c.err
}

type titledCanvas struct {
	canvas
	titles []string
}

func (c *titledCanvas) SetTitle(title string) { c.titles = append(c.titles, title) }

type clock struct {
	t      time.Time
	slept  time.Duration
	sleeps int
}

func (c *clock) now() time.Time { return c.t }

func (c *clock) sleep(d time.Duration) {
	c.t = c.t.Add(d)
	c.slept += d
	c.sleeps++
}

var line = []math.Vec2{{0, 0}, {10, 0}}

func newGame(t *testing.T, cfg Config, in control.Source, cv scene.Canvas) (*Game, *clock) {
	t.Helper()
	anim, err := animation.New(1, line)
	if err != nil {
		t.Fatal(err)
	}
	g := New(cfg, anim, cv, in)
	clk := &clock{t: time.Unix(0, 0)}
	g.now = clk.now
	g.sleep = clk.sleep
	return g, clk
}

func TestStepUpdatesAndPresents(t *testing.T) {
	cv := &canvas{}
	g, _ := newGame(t, Config{Palette: scene.DefaultPalette()}, &script{}, cv)

	if err := g.Step(250 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	a := g.Animation()
	if a.T() != 0.25 {
		t.Errorf("T() = %v, want 0.25", a.T())
	}
	if p, _ := a.MostRecentPoint(); p != math.V2(2.5, 0) {
		t.Errorf("MostRecentPoint() = %v, want (2.5, 0)", p)
	}
	if cv.presents != 1 {
		t.Errorf("expected 1 present, got %d", cv.presents)
	}
	// Two path samples plus the current point marker.
	if cv.squares != 3 {
		t.Errorf("expected 3 squares, got %d", cv.squares)
	}
}

func TestStepActions(t *testing.T) {
	in := &script{frames: [][]control.Action{
		nil,
		{control.Pause},
		nil,
		{control.Pause, control.Reset},
		{control.Quit},
	}}
	g, _ := newGame(t, Config{}, in, &canvas{})
	a := g.Animation()

	step := func() {
		t.Helper()
		if err := g.Step(100 * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}

	step()
	if len(a.SampledPath()) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(a.SampledPath()))
	}

	step()
	if !a.Paused() {
		t.Fatal("expected paused")
	}
	step()
	if len(a.SampledPath()) != 2 {
		t.Errorf("paused animation advanced: %d samples", len(a.SampledPath()))
	}

	// Resume, then reset; the same frame still updates once.
	step()
	if a.Paused() {
		t.Error("expected pause to toggle off")
	}
	if a.Elapsed() != 0.1 {
		t.Errorf("Elapsed() = %v, want 0.1 after reset and one update", a.Elapsed())
	}
	if len(a.SampledPath()) != 2 {
		t.Errorf("expected fresh path with one update, got %d samples", len(a.SampledPath()))
	}

	step()
	if g.Running() {
		t.Error("expected quit to stop the loop")
	}
	if a.Elapsed() != 0.1 {
		t.Errorf("quit frame must not update, Elapsed() = %v", a.Elapsed())
	}
}

func TestRunUntilQuit(t *testing.T) {
	cv := &canvas{}
	g, clk := newGame(t, Config{FPSLimit: 10}, quitAfter(15), cv)

	if err := g.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if cv.presents != 15 {
		t.Errorf("expected 15 frames, got %d", cv.presents)
	}
	if clk.sleeps != 15 {
		t.Errorf("expected one sleep per frame, got %d", clk.sleeps)
	}
	if clk.slept != 1500*time.Millisecond {
		t.Errorf("expected 1.5s of pacing, got %v", clk.slept)
	}

	a := g.Animation()
	if !a.Finished() {
		t.Fatal("expected animation to finish within 1.4s of frame time")
	}
	path := a.SampledPath()
	if path[len(path)-1] != line[1] {
		t.Errorf("path ends at %v, want %v", path[len(path)-1], line[1])
	}
}

func TestRunNoLimitDoesNotSleep(t *testing.T) {
	g, clk := newGame(t, Config{}, quitAfter(3), &canvas{})
	if err := g.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if clk.sleeps != 0 {
		t.Errorf("expected no sleeps without an FPS limit, got %d", clk.sleeps)
	}
}

func TestRunCancelled(t *testing.T) {
	cv := &canvas{}
	g, _ := newGame(t, Config{}, &script{}, cv)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if cv.presents != 0 {
		t.Errorf("expected no frames after cancel, got %d", cv.presents)
	}
}

func TestRunPresentError(t *testing.T) {
	errLost := errors.New("device lost")
	g, _ := newGame(t, Config{}, &script{}, &canvas{err: errLost})
	if err := g.Run(context.Background()); !errors.Is(err, errLost) {
		t.Errorf("expected present error, got %v", err)
	}
}

func TestStepSetsTitle(t *testing.T) {
	in := &script{frames: [][]control.Action{
		nil,
		nil,
		{control.Pause},
		{control.Pause},
	}}
	cv := &titledCanvas{}
	g, _ := newGame(t, Config{Title: "Trace"}, in, cv)

	for _, dt := range []time.Duration{250, 0, 0, 1000} {
		if err := g.Step(dt * time.Millisecond); err != nil {
			t.Fatal(err)
		}
	}

	// The unchanged second frame does not set the title again.
	want := []string{"Trace - 25%", "Trace - 25% (paused)", "Trace - done"}
	if d := cmp.Diff(want, cv.titles); d != "" {
		t.Error(d)
	}
}

func TestStepWithoutTitle(t *testing.T) {
	cv := &titledCanvas{}
	g, _ := newGame(t, Config{}, &script{}, cv)
	if err := g.Step(100 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if len(cv.titles) != 0 {
		t.Errorf("expected no titles, got %q", cv.titles)
	}
}
