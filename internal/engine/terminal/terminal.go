// Package terminal draws scenes into a text terminal with tcell and reads
// keyboard actions from it.
package terminal

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/bezier-trace/internal/control"
	"github.com/Faultbox/bezier-trace/internal/logger"
	"github.com/Faultbox/bezier-trace/internal/scene"
	"github.com/Faultbox/bezier-trace/pkg/math"
)

const lineRune = '·'

// Screen is a scene.Canvas and control.Source backed by a tcell screen.
// World coordinates in [0, world) are stretched over the whole terminal.
//
// Squares tint cell backgrounds and lines draw glyphs on top of them. Each
// cell keeps its composited fill for the frame, so translucent squares
// landing on the same cell build up the way they do on a blending renderer.
type Screen struct {
	screen tcell.Screen
	world  math.Vec2
	bg     scene.Color

	fill       []scene.Color
	cols, rows int

	events  chan tcell.Event
	actions []control.Action
	log     *zap.Logger
}

var (
	_ scene.Canvas   = (*Screen)(nil)
	_ control.Source = (*Screen)(nil)
)

// New opens the controlling terminal. worldW and worldH give the extent of
// the coordinate space drawn into it.
func New(worldW, worldH float32) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(s, worldW, worldH)
}

// NewWithScreen wraps an uninitialized tcell screen.
func NewWithScreen(s tcell.Screen, worldW, worldH float32) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	t := &Screen{
		screen: s,
		world:  math.V2(worldW, worldH),
		bg:     scene.ColorBlack,
		events: make(chan tcell.Event, 64),
		log:    logger.Named("terminal"),
	}

	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				close(t.events)
				return
			}
			t.events <- ev
		}
	}()

	cols, rows := s.Size()
	t.log.Info("terminal opened", zap.Int("cols", cols), zap.Int("rows", rows))
	return t, nil
}

// Close restores the terminal.
func (t *Screen) Close() {
	t.screen.Fini()
}

// Poll returns the actions typed since the last call without blocking.
func (t *Screen) Poll() []control.Action {
	t.actions = t.actions[:0]
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return append(t.actions, control.Quit)
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a := KeyAction(ev); a != control.None {
					t.actions = append(t.actions, a)
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}
		default:
			return t.actions
		}
	}
}

// KeyAction maps a key event to its action.
func KeyAction(ev *tcell.EventKey) control.Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return control.Quit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'r', 'R':
			return control.Reset
		case ' ':
			return control.Pause
		case 'q':
			return control.Quit
		}
	}
	return control.None
}

// Clear fills every cell with the background color.
func (t *Screen) Clear(c scene.Color) {
	t.bg = c.WithAlpha(1)
	t.cols, t.rows = t.screen.Size()
	n := t.cols * t.rows
	if cap(t.fill) < n {
		t.fill = make([]scene.Color, n)
	}
	t.fill = t.fill[:n]
	for i := range t.fill {
		t.fill[i] = t.bg
	}
	t.screen.Fill(' ', tcell.StyleDefault.Background(t.color(t.bg)))
}

// DrawLine rasterizes the segment into cells.
func (t *Screen) DrawLine(a, b math.Vec2, c scene.Color) {
	cols, rows := t.screen.Size()
	x0, y0 := toCell(a, t.world, cols, rows)
	x1, y1 := toCell(b, t.world, cols, rows)
	for _, p := range cellLine(x0, y0, x1, y1) {
		under := t.cellFill(p[0], p[1])
		st := tcell.StyleDefault.
			Foreground(t.color(c.Over(under))).
			Background(t.color(under))
		t.screen.SetContent(p[0], p[1], lineRune, nil, st)
	}
}

// FillSquare blends c into the background of the cells covered by the
// square, at least one. Glyphs already in those cells are kept.
func (t *Screen) FillSquare(p math.Vec2, size float32, c scene.Color) {
	cols, rows := t.screen.Size()
	x0, y0 := toCell(p, t.world, cols, rows)
	x1, y1 := toCell(p.Add(math.V2(size, size)), t.world, cols, rows)
	for y := y0; y <= max(y0, y1-1); y++ {
		for x := x0; x <= max(x0, x1-1); x++ {
			f := c.Over(t.cellFill(x, y))
			t.setFill(x, y, f)
			mainc, combc, st, _ := t.screen.GetContent(x, y)
			t.screen.SetContent(x, y, mainc, combc, st.Background(t.color(f)))
		}
	}
}

// Present flushes the frame to the terminal.
func (t *Screen) Present() error {
	t.screen.Show()
	return nil
}

// cellFill returns the composited fill of a cell, or the background when
// the grid changed size since the last Clear.
func (t *Screen) cellFill(x, y int) scene.Color {
	if x < t.cols && y < t.rows {
		return t.fill[y*t.cols+x]
	}
	return t.bg
}

func (t *Screen) setFill(x, y int, c scene.Color) {
	if x < t.cols && y < t.rows {
		t.fill[y*t.cols+x] = c
	}
}

func (t *Screen) color(c scene.Color) tcell.Color {
	r, g, b, _ := c.RGBA8()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// toCell maps a world position to a cell, clamped to the grid.
func toCell(p, world math.Vec2, cols, rows int) (int, int) {
	x := int(p.X / world.X * float32(cols))
	y := int(p.Y / world.Y * float32(rows))
	return clampInt(x, 0, cols-1), clampInt(y, 0, rows-1)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// cellLine returns the cells of a Bresenham line from (x0, y0) to (x1, y1),
// both ends included.
func cellLine(x0, y0, x1, y1 int) [][2]int {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	cells := make([][2]int, 0, max(dx, -dy)+1)
	err := dx + dy
	for {
		cells = append(cells, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return cells
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
