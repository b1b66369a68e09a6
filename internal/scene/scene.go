// Package scene turns an animation into drawing calls on an abstract
// canvas. It knows nothing about windows, terminals or input.
package scene

import (
	"github.com/Faultbox/bezier-trace/pkg/math"
)

// Sizes of the square markers, in canvas units.
const (
	PointSize  = 4
	MarkerSize = 10
)

// Canvas is the drawing capability a backend provides. Positions are in
// world units; backends map them to pixels or cells.
type Canvas interface {
	Clear(c Color)
	DrawLine(a, b math.Vec2, c Color)
	// FillSquare fills a size×size square whose top-left corner is at p.
	FillSquare(p math.Vec2, size float32, c Color)
	Present() error
}

// Animation is the read side of an animation the scene draws.
type Animation interface {
	ControlPoints() []math.Vec2
	SubdivisionLevels() [][]math.Vec2
	SampledPath() []math.Vec2
	MostRecentPoint() (math.Vec2, bool)
}

// Palette holds the colors a scene is drawn with.
type Palette struct {
	Background Color
	MainLine   Color
	// Sublines are consumed from the end: the first subdivision level uses
	// the last color. Deeper levels than colors reuse the first color.
	Sublines []Color
	Path     Color
	Marker   Color
}

// DefaultPalette returns the stock colors.
func DefaultPalette() Palette {
	main := RGB(56, 56, 56)
	return Palette{
		Background: RGB(126, 108, 77),
		MainLine:   main,
		Sublines: []Color{
			RGB(124, 69, 65),
			RGB(52, 81, 52),
			RGB(42, 87, 112),
		},
		Path:   main.WithAlpha(0.05),
		Marker: main,
	}
}

// SublineColor returns the color of subdivision level i.
func (p Palette) SublineColor(i int) Color {
	n := len(p.Sublines)
	switch {
	case n == 0:
		return p.MainLine
	case i < n:
		return p.Sublines[n-1-i]
	default:
		return p.Sublines[0]
	}
}

// Draw renders one frame of a onto c: the control polygon, the
// subdivision scaffolding, the sampled path and the current point. It does
// not present the frame.
func Draw(c Canvas, a Animation, p Palette) {
	c.Clear(p.Background)

	drawPolyline(c, a.ControlPoints(), p.MainLine)

	for i, level := range a.SubdivisionLevels() {
		col := p.SublineColor(i).WithAlpha(0.5)
		for j := 1; j < len(level); j++ {
			c.DrawLine(level[j-1], level[j], col)
			c.FillSquare(level[j-1], PointSize, col)
			c.FillSquare(level[j], PointSize, col)
		}
	}

	for _, pt := range a.SampledPath() {
		c.FillSquare(pt, PointSize, p.Path)
	}

	if pt, ok := a.MostRecentPoint(); ok {
		c.FillSquare(pt, MarkerSize, p.Marker)
	}
}

func drawPolyline(c Canvas, pts []math.Vec2, col Color) {
	for i := 1; i < len(pts); i++ {
		c.DrawLine(pts[i-1], pts[i], col)
	}
}
