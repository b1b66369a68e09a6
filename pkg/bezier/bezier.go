// Package bezier evaluates Bézier curves of arbitrary degree with de
// Casteljau's algorithm and exposes the intermediate interpolation levels
// used to draw the construction.
//
// All evaluation is done in float32 to match [math.Vec2]. Results are
// deterministic for a given platform, but bit-exact reproducibility across
// platforms is not guaranteed: the compiler may fuse the multiply-adds in
// [math.Vec2.Lerp] on some architectures.
package bezier

import (
	"errors"
	"fmt"

	"github.com/Faultbox/bezier-trace/pkg/math"
)

// Errors returned for unusable control point sets.
var (
	ErrEmptyInput   = errors.New("bezier: no control points")
	ErrTooFewPoints = errors.New("bezier: a curve needs at least two control points")
)

// PointAt returns the point on the Bézier curve defined by points at
// parameter t. t is not clamped.
//
// A single point is returned unchanged. Otherwise the result is
// (1-t)*PointAt(points[:n-1], t) + t*PointAt(points[1:], t).
//
// The recursion is evaluated bottom-up: every level of the reduction is
// computed once in a scratch buffer, which is O(n²) instead of the O(2ⁿ) of
// the direct recursion. Both orders apply the same lerp to the same operands
// and produce identical results.
func PointAt(points []math.Vec2, t float32) (math.Vec2, error) {
	if len(points) == 0 {
		return math.Vec2{}, ErrEmptyInput
	}
	return reduce(points, t, nil), nil
}

// reduce runs the pairwise reduction of points at t. scratch is reused when
// it has enough capacity.
func reduce(points []math.Vec2, t float32, scratch []math.Vec2) math.Vec2 {
	if len(points) == 1 {
		return points[0]
	}
	if cap(scratch) < len(points)-1 {
		scratch = make([]math.Vec2, len(points)-1)
	}
	buf := scratch[:len(points)-1]
	for i := range buf {
		buf[i] = points[i].Lerp(points[i+1], t)
	}
	for n := len(buf) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			buf[i] = buf[i].Lerp(buf[i+1], t)
		}
	}
	return buf[0]
}

// pointAtRange is the direct recursive form of PointAt over
// points[start:end]. It is exponential in end-start and only used to check
// the iterative form.
func pointAtRange(points []math.Vec2, start, end int, t float32) math.Vec2 {
	if end-start == 1 {
		return points[start]
	}
	a := pointAtRange(points, start, end-1, t)
	b := pointAtRange(points, start+1, end, t)
	return a.Lerp(b, t)
}

// SubdivisionLevels returns the intermediate interpolation levels of the
// curve at t.
//
// Level 0 holds the len(points)-1 interpolations between consecutive
// control points; each following level interpolates consecutive points of
// the previous one. The last level returned has two points; the final
// interpolation, which is the curve point itself, is not included. Fewer
// than three control points produce no levels.
func SubdivisionLevels(points []math.Vec2, t float32) [][]math.Vec2 {
	if len(points) < 3 {
		return nil
	}
	levels := make([][]math.Vec2, 0, len(points)-2)
	prev := points
	for len(prev) > 2 {
		next := make([]math.Vec2, len(prev)-1)
		for i := range next {
			next[i] = prev[i].Lerp(prev[i+1], t)
		}
		levels = append(levels, next)
		prev = next
	}
	return levels
}

// Curve is an immutable set of at least two control points.
type Curve struct {
	points  []math.Vec2
	scratch []math.Vec2
}

// New returns a curve over a copy of points.
func New(points []math.Vec2) (*Curve, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	return &Curve{
		points:  append([]math.Vec2(nil), points...),
		scratch: make([]math.Vec2, len(points)-1),
	}, nil
}

// At returns the point on the curve at t. It is not safe for concurrent
// use because it reuses an internal buffer.
func (c *Curve) At(t float32) math.Vec2 {
	return reduce(c.points, t, c.scratch)
}

// Levels returns the subdivision levels of the curve at t.
func (c *Curve) Levels(t float32) [][]math.Vec2 {
	return SubdivisionLevels(c.points, t)
}

// Points returns a copy of the control points.
func (c *Curve) Points() []math.Vec2 {
	return append([]math.Vec2(nil), c.points...)
}

// Len returns the number of control points.
func (c *Curve) Len() int {
	return len(c.points)
}

// Degree returns the polynomial degree of the curve.
func (c *Curve) Degree() int {
	return len(c.points) - 1
}

// First returns the first control point.
func (c *Curve) First() math.Vec2 {
	return c.points[0]
}

// Last returns the last control point.
func (c *Curve) Last() math.Vec2 {
	return c.points[len(c.points)-1]
}
