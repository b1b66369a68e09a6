// Package animation traces a Bézier curve over a fixed duration, one sample
// per tick.
package animation

import (
	"errors"
	"fmt"
	stdmath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/bezier-trace/internal/logger"
	"github.com/Faultbox/bezier-trace/pkg/bezier"
	"github.com/Faultbox/bezier-trace/pkg/math"
)

// ErrInvalidConfiguration is returned by New for a non-positive duration or
// fewer than two control points.
var ErrInvalidConfiguration = errors.New("invalid animation configuration")

// State owns the progress of one curve animation and the path sampled so
// far. It is not safe for concurrent use; drive it from a single loop.
type State struct {
	curve    *bezier.Curve
	duration float32

	elapsed  float32
	t        float32
	finished bool
	paused   bool
	path     []math.Vec2

	log *zap.Logger
}

// New creates an animation that traces the curve through points over
// duration seconds.
func New(duration float32, points []math.Vec2) (*State, error) {
	if !(duration > 0) {
		return nil, fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidConfiguration, duration)
	}
	curve, err := bezier.New(points)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	s := &State{
		curve:    curve,
		duration: duration,
		log:      logger.Named("animation"),
	}
	s.Reset()
	return s, nil
}

// Reset rewinds the animation to its initial state. The sampled path is
// left holding only the first control point.
func (s *State) Reset() {
	s.elapsed = 0
	s.t = 0
	s.finished = false
	s.paused = false
	s.path = append(s.path[:0:0], s.curve.First())
	s.log.Debug("reset", zap.Int("control_points", s.curve.Len()), zap.Float32("duration", s.duration))
}

// Pause toggles the paused flag: a second call resumes.
func (s *State) Pause() {
	s.paused = !s.paused
	s.log.Debug("pause toggled", zap.Bool("paused", s.paused), zap.Float32("t", s.t))
}

// Update advances the animation by dt seconds and appends one sample to
// the path. It does nothing while paused or once finished; time passed
// while paused is dropped, not accumulated.
//
// When t reaches 1 the animation finishes and the last control point is
// appended unless the path already ends on it. A NaN or infinite dt is
// ignored.
func (s *State) Update(dt float32) {
	if s.finished || s.paused {
		return
	}
	if d := float64(dt); stdmath.IsNaN(d) || stdmath.IsInf(d, 0) {
		s.log.Warn("ignoring non-finite dt", zap.Float32("dt", dt))
		return
	}

	s.elapsed += dt
	s.t = s.elapsed / s.duration

	if s.t >= 1 {
		s.finished = true
		last := s.curve.Last()
		if s.path[len(s.path)-1] != last {
			s.path = append(s.path, last)
		}
		s.log.Debug("finished",
			zap.Float32("elapsed", s.elapsed),
			zap.Int("samples", len(s.path)),
		)
		return
	}

	s.path = append(s.path, s.curve.At(s.t))
}

// MostRecentPoint returns the last sampled point. The boolean is false
// only if the path is empty, which Reset prevents.
func (s *State) MostRecentPoint() (math.Vec2, bool) {
	if len(s.path) == 0 {
		return math.Vec2{}, false
	}
	return s.path[len(s.path)-1], true
}

// SampledPath returns the points traced so far, oldest first. The slice is
// owned by the animation: callers must not modify it, and it is only valid
// until the next Update or Reset.
func (s *State) SampledPath() []math.Vec2 {
	return s.path
}

// SubdivisionLevels returns the construction levels at the current
// progress. t is clamped to 1 so the scaffolding of a finished animation
// rests on the last control point instead of overshooting it.
func (s *State) SubdivisionLevels() [][]math.Vec2 {
	return s.curve.Levels(s.Progress())
}

// PointAt evaluates the animated curve at an arbitrary t.
func (s *State) PointAt(t float32) math.Vec2 {
	return s.curve.At(t)
}

// ControlPoints returns a copy of the control points.
func (s *State) ControlPoints() []math.Vec2 {
	return s.curve.Points()
}

// T returns the current curve parameter, elapsed/duration. It may exceed 1
// on the tick that finishes the animation.
func (s *State) T() float32 { return s.t }

// Progress returns T clamped to [0, 1].
func (s *State) Progress() float32 {
	switch {
	case s.t < 0:
		return 0
	case s.t > 1:
		return 1
	}
	return s.t
}

// Elapsed returns the accumulated unpaused time in seconds.
func (s *State) Elapsed() float32 { return s.elapsed }

// Duration returns the configured duration in seconds.
func (s *State) Duration() float32 { return s.duration }

// Finished reports whether the animation reached the end of the curve.
func (s *State) Finished() bool { return s.finished }

// Paused reports whether updates are currently ignored.
func (s *State) Paused() bool { return s.paused }
