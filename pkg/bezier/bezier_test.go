package bezier

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/Faultbox/bezier-trace/pkg/math"
)

var demoPoints = []math.Vec2{
	{100, 700},
	{100, 175},
	{400, 175},
	{600, 525},
	{1200, 525},
	{800, 350},
	{900, 450},
}

var curves = map[string][]math.Vec2{
	"line":      {{0, 0}, {10, 0}},
	"quadratic": {{0, 0}, {0, 10}, {10, 10}},
	"cubic":     {{0, 0}, {0, 10}, {10, 10}, {10, 0}},
	"demo":      demoPoints,
}

func TestPointAtEndpoints(t *testing.T) {
	for name, pts := range curves {
		t.Run(name, func(t *testing.T) {
			start, err := PointAt(pts, 0)
			if err != nil {
				t.Fatal(err)
			}
			if start != pts[0] {
				t.Errorf("PointAt(0) = %v, want %v", start, pts[0])
			}
			end, err := PointAt(pts, 1)
			if err != nil {
				t.Fatal(err)
			}
			if end != pts[len(pts)-1] {
				t.Errorf("PointAt(1) = %v, want %v", end, pts[len(pts)-1])
			}
		})
	}
}

func TestPointAtLine(t *testing.T) {
	a, b := math.V2(-3, 4), math.V2(7, -2)
	for _, tt := range []float32{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1, 1.5, -0.5} {
		got, err := PointAt([]math.Vec2{a, b}, tt)
		if err != nil {
			t.Fatal(err)
		}
		if want := a.Lerp(b, tt); got != want {
			t.Errorf("PointAt(%v) = %v, want %v", tt, got, want)
		}
	}
}

func TestPointAtQuadratic(t *testing.T) {
	got, err := PointAt(curves["quadratic"], 0.5)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, math.V2(2.5, 7.5), got)
}

func TestPointAtSinglePoint(t *testing.T) {
	p := math.V2(3, 9)
	for _, tt := range []float32{0, 0.5, 1, 42} {
		got, err := PointAt([]math.Vec2{p}, tt)
		if err != nil {
			t.Fatal(err)
		}
		if got != p {
			t.Errorf("PointAt(%v) = %v, want %v", tt, got, p)
		}
	}
}

func TestPointAtEmpty(t *testing.T) {
	_, err := PointAt(nil, 0.5)
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestPointAtMatchesRecursion(t *testing.T) {
	ts := []float32{0, 0.1, 1.0 / 3, 0.5, 0.77, 0.999, 1, -0.25, 1.25}
	for n := 1; n <= len(demoPoints); n++ {
		pts := demoPoints[:n]
		for _, tt := range ts {
			got, err := PointAt(pts, tt)
			if err != nil {
				t.Fatal(err)
			}
			want := pointAtRange(pts, 0, len(pts), tt)
			if got != want {
				t.Errorf("n=%d t=%v: iterative %v, recursive %v", n, tt, got, want)
			}
		}
	}
}

func TestPointAtDoesNotModifyInput(t *testing.T) {
	pts := append([]math.Vec2(nil), demoPoints...)
	if _, err := PointAt(pts, 0.3); err != nil {
		t.Fatal(err)
	}
	diff(t, demoPoints, pts)
}

func TestSubdivisionLevels(t *testing.T) {
	tests := []struct {
		name   string
		points []math.Vec2
		t      float32
		want   [][]math.Vec2
	}{
		{
			name:   "line has no levels",
			points: curves["line"],
			t:      0.5,
			want:   nil,
		},
		{
			name:   "quadratic",
			points: curves["quadratic"],
			t:      0.5,
			want:   [][]math.Vec2{{{0, 5}, {5, 10}}},
		},
		{
			name:   "cubic",
			points: curves["cubic"],
			t:      0.5,
			want: [][]math.Vec2{
				{{0, 5}, {5, 10}, {10, 5}},
				{{2.5, 7.5}, {7.5, 7.5}},
			},
		},
		{
			name:   "cubic at start",
			points: curves["cubic"],
			t:      0,
			want: [][]math.Vec2{
				{{0, 0}, {0, 10}, {10, 10}},
				{{0, 0}, {0, 10}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diff(t, tt.want, SubdivisionLevels(tt.points, tt.t))
		})
	}
}

func TestSubdivisionLevelsShape(t *testing.T) {
	for n := 0; n <= len(demoPoints); n++ {
		pts := demoPoints[:n]
		levels := SubdivisionLevels(pts, 0.4)
		if n < 3 {
			if len(levels) != 0 {
				t.Errorf("n=%d: expected no levels, got %d", n, len(levels))
			}
			continue
		}
		if len(levels) != n-2 {
			t.Fatalf("n=%d: expected %d levels, got %d", n, n-2, len(levels))
		}
		for i, level := range levels {
			if len(level) != n-1-i {
				t.Errorf("n=%d: level %d has %d points, want %d", n, i, len(level), n-1-i)
			}
		}
		if last := levels[len(levels)-1]; len(last) != 2 {
			t.Errorf("n=%d: final level has %d points, want 2", n, len(last))
		}
	}
}

func TestSubdivisionLevelsConvergeOnCurve(t *testing.T) {
	for _, tt := range []float32{0.2, 0.5, 0.8} {
		levels := SubdivisionLevels(demoPoints, tt)
		last := levels[len(levels)-1]
		want, err := PointAt(demoPoints, tt)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, want, last[0].Lerp(last[1], tt), cmpopts.EquateApprox(0, 1e-4))
	}
}

func TestNew(t *testing.T) {
	for _, n := range []int{0, 1} {
		_, err := New(demoPoints[:n])
		if !errors.Is(err, ErrTooFewPoints) {
			t.Errorf("New with %d points: expected ErrTooFewPoints, got %v", n, err)
		}
	}

	c, err := New(demoPoints)
	if err != nil {
		t.Fatal(err)
	}
	if c.Len() != len(demoPoints) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(demoPoints))
	}
	if c.Degree() != len(demoPoints)-1 {
		t.Errorf("Degree() = %d, want %d", c.Degree(), len(demoPoints)-1)
	}
	if c.First() != demoPoints[0] || c.Last() != demoPoints[len(demoPoints)-1] {
		t.Errorf("First/Last = %v/%v", c.First(), c.Last())
	}
}

func TestCurveIsImmutable(t *testing.T) {
	pts := append([]math.Vec2(nil), curves["cubic"]...)
	c, err := New(pts)
	if err != nil {
		t.Fatal(err)
	}
	pts[0] = math.V2(99, 99)
	if c.First() != math.V2(0, 0) {
		t.Errorf("curve changed after caller mutated input: %v", c.First())
	}

	out := c.Points()
	out[1] = math.V2(99, 99)
	diff(t, curves["cubic"], c.Points())
}

func TestCurveAt(t *testing.T) {
	c, err := New(demoPoints)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 20; i++ {
		tt := float32(i) / 20
		want, _ := PointAt(demoPoints, tt)
		if got := c.At(tt); got != want {
			t.Errorf("At(%v) = %v, want %v", tt, got, want)
		}
	}
	diff(t, SubdivisionLevels(demoPoints, 0.3), c.Levels(0.3))
}

func BenchmarkPointAt(b *testing.B) {
	for n := 2; n <= len(demoPoints); n += 2 {
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = PointAt(demoPoints[:n], 0.37)
			}
		})
	}
}

func BenchmarkPointAtRecursive(b *testing.B) {
	for n := 2; n <= len(demoPoints); n += 2 {
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = pointAtRange(demoPoints, 0, n, 0.37)
			}
		})
	}
}
