package geom_test

import (
	"math"
	"testing"

	"github.com/chazu/nodeview/pkg/geom"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestVecArithmetic(t *testing.T) {
	a := geom.V(1, 2)
	b := geom.V(4, -6)

	if got := a.Add(b); !got.Equal(geom.V(5, -4)) {
		t.Errorf("Add: got %v, want 5 -4", got)
	}
	if got := a.Sub(b); !got.Equal(geom.V(-3, 8)) {
		t.Errorf("Sub: got %v, want -3 8", got)
	}
	if got := b.Mul(0.5); !got.Equal(geom.V(2, -3)) {
		t.Errorf("Mul: got %v, want 2 -3", got)
	}
	if got := a.Mid(b); !got.Equal(geom.V(2.5, -2)) {
		t.Errorf("Mid: got %v, want 2.5 -2", got)
	}

	// Operands are values and must be untouched.
	if !a.Equal(geom.V(1, 2)) || !b.Equal(geom.V(4, -6)) {
		t.Errorf("operands mutated: a=%v b=%v", a, b)
	}
}

func TestVecLerp3Segments(t *testing.T) {
	a := geom.V(0, 0)
	b := geom.V(10, 0)
	c := geom.V(10, 10)

	if got := a.Lerp3(b, c, 0.25); !got.Equal(geom.V(5, 0)) {
		t.Errorf("Lerp3(0.25): got %v, want 5 0", got)
	}
	if got := a.Lerp3(b, c, 0.5); !got.Equal(b) {
		t.Errorf("Lerp3(0.5): got %v, want %v", got, b)
	}
	if got := a.Lerp3(b, c, 0.75); !got.Equal(geom.V(10, 5)) {
		t.Errorf("Lerp3(0.75): got %v, want 10 5", got)
	}
	if got := a.Lerp3(b, c, 1); !got.Equal(c) {
		t.Errorf("Lerp3(1): got %v, want %v", got, c)
	}
}

func TestVecSnap(t *testing.T) {
	tests := []struct {
		in   geom.Vec
		unit float64
		want geom.Vec
	}{
		{geom.V(53, 52), 10, geom.V(50, 50)},
		{geom.V(55, 54.9), 10, geom.V(60, 50)},
		{geom.V(-4, -6), 10, geom.V(0, -10)},
		{geom.V(-5, 5), 10, geom.V(0, 10)}, // ties go toward +Inf
		{geom.V(127, 3), 50, geom.V(150, 0)},
		{geom.V(1.26, 7), 0, geom.V(1.26, 7)},
	}
	for _, tt := range tests {
		if got := tt.in.Snap(tt.unit); !got.Equal(tt.want) {
			t.Errorf("%v.Snap(%v): got %v, want %v", tt.in, tt.unit, got, tt.want)
		}
	}
}

func TestVecSnapIsPerAxis(t *testing.T) {
	// A long vector with one small component must still snap that
	// component on its own.
	got := geom.V(1000, 4).Snap(10)
	if !got.Equal(geom.V(1000, 0)) {
		t.Errorf("got %v, want 1000 0", got)
	}
}

func TestVecString(t *testing.T) {
	if got := geom.V(50, -2.5).String(); got != "50 -2.5" {
		t.Errorf("String: got %q, want %q", got, "50 -2.5")
	}
}

func TestVecV2RoundTrip(t *testing.T) {
	v := geom.V(3, -7)
	if got := geom.FromV2(v.V2()); !got.Equal(v) {
		t.Errorf("got %v, want %v", got, v)
	}
}

func TestVecProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	coord := gen.Float64Range(-1e6, 1e6)

	properties.Property("lerp endpoints are exact", prop.ForAll(
		func(ax, ay, bx, by float64) bool {
			a, b := geom.V(ax, ay), geom.V(bx, by)
			return a.Lerp(b, 0).Equal(a) && a.Lerp(b, 1).Equal(b)
		},
		coord, coord, coord, coord,
	))

	properties.Property("lerp3 is continuous at the midpoint", prop.ForAll(
		func(ax, ay, bx, by, cx, cy float64) bool {
			a, b, c := geom.V(ax, ay), geom.V(bx, by), geom.V(cx, cy)
			below := a.Lerp3(b, c, 0.5-1e-12)
			above := a.Lerp3(b, c, 0.5)
			return near(below, b, 1e-3) && near(above, b, 1e-3)
		},
		coord, coord, coord, coord, coord, coord,
	))

	properties.Property("snap is idempotent", prop.ForAll(
		func(x, y, unit float64) bool {
			once := geom.V(x, y).Snap(unit)
			return once.Snap(unit).Equal(once)
		},
		coord, coord, gen.Float64Range(0.1, 100),
	))

	properties.Property("operations never mutate operands", prop.ForAll(
		func(ax, ay, bx, by float64) bool {
			a, b := geom.V(ax, ay), geom.V(bx, by)
			a0, b0 := a, b
			_ = a.Add(b)
			_ = a.Sub(b)
			_ = a.Lerp(b, 0.3)
			_ = a.Snap(10)
			return a == a0 && b == b0
		},
		coord, coord, coord, coord,
	))

	properties.TestingRun(t)
}

func near(a, b geom.Vec, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}
