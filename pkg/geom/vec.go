package geom

import (
	"math"
	"strconv"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Vec is a 2D point or displacement.
type Vec struct {
	X, Y float64
}

// V is a convenience constructor for Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// FromV2 converts an sdfx vector.
func FromV2(v v2.Vec) Vec {
	return Vec{X: v.X, Y: v.Y}
}

// V2 converts to an sdfx vector.
func (v Vec) V2() v2.Vec {
	return v2.Vec{X: v.X, Y: v.Y}
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec {
	return Vec{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec {
	return Vec{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns v scaled by f.
func (v Vec) Mul(f float64) Vec {
	return Vec{X: v.X * f, Y: v.Y * f}
}

// Mid returns the midpoint between v and w.
func (v Vec) Mid(w Vec) Vec {
	return Vec{X: (v.X + w.X) * 0.5, Y: (v.Y + w.Y) * 0.5}
}

// Lerp blends linearly from v (t=0) to w (t=1).
// It is computed as v*(1-t) + w*t so both endpoints are reproduced exactly.
func (v Vec) Lerp(w Vec, t float64) Vec {
	return v.Mul(1 - t).Add(w.Mul(t))
}

// Lerp3 blends along the two segments v->p1 and p1->p2. The first half of
// t covers v->p1, the second half p1->p2; t=0.5 lands exactly on p1.
func (v Vec) Lerp3(p1, p2 Vec, t float64) Vec {
	if t < 0.5 {
		return v.Lerp(p1, t*2)
	}
	return p1.Lerp(p2, (t-0.5)*2)
}

// Snap rounds each axis independently to the nearest multiple of unit.
// Ties round toward positive infinity. A non-positive unit leaves v as is.
func (v Vec) Snap(unit float64) Vec {
	if unit <= 0 {
		return v
	}
	return Vec{X: snap(v.X, unit), Y: snap(v.Y, unit)}
}

func snap(x, unit float64) float64 {
	return math.Floor(x/unit+0.5) * unit
}

// Equal reports exact component equality.
func (v Vec) Equal(w Vec) bool {
	return v.X == w.X && v.Y == w.Y
}

// Length returns the euclidean length of v.
func (v Vec) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// String formats v as "x y", the form used in SVG path data.
func (v Vec) String() string {
	return FormatFloat(v.X) + " " + FormatFloat(v.Y)
}

// FormatFloat renders f in its shortest exact decimal form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
