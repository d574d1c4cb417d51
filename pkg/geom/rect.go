package geom

import (
	"github.com/deadsy/sdfx/sdf"
)

// Rect is an axis-aligned box. It is the shape measurements are reported in.
type Rect struct {
	Min, Max Vec
}

// RectXYWH builds a Rect from its top-left corner and size.
func RectXYWH(x, y, w, h float64) Rect {
	return Rect{Min: V(x, y), Max: V(x+w, y+h)}
}

// RectFromBox2 converts an sdfx box.
func RectFromBox2(b sdf.Box2) Rect {
	return Rect{Min: FromV2(b.Min), Max: FromV2(b.Max)}
}

// Box2 converts to an sdfx box.
func (r Rect) Box2() sdf.Box2 {
	return sdf.Box2{Min: r.Min.V2(), Max: r.Max.V2()}
}

// Center returns the middle of the box.
func (r Rect) Center() Vec {
	return FromV2(r.Box2().Center())
}

// Size returns width and height as a vector.
func (r Rect) Size() Vec {
	return FromV2(r.Box2().Size())
}

// Extend returns the smallest box enclosing r and o.
func (r Rect) Extend(o Rect) Rect {
	return RectFromBox2(r.Box2().Extend(o.Box2()))
}

// Translate moves the box by d.
func (r Rect) Translate(d Vec) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Contains reports whether p lies inside or on the box.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Empty reports whether the box has no area.
func (r Rect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}
