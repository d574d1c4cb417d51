// Package view holds the canvas transform space: the pan offset, zoom scale
// and transform origin shared by the link overlay and the node surface.
package view

import (
	"fmt"
	"math"

	"github.com/chazu/nodeview/pkg/geom"
)

const (
	MinScale = 0.125
	MaxScale = 4.0

	// ZoomRate converts wheel delta units to a scale change.
	ZoomRate = 0.001
)

// Transform is the world/screen mapping of one canvas.
//
// ToWorld deliberately ignores Pan: a point is only unscaled. Drag handling
// keeps an anchor offset computed in the same space, and socket anchors are
// measured relative to the transformed surface, so the pan cancels out.
type Transform struct {
	Pan    geom.Vec
	Scale  float64
	Origin geom.Vec
}

// NewTransform returns the identity transform.
func NewTransform() *Transform {
	return &Transform{Scale: 1}
}

// ToWorld converts a screen-space point or displacement into world units.
func (t *Transform) ToWorld(screen geom.Vec) geom.Vec {
	return screen.Mul(1 / t.Scale)
}

// ToScreen maps a point in surface-local world units to the screen, given
// the untransformed screen offset of the surface. It follows the CSS model
// of scale(s) translate(pan) around Origin.
func (t *Transform) ToScreen(local, surfaceOffset geom.Vec) geom.Vec {
	return surfaceOffset.Add(t.Origin).Add(local.Add(t.Pan).Sub(t.Origin).Mul(t.Scale))
}

// ToLocal inverts ToScreen.
func (t *Transform) ToLocal(screen, surfaceOffset geom.Vec) geom.Vec {
	return screen.Sub(surfaceOffset).Sub(t.Origin).Mul(1 / t.Scale).Add(t.Origin).Sub(t.Pan)
}

// Zoom applies a wheel delta and returns the new scale. Zoom pivots on the
// fixed Origin, not on the pointer.
func (t *Transform) Zoom(deltaY float64) float64 {
	return t.SetScale(t.Scale + -deltaY*ZoomRate)
}

// SetScale stores s clamped to [MinScale, MaxScale] and returns it. A NaN
// scale leaves the transform unchanged.
func (t *Transform) SetScale(s float64) float64 {
	if math.IsNaN(s) {
		s = t.Scale
		if math.IsNaN(s) {
			s = 1
		}
	}
	t.Scale = math.Min(math.Max(MinScale, s), MaxScale)
	return t.Scale
}

// Position returns the pan offset, so the canvas can be a drag target.
func (t *Transform) Position() geom.Vec {
	return t.Pan
}

// DragTo sets the pan offset. Canvas drags are never snapped.
func (t *Transform) DragTo(p geom.Vec) {
	t.Pan = p
}

// CSS renders the surface transform.
func (t *Transform) CSS() string {
	return fmt.Sprintf("scale(%s) translate(%spx, %spx)", ff(t.Scale), ff(t.Pan.X), ff(t.Pan.Y))
}

// OriginCSS renders the transform origin.
func (t *Transform) OriginCSS() string {
	return fmt.Sprintf("%spx %spx", ff(t.Origin.X), ff(t.Origin.Y))
}

// Grid returns the background tile size and offset for a grid of gridSize
// world units, so the background moves with the surfaces.
func (t *Transform) Grid(gridSize float64) (tile float64, offset geom.Vec) {
	return t.Scale * gridSize, t.Pan.Mul(t.Scale)
}

var ff = geom.FormatFloat
