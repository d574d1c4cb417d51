package input

import "github.com/chazu/nodeview/pkg/geom"

// Modifier is a bit set of keyboard modifiers held during a pointer event.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Event is a pointer or wheel event reduced to what the canvas needs.
type Event struct {
	Pos       geom.Vec // screen coordinates
	DeltaY    float64  // wheel delta, zero for pointer events
	Modifiers Modifier

	defaultPrevented bool
}

// NewEvent returns a pointer event at (x, y).
func NewEvent(x, y float64) *Event {
	return &Event{Pos: geom.V(x, y)}
}

// NewWheelEvent returns a wheel event.
func NewWheelEvent(x, y, deltaY float64) *Event {
	return &Event{Pos: geom.V(x, y), DeltaY: deltaY}
}

// PreventDefault asks the event source to suppress its default handling.
func (e *Event) PreventDefault() {
	if e != nil {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e != nil && e.defaultPrevented
}

// Has reports whether all modifiers in m are held.
func (e *Event) Has(m Modifier) bool {
	return e != nil && e.Modifiers&m == m
}
