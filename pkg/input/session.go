// Package input implements the grab/move/release drag cycle shared by canvas
// panning and node moving. A Session holds at most one active drag; share a
// single Session between canvases to make the lock global.
package input

import (
	"github.com/chazu/nodeview/pkg/geom"
)

// Space converts pointer coordinates into the space drag targets live in.
type Space interface {
	ToWorld(screen geom.Vec) geom.Vec
}

// Target is anything that can be dragged.
type Target interface {
	Position() geom.Vec
	DragTo(p geom.Vec)
}

// State of a Session.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Session is the drag lock and the state of the drag holding it.
type Session struct {
	state  State
	space  Space
	target Target
	anchor geom.Vec // pointer world position minus target position at grab
	start  geom.Vec // target position at grab, restored by Cancel
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Active reports whether a drag holds the lock.
func (s *Session) Active() bool {
	return s.state == Dragging
}

// Target returns the target being dragged, or nil.
func (s *Session) Target() Target {
	return s.target
}

// AnchorOffset returns the grab-time offset while dragging.
func (s *Session) AnchorOffset() (geom.Vec, bool) {
	if s.state != Dragging {
		return geom.Vec{}, false
	}
	return s.anchor, true
}

// Grab starts dragging t from the screen point p, converted through space.
// If a drag is already active the call is a silent no-op and returns false.
func (s *Session) Grab(space Space, t Target, p geom.Vec) bool {
	if s.state == Dragging || t == nil || space == nil {
		return false
	}
	s.space = space
	s.target = t
	s.start = t.Position()
	s.anchor = space.ToWorld(p).Sub(s.start)
	s.state = Dragging
	return true
}

// Move drags the target so that the grab-time offset to the pointer is kept.
// It returns false when no drag is active.
func (s *Session) Move(p geom.Vec) bool {
	if s.state != Dragging {
		return false
	}
	s.target.DragTo(s.space.ToWorld(p).Sub(s.anchor))
	return true
}

// Release ends the drag and frees the lock. It is safe to call at any time,
// from any element: the session is not tied to the grabbing element.
func (s *Session) Release() {
	s.reset()
}

// Cancel ends the drag, moving the target back to where it was grabbed.
// It returns false when no drag was active.
func (s *Session) Cancel() bool {
	if s.state != Dragging {
		return false
	}
	t, start := s.target, s.start
	s.reset()
	t.DragTo(start)
	return true
}

func (s *Session) reset() {
	s.state = Idle
	s.space = nil
	s.target = nil
	s.anchor = geom.Vec{}
	s.start = geom.Vec{}
}
