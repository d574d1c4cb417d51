package graph

import (
	"fmt"

	"github.com/chazu/nodeview/pkg/geom"
)

// Stop is one color stop of a link gradient.
type Stop struct {
	Offset string `json:"offset"`
	Color  string `json:"color"`
}

// Gradient tints a link stroke from its output color to its input color.
// It runs along the straight line From -> To in world coordinates, not
// along the curve. Stops[0] is always the output end.
type Gradient struct {
	ID       string
	From, To geom.Vec
	Stops    [2]Stop
}

// Link relates an output socket to an input socket. It owns neither.
type Link struct {
	id     int
	canvas *Canvas
	out    *Socket
	in     *Socket

	path     geom.Cubic
	gradient Gradient
	drawn    bool
	stale    bool
}

func newLink(c *Canvas, id int, out, in *Socket) *Link {
	return &Link{
		id:     id,
		canvas: c,
		out:    out,
		in:     in,
		gradient: Gradient{
			ID: fmt.Sprintf("nv-gradient-%s-%d", c.shortID(), id),
			Stops: [2]Stop{
				{Offset: "0%", Color: out.StopColor()},
				{Offset: "100%", Color: in.StopColor()},
			},
		},
	}
}

// ID is unique within the owning canvas.
func (l *Link) ID() int { return l.id }

// Out is the socket the link starts from.
func (l *Link) Out() *Socket { return l.out }

// In is the socket the link ends at.
func (l *Link) In() *Socket { return l.in }

// Path is the curve computed by the last successful Update.
func (l *Link) Path() geom.Cubic { return l.path }

// Gradient is the stroke gradient computed by the last successful Update.
func (l *Link) Gradient() Gradient { return l.gradient }

// Drawn reports whether the link has ever been computed successfully.
func (l *Link) Drawn() bool { return l.drawn }

// Stale reports whether the last Update could not measure an endpoint.
// A stale link keeps its previous geometry.
func (l *Link) Stale() bool { return l.stale }

// Touches reports whether n owns one of the link's sockets.
func (l *Link) Touches(n *Node) bool {
	return l.out.node == n || l.in.node == n
}

// Update recomputes the curve and gradient from scratch from both
// endpoints' live anchors. It returns false, leaving the previous geometry
// in place, when either endpoint cannot be resolved.
func (l *Link) Update(delta geom.Vec) bool {
	if l.canvas == nil {
		return false
	}
	r := l.canvas.resolver
	a, okA := r.Resolve(l.out, delta)
	b, okB := r.Resolve(l.in, delta)
	if !okA || !okB {
		l.stale = true
		return false
	}

	l.path = geom.Cubic{P0: a.Point, P1: a.Control, P2: b.Control, P3: b.Point}
	l.gradient.From = a.Point
	l.gradient.To = b.Point
	l.drawn = true
	l.stale = false
	return true
}

func (l *Link) String() string {
	return fmt.Sprintf("link %d (%v -> %v)", l.id, l.out, l.in)
}
