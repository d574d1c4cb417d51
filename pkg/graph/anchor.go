package graph

import (
	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/input"
)

// TangentLength is how far a link's control point sits from its anchor,
// along the socket tangent.
const TangentLength = 60

// Anchor is where a link meets a socket, in world coordinates.
type Anchor struct {
	Point   geom.Vec
	Control geom.Vec
}

// AnchorResolver turns live socket measurements into link anchors.
type AnchorResolver struct {
	Space         input.Space
	Measure       Measurer
	TangentLength float64
}

// Resolve measures s and returns its anchor. delta is the screen offset of
// the node surface, subtracted before unscaling. ok is false when the socket
// cannot be measured; callers must skip drawing rather than use stale data.
func (r *AnchorResolver) Resolve(s *Socket, delta geom.Vec) (Anchor, bool) {
	if s == nil || s.node == nil || r.Measure == nil {
		return Anchor{}, false
	}
	box, ok := r.Measure.SocketBounds(s)
	if !ok {
		return Anchor{}, false
	}
	p := r.Space.ToWorld(box.Center().Sub(delta))
	return Anchor{
		Point:   p,
		Control: p.Add(s.tangent.Mul(r.TangentLength)),
	}, true
}
