package graph

import (
	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/theme"
	"github.com/chazu/nodeview/pkg/view"
)

// Measurer reports live layout. Implementations answer from whatever
// actually lays the canvas out (a DOM, a toolkit, a headless box model).
type Measurer interface {
	// SocketBounds returns the screen-space box of a socket's point.
	// ok is false when the socket has not been laid out.
	SocketBounds(s *Socket) (r geom.Rect, ok bool)

	// SurfaceBounds returns the screen-space box of the transformed
	// surface the nodes are placed on.
	SurfaceBounds(c *Canvas) geom.Rect
}

// Renderer receives visual updates. All calls happen synchronously inside
// the canvas operation that caused them.
type Renderer interface {
	PlaceNode(n *Node)
	RemoveNode(n *Node)
	DrawLink(l *Link)
	RemoveLink(l *Link)
	ApplyTransform(t view.Transform)
	ApplyTheme(th theme.Theme, nodes []*Node)
}

// NopRenderer ignores every update. Embed it to implement a subset.
type NopRenderer struct{}

func (NopRenderer) PlaceNode(*Node) {}
func (NopRenderer) RemoveNode(*Node) {}
func (NopRenderer) DrawLink(*Link) {}
func (NopRenderer) RemoveLink(*Link) {}
func (NopRenderer) ApplyTransform(view.Transform) {}
func (NopRenderer) ApplyTheme(theme.Theme, []*Node) {}

var _ Renderer = NopRenderer{}
