// Package layout is a headless box model for canvases. It sizes nodes from
// their sockets and content, places socket points inside the node box and
// maps them to the screen through the canvas transform, so a canvas can be
// driven without a browser measuring elements.
package layout

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
)

// Metrics are the fixed sizes of the box model in world units.
type Metrics struct {
	SocketSize float64 `yaml:"socket_size" validate:"gt=0"`
	CharWidth  float64 `yaml:"char_width" validate:"gt=0"`
	LineHeight float64 `yaml:"line_height" validate:"gt=0"`
	MinWidth   float64 `yaml:"min_width" validate:"gte=0"`
}

// DefaultMetrics approximate the stylesheet of the web front end.
func DefaultMetrics() Metrics {
	return Metrics{
		SocketSize: 12,
		CharWidth:  7,
		LineHeight: 16,
		MinWidth:   80,
	}
}

// Layout implements graph.Measurer.
type Layout struct {
	Metrics Metrics

	// Offset is the untransformed screen position of the canvas panel.
	Offset geom.Vec

	// Viewport is the panel size in screen units.
	Viewport geom.Vec
}

var _ graph.Measurer = (*Layout)(nil)

// New returns a layout with default metrics.
func New(offset, viewport geom.Vec) *Layout {
	return &Layout{Metrics: DefaultMetrics(), Offset: offset, Viewport: viewport}
}

// Box is the computed shape of one node in world units.
type Box struct {
	Bounds  geom.Rect
	Content geom.Rect
	Sockets map[*graph.Socket]geom.Vec
}

// bands of a node, top to bottom.
type bands struct {
	top, middle, bottom float64
	left, right         float64
	width               float64
}

// Node computes the box of n. The node is a column of a top socket row, a
// middle band with the content between left and right socket columns, and a
// bottom socket row.
func (l *Layout) Node(n *graph.Node) Box {
	sp := spacing(n)
	b := l.bands(n, sp)

	origin := n.Position()
	height := b.top + b.middle + b.bottom
	box := Box{
		Bounds:  geom.RectXYWH(origin.X, origin.Y, b.width, height),
		Content: geom.RectXYWH(origin.X+b.left, origin.Y+b.top, b.width-b.left-b.right, b.middle),
		Sockets: make(map[*graph.Socket]geom.Vec),
	}

	row := func(side graph.Side, y float64) {
		ss := n.SocketsOn(side)
		for i, s := range ss {
			x := b.width * (float64(i) + 0.5) / float64(len(ss))
			box.Sockets[s] = origin.Add(geom.V(x, y))
		}
	}
	column := func(side graph.Side, x float64) {
		ss := n.SocketsOn(side)
		for i, s := range ss {
			y := b.top + b.middle*(float64(i)+0.5)/float64(len(ss))
			box.Sockets[s] = origin.Add(geom.V(x, y))
		}
	}

	row(graph.SideTop, sp+l.Metrics.SocketSize/2)
	row(graph.SideBottom, b.top+b.middle+b.bottom-sp-l.Metrics.SocketSize/2)
	column(graph.SideLeft, sp+l.Metrics.SocketSize/2)
	column(graph.SideRight, b.width-sp-l.Metrics.SocketSize/2)
	return box
}

func (l *Layout) bands(n *graph.Node, sp float64) bands {
	m := l.Metrics
	var b bands

	// A socket slot fits the point and its label side by side.
	slot := func(s *graph.Socket) float64 {
		return m.SocketSize + sp + m.CharWidth*float64(utf8.RuneCountInString(s.Label())) + sp
	}
	rowWidth := func(side graph.Side) float64 {
		w := 0.0
		for _, s := range n.SocketsOn(side) {
			w += slot(s)
		}
		return w + sp
	}
	colWidth := func(side graph.Side) float64 {
		w := 0.0
		for _, s := range n.SocketsOn(side) {
			w = math.Max(w, slot(s))
		}
		return w
	}
	rowHeight := m.SocketSize + 2*sp

	if len(n.SocketsOn(graph.SideTop)) > 0 {
		b.top = rowHeight
	}
	if len(n.SocketsOn(graph.SideBottom)) > 0 {
		b.bottom = rowHeight
	}
	b.left = colWidth(graph.SideLeft)
	b.right = colWidth(graph.SideRight)

	lines := contentLines(n.Content())
	textWidth := 0.0
	for _, line := range lines {
		textWidth = math.Max(textWidth, m.CharWidth*float64(utf8.RuneCountInString(line)))
	}
	b.middle = float64(len(lines))*m.LineHeight + 2*sp
	side := max(len(n.SocketsOn(graph.SideLeft)), len(n.SocketsOn(graph.SideRight)))
	b.middle = math.Max(b.middle, float64(side)*rowHeight)

	b.width = math.Max(m.MinWidth, b.left+textWidth+2*sp+b.right)
	b.width = math.Max(b.width, rowWidth(graph.SideTop))
	b.width = math.Max(b.width, rowWidth(graph.SideBottom))
	return b
}

// NodeBounds returns the world bounding box of n.
func (l *Layout) NodeBounds(n *graph.Node) geom.Rect {
	return l.Node(n).Bounds
}

// SocketCenter returns the world position of the socket point.
func (l *Layout) SocketCenter(s *graph.Socket) (geom.Vec, bool) {
	if s == nil || s.Node() == nil {
		return geom.Vec{}, false
	}
	p, ok := l.Node(s.Node()).Sockets[s]
	return p, ok
}

// SocketBounds reports the screen box of the socket point. Detached sockets
// and nodes outside a canvas are unmeasured.
func (l *Layout) SocketBounds(s *graph.Socket) (geom.Rect, bool) {
	if s == nil || s.Node() == nil || s.Node().Canvas() == nil {
		return geom.Rect{}, false
	}
	p, ok := l.SocketCenter(s)
	if !ok {
		return geom.Rect{}, false
	}
	t := s.Node().Canvas().Transform()
	c := t.ToScreen(p, l.Offset)
	half := geom.V(l.Metrics.SocketSize, l.Metrics.SocketSize).Mul(t.Scale / 2)
	return geom.Rect{Min: c.Sub(half), Max: c.Add(half)}, true
}

// SurfaceBounds reports the screen box of the transformed node surface. Its
// corner is where world (0, 0) lands.
func (l *Layout) SurfaceBounds(c *graph.Canvas) geom.Rect {
	t := c.Transform()
	corner := t.ToScreen(geom.Vec{}, l.Offset)
	return geom.Rect{Min: corner, Max: corner.Add(l.Viewport.Mul(t.Scale))}
}

// HitTest returns the topmost node under a screen point. Later nodes are
// drawn above earlier ones.
func (l *Layout) HitTest(c *graph.Canvas, screen geom.Vec) (*graph.Node, bool) {
	p := c.Transform().ToLocal(screen, l.Offset)
	nodes := c.Nodes()
	for i := len(nodes) - 1; i >= 0; i-- {
		if l.NodeBounds(nodes[i]).Contains(p) {
			return nodes[i], true
		}
	}
	return nil, false
}

// Bounds returns the union of every node box, or an empty rect.
func (l *Layout) Bounds(c *graph.Canvas) geom.Rect {
	var r geom.Rect
	for i, n := range c.Nodes() {
		nb := l.NodeBounds(n)
		if i == 0 {
			r = nb
			continue
		}
		r = r.Extend(nb)
	}
	return r
}

func spacing(n *graph.Node) float64 {
	if c := n.Canvas(); c != nil {
		return c.Theme().NodeSpacing
	}
	return 0
}

func contentLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
