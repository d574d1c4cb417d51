package graph

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/input"
	"github.com/chazu/nodeview/pkg/theme"
	"github.com/chazu/nodeview/pkg/view"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var (
	ErrNilSocket     = errors.New("graph: nil socket")
	ErrSelfLink      = errors.New("graph: cannot link a socket to itself")
	ErrDetached      = errors.New("graph: socket belongs to a removed node")
	ErrForeignSocket = errors.New("graph: socket belongs to another canvas")
)

// Canvas owns nodes and links, the transform space they are drawn in and the
// drag session that moves them.
type Canvas struct {
	id       uuid.UUID
	nodes    []*Node
	links    []*Link
	nextNode int
	nextLink int

	space    *view.Transform
	drag     *input.Session
	resolver *AnchorResolver
	measure  Measurer
	render   Renderer
	theme    theme.Theme
	logger   *log.Logger
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithRenderer sets the renderer receiving visual updates.
func WithRenderer(r Renderer) Option {
	return func(c *Canvas) { c.render = r }
}

// WithTheme sets the initial theme.
func WithTheme(t theme.Theme) Option {
	return func(c *Canvas) { c.theme = t }
}

// WithSession makes the canvas use a shared drag session. Canvases sharing a
// session can never be dragged at the same time.
func WithSession(s *input.Session) Option {
	return func(c *Canvas) { c.drag = s }
}

// WithLogger sets where degraded geometry is reported.
func WithLogger(l *log.Logger) Option {
	return func(c *Canvas) { c.logger = l }
}

// New creates an empty canvas measured by m.
func New(m Measurer, opts ...Option) *Canvas {
	c := &Canvas{
		id:      uuid.New(),
		space:   view.NewTransform(),
		measure: m,
		render:  NopRenderer{},
		theme:   theme.Test,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.drag == nil {
		c.drag = input.NewSession()
	}
	c.resolver = &AnchorResolver{
		Space:         c.space,
		Measure:       m,
		TangentLength: TangentLength,
	}
	c.UpdateTransform()
	return c
}

// ID identifies the canvas; it namespaces gradient element ids.
func (c *Canvas) ID() uuid.UUID { return c.id }

func (c *Canvas) shortID() string {
	return c.id.String()[:8]
}

// Transform exposes the transform space.
func (c *Canvas) Transform() *view.Transform { return c.space }

// Session exposes the drag session.
func (c *Canvas) Session() *input.Session { return c.drag }

// Theme returns the current theme.
func (c *Canvas) Theme() theme.Theme { return c.theme }

// SetTheme swaps the theme and refreshes the whole canvas. Node and link
// geometry is recomputed but not changed by the theme itself.
func (c *Canvas) SetTheme(t theme.Theme) {
	c.theme = t
	c.UpdateTransform()
}

// Nodes returns the live nodes in insertion order.
func (c *Canvas) Nodes() []*Node { return c.nodes }

// Links returns the live links in insertion order.
func (c *Canvas) Links() []*Link { return c.links }

// Node looks a node up by index.
func (c *Canvas) Node(index int) (*Node, bool) {
	return lo.Find(c.nodes, func(n *Node) bool { return n.index == index })
}

// AddNode creates a node at p, snapped to the position grid.
func (c *Canvas) AddNode(p geom.Vec) *Node {
	n := newNode(c, c.nextNode)
	c.nextNode++
	c.nodes = append(c.nodes, n)
	n.SetPosition(p)
	return n
}

// AddLink connects two sockets. The output socket becomes the gradient
// start whatever the argument order; when both sockets share a role, a is
// treated as the start. Linking the same pair twice returns the existing
// link.
func (c *Canvas) AddLink(a, b *Socket) (*Link, error) {
	if a == nil || b == nil {
		return nil, ErrNilSocket
	}
	if a == b {
		return nil, ErrSelfLink
	}
	for _, s := range []*Socket{a, b} {
		if s.node == nil || s.node.canvas == nil {
			return nil, ErrDetached
		}
		if s.node.canvas != c {
			return nil, ErrForeignSocket
		}
	}

	out, in := a, b
	if a.role == RoleIn && b.role == RoleOut {
		out, in = b, a
	}
	if l, ok := lo.Find(c.links, func(l *Link) bool { return l.out == out && l.in == in }); ok {
		return l, nil
	}

	l := newLink(c, c.nextLink, out, in)
	c.nextLink++
	c.links = append(c.links, l)
	out.node.attach(l)
	in.node.attach(l)
	c.redraw(l, c.delta())
	return l, nil
}

// RemoveLink detaches l from both endpoint nodes and drops it.
func (c *Canvas) RemoveLink(l *Link) {
	if l == nil || l.canvas != c {
		return
	}
	l.out.node.detach(l)
	l.in.node.detach(l)
	c.links = lo.Without(c.links, l)
	l.canvas = nil
	c.render.RemoveLink(l)
}

// RemoveNode drops n and every link touching it. If n is being dragged the
// drag is released.
func (c *Canvas) RemoveNode(n *Node) {
	if n == nil || n.canvas != c {
		return
	}
	for _, l := range append([]*Link(nil), n.links...) {
		c.RemoveLink(l)
	}
	if c.drag.Target() == input.Target(n) {
		c.drag.Release()
	}
	c.nodes = lo.Without(c.nodes, n)
	n.canvas = nil
	for _, s := range n.bySide {
		for _, sock := range s {
			sock.node = nil
		}
	}
	c.render.RemoveNode(n)
}

// UpdateTransform pushes the transform and theme to the renderer and
// recomputes every link.
func (c *Canvas) UpdateTransform() {
	c.render.ApplyTransform(*c.space)
	c.render.ApplyTheme(c.theme, c.nodes)
	delta := c.delta()
	for _, l := range c.links {
		c.redraw(l, delta)
	}
}

// ---------------------------------------------------------------------------
// Pointer handling
// ---------------------------------------------------------------------------

// PointerDown starts a drag. hit is the node whose content received the
// press, or nil for the empty canvas. Like a bubbling DOM event, a press on
// a node also reaches the canvas, whose grab is then refused by the lock.
func (c *Canvas) PointerDown(ev *input.Event, hit *Node) {
	if hit != nil && hit.canvas == c {
		ev.PreventDefault()
		c.drag.Grab(c.space, hit, ev.Pos)
	}
	c.GrabCanvas(ev)
}

// GrabCanvas starts panning unless a drag is already active.
func (c *Canvas) GrabCanvas(ev *input.Event) bool {
	if c.drag.Active() {
		return false
	}
	ev.PreventDefault()
	return c.drag.Grab(c.space, panTarget{c}, ev.Pos)
}

// PointerMove continues the active drag, if any.
func (c *Canvas) PointerMove(ev *input.Event) {
	if !c.drag.Active() {
		return
	}
	ev.PreventDefault()
	c.drag.Move(ev.Pos)
}

// PointerUp ends the active drag. It must be delivered for every pointer
// release, wherever it happened.
func (c *Canvas) PointerUp(ev *input.Event) {
	c.drag.Release()
}

// CancelDrag aborts the active drag and puts its target back.
func (c *Canvas) CancelDrag() bool {
	return c.drag.Cancel()
}

// Wheel zooms around the fixed transform origin.
func (c *Canvas) Wheel(ev *input.Event) {
	ev.PreventDefault()
	c.space.Zoom(ev.DeltaY)
	c.UpdateTransform()
}

// panTarget drags the canvas pan offset.
type panTarget struct{ c *Canvas }

func (p panTarget) Position() geom.Vec { return p.c.space.Position() }

func (p panTarget) DragTo(v geom.Vec) {
	p.c.space.DragTo(v)
	p.c.UpdateTransform()
}

// ---------------------------------------------------------------------------
// Geometry refresh
// ---------------------------------------------------------------------------

func (c *Canvas) delta() geom.Vec {
	if c.measure == nil {
		return geom.Vec{}
	}
	return c.measure.SurfaceBounds(c).Min
}

func (c *Canvas) redraw(l *Link, delta geom.Vec) {
	if !l.Update(delta) {
		c.logger.Printf("link %d: endpoint not measured, keeping previous geometry", l.id)
		return
	}
	c.render.DrawLink(l)
}

func (c *Canvas) String() string {
	return fmt.Sprintf("canvas %s (%d nodes, %d links)", c.shortID(), len(c.nodes), len(c.links))
}
