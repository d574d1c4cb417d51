package graph

import (
	"github.com/chazu/nodeview/pkg/geom"
	"github.com/samber/lo"
)

// GridUnit is the fixed snap grid for node positions, independent of the
// theme's visual grid.
const GridUnit = 10

// Node is a draggable box carrying sockets on its four sides.
type Node struct {
	index    int
	canvas   *Canvas
	position geom.Vec
	content  string
	sockets  map[Role][]*Socket
	bySide   map[Side][]*Socket
	links    []*Link
}

func newNode(c *Canvas, index int) *Node {
	return &Node{
		index:   index,
		canvas:  c,
		sockets: make(map[Role][]*Socket),
		bySide:  make(map[Side][]*Socket),
	}
}

// Index is the node's insertion order in its canvas. It never changes and is
// never reused.
func (n *Node) Index() int { return n.index }

// Canvas returns the owning canvas, or nil once the node was removed.
func (n *Node) Canvas() *Canvas { return n.canvas }

// Position returns the snapped world position.
func (n *Node) Position() geom.Vec { return n.position }

// Content is the text shown inside the node.
func (n *Node) Content() string { return n.content }

// SetContent replaces the node text and asks the renderer to re-place the
// node, since its size may have changed.
func (n *Node) SetContent(text string) {
	n.content = text
	n.refresh()
}

// SetPosition snaps p to GridUnit, stores it and recomputes every link
// registered on the node.
func (n *Node) SetPosition(p geom.Vec) {
	n.position = p.Snap(GridUnit)
	n.refresh()
}

// DragTo implements input.Target.
func (n *Node) DragTo(p geom.Vec) {
	n.SetPosition(p)
}

// AddSocket attaches a socket to the given side. The side decides the role
// and the tangent. An empty color means the theme default.
func (n *Node) AddSocket(side Side, label, color string) *Socket {
	s := &Socket{
		node:    n,
		side:    side,
		role:    side.Role(),
		label:   label,
		color:   color,
		tangent: side.Tangent(),
	}
	n.sockets[s.role] = append(n.sockets[s.role], s)
	n.bySide[side] = append(n.bySide[side], s)
	n.refresh()
	return s
}

// Inputs returns the input sockets in insertion order.
func (n *Node) Inputs() []*Socket { return n.sockets[RoleIn] }

// Outputs returns the output sockets in insertion order.
func (n *Node) Outputs() []*Socket { return n.sockets[RoleOut] }

// Input returns the i-th input socket.
func (n *Node) Input(i int) (*Socket, bool) { return at(n.sockets[RoleIn], i) }

// Output returns the i-th output socket.
func (n *Node) Output(i int) (*Socket, bool) { return at(n.sockets[RoleOut], i) }

// SocketsOn returns the sockets attached to one side, in insertion order.
func (n *Node) SocketsOn(side Side) []*Socket { return n.bySide[side] }

// Links returns the links touching this node.
func (n *Node) Links() []*Link { return n.links }

// UpdateLinks recomputes every link touching this node and hands the ones
// that could be resolved to the renderer.
func (n *Node) UpdateLinks() {
	if n.canvas == nil {
		return
	}
	delta := n.canvas.delta()
	for _, l := range n.links {
		n.canvas.redraw(l, delta)
	}
}

func (n *Node) refresh() {
	if n.canvas == nil {
		return
	}
	n.canvas.render.PlaceNode(n)
	n.UpdateLinks()
}

func (n *Node) attach(l *Link) {
	if !lo.Contains(n.links, l) {
		n.links = append(n.links, l)
	}
}

func (n *Node) detach(l *Link) {
	n.links = lo.Without(n.links, l)
}

func at(s []*Socket, i int) (*Socket, bool) {
	if i < 0 || i >= len(s) {
		return nil, false
	}
	return s[i], true
}
