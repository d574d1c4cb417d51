// Package scene describes a node graph as plain data: nodes with sockets,
// links between sockets addressed by position, and the theme to use. A
// Scene is what a script evaluates to; Apply builds it into a live canvas.
package scene

import (
	"fmt"

	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
)

// SocketSpec describes one socket.
type SocketSpec struct {
	Side  graph.Side `json:"side"`
	Label string     `json:"label,omitempty"`
	Color string     `json:"color,omitempty"`
}

// NodeSpec describes one node.
type NodeSpec struct {
	Position geom.Vec     `json:"position"`
	Content  string       `json:"content,omitempty"`
	Sockets  []SocketSpec `json:"sockets,omitempty"`
}

// SocketRef addresses a socket by node, role and index within the role.
type SocketRef struct {
	Node  int        `json:"node"`
	Role  graph.Role `json:"role"`
	Index int        `json:"index"`
}

func (r SocketRef) String() string {
	return fmt.Sprintf("node %d %s[%d]", r.Node, r.Role, r.Index)
}

// LinkSpec describes a link between two sockets.
type LinkSpec struct {
	From SocketRef `json:"from"`
	To   SocketRef `json:"to"`
}

// Scene is a complete graph description.
type Scene struct {
	Nodes []NodeSpec `json:"nodes"`
	Links []LinkSpec `json:"links"`
	Theme string     `json:"theme,omitempty"`
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddNode appends a node and returns its index.
func (s *Scene) AddNode(p geom.Vec) int {
	s.Nodes = append(s.Nodes, NodeSpec{Position: p})
	return len(s.Nodes) - 1
}

// AddSocket appends a socket to node i and returns a reference to it.
func (s *Scene) AddSocket(i int, spec SocketSpec) (SocketRef, error) {
	if i < 0 || i >= len(s.Nodes) {
		return SocketRef{}, fmt.Errorf("no node %d", i)
	}
	n := &s.Nodes[i]
	role := spec.Side.Role()
	idx := 0
	for _, o := range n.Sockets {
		if o.Side.Role() == role {
			idx++
		}
	}
	n.Sockets = append(n.Sockets, spec)
	return SocketRef{Node: i, Role: role, Index: idx}, nil
}

// SetContent sets the text of node i.
func (s *Scene) SetContent(i int, text string) error {
	if i < 0 || i >= len(s.Nodes) {
		return fmt.Errorf("no node %d", i)
	}
	s.Nodes[i].Content = text
	return nil
}

// Ref resolves a socket reference against the scene.
func (s *Scene) Ref(node int, role graph.Role, index int) (SocketRef, error) {
	if node < 0 || node >= len(s.Nodes) {
		return SocketRef{}, fmt.Errorf("no node %d", node)
	}
	count := 0
	for _, o := range s.Nodes[node].Sockets {
		if o.Side.Role() == role {
			count++
		}
	}
	if index < 0 || index >= count {
		return SocketRef{}, fmt.Errorf("node %d has %d %s sockets, no index %d", node, count, role, index)
	}
	return SocketRef{Node: node, Role: role, Index: index}, nil
}

// AddLink appends a link.
func (s *Scene) AddLink(from, to SocketRef) {
	s.Links = append(s.Links, LinkSpec{From: from, To: to})
}

// NodeCount returns the number of nodes.
func (s *Scene) NodeCount() int {
	return len(s.Nodes)
}

// Apply builds the scene into c, in order: every node with its sockets and
// content, then every link. It returns the created nodes indexed like
// s.Nodes. Theme selection is left to the caller.
func (s *Scene) Apply(c *graph.Canvas) ([]*graph.Node, error) {
	nodes := make([]*graph.Node, 0, len(s.Nodes))
	for _, spec := range s.Nodes {
		n := c.AddNode(spec.Position)
		for _, sock := range spec.Sockets {
			n.AddSocket(sock.Side, sock.Label, sock.Color)
		}
		if spec.Content != "" {
			n.SetContent(spec.Content)
		}
		nodes = append(nodes, n)
	}

	for i, ls := range s.Links {
		from, err := resolve(nodes, ls.From)
		if err != nil {
			return nodes, fmt.Errorf("link %d: from: %w", i, err)
		}
		to, err := resolve(nodes, ls.To)
		if err != nil {
			return nodes, fmt.Errorf("link %d: to: %w", i, err)
		}
		if _, err := c.AddLink(from, to); err != nil {
			return nodes, fmt.Errorf("link %d: %w", i, err)
		}
	}
	return nodes, nil
}

func resolve(nodes []*graph.Node, r SocketRef) (*graph.Socket, error) {
	if r.Node < 0 || r.Node >= len(nodes) {
		return nil, fmt.Errorf("no node %d", r.Node)
	}
	var (
		s  *graph.Socket
		ok bool
	)
	if r.Role == graph.RoleOut {
		s, ok = nodes[r.Node].Output(r.Index)
	} else {
		s, ok = nodes[r.Node].Input(r.Index)
	}
	if !ok {
		return nil, fmt.Errorf("no socket %s", r)
	}
	return s, nil
}
