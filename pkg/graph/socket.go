package graph

import (
	"fmt"
	"strings"

	"github.com/chazu/nodeview/pkg/geom"
)

// Side is the edge of a node a socket is attached to.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

// Sides lists every side in layout order.
var Sides = []Side{SideTop, SideBottom, SideLeft, SideRight}

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseSide converts a side name.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(name) {
	case "top":
		return SideTop, nil
	case "bottom":
		return SideBottom, nil
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	}
	return 0, fmt.Errorf("invalid side %q, expected top, bottom, left or right", name)
}

// Role returns the socket role implied by the side: top and left hold
// inputs, bottom and right hold outputs.
func (s Side) Role() Role {
	if s == SideTop || s == SideLeft {
		return RoleIn
	}
	return RoleOut
}

// Tangent is the outward unit vector of the side.
func (s Side) Tangent() geom.Vec {
	switch s {
	case SideTop:
		return geom.V(0, -1)
	case SideBottom:
		return geom.V(0, 1)
	case SideLeft:
		return geom.V(-1, 0)
	case SideRight:
		return geom.V(1, 0)
	}
	return geom.Vec{}
}

// Role tells inputs from outputs.
type Role int

const (
	RoleIn Role = iota
	RoleOut
)

func (r Role) String() string {
	if r == RoleOut {
		return "out"
	}
	return "in"
}

// DefaultStopColor is the gradient color of a socket without its own color.
const DefaultStopColor = "black"

// Socket is a connection point owned by exactly one node.
type Socket struct {
	node    *Node
	side    Side
	role    Role
	label   string
	color   string
	tangent geom.Vec
}

func (s *Socket) Node() *Node { return s.node }
func (s *Socket) Side() Side { return s.side }
func (s *Socket) Role() Role { return s.role }
func (s *Socket) Label() string { return s.label }
func (s *Socket) Color() string { return s.color }
func (s *Socket) Tangent() geom.Vec { return s.tangent }

// StopColor is the color this socket contributes to a link gradient.
func (s *Socket) StopColor() string {
	if s.color == "" {
		return DefaultStopColor
	}
	return s.color
}

// StopOffset is where this socket's color sits on a link gradient:
// outputs at the start, inputs at the end.
func (s *Socket) StopOffset() string {
	if s.role == RoleOut {
		return "0%"
	}
	return "100%"
}

// Index returns the position of the socket among its node's sockets of the
// same role, or -1 once detached.
func (s *Socket) Index() int {
	if s.node == nil {
		return -1
	}
	for i, o := range s.node.sockets[s.role] {
		if o == s {
			return i
		}
	}
	return -1
}

func (s *Socket) String() string {
	if s.node == nil {
		return fmt.Sprintf("socket(%s %s, detached)", s.side, s.role)
	}
	return fmt.Sprintf("socket(node %d %s[%d])", s.node.index, s.role, s.Index())
}
