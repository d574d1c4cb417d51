package main

import (
	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
	"github.com/chazu/nodeview/pkg/theme"
)

// Frame is the JSON-serializable picture of the canvas sent to the
// frontend. Node and socket coordinates are world units on the transformed
// surface; link paths are in the same space.
type Frame struct {
	Theme      theme.Theme       `json:"theme"`
	Transform  TransformData     `json:"transform"`
	Background map[string]string `json:"background"`
	Drag       string            `json:"drag"`
	Nodes      []NodeData        `json:"nodes"`
	Links      []LinkData        `json:"links"`
	Changes    ChangeSet         `json:"changes"`
}

// TransformData carries the surface transform as CSS and as numbers.
type TransformData struct {
	CSS    string  `json:"css"`
	Origin string  `json:"origin"`
	Scale  float64 `json:"scale"`
	PanX   float64 `json:"panX"`
	PanY   float64 `json:"panY"`
}

// NodeData is one node box.
type NodeData struct {
	Index   int          `json:"index"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Width   float64      `json:"width"`
	Height  float64      `json:"height"`
	Content string       `json:"content"`
	Sockets []SocketData `json:"sockets"`
}

// SocketData is one socket point.
type SocketData struct {
	Side  string  `json:"side"`
	Role  string  `json:"role"`
	Label string  `json:"label"`
	Color string  `json:"color"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// LinkData is one link curve.
type LinkData struct {
	ID       int          `json:"id"`
	Path     string       `json:"path"`
	Stale    bool         `json:"stale"`
	Gradient GradientData `json:"gradient"`
}

// GradientData is a link's linear gradient in user space.
type GradientData struct {
	ID    string       `json:"id"`
	X1    float64      `json:"x1"`
	Y1    float64      `json:"y1"`
	X2    float64      `json:"x2"`
	Y2    float64      `json:"y2"`
	Stops []graph.Stop `json:"stops"`
}

func (a *App) frame() Frame {
	c := a.canvas
	t := c.Transform()
	th := c.Theme()
	tile, offset := t.Grid(th.GridSize)

	f := Frame{
		Theme: th,
		Transform: TransformData{
			CSS:    t.CSS(),
			Origin: t.OriginCSS(),
			Scale:  t.Scale,
			PanX:   t.Pan.X,
			PanY:   t.Pan.Y,
		},
		Background: th.BackgroundStyle(tile, offset),
		Drag:       a.session.State().String(),
		Nodes:      make([]NodeData, 0, len(c.Nodes())),
		Links:      make([]LinkData, 0, len(c.Links())),
		Changes:    a.changes.set(),
	}

	for _, n := range c.Nodes() {
		box := a.layout.Node(n)
		size := box.Bounds.Size()
		nd := NodeData{
			Index:   n.Index(),
			X:       box.Bounds.Min.X,
			Y:       box.Bounds.Min.Y,
			Width:   size.X,
			Height:  size.Y,
			Content: n.Content(),
			Sockets: []SocketData{},
		}
		for _, side := range graph.Sides {
			for _, s := range n.SocketsOn(side) {
				p := box.Sockets[s]
				nd.Sockets = append(nd.Sockets, socketData(s, p, th))
			}
		}
		f.Nodes = append(f.Nodes, nd)
	}

	for _, l := range c.Links() {
		if !l.Drawn() {
			continue
		}
		g := l.Gradient()
		f.Links = append(f.Links, LinkData{
			ID:    l.ID(),
			Path:  l.Path().PathData(),
			Stale: l.Stale(),
			Gradient: GradientData{
				ID:    g.ID,
				X1:    g.From.X,
				Y1:    g.From.Y,
				X2:    g.To.X,
				Y2:    g.To.Y,
				Stops: g.Stops[:],
			},
		})
	}
	return f
}

func socketData(s *graph.Socket, p geom.Vec, th theme.Theme) SocketData {
	color := s.Color()
	if color == "" {
		color = th.NodeDefaultSocketColor
	}
	return SocketData{
		Side:  s.Side().String(),
		Role:  s.Role().String(),
		Label: s.Label(),
		Color: color,
		X:     p.X,
		Y:     p.Y,
	}
}
