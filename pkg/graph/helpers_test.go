package graph_test

import (
	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
	"github.com/chazu/nodeview/pkg/theme"
	"github.com/chazu/nodeview/pkg/view"
)

// fakeMeasurer lays sockets out on a fixed 60x40 node box and maps them to
// the screen the way a CSS transformed surface would, with the transform
// origin at the surface corner.
type fakeMeasurer struct {
	offset geom.Vec // screen position of the canvas panel
	hidden map[*graph.Socket]bool
}

func newFakeMeasurer() *fakeMeasurer {
	return &fakeMeasurer{
		offset: geom.V(100, 50),
		hidden: make(map[*graph.Socket]bool),
	}
}

func (m *fakeMeasurer) local(s *graph.Socket) geom.Vec {
	p := s.Node().Position()
	i := float64(indexOnSide(s))
	switch s.Side() {
	case graph.SideTop:
		return p.Add(geom.V(10+20*i, 0))
	case graph.SideBottom:
		return p.Add(geom.V(10+20*i, 40))
	case graph.SideLeft:
		return p.Add(geom.V(0, 10+20*i))
	default:
		return p.Add(geom.V(60, 10+20*i))
	}
}

func (m *fakeMeasurer) SocketBounds(s *graph.Socket) (geom.Rect, bool) {
	if m.hidden[s] || s.Node() == nil || s.Node().Canvas() == nil {
		return geom.Rect{}, false
	}
	t := s.Node().Canvas().Transform()
	c := screen(t, m.local(s), m.offset)
	half := geom.V(5, 5).Mul(t.Scale)
	return geom.Rect{Min: c.Sub(half), Max: c.Add(half)}, true
}

func (m *fakeMeasurer) SurfaceBounds(c *graph.Canvas) geom.Rect {
	corner := screen(c.Transform(), geom.V(0, 0), m.offset)
	return geom.Rect{Min: corner, Max: corner.Add(geom.V(800, 600))}
}

func screen(t *view.Transform, local, offset geom.Vec) geom.Vec {
	return t.ToScreen(local, offset)
}

func indexOnSide(s *graph.Socket) int {
	for i, o := range s.Node().SocketsOn(s.Side()) {
		if o == s {
			return i
		}
	}
	return -1
}

// recorder counts renderer calls.
type recorder struct {
	placed     map[int]int
	drawn      map[int]int
	removed    []int
	unlinked   []int
	transforms int
	themes     []string
}

func newRecorder() *recorder {
	return &recorder{placed: make(map[int]int), drawn: make(map[int]int)}
}

func (r *recorder) PlaceNode(n *graph.Node) { r.placed[n.Index()]++ }
func (r *recorder) RemoveNode(n *graph.Node) { r.removed = append(r.removed, n.Index()) }
func (r *recorder) DrawLink(l *graph.Link) { r.drawn[l.ID()]++ }
func (r *recorder) RemoveLink(l *graph.Link) { r.unlinked = append(r.unlinked, l.ID()) }

func (r *recorder) ApplyTransform(view.Transform) { r.transforms++ }

func (r *recorder) ApplyTheme(th theme.Theme, _ []*graph.Node) {
	r.themes = append(r.themes, th.Name)
}

func (r *recorder) reset() {
	r.placed = make(map[int]int)
	r.drawn = make(map[int]int)
	r.transforms = 0
}

var _ graph.Renderer = (*recorder)(nil)
var _ graph.Measurer = (*fakeMeasurer)(nil)
