// Package svg draws a canvas as a standalone SVG picture in world
// coordinates: the themed grid background, node boxes with their socket
// points and labels, and every drawn link stroked with its gradient.
package svg

import (
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	svgo "github.com/ajstarks/svgo"
	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
	"github.com/chazu/nodeview/pkg/layout"
)

const (
	// Margin is the blank border around the drawing in world units.
	Margin = 40

	LinkWidth = 3
	FontSize  = 12

	gridID = "nv-grid"
)

// errWriter remembers the first write error. svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}

// Write renders c to w, sizing nodes with l. The picture is drawn in world
// coordinates; the canvas scale only sets its displayed size.
func Write(w io.Writer, c *graph.Canvas, l *layout.Layout) error {
	ew := &errWriter{w: w}
	canvas := svgo.New(ew)
	th := c.Theme()

	view := viewBox(c, l)
	minX, minY := int(math.Floor(view.Min.X)), int(math.Floor(view.Min.Y))
	size := view.Size()
	width, height := int(math.Ceil(size.X)), int(math.Ceil(size.Y))
	scale := c.Transform().Scale
	canvas.Startview(int(math.Ceil(size.X*scale)), int(math.Ceil(size.Y*scale)), minX, minY, width, height)

	canvas.Def()
	grid := th.GridSize
	dot := grid * th.GridPointPercent / 100
	fmt.Fprintf(canvas.Writer, `<pattern id="%s" width="%s" height="%s" patternUnits="userSpaceOnUse"><rect width="%s" height="%s" fill="%s"/></pattern>`+"\n",
		gridID, ff(grid), ff(grid), ff(dot), ff(dot), attr(th.GridColor))
	for _, link := range c.Links() {
		if link.Drawn() {
			gradient(canvas.Writer, link.Gradient())
		}
	}
	canvas.DefEnd()

	canvas.Rect(minX, minY, width, height, "fill:"+th.BackgroundColor)
	canvas.Rect(minX, minY, width, height, "fill:url(#"+gridID+")")

	canvas.Gid("links")
	for _, link := range c.Links() {
		if !link.Drawn() {
			continue
		}
		canvas.Path(link.Path().PathData(),
			fmt.Sprintf("fill:none;stroke:url(#%s);stroke-width:%d", link.Gradient().ID, LinkWidth))
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, n := range c.Nodes() {
		node(canvas, l, n)
	}
	canvas.Gend()

	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("writing svg: %w", ew.err)
	}
	return nil
}

func node(canvas *svgo.SVG, l *layout.Layout, n *graph.Node) {
	th := n.Canvas().Theme()
	box := l.Node(n)
	r := int(th.NodeBorderRadius)

	canvas.Gid(fmt.Sprintf("node-%d", n.Index()))
	x, y, w, h := ints(box.Bounds)
	canvas.Roundrect(x, y, w, h, r, r, "fill:"+th.NodeSocketBackgroundColor)
	if !box.Content.Empty() {
		cx, cy, cw, ch := ints(box.Content)
		canvas.Rect(cx, cy, cw, ch, "fill:"+th.NodeContentBackgroundColor)
	}

	text := fmt.Sprintf("fill:%s;font-size:%dpx;font-family:sans-serif", th.NodeTextColor, FontSize)
	for i, line := range splitLines(n.Content()) {
		canvas.Text(int(box.Content.Min.X+th.NodeSpacing), int(box.Content.Min.Y+th.NodeSpacing)+(i+1)*FontSize,
			line, text)
	}

	radius := int(l.Metrics.SocketSize / 2)
	for _, side := range graph.Sides {
		for _, s := range n.SocketsOn(side) {
			p := box.Sockets[s]
			color := s.Color()
			if color == "" {
				color = th.NodeDefaultSocketColor
			}
			canvas.Circle(int(p.X), int(p.Y), radius, "fill:"+color)
			if s.Label() != "" {
				canvas.Text(int(p.X)+radius+int(th.NodeSpacing)/2, int(p.Y)+FontSize/3,
					s.Label(), text)
			}
		}
	}
	canvas.Gend()
}

// gradient writes a linearGradient in user space along the link's chord.
// svgo only offers bounding-box percentages.
func gradient(w io.Writer, g graph.Gradient) {
	fmt.Fprintf(w, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
		g.ID, ff(g.From.X), ff(g.From.Y), ff(g.To.X), ff(g.To.Y))
	for _, s := range g.Stops {
		fmt.Fprintf(w, `<stop offset="%s" stop-color="%s"/>`+"\n", s.Offset, attr(s.Color))
	}
	fmt.Fprintln(w, `</linearGradient>`)
}

// viewBox encloses every node and link with a margin.
func viewBox(c *graph.Canvas, l *layout.Layout) geom.Rect {
	r := l.Bounds(c)
	first := len(c.Nodes()) == 0
	for _, link := range c.Links() {
		if !link.Drawn() {
			continue
		}
		if first {
			r, first = link.Path().Hull(), false
			continue
		}
		r = r.Extend(link.Path().Hull())
	}
	m := geom.V(Margin, Margin)
	return geom.Rect{Min: r.Min.Sub(m), Max: r.Max.Add(m)}
}

func ints(r geom.Rect) (x, y, w, h int) {
	s := r.Size()
	return int(r.Min.X), int(r.Min.Y), int(s.X), int(s.Y)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func attr(s string) string {
	return html.EscapeString(s)
}

var ff = geom.FormatFloat
