package svg_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
	"github.com/chazu/nodeview/pkg/layout"
	"github.com/chazu/nodeview/pkg/svg"
	"github.com/chazu/nodeview/pkg/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoNodes(t *testing.T) (*layout.Layout, *graph.Canvas) {
	t.Helper()
	l := layout.New(geom.V(0, 0), geom.V(800, 600))
	c := graph.New(l, graph.WithTheme(theme.Dark))

	a := c.AddNode(geom.V(50, 50))
	out := a.AddSocket(graph.SideBottom, "Out", "red")
	b := c.AddNode(geom.V(200, 200))
	in := b.AddSocket(graph.SideTop, "In", "")
	b.SetContent("x < y")

	_, err := c.AddLink(in, out)
	require.NoError(t, err)
	return l, c
}

func TestWrite(t *testing.T) {
	l, c := twoNodes(t)

	var buf bytes.Buffer
	require.NoError(t, svg.Write(&buf, c, l))
	out := buf.String()

	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
	assert.Contains(t, out, `d="M90 80 C90 140 240 154 240 214"`)
	assert.Contains(t, out, `gradientUnits="userSpaceOnUse" x1="90" y1="80" x2="240" y2="214"`)
	assert.Contains(t, out, "fill:"+theme.Dark.BackgroundColor)
	assert.Contains(t, out, ">Out</text>")
	assert.Contains(t, out, "x &lt; y")

	red := strings.Index(out, `stop-color="red"`)
	black := strings.Index(out, `stop-color="black"`)
	require.True(t, red >= 0 && black >= 0)
	assert.Less(t, red, black, "output color comes first")
}

func TestWriteOneGradientPerLink(t *testing.T) {
	l, c := twoNodes(t)
	n := c.AddNode(geom.V(400, 0))
	s := n.AddSocket(graph.SideRight, "", "")
	lone := c.AddNode(geom.V(400, 100)).AddSocket(graph.SideLeft, "", "")

	link, err := c.AddLink(s, lone)
	require.NoError(t, err)
	require.True(t, link.Drawn())

	var buf bytes.Buffer
	require.NoError(t, svg.Write(&buf, c, l))
	assert.Equal(t, 2, strings.Count(buf.String(), "<linearGradient"))
}

func TestWriteEmptyCanvas(t *testing.T) {
	l := layout.New(geom.V(0, 0), geom.V(800, 600))
	c := graph.New(l)

	var buf bytes.Buffer
	require.NoError(t, svg.Write(&buf, c, l))
	assert.Contains(t, buf.String(), "</svg>")
	assert.NotContains(t, buf.String(), "<path")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportsErrors(t *testing.T) {
	l, c := twoNodes(t)
	err := svg.Write(failWriter{}, c, l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
