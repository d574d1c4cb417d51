package main

import (
	"testing"

	"github.com/chazu/nodeview/pkg/config"
	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
	"github.com/chazu/nodeview/pkg/scene"
	"github.com/chazu/nodeview/pkg/view"
)

const twoNodes = `
(def a (node 50 50))
(def b (node 200 200))
(link (socket a :bottom "Out") (socket b :top "In"))
`

func loadTwoNodes(t *testing.T) *App {
	t.Helper()
	app := newTestApp()
	if res := app.Load(twoNodes); len(res.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	app.Snapshot()
	return app
}

// ---------------------------------------------------------------------------
// 1. Dragging a node snaps it and moves its link.
// ---------------------------------------------------------------------------

func TestNodeDragSnapsAndRedrawsLink(t *testing.T) {
	app := loadTwoNodes(t)
	before := app.Snapshot().Links[0].Path

	if !app.PointerDown(60, 60) {
		t.Fatal("press on a node should start a drag")
	}
	if !app.PointerMove(113, 87) {
		t.Error("move during a drag should be handled")
	}
	app.PointerUp(113, 87)

	f := app.Snapshot()
	if f.Nodes[0].X != 100 || f.Nodes[0].Y != 80 {
		t.Errorf("node at (%v, %v), want (100, 80)", f.Nodes[0].X, f.Nodes[0].Y)
	}
	if f.Nodes[1].X != 200 || f.Nodes[1].Y != 200 {
		t.Errorf("other node moved to (%v, %v)", f.Nodes[1].X, f.Nodes[1].Y)
	}
	if f.Links[0].Path == before {
		t.Error("link path should follow the dragged node")
	}
	if f.Drag != "idle" {
		t.Errorf("drag state after release: %q", f.Drag)
	}
}

// ---------------------------------------------------------------------------
// 2. Pressing empty canvas pans without snapping.
// ---------------------------------------------------------------------------

func TestCanvasDragPans(t *testing.T) {
	app := loadTwoNodes(t)

	if !app.PointerDown(500, 500) {
		t.Fatal("press on the canvas should start a pan")
	}
	app.PointerMove(523, 491)
	app.PointerUp(523, 491)

	f := app.Snapshot()
	if f.Transform.PanX != 23 || f.Transform.PanY != -9 {
		t.Errorf("pan = (%v, %v), want (23, -9)", f.Transform.PanX, f.Transform.PanY)
	}
	if f.Nodes[0].X != 50 || f.Nodes[0].Y != 50 {
		t.Errorf("panning moved a node to (%v, %v)", f.Nodes[0].X, f.Nodes[0].Y)
	}
	if f.Background["backgroundPosition"] == "" {
		t.Error("background should carry the grid offset")
	}
}

// ---------------------------------------------------------------------------
// 3. Moves without a press are ignored.
// ---------------------------------------------------------------------------

func TestMoveWithoutPress(t *testing.T) {
	app := loadTwoNodes(t)

	if app.PointerMove(300, 300) {
		t.Error("move without a drag should not be handled")
	}
	f := app.Snapshot()
	if f.Transform.PanX != 0 || f.Nodes[0].X != 50 {
		t.Error("move without a drag changed the canvas")
	}
}

// ---------------------------------------------------------------------------
// 4. Cancel puts the node back.
// ---------------------------------------------------------------------------

func TestCancelDragRestores(t *testing.T) {
	app := loadTwoNodes(t)

	app.PointerDown(60, 60)
	app.PointerMove(200, 300)
	if !app.CancelDrag() {
		t.Fatal("cancel during a drag should report true")
	}
	if app.CancelDrag() {
		t.Error("second cancel should be a no-op")
	}

	f := app.Snapshot()
	if f.Nodes[0].X != 50 || f.Nodes[0].Y != 50 {
		t.Errorf("node at (%v, %v) after cancel, want (50, 50)", f.Nodes[0].X, f.Nodes[0].Y)
	}
	if app.PointerMove(400, 400) {
		t.Error("moves after cancel should be ignored")
	}
}

// ---------------------------------------------------------------------------
// 5. Wheel zoom clamps and keeps world geometry.
// ---------------------------------------------------------------------------

func TestWheelZoom(t *testing.T) {
	app := loadTwoNodes(t)
	before := app.Snapshot()

	if got := app.Wheel(0, 0, -500); got != 1.5 {
		t.Errorf("scale = %v, want 1.5", got)
	}
	for i := 0; i < 10; i++ {
		app.Wheel(0, 0, -1000)
	}
	f := app.Snapshot()
	if f.Transform.Scale != view.MaxScale {
		t.Errorf("scale = %v, want %v", f.Transform.Scale, view.MaxScale)
	}
	if f.Links[0].Path != before.Links[0].Path {
		t.Errorf("zoom changed world path: %q -> %q", before.Links[0].Path, f.Links[0].Path)
	}
	if !f.Changes.Transform {
		t.Error("zoom should mark the transform changed")
	}
}

// ---------------------------------------------------------------------------
// 6. Themes cycle in order and unknown names are rejected.
// ---------------------------------------------------------------------------

func TestThemes(t *testing.T) {
	app := newTestApp()

	want := []string{"LIGHT", "DARK", "TEST", "LIGHT"}
	for i, w := range want {
		if got := app.NextTheme(); got != w {
			t.Errorf("NextTheme #%d = %q, want %q", i, got, w)
		}
	}

	name, err := app.SetTheme("dark")
	if err != nil || name != "DARK" {
		t.Errorf("SetTheme(dark) = %q, %v", name, err)
	}
	name, err = app.SetTheme("neon")
	if err == nil {
		t.Error("expected an error for an unknown theme")
	}
	if name != "DARK" {
		t.Errorf("unknown theme changed the current one to %q", name)
	}
	if got := app.Snapshot().Theme.Name; got != "DARK" {
		t.Errorf("frame theme = %q", got)
	}
}

func TestScriptTheme(t *testing.T) {
	app := newTestApp()
	res := app.Load(`(theme "light") (node 0 0)`)
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if res.Frame.Theme.Name != "LIGHT" {
		t.Errorf("theme = %q, want LIGHT", res.Frame.Theme.Name)
	}
}

// ---------------------------------------------------------------------------
// 7. Change sets reach the notifier and reset on snapshot.
// ---------------------------------------------------------------------------

func TestChangeNotifications(t *testing.T) {
	app := loadTwoNodes(t)

	var got []ChangeSet
	app.notify = func(cs ChangeSet) { got = append(got, cs) }

	app.PointerDown(60, 60)
	app.PointerMove(100, 60)

	if len(got) == 0 {
		t.Fatal("expected change notifications")
	}
	last := got[len(got)-1]
	if len(last.Nodes) != 1 || last.Nodes[0] != 0 {
		t.Errorf("changed nodes = %v, want [0]", last.Nodes)
	}
	if len(last.Links) != 1 || last.Links[0] != 0 {
		t.Errorf("changed links = %v, want [0]", last.Links)
	}

	f := app.Snapshot()
	if len(f.Changes.Nodes) != 1 {
		t.Errorf("snapshot changes = %+v", f.Changes)
	}
	if f = app.Snapshot(); len(f.Changes.Nodes) != 0 || f.Changes.Transform {
		t.Errorf("changes should reset after a snapshot, got %+v", f.Changes)
	}

	n := len(got)
	app.PointerUp(100, 60)
	if len(got) != n {
		t.Error("a release that changes nothing should not notify")
	}
}

func TestLoadMarksReset(t *testing.T) {
	app := newTestApp()
	var got []ChangeSet
	app.notify = func(cs ChangeSet) { got = append(got, cs) }

	app.Load(twoNodes)
	if len(got) != 1 || !got[0].Reset {
		t.Fatalf("expected one reset notification, got %+v", got)
	}
}

func TestFailedApplyKeepsCanvas(t *testing.T) {
	app := loadTwoNodes(t)
	before := app.canvas

	sc := scene.New()
	a := sc.AddNode(geom.V(0, 0))
	out, err := sc.AddSocket(a, scene.SocketSpec{Side: graph.SideBottom})
	if err != nil {
		t.Fatalf("AddSocket: %v", err)
	}
	sc.AddLink(out, scene.SocketRef{Node: 7, Role: graph.RoleIn})

	if err := app.applyScene(sc); err == nil {
		t.Fatal("expected an error for a link to a missing node")
	}
	if app.canvas != before {
		t.Fatal("canvas was replaced by a partially applied scene")
	}
	f := app.Snapshot()
	if len(f.Nodes) != 2 || len(f.Links) != 1 {
		t.Errorf("frame after failed apply: %d nodes, %d links, want 2 and 1", len(f.Nodes), len(f.Links))
	}
	if !f.Changes.Reset {
		t.Error("failed apply should ask the frontend for a full repaint")
	}
}

// ---------------------------------------------------------------------------
// 8. Reloading keeps the view and drops an active drag.
// ---------------------------------------------------------------------------

func TestReloadKeepsTransform(t *testing.T) {
	app := loadTwoNodes(t)
	app.Wheel(0, 0, -500)
	app.PointerDown(500, 500)
	app.PointerMove(510, 520)

	res := app.Load(twoNodes)
	if len(res.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	f := res.Frame
	if f.Transform.Scale != 1.5 {
		t.Errorf("scale = %v, want 1.5", f.Transform.Scale)
	}
	if f.Drag != "idle" {
		t.Errorf("drag state after reload: %q", f.Drag)
	}
	if app.PointerMove(600, 600) {
		t.Error("the old drag should not survive a reload")
	}
}

// ---------------------------------------------------------------------------
// 9. Resize moves the panel; world geometry is unchanged.
// ---------------------------------------------------------------------------

func TestResize(t *testing.T) {
	app := loadTwoNodes(t)
	before := app.Snapshot()

	app.Resize(100, 32, 800, 600)
	f := app.Snapshot()
	if f.Transform.Origin != "400px 300px" {
		t.Errorf("origin = %q", f.Transform.Origin)
	}
	if f.Links[0].Path != before.Links[0].Path {
		t.Errorf("resize changed world path: %q -> %q", before.Links[0].Path, f.Links[0].Path)
	}

	// The node at (50, 50) is now under the panel offset.
	if !app.PointerDown(160, 92) {
		t.Fatal("press on the moved node should start a drag")
	}
	app.PointerUp(160, 92)
}

func TestNewAppUsesConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Theme = "dark"
	app := NewApp(cfg)
	if got := app.Snapshot().Theme.Name; got != "DARK" {
		t.Errorf("theme = %q, want DARK", got)
	}

	cfg.Theme = "missing"
	if got := NewApp(cfg).Snapshot().Theme.Name; got != "TEST" {
		t.Errorf("unknown configured theme should fall back to TEST, got %q", got)
	}
}
