package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/chazu/nodeview/pkg/config"
	"github.com/chazu/nodeview/pkg/engine"
	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
	"github.com/chazu/nodeview/pkg/input"
	"github.com/chazu/nodeview/pkg/layout"
	"github.com/chazu/nodeview/pkg/scene"
	"github.com/chazu/nodeview/pkg/theme"
	"github.com/chazu/nodeview/pkg/view"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ChangedEvent is emitted to the frontend after every state change.
const ChangedEvent = "canvas:changed"

// App is the Wails backend. It exposes methods to the frontend via bindings.
// Every binding runs under one lock, so pointer events from the webview are
// applied in order.
type App struct {
	ctx context.Context

	mu      sync.Mutex
	cfg     *config.Config
	engine  *engine.Engine
	themes  *theme.Set
	layout  *layout.Layout
	session *input.Session
	canvas  *graph.Canvas
	changes *changeRecorder

	// notify delivers change sets; nil until the runtime has started.
	notify func(ChangeSet)
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// LoadResult is returned by Load.
type LoadResult struct {
	Errors []EvalErrorData `json:"errors"`
	Frame  Frame           `json:"frame"`
}

// NewApp creates an App with an empty canvas configured by cfg.
func NewApp(cfg *config.Config) *App {
	themes, err := theme.Resolve(cfg.ThemesFile)
	if err != nil {
		log.Printf("theme pack: %v", err)
		themes = theme.NewSet()
	}

	l := layout.New(geom.Vec{}, geom.V(float64(cfg.Window.Width), float64(cfg.Window.Height)))
	l.Metrics = cfg.Layout

	a := &App{
		cfg:     cfg,
		engine:  engine.NewEngine(),
		themes:  themes,
		layout:  l,
		session: input.NewSession(),
		changes: newChangeRecorder(),
	}
	a.canvas = a.newCanvas(a.pickTheme(cfg.Theme))
	return a
}

// startup is called by Wails on app startup. The context is saved
// so we can emit runtime events later.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.notify = func(cs ChangeSet) {
		runtime.EventsEmit(ctx, ChangedEvent, cs)
	}

	if a.cfg.Script == "" {
		return
	}
	source, err := os.ReadFile(a.cfg.Script)
	if err != nil {
		log.Printf("startup script: %v", err)
		return
	}
	if res := a.Load(string(source)); len(res.Errors) > 0 {
		for _, e := range res.Errors {
			log.Printf("startup script %s: line %d: %s", a.cfg.Script, e.Line, e.Message)
		}
	}
}

// Load evaluates a scene script and replaces the canvas with it. On errors
// the current canvas is kept.
func (a *App) Load(source string) LoadResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	result := LoadResult{Errors: []EvalErrorData{}}

	sc, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Printf("Load fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		result.Frame = a.frame()
		return result
	}
	for _, e := range evalErrs {
		result.Errors = append(result.Errors, EvalErrorData{Line: e.Line, Col: e.Col, Message: e.Message})
	}
	if len(result.Errors) == 0 {
		if err := a.applyScene(sc); err != nil {
			log.Printf("Load apply: %v", err)
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		}
	}

	result.Frame = a.frame()
	return result
}

// applyScene builds sc on a fresh canvas that keeps the current transform.
// The canvas is only swapped in when the whole scene applies.
func (a *App) applyScene(sc *scene.Scene) error {
	th := a.canvas.Theme()
	if sc.Theme != "" {
		th = a.pickTheme(sc.Theme)
	}

	old := a.canvas.Transform()
	c := a.newCanvas(th)
	c.Transform().Pan, c.Transform().Origin = old.Pan, old.Origin
	c.Transform().SetScale(old.Scale)

	if _, err := sc.Apply(c); err != nil {
		// The discarded canvas reported its nodes to the recorder.
		a.changes.reset()
		a.changes.full = true
		return err
	}

	a.session.Cancel()
	a.changes.reset()
	c.UpdateTransform()
	a.canvas = c
	a.changes.full = true
	a.publish()
	return nil
}

// Resize reports the canvas panel's screen position and size. It also moves
// the transform origin to the panel centre, so zoom pivots there instead of
// the top-left corner the browser viewer used. This is an intended change.
func (a *App) Resize(x, y, width, height float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.layout.Offset = geom.V(x, y)
	a.layout.Viewport = geom.V(width, height)
	a.canvas.Transform().Origin = geom.V(width/2, height/2)
	a.canvas.UpdateTransform()
	a.publish()
}

// PointerDown presses at a screen point. It reports whether the press
// started a drag, so the frontend can suppress its default handling.
func (a *App) PointerDown(x, y float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	ev := input.NewEvent(x, y)
	hit, _ := a.layout.HitTest(a.canvas, ev.Pos)
	a.canvas.PointerDown(ev, hit)
	a.publish()
	return ev.DefaultPrevented()
}

// PointerMove moves the pointer anywhere in the window.
func (a *App) PointerMove(x, y float64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	ev := input.NewEvent(x, y)
	a.canvas.PointerMove(ev)
	a.publish()
	return ev.DefaultPrevented()
}

// PointerUp releases the pointer anywhere in the window.
func (a *App) PointerUp(x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.canvas.PointerUp(input.NewEvent(x, y))
	a.publish()
}

// Wheel zooms and returns the new scale.
func (a *App) Wheel(x, y, deltaY float64) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.canvas.Wheel(input.NewWheelEvent(x, y, deltaY))
	a.publish()
	return a.canvas.Transform().Scale
}

// CancelDrag aborts the active drag.
func (a *App) CancelDrag() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	ok := a.canvas.CancelDrag()
	a.publish()
	return ok
}

// SetTheme switches to a named theme.
func (a *App) SetTheme(name string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	t, ok := a.themes.Lookup(name)
	if !ok {
		return a.canvas.Theme().Name, fmt.Errorf("unknown theme %q", name)
	}
	a.canvas.SetTheme(t)
	a.publish()
	return t.Name, nil
}

// NextTheme cycles to the following theme and returns its name.
func (a *App) NextTheme() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	t := a.themes.Next(a.canvas.Theme().Name)
	a.canvas.SetTheme(t)
	a.publish()
	return t.Name
}

// Themes lists the available theme names.
func (a *App) Themes() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.themes.Names()
}

// Snapshot returns the whole canvas and the changes since the last
// snapshot.
func (a *App) Snapshot() Frame {
	a.mu.Lock()
	defer a.mu.Unlock()

	f := a.frame()
	a.changes.reset()
	return f
}

func (a *App) newCanvas(th theme.Theme) *graph.Canvas {
	return graph.New(a.layout,
		graph.WithRenderer(a.changes),
		graph.WithTheme(th),
		graph.WithSession(a.session),
		graph.WithLogger(log.Default()),
	)
}

func (a *App) pickTheme(name string) theme.Theme {
	if t, ok := a.themes.Lookup(name); ok {
		return t
	}
	log.Printf("unknown theme %q, using %s", name, a.themes.DefaultTheme().Name)
	return a.themes.DefaultTheme()
}

// publish emits pending changes when the runtime is running.
func (a *App) publish() {
	if a.notify == nil || a.changes.empty() {
		return
	}
	a.notify(a.changes.set())
}

// ---------------------------------------------------------------------------
// Change recording
// ---------------------------------------------------------------------------

// ChangeSet lists what moved or changed since the last snapshot.
type ChangeSet struct {
	Reset        bool  `json:"reset"`
	Nodes        []int `json:"nodes"`
	Links        []int `json:"links"`
	RemovedNodes []int `json:"removedNodes"`
	RemovedLinks []int `json:"removedLinks"`
	Transform    bool  `json:"transform"`
	Theme        bool  `json:"theme"`
}

// changeRecorder is the canvas renderer. It only remembers what changed;
// the frontend pulls a Snapshot to repaint.
type changeRecorder struct {
	full         bool
	nodes        map[int]bool
	links        map[int]bool
	removedNodes []int
	removedLinks []int
	transform    bool
	theme        bool
}

var _ graph.Renderer = (*changeRecorder)(nil)

func newChangeRecorder() *changeRecorder {
	r := &changeRecorder{}
	r.reset()
	return r
}

func (r *changeRecorder) PlaceNode(n *graph.Node) { r.nodes[n.Index()] = true }
func (r *changeRecorder) DrawLink(l *graph.Link) { r.links[l.ID()] = true }

func (r *changeRecorder) RemoveNode(n *graph.Node) {
	delete(r.nodes, n.Index())
	r.removedNodes = append(r.removedNodes, n.Index())
}

func (r *changeRecorder) RemoveLink(l *graph.Link) {
	delete(r.links, l.ID())
	r.removedLinks = append(r.removedLinks, l.ID())
}

func (r *changeRecorder) ApplyTransform(view.Transform) { r.transform = true }

func (r *changeRecorder) ApplyTheme(theme.Theme, []*graph.Node) { r.theme = true }

func (r *changeRecorder) reset() {
	r.full = false
	r.nodes = make(map[int]bool)
	r.links = make(map[int]bool)
	r.removedNodes = nil
	r.removedLinks = nil
	r.transform = false
	r.theme = false
}

func (r *changeRecorder) empty() bool {
	return !r.full && !r.transform && !r.theme &&
		len(r.nodes) == 0 && len(r.links) == 0 &&
		len(r.removedNodes) == 0 && len(r.removedLinks) == 0
}

func (r *changeRecorder) set() ChangeSet {
	return ChangeSet{
		Reset:        r.full,
		Nodes:        sortedKeys(r.nodes),
		Links:        sortedKeys(r.links),
		RemovedNodes: append([]int{}, r.removedNodes...),
		RemovedLinks: append([]int{}, r.removedLinks...),
		Transform:    r.transform,
		Theme:        r.theme,
	}
}

func sortedKeys(m map[int]bool) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
