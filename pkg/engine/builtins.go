package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
	"github.com/chazu/nodeview/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites scene script source into plain zygomys:
// :side keywords become "__kw_side" string literals, ; comments become //
// comments and hyphens inside names become underscores (out-a -> out_a).
// String literals, "..." and raw `...`, pass through untouched.
func preprocessSource(source string) string {
	var sb strings.Builder
	sb.Grow(len(source) + len(source)/4)
	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '"' || c == '`':
			j := skipString(source, i)
			sb.WriteString(source[i:j])
			i = j
		case c == ';':
			j := i
			for j < len(source) && source[j] == ';' {
				j++
			}
			end := strings.IndexByte(source[j:], '\n')
			if end < 0 {
				end = len(source)
			} else {
				end += j
			}
			sb.WriteString("//")
			sb.WriteString(source[j:end])
			i = end
		case c == ':' && i+1 < len(source) && isAlpha(source[i+1]):
			j := i + 1
			for j < len(source) && (isNameByte(source[j]) || source[j] == '-') {
				j++
			}
			sb.WriteString(strconv.Quote(kwPrefix + source[i+1:j]))
			i = j
		case c == '-' && i > 0 && i+1 < len(source) && isNameByte(source[i-1]) && isAlpha(source[i+1]):
			sb.WriteByte('_')
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// skipString returns the index just past the string literal that opens at
// i. Backslash escapes only apply inside double quotes.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			if quote == '"' {
				j++
			}
		case quote:
			return j + 1
		}
	}
	return len(s)
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameByte(c byte) bool {
	return isAlpha(c) || ('0' <= c && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpNodeRef identifies a node of the scene under construction.
type sexpNodeRef struct {
	index int
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(noderef %d)", n.index)
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

// sexpSocketRef identifies a socket by node, role and index.
type sexpSocketRef struct {
	ref scene.SocketRef
}

func (s *sexpSocketRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(socketref %d %s %d)", s.ref.Node, s.ref.Role, s.ref.Index)
}
func (s *sexpSocketRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Arguments
// ---------------------------------------------------------------------------

// kwPrefix marks keyword literals produced by preprocessSource.
const kwPrefix = "__kw_"

// keyword reports the name of a preprocessed :keyword argument.
func keyword(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	return strings.CutPrefix(str.S, kwPrefix)
}

// splitArgs separates :name value pairs from positional arguments. A
// trailing keyword with no value maps to SexpNull.
func splitArgs(args []zygo.Sexp) (positional []zygo.Sexp, named map[string]zygo.Sexp) {
	named = make(map[string]zygo.Sexp)
	for i := 0; i < len(args); i++ {
		name, ok := keyword(args[i])
		if !ok {
			positional = append(positional, args[i])
			continue
		}
		if i+1 < len(args) {
			i++
			named[name] = args[i]
		} else {
			named[name] = zygo.SexpNull
		}
	}
	return positional, named
}

func toNumber(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %s", s.SexpString(nil))
}

// toName accepts a keyword or a plain string.
func toName(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %s", s.SexpString(nil))
	}
	name, _ := strings.CutPrefix(str.S, kwPrefix)
	return name, nil
}

// toIndex extracts a non-negative integer index from a Sexp.
func toIndex(s zygo.Sexp) (int, error) {
	v, ok := s.(*zygo.SexpInt)
	if !ok {
		return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
	}
	if v.Val < 0 {
		return 0, fmt.Errorf("index %d is negative", v.Val)
	}
	return int(v.Val), nil
}

// toNodeRef extracts a node index from a value returned by `node`.
func toNodeRef(s zygo.Sexp) (int, error) {
	if n, ok := s.(*sexpNodeRef); ok {
		return n.index, nil
	}
	return 0, fmt.Errorf("expected node, got %T (%s)", s, s.SexpString(nil))
}

// toSocketRef extracts a socket reference returned by `socket`, `output`
// or `input`.
func toSocketRef(s zygo.Sexp) (scene.SocketRef, error) {
	if r, ok := s.(*sexpSocketRef); ok {
		return r.ref, nil
	}
	return scene.SocketRef{}, fmt.Errorf("expected socket, got %T (%s)", s, s.SexpString(nil))
}

// toSide converts a keyword or string to a graph.Side.
func toSide(s zygo.Sexp) (graph.Side, error) {
	name, err := toName(s)
	if err != nil {
		return 0, fmt.Errorf("expected side keyword (:top, :bottom, :left, :right): %w", err)
	}
	return graph.ParseSide(name)
}

// optString extracts a string that may be omitted or nil.
func optString(s zygo.Sexp) (string, error) {
	if s == nil || s == zygo.SexpNull {
		return "", nil
	}
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %s", s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene builtins into a zygomys environment.
// The builtins append to sc while the script runs.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, sc *scene.Scene) {

	// -----------------------------------------------------------------------
	// (node 50 50 :content "text")
	// -----------------------------------------------------------------------
	env.AddFunction("node", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pos, named := splitArgs(args)
		if len(pos) != 2 {
			return zygo.SexpNull, fmt.Errorf("node: expected x and y, got %d positional arguments", len(pos))
		}
		x, err := toNumber(pos[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: x: %w", err)
		}
		y, err := toNumber(pos[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("node: y: %w", err)
		}

		idx := sc.AddNode(geom.V(x, y))

		if v, ok := named["content"]; ok {
			text, err := optString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("node: content: %w", err)
			}
			if err := sc.SetContent(idx, text); err != nil {
				return zygo.SexpNull, fmt.Errorf("node: %w", err)
			}
		}

		return &sexpNodeRef{index: idx}, nil
	})

	// -----------------------------------------------------------------------
	// (socket n :bottom "Out" "red")  or  (socket n :top :label "In" :color "blue")
	// -----------------------------------------------------------------------
	env.AddFunction("socket", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 2 {
			return zygo.SexpNull, fmt.Errorf("socket: expected node and side")
		}
		node, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("socket: %w", err)
		}
		side, err := toSide(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("socket: %w", err)
		}

		pos, named := splitArgs(args[2:])
		if len(pos) > 2 {
			return zygo.SexpNull, fmt.Errorf("socket: too many arguments")
		}
		spec := scene.SocketSpec{Side: side}

		label, color := named["label"], named["color"]
		if len(pos) > 0 {
			label = pos[0]
		}
		if len(pos) > 1 {
			color = pos[1]
		}
		if spec.Label, err = optString(label); err != nil {
			return zygo.SexpNull, fmt.Errorf("socket: label: %w", err)
		}
		if spec.Color, err = optString(color); err != nil {
			return zygo.SexpNull, fmt.Errorf("socket: color: %w", err)
		}

		ref, err := sc.AddSocket(node, spec)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("socket: %w", err)
		}
		return &sexpSocketRef{ref: ref}, nil
	})

	// -----------------------------------------------------------------------
	// (output n 0)  (input n 2)
	// -----------------------------------------------------------------------
	lookup := func(role graph.Role) func(*zygo.Zlisp, string, []zygo.Sexp) (zygo.Sexp, error) {
		return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 2 {
				return zygo.SexpNull, fmt.Errorf("%s: expected node and index", name)
			}
			node, err := toNodeRef(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			i, err := toIndex(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			ref, err := sc.Ref(node, role, i)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", name, err)
			}
			return &sexpSocketRef{ref: ref}, nil
		}
	}
	env.AddFunction("output", lookup(graph.RoleOut))
	env.AddFunction("input", lookup(graph.RoleIn))

	// -----------------------------------------------------------------------
	// (link (output a 0) (input b 1))
	// -----------------------------------------------------------------------
	env.AddFunction("link", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("link: expected two sockets, got %d arguments", len(args))
		}
		from, err := toSocketRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("link: from: %w", err)
		}
		to, err := toSocketRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("link: to: %w", err)
		}
		if from == to {
			return zygo.SexpNull, fmt.Errorf("link: %s linked to itself", from)
		}
		sc.AddLink(from, to)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (content n "text")
	// -----------------------------------------------------------------------
	env.AddFunction("content", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("content: expected node and text")
		}
		node, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("content: %w", err)
		}
		text, err := optString(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("content: %w", err)
		}
		if err := sc.SetContent(node, text); err != nil {
			return zygo.SexpNull, fmt.Errorf("content: %w", err)
		}
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (theme "dark")  or  (theme :light)
	// -----------------------------------------------------------------------
	env.AddFunction("theme", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("theme: expected a theme name")
		}
		t, err := toName(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("theme: %w", err)
		}
		sc.Theme = strings.TrimSpace(t)
		return zygo.SexpNull, nil
	})
}
