package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/chazu/nodeview/pkg/engine"
	"github.com/chazu/nodeview/pkg/geom"
	"github.com/chazu/nodeview/pkg/graph"
	"github.com/chazu/nodeview/pkg/layout"
	"github.com/chazu/nodeview/pkg/svg"
	"github.com/chazu/nodeview/pkg/theme"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	out   string
	theme string
	scale float64
}

func renderCmd(root *rootOptions) *cobra.Command {
	opts := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render <script>",
		Short: "Evaluate a scene script and write it as SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root, opts, args[0])
		},
	}
	cmd.Flags().StringVarP(&opts.out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "theme name (default: the script's, then the settings file's)")
	cmd.Flags().Float64Var(&opts.scale, "scale", 1, "display scale of the picture")
	return cmd
}

func runRender(cmd *cobra.Command, root *rootOptions, opts *renderOptions, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	sc, evalErrs, err := engine.NewEngine().Evaluate(string(source))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			Bad.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, e)
		}
		return fmt.Errorf("%s: %d evaluation errors", path, len(evalErrs))
	}

	set, err := root.themes()
	if err != nil {
		return err
	}
	th, err := pickTheme(set, opts.theme, sc.Theme, root.cfg.Theme)
	if err != nil {
		return err
	}

	cfg := root.cfg
	l := layout.New(geom.Vec{}, geom.V(float64(cfg.Window.Width), float64(cfg.Window.Height)))
	l.Metrics = cfg.Layout

	logger := log.New(cmd.ErrOrStderr(), "nvrender: ", 0)
	c := graph.New(l, graph.WithTheme(th), graph.WithLogger(logger))
	if _, err := sc.Apply(c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if got := c.Transform().SetScale(opts.scale); got != opts.scale {
		Warn.Fprintf(cmd.ErrOrStderr(), "scale %g clamped to %g\n", opts.scale, got)
	}
	c.UpdateTransform()

	return writeSVG(cmd, opts.out, c, l)
}

func writeSVG(cmd *cobra.Command, out string, c *graph.Canvas, l *layout.Layout) error {
	if out == "-" {
		return svg.Write(cmd.OutOrStdout(), c, l)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := svg.Write(f, c, l); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}

	summary(cmd.ErrOrStderr(), out, c)
	return nil
}

func summary(w io.Writer, out string, c *graph.Canvas) {
	fmt.Fprintf(w, "%s %s %s\n", Good.Sprint("wrote"), out,
		Subtle.Sprintf("(%d nodes, %d links, theme %s)", len(c.Nodes()), len(c.Links()), c.Theme().Name))
}

// pickTheme takes the first non-empty name.
func pickTheme(set *theme.Set, names ...string) (theme.Theme, error) {
	for _, name := range names {
		if name == "" {
			continue
		}
		t, ok := set.Lookup(name)
		if !ok {
			return theme.Theme{}, fmt.Errorf("unknown theme %q (have %v)", name, set.Names())
		}
		return t, nil
	}
	return set.DefaultTheme(), nil
}
