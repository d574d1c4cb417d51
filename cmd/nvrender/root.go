package main

import (
	"fmt"

	"github.com/chazu/nodeview/pkg/config"
	"github.com/chazu/nodeview/pkg/theme"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// rootOptions are the flags shared by every command.
type rootOptions struct {
	configPath string
	themesFile string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:     "nvrender",
		Short:   "Render node graph scene scripts",
		Long:    Brand.Sprint("nvrender") + " evaluates scene scripts and writes them as SVG pictures",
		Version: version,

		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}
	root.SetVersionTemplate("nvrender {{ .Version }}\n")
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "settings file (default: search $NODEVIEW_CONFIG, ./nodeview.yaml, ~/.config/nodeview)")
	root.PersistentFlags().StringVar(&opts.themesFile, "themes", "", "TOML or YAML theme pack merged over the built-in themes")

	root.AddCommand(
		renderCmd(opts),
		themesCmd(opts),
	)
	return root
}

func (o *rootOptions) load() error {
	var (
		cfg *config.Config
		err error
	)
	if o.configPath != "" {
		cfg, _, err = config.LoadFromPath(o.configPath)
	} else {
		cfg, _, err = config.Load()
	}
	if err != nil {
		return err
	}
	if o.themesFile != "" {
		cfg.ThemesFile = o.themesFile
	}
	o.cfg = cfg
	return nil
}

func (o *rootOptions) themes() (*theme.Set, error) {
	set, err := theme.Resolve(o.cfg.ThemesFile)
	if err != nil {
		return nil, fmt.Errorf("themes: %w", err)
	}
	return set, nil
}
