package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func themesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the available themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := root.themes()
			if err != nil {
				return err
			}
			def := set.DefaultTheme().Name

			rows := make([][]string, 0, len(set.Themes))
			for _, t := range set.Themes {
				mark := ""
				if t.Name == def {
					mark = "*"
				}
				rows = append(rows, []string{
					mark + t.Name,
					t.BackgroundColor,
					t.GridColor,
					t.NodeTextColor,
					fmt.Sprintf("%g", t.GridSize),
				})
			}

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, Brand.Sprint("themes"))
			table(w, []string{"NAME", "BACKGROUND", "GRID", "TEXT", "GRID SIZE"}, rows)
			return nil
		},
	}
}
