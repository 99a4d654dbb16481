package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/nbkit"
)

func newOutlineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outline [file]",
		Short: "Print the structure of a notebook as a tree",
		Long: `Print a tree view of the notebook: one branch per cell, with the
cell type, id and execution count, followed by its trimmed source lines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.options()
			nb, err := nbkit.Load(cmd.Context(), args[0], opts...)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			if a.v.GetBool(cfgKeyColor) {
				opts = append(opts, nbkit.WithOutlineDecorator(colorize))
			}
			fmt.Fprintln(cmd.OutOrStdout(), nbkit.Outline(nb, opts...))
			return nil
		},
	}
	cmd.Flags().Bool("indexed", false, "Choose first/last line glyphs by position instead of content")
	cmd.Flags().Bool("color", false, "Colorize the outline")
	return cmd
}
