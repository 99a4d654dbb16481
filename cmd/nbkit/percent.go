package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/nbkit"
)

func newPercentCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "percent [file]",
		Short: "Render a notebook as a py-percent script",
		Long: `Render the notebook as a py-percent script: markdown cells become
"# "-prefixed comments under a "# %% [markdown]" marker, code cells follow a
"# %%" marker. Prints to stdout unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.options()
			nb, err := nbkit.Load(cmd.Context(), args[0], opts...)
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), nbkit.Percent(nb))
				return nil
			}
			if err := nbkit.WritePercent(cmd.Context(), nb, output, opts...); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			a.logger.Info("script written", "path", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the script to this file")
	return cmd
}
