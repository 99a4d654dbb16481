package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/nbkit"
	"github.com/aretw0/nbkit/pkg/adapters/fs"
)

func newWatchCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render a notebook every time it changes",
		Long: `Watch a notebook file and print its outline (or py-percent script with
--format percent) on start and after every change, until interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			opts := a.options()
			if a.v.GetBool(cfgKeyColor) {
				opts = append(opts, nbkit.WithOutlineDecorator(colorize))
			}

			var render func(*nbkit.Notebook) string
			switch format {
			case "outline":
				render = func(nb *nbkit.Notebook) string { return nbkit.Outline(nb, opts...) }
			case "percent":
				render = nbkit.Percent
			default:
				return fmt.Errorf("unknown format %q (want outline or percent)", format)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			nb, err := nbkit.Load(ctx, path, opts...)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			fmt.Fprintln(out, render(nb))

			w, err := nbkit.Watch(ctx, path, func(nb *nbkit.Notebook, err error) {
				if err != nil {
					a.logger.Warn("reload failed", "path", path, "error", err)
					return
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, render(nb))
			}, opts...)
			if err != nil {
				return err
			}
			a.logger.Info("watching", "path", path)

			<-w.Done()
			if state, ok := w.State().(fs.WatcherState); ok {
				a.logger.Info("watch stopped", "path", state.Path, "reloads", state.Reloads, "last_error", state.LastError)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "outline", "What to print: outline or percent")
	cmd.Flags().Bool("color", false, "Colorize the outline")
	return cmd
}
