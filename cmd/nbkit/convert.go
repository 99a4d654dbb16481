package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/nbkit"
	"github.com/aretw0/nbkit/internal/platform"
	"github.com/aretw0/nbkit/pkg/adapters/fs"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		to            string
		outDir        string
		markdownize   bool
		stripMarkdown bool
	)

	cmd := &cobra.Command{
		Use:   "convert [pattern...]",
		Short: "Convert notebooks between formats",
		Long: `Convert every file matching the given patterns (doublestar globs such as
"notebooks/**/*.ipynb" are supported) to the format named by --to:
ipynb, json, yaml, yml, py, txt or outline.

--markdownize turns code cells into fenced markdown cells and
--strip-markdown drops markdown cells before writing.`,
		Example: `  nbkit convert hello.ipynb --to py
  nbkit convert "notebooks/**/*.ipynb" --to yaml --out-dir build`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if markdownize && stripMarkdown {
				return errors.New("--markdownize and --strip-markdown are mutually exclusive")
			}

			var transforms []nbkit.Transform
			if markdownize {
				transforms = append(transforms, nbkit.Markdownize)
			}
			if stripMarkdown {
				transforms = append(transforms, nbkit.WithoutMarkdown)
			}

			var sources []string
			for _, pattern := range args {
				matches, err := fs.Glob(pattern)
				if err != nil {
					return err
				}
				sources = append(sources, matches...)
			}

			opts := a.options()
			var errs []error
			for _, src := range sources {
				dst, err := platform.TargetPath(src, outDir, to)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if err := nbkit.Convert(cmd.Context(), src, dst, transforms, opts...); err != nil {
					a.logger.Error("conversion failed", "src", src, "error", err)
					errs = append(errs, fmt.Errorf("%s: %w", src, err))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), dst)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVarP(&to, "to", "t", "", "Target format extension (ipynb, yaml, py, txt, ...)")
	cmd.Flags().StringVarP(&outDir, "out-dir", "d", "", "Directory for converted files (default: next to the source)")
	cmd.Flags().BoolVar(&markdownize, "markdownize", false, "Turn code cells into fenced markdown cells")
	cmd.Flags().BoolVar(&stripMarkdown, "strip-markdown", false, "Drop markdown cells")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
