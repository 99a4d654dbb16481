package main

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/nbkit"
)

// app carries the state shared by all subcommands once flags and config are resolved.
type app struct {
	verbose    bool
	configPath string
	v          *viper.Viper
	logger     *slog.Logger
}

// newLogger builds a slog logger backed by a charmbracelet handler.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := charmlog.InfoLevel
	if verbose {
		level = charmlog.DebugLevel
	}
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
	return slog.New(handler)
}

// options translates the resolved configuration into library options.
func (a *app) options() []nbkit.Option {
	return []nbkit.Option{
		nbkit.WithLogger(a.logger),
		nbkit.WithStrict(a.v.GetBool(cfgKeyStrict)),
		nbkit.WithStrictNumbers(a.v.GetBool(cfgKeyStrictNumbers)),
		nbkit.WithAtomicWrites(a.v.GetBool(cfgKeyAtomic)),
		nbkit.WithIndexedGlyphs(a.v.GetBool(cfgKeyIndexedGlyphs)),
		nbkit.WithPercentVersion(a.v.GetString(cfgKeyPercentVersion)),
	}
}

// newRootCmd represents the base command when called without any subcommands.
func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "nbkit",
		Short: "Convert and inspect Jupyter notebooks",
		Long: `nbkit reads Jupyter notebooks and renders them as py-percent scripts,
tree outlines, or re-serialized .ipynb/.yaml documents.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = newLogger(cmd.ErrOrStderr(), a.verbose)
			slog.SetDefault(a.logger)

			v, err := loadConfig(a.configPath, cmd)
			if err != nil {
				return err
			}
			a.v = v
			if used := v.ConfigFileUsed(); used != "" {
				a.logger.Debug("config loaded", "path", used)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&a.configPath, "config", "", "Config file (default: nearest "+configFileName+")")
	flags.Bool(cfgKeyStrict, false, "Fail on cell types other than code and markdown")
	flags.Bool("strict-numbers", false, "Keep JSON numbers exact while decoding")
	flags.Bool(cfgKeyAtomic, false, "Write files through a temp file and rename")
	flags.String("percent-version", "", "Format version for notebooks read from .py scripts")

	rootCmd.AddCommand(
		newOutlineCmd(a),
		newPercentCmd(a),
		newConvertCmd(a),
		newWatchCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}
