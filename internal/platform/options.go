package platform

import (
	"io"
	"log/slog"

	"github.com/aretw0/nbkit/pkg/adapters/fs"
	"github.com/aretw0/nbkit/pkg/codec"
	"github.com/aretw0/nbkit/pkg/core"
)

// options holds the internal configuration for nbkit operations.
type options struct {
	logger         *slog.Logger
	registry       *codec.Registry
	extractor      core.VersionExtractor
	strictCells    bool
	strictNumbers  bool
	atomic         bool
	indexedGlyphs  bool
	percentVersion string
	decorate       func(codec.Part, string) string
}

// Option defines a functional option for configuring nbkit.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		percentVersion: codec.DefaultPercentVersion,
	}
}

func apply(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used by readers, writers and watchers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithStrict makes loading fail on cell types other than code and markdown
// instead of silently dropping them.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strictCells = strict
	}
}

// WithStrictNumbers parses JSON numbers as json.Number to avoid float64 conversion.
func WithStrictNumbers(strict bool) Option {
	return func(o *options) {
		o.strictNumbers = strict
	}
}

// WithAtomicWrites writes files through a temp file + rename.
// By default files are written in place and a failed write may leave a partial file.
func WithAtomicWrites(atomic bool) Option {
	return func(o *options) {
		o.atomic = atomic
	}
}

// WithIndexedGlyphs makes the outliner pick first/last glyphs by line position.
func WithIndexedGlyphs(indexed bool) Option {
	return func(o *options) {
		o.indexedGlyphs = indexed
	}
}

// WithOutlineDecorator wraps outline fragments, e.g. with terminal styles.
func WithOutlineDecorator(fn func(codec.Part, string) string) Option {
	return func(o *options) {
		o.decorate = fn
	}
}

// WithPercentVersion sets the format version given to notebooks read from py-percent scripts.
func WithPercentVersion(version string) Option {
	return func(o *options) {
		o.percentVersion = version
	}
}

// WithVersionExtractor overrides how the format version is read from raw documents.
func WithVersionExtractor(e core.VersionExtractor) Option {
	return func(o *options) {
		o.extractor = e
	}
}

// WithRegistry replaces the extension → format mapping.
// Format-specific options (outline glyphs, strict numbers, percent version)
// are not applied to a custom registry.
func WithRegistry(r *codec.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// outline builds the outliner described by the options.
func (o *options) outline() *codec.Outline {
	return &codec.Outline{IndexedGlyphs: o.indexedGlyphs, Decorate: o.decorate}
}

// buildRegistry returns the custom registry or the default one tuned by the options.
func (o *options) buildRegistry() *codec.Registry {
	if o.registry != nil {
		return o.registry
	}
	r := codec.Default()

	ipynb := codec.NewIPYNB()
	ipynb.Strict = o.strictNumbers
	r.Register(".ipynb", ipynb)
	r.Register(".json", ipynb)

	percent := codec.NewPercent()
	percent.Version = o.percentVersion
	r.Register(".py", percent)

	outline := o.outline()
	r.Register(".txt", outline)
	r.Register(".outline", outline)
	return r
}

func (o *options) fsConfig() fs.Config {
	return fs.Config{
		Logger:   o.logger,
		Registry: o.buildRegistry(),
		Strict:   o.strictNumbers,
		Atomic:   o.atomic,
	}
}

func (o *options) constructOptions() []core.ConstructOption {
	opts := []core.ConstructOption{
		core.WithStrictCellTypes(o.strictCells),
		core.WithConstructLogger(o.logger),
	}
	if o.extractor != nil {
		opts = append(opts, core.WithVersionExtractor(o.extractor))
	}
	return opts
}
