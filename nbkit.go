package nbkit

import (
	"context"
	_ "embed"
	"log/slog"

	"github.com/aretw0/nbkit/internal/platform"
	"github.com/aretw0/nbkit/pkg/adapters/fs"
	"github.com/aretw0/nbkit/pkg/codec"
	"github.com/aretw0/nbkit/pkg/core"
)

// Version exposes the version of the library.
//
//go:embed VERSION
var Version string

// --- Types ---

// Notebook is a public alias for the core notebook model.
type Notebook = core.Notebook

// Cell is a public alias for a notebook cell.
type Cell = core.Cell

// Raw is a public alias for a decoded interchange document.
type Raw = core.Raw

// Transform rewrites a notebook between load and write.
type Transform = platform.Transform

// --- Configuration ---

// Option defines a functional option for configuring nbkit.
type Option = platform.Option

// WithLogger sets the logger used by readers, writers and watchers.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStrict fails loading on unknown cell types instead of dropping them.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithStrictNumbers keeps JSON numbers as json.Number while decoding.
func WithStrictNumbers(strict bool) Option {
	return platform.WithStrictNumbers(strict)
}

// WithAtomicWrites writes files through a temp file + rename.
func WithAtomicWrites(atomic bool) Option {
	return platform.WithAtomicWrites(atomic)
}

// WithIndexedGlyphs picks outline glyphs by line position rather than content.
func WithIndexedGlyphs(indexed bool) Option {
	return platform.WithIndexedGlyphs(indexed)
}

// WithOutlineDecorator wraps outline fragments, e.g. with terminal styles.
func WithOutlineDecorator(fn func(codec.Part, string) string) Option {
	return platform.WithOutlineDecorator(fn)
}

// WithPercentVersion sets the format version of notebooks read from scripts.
func WithPercentVersion(version string) Option {
	return platform.WithPercentVersion(version)
}

// WithVersionExtractor overrides how the format version is read.
func WithVersionExtractor(e core.VersionExtractor) Option {
	return platform.WithVersionExtractor(e)
}

// WithRegistry replaces the extension → format mapping.
func WithRegistry(r *codec.Registry) Option {
	return platform.WithRegistry(r)
}

// --- Operations ---

// Construct builds a Notebook from a decoded interchange document.
func Construct(raw Raw, opts ...Option) (*Notebook, error) {
	return platform.Construct(raw, opts...)
}

// Load reads a notebook file (.ipynb, .json, .yaml, .yml or .py).
func Load(ctx context.Context, path string, opts ...Option) (*Notebook, error) {
	return platform.Load(ctx, path, opts...)
}

// Write writes nb in the format matching path's extension.
func Write(ctx context.Context, nb *Notebook, path string, opts ...Option) error {
	return platform.Write(ctx, nb, path, opts...)
}

// WriteJSON writes nb as an .ipynb interchange document.
func WriteJSON(ctx context.Context, nb *Notebook, path string, opts ...Option) error {
	return platform.WriteJSON(ctx, nb, path, opts...)
}

// WritePercent writes nb as a py-percent script.
func WritePercent(ctx context.Context, nb *Notebook, path string, opts ...Option) error {
	return platform.WritePercent(ctx, nb, path, opts...)
}

// WriteOutline writes the outline of nb.
func WriteOutline(ctx context.Context, nb *Notebook, path string, opts ...Option) error {
	return platform.WriteOutline(ctx, nb, path, opts...)
}

// Serialize converts nb to the raw interchange structure.
func Serialize(nb *Notebook) (Raw, error) {
	return codec.Serialize(nb)
}

// Percent renders nb as a py-percent script.
func Percent(nb *Notebook) string {
	return platform.Percent(nb)
}

// Outline renders a tree view of nb.
func Outline(nb *Notebook, opts ...Option) string {
	return platform.Outline(nb, opts...)
}

// Convert loads src, applies transforms and writes dst.
func Convert(ctx context.Context, src, dst string, transforms []Transform, opts ...Option) error {
	return platform.Convert(ctx, src, dst, transforms, opts...)
}

// Watch reloads path whenever it changes until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange fs.ChangeFunc, opts ...Option) (*fs.Watcher, error) {
	return platform.Watch(ctx, path, onChange, opts...)
}

// --- Transforms ---

// Markdownize turns code cells into fenced markdown cells.
func Markdownize(nb *Notebook) *Notebook {
	return core.Markdownize(nb)
}

// WithoutMarkdown keeps only code cells.
func WithoutMarkdown(nb *Notebook) *Notebook {
	return core.WithoutMarkdown(nb)
}

// --- Utils ---

// FindConfig looks upwards from startDir for a .nbkit.yaml file.
func FindConfig(startDir string) (string, error) {
	return platform.FindConfig(startDir)
}
