package platform

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/aretw0/nbkit/pkg/adapters/fs"
	"github.com/aretw0/nbkit/pkg/codec"
	"github.com/aretw0/nbkit/pkg/core"
)

// Transform rewrites a notebook between load and write.
type Transform func(*core.Notebook) *core.Notebook

// Construct builds a Notebook from an already-decoded raw document.
func Construct(raw core.Raw, opts ...Option) (*core.Notebook, error) {
	o := apply(opts)
	return core.Construct(raw, o.constructOptions()...)
}

// Load reads the notebook at path. The format is chosen by extension.
func Load(ctx context.Context, path string, opts ...Option) (*core.Notebook, error) {
	o := apply(opts)
	return fs.NewReader(o.fsConfig()).Load(ctx, path, o.constructOptions()...)
}

// Write writes nb to path in the format matching its extension.
func Write(ctx context.Context, nb *core.Notebook, path string, opts ...Option) error {
	o := apply(opts)
	return fs.NewWriter(o.fsConfig()).Write(ctx, nb, path)
}

// WriteJSON writes nb as an .ipynb interchange document regardless of path's extension.
func WriteJSON(ctx context.Context, nb *core.Notebook, path string, opts ...Option) error {
	o := apply(opts)
	return fs.NewWriter(o.fsConfig()).WriteWith(ctx, codec.NewIPYNB(), nb, path)
}

// WritePercent writes nb as a py-percent script regardless of path's extension.
func WritePercent(ctx context.Context, nb *core.Notebook, path string, opts ...Option) error {
	o := apply(opts)
	return fs.NewWriter(o.fsConfig()).WriteWith(ctx, codec.NewPercent(), nb, path)
}

// WriteOutline writes the outline of nb regardless of path's extension.
func WriteOutline(ctx context.Context, nb *core.Notebook, path string, opts ...Option) error {
	o := apply(opts)
	return fs.NewWriter(o.fsConfig()).WriteWith(ctx, o.outline(), nb, path)
}

// Outline renders the outline of nb.
func Outline(nb *core.Notebook, opts ...Option) string {
	return apply(opts).outline().Render(nb)
}

// Percent renders nb as a py-percent script.
func Percent(nb *core.Notebook) string {
	return codec.RenderPercent(nb)
}

// Convert loads src, applies the transforms in order and writes the result to dst.
func Convert(ctx context.Context, src, dst string, transforms []Transform, opts ...Option) error {
	o := apply(opts)
	cfg := o.fsConfig()

	nb, err := fs.NewReader(cfg).Load(ctx, src, o.constructOptions()...)
	if err != nil {
		return err
	}
	for _, t := range transforms {
		nb = t(nb)
	}

	if err := fs.NewWriter(cfg).Write(ctx, nb, dst); err != nil {
		return err
	}
	o.logger.Info("converted", "src", src, "dst", dst, "cells", nb.Len())
	return nil
}

// TargetPath derives the output path for src with the given extension.
// When dir is empty the output sits next to src.
func TargetPath(src, dir, ext string) (string, error) {
	if ext == "" {
		return "", fmt.Errorf("target extension is required")
	}
	if ext[0] != '.' {
		ext = "." + ext
	}
	base := filepath.Base(src)
	name := base[:len(base)-len(filepath.Ext(base))] + ext
	if dir == "" {
		dir = filepath.Dir(src)
	}
	out := filepath.Join(dir, name)
	if filepath.Clean(out) == filepath.Clean(src) {
		return "", fmt.Errorf("refusing to overwrite source %s", src)
	}
	return out, nil
}

// Watch reloads path on every change and hands the result to onChange.
func Watch(ctx context.Context, path string, onChange fs.ChangeFunc, opts ...Option) (*fs.Watcher, error) {
	o := apply(opts)
	w := fs.NewWatcher(fs.NewReader(o.fsConfig()), path, onChange, o.constructOptions()...)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	return w, nil
}
