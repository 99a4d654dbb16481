package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/nbkit/pkg/codec"
	"github.com/aretw0/nbkit/pkg/core"
)

// Writer persists notebooks, picking the encoder by the target's extension.
type Writer struct {
	config Config
}

// NewWriter creates a filesystem writer.
func NewWriter(config Config) *Writer {
	return &Writer{config: config.withDefaults()}
}

// Write encodes nb for path's extension and writes it, overwriting any existing file.
func (w *Writer) Write(ctx context.Context, nb *core.Notebook, path string) error {
	enc, ok := w.config.Registry.ForPath(path)
	if !ok {
		return fmt.Errorf("no encoder registered for %q", filepath.Ext(path))
	}
	return w.WriteWith(ctx, enc, nb, path)
}

// WriteWith writes nb to path using an explicit encoder.
func (w *Writer) WriteWith(ctx context.Context, enc codec.Encoder, nb *core.Notebook, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := enc.Encode(nb)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	perm := os.FileMode(w.config.Perm)
	if w.config.Atomic {
		err = writeFileAtomic(path, data, perm)
	} else {
		err = os.WriteFile(path, data, perm)
	}
	if err != nil {
		return err
	}

	w.config.Logger.Debug("notebook written", "path", path, "bytes", len(data), "atomic", w.config.Atomic)
	return nil
}
