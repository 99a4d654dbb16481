package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/nbkit/pkg/core"
)

// Reader implements core.Reader over files, picking the decoder by extension.
type Reader struct {
	config Config
}

// NewReader creates a filesystem reader.
func NewReader(config Config) *Reader {
	return &Reader{config: config.withDefaults()}
}

// LoadRaw opens path as UTF-8 text and decodes it.
// A missing file yields an error matching fs.ErrNotExist.
func (r *Reader) LoadRaw(ctx context.Context, path string) (core.Raw, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := filepath.Ext(path)
	dec, ok := r.config.Registry.Decoder(ext)
	if !ok {
		return nil, fmt.Errorf("no decoder registered for %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	r.config.Logger.Debug("notebook decoded", "path", path, "format", ext)
	return raw, nil
}

// ExtractVersion reads nbformat/nbformat_minor.
func (r *Reader) ExtractVersion(raw core.Raw) (string, error) {
	return core.NBFormatVersion.ExtractVersion(raw)
}

// Load reads path and constructs a Notebook.
func (r *Reader) Load(ctx context.Context, path string, opts ...core.ConstructOption) (*core.Notebook, error) {
	opts = append([]core.ConstructOption{core.WithConstructLogger(r.config.Logger)}, opts...)
	return core.Load(ctx, r, path, opts...)
}

var _ core.Reader = (*Reader)(nil)
