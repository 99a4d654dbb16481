// Package codec converts notebooks to and from their file representations.
//
// Each format implements Encoder; formats that can be read back also
// implement Decoder. Default maps file extensions to the standard set.
package codec

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/aretw0/nbkit/pkg/core"
)

// Encoder renders a Notebook to bytes.
type Encoder interface {
	// Encode converts the notebook to the format's bytes.
	Encode(nb *core.Notebook) ([]byte, error)
}

// Decoder reads a format into a raw interchange structure.
type Decoder interface {
	// Decode reads from r and returns the raw document.
	Decode(r io.Reader) (core.Raw, error)
}

// Codec is a format that can be both written and read.
type Codec interface {
	Encoder
	Decoder
}

// Registry maps file extensions (with leading dot) to formats.
type Registry struct {
	encoders map[string]Encoder
	decoders map[string]Decoder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[string]Encoder),
		decoders: make(map[string]Decoder),
	}
}

// Default returns the standard set of formats.
func Default() *Registry {
	r := NewRegistry()
	ipynb := NewIPYNB()
	yml := NewYAML()
	percent := NewPercent()

	r.Register(".ipynb", ipynb)
	r.Register(".json", ipynb)
	r.Register(".yaml", yml)
	r.Register(".yml", yml)
	r.Register(".py", percent)
	r.Register(".txt", NewOutline())
	r.Register(".outline", NewOutline())
	return r
}

// Register adds f under ext. f is registered as an encoder, and also as a
// decoder when it implements Decoder.
func (r *Registry) Register(ext string, f Encoder) {
	ext = normalizeExt(ext)
	r.encoders[ext] = f
	if d, ok := f.(Decoder); ok {
		r.decoders[ext] = d
	} else {
		delete(r.decoders, ext)
	}
}

// Encoder returns the encoder registered for ext.
func (r *Registry) Encoder(ext string) (Encoder, bool) {
	e, ok := r.encoders[normalizeExt(ext)]
	return e, ok
}

// Decoder returns the decoder registered for ext.
func (r *Registry) Decoder(ext string) (Decoder, bool) {
	d, ok := r.decoders[normalizeExt(ext)]
	return d, ok
}

// ForPath returns the encoder for the extension of path.
func (r *Registry) ForPath(path string) (Encoder, bool) {
	return r.Encoder(filepath.Ext(path))
}

// Extensions lists the registered encoder extensions.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.encoders))
	for ext := range r.encoders {
		exts = append(exts, ext)
	}
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
