package core

import (
	"context"
	"fmt"
)

// VersionExtractor derives the "<major>.<minor>" format version from a raw document.
type VersionExtractor interface {
	ExtractVersion(raw Raw) (string, error)
}

// VersionExtractorFunc adapts a function to VersionExtractor.
type VersionExtractorFunc func(raw Raw) (string, error)

func (f VersionExtractorFunc) ExtractVersion(raw Raw) (string, error) {
	return f(raw)
}

// Reader is the interchange-format collaborator: it loads raw documents and
// extracts their format version. Adapters (filesystem, in-memory fixtures)
// implement it so the core never depends on a concrete file format.
type Reader interface {
	VersionExtractor
	// LoadRaw reads and decodes the document identified by path.
	LoadRaw(ctx context.Context, path string) (Raw, error)
}

// NBFormatVersion reads the nbformat and nbformat_minor keys.
var NBFormatVersion VersionExtractor = VersionExtractorFunc(extractNBFormat)

func extractNBFormat(raw Raw) (string, error) {
	major, err := requireInt(raw, "nbformat")
	if err != nil {
		return "", err
	}
	minor, err := requireInt(raw, "nbformat_minor")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", major, minor), nil
}

func requireInt(raw Raw, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return 0, &FieldError{Field: key, Index: -1, Err: ErrMissingField}
	}
	n, ok := rawInt(v)
	if !ok {
		return 0, &FieldError{Field: key, Index: -1, Err: fmt.Errorf("%w: expected integer, got %v", ErrInvalidField, v)}
	}
	return n, nil
}
