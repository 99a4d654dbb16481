package core

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
)

// Notebook is an ordered, immutable collection of cells plus a format version.
type Notebook struct {
	version string
	cells   []Cell
}

// NewNotebook assembles a Notebook from already-built cells.
// Cells are copied; later changes to the arguments do not affect the Notebook.
func NewNotebook(version string, cells ...Cell) *Notebook {
	nb := &Notebook{version: version, cells: make([]Cell, 0, len(cells))}
	for _, c := range cells {
		nb.cells = append(nb.cells, c.clone())
	}
	return nb
}

// Version returns the "<major>.<minor>" format version.
func (n *Notebook) Version() string {
	return n.version
}

// Len returns the number of cells.
func (n *Notebook) Len() int {
	return len(n.cells)
}

// Cell returns a copy of the i-th cell.
func (n *Notebook) Cell(i int) Cell {
	return n.cells[i].clone()
}

// Cells returns a copy of the cells in document order.
func (n *Notebook) Cells() []Cell {
	out := make([]Cell, len(n.cells))
	for i, c := range n.cells {
		out[i] = c.clone()
	}
	return out
}

// All iterates the cells in document order. It can be ranged over any number of times.
func (n *Notebook) All() iter.Seq2[int, Cell] {
	return func(yield func(int, Cell) bool) {
		for i, c := range n.cells {
			if !yield(i, c.clone()) {
				return
			}
		}
	}
}

// ConstructOption configures Construct.
type ConstructOption func(*constructOptions)

type constructOptions struct {
	extractor VersionExtractor
	strict    bool
	logger    *slog.Logger
}

// WithVersionExtractor overrides how the format version is read. Defaults to NBFormatVersion.
func WithVersionExtractor(e VersionExtractor) ConstructOption {
	return func(o *constructOptions) {
		o.extractor = e
	}
}

// WithStrictCellTypes makes Construct fail with ErrUnknownCellType instead of
// dropping cells whose type is neither code nor markdown.
func WithStrictCellTypes(strict bool) ConstructOption {
	return func(o *constructOptions) {
		o.strict = strict
	}
}

// WithConstructLogger receives a debug record for every dropped cell.
func WithConstructLogger(logger *slog.Logger) ConstructOption {
	return func(o *constructOptions) {
		o.logger = logger
	}
}

// Construct builds a Notebook from a raw interchange document.
// Cells of any type other than code or markdown are skipped unless strict mode is on.
func Construct(raw Raw, opts ...ConstructOption) (*Notebook, error) {
	o := &constructOptions{extractor: NBFormatVersion}
	for _, opt := range opts {
		opt(o)
	}
	if o.extractor == nil {
		o.extractor = NBFormatVersion
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	version, err := o.extractor.ExtractVersion(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to extract format version: %w", err)
	}

	cellsVal, ok := raw["cells"]
	if !ok {
		return nil, &FieldError{Field: "cells", Index: -1, Err: ErrMissingField}
	}
	entries, ok := rawList(cellsVal)
	if !ok {
		return nil, &FieldError{Field: "cells", Index: -1, Err: fmt.Errorf("%w: expected list, got %T", ErrInvalidField, cellsVal)}
	}

	nb := &Notebook{version: version, cells: make([]Cell, 0, len(entries))}
	for i, entry := range entries {
		m, ok := rawMap(entry)
		if !ok {
			return nil, &FieldError{Field: "cells", Index: i, Err: fmt.Errorf("%w: expected mapping, got %T", ErrInvalidField, entry)}
		}
		cell, known, err := cellFromRaw(i, m)
		if err != nil {
			return nil, err
		}
		if !known {
			if o.strict {
				return nil, &FieldError{Field: "cell_type", Index: i, Err: fmt.Errorf("%w: %v", ErrUnknownCellType, m["cell_type"])}
			}
			o.logger.Debug("dropping cell with unsupported type", "index", i, "cell_type", m["cell_type"])
			continue
		}
		nb.cells = append(nb.cells, cell)
	}
	return nb, nil
}

// Load reads a document through r and constructs a Notebook from it.
// The reader's version extractor is used unless opts override it.
func Load(ctx context.Context, r Reader, path string, opts ...ConstructOption) (*Notebook, error) {
	raw, err := r.LoadRaw(ctx, path)
	if err != nil {
		return nil, err
	}
	opts = append([]ConstructOption{WithVersionExtractor(r)}, opts...)
	return Construct(raw, opts...)
}
