package core

import "fmt"

// CellType is the discriminant of a Cell.
type CellType string

const (
	CellCode     CellType = "code"
	CellMarkdown CellType = "markdown"
)

// Cell is one content unit of a notebook.
// It is a closed variant over CellCode and CellMarkdown: ExecutionCount is only
// meaningful for code cells and is nil for markdown cells.
type Cell struct {
	Type   CellType
	ID     string
	Source []string
	// ExecutionCount is nil when the cell was never executed.
	ExecutionCount *int
}

// NewCodeCell creates a code cell. A nil count marks a cell that never ran.
func NewCodeCell(id string, source []string, count *int) Cell {
	var c *int
	if count != nil {
		n := *count
		c = &n
	}
	return Cell{
		Type:           CellCode,
		ID:             id,
		Source:         append([]string(nil), source...),
		ExecutionCount: c,
	}
}

// NewMarkdownCell creates a markdown cell.
func NewMarkdownCell(id string, source []string) Cell {
	return Cell{
		Type:   CellMarkdown,
		ID:     id,
		Source: append([]string(nil), source...),
	}
}

// Count is a convenience for building execution counts inline.
func Count(n int) *int {
	return &n
}

// IsCode reports whether the cell is a code cell.
func (c Cell) IsCode() bool {
	return c.Type == CellCode
}

// IsMarkdown reports whether the cell is a markdown cell.
func (c Cell) IsMarkdown() bool {
	return c.Type == CellMarkdown
}

// clone returns a deep copy so callers cannot mutate a Notebook through it.
func (c Cell) clone() Cell {
	switch c.Type {
	case CellCode:
		return NewCodeCell(c.ID, c.Source, c.ExecutionCount)
	default:
		return NewMarkdownCell(c.ID, c.Source)
	}
}

// cellFromRaw builds a Cell from one entry of the raw "cells" list.
// The returned bool is false when the entry's cell_type is neither code nor markdown.
func cellFromRaw(index int, raw Raw) (Cell, bool, error) {
	typ, err := requireString(index, raw, "cell_type")
	if err != nil {
		return Cell{}, false, err
	}

	switch CellType(typ) {
	case CellCode, CellMarkdown:
	default:
		return Cell{}, false, nil
	}

	id, err := requireString(index, raw, "id")
	if err != nil {
		return Cell{}, false, err
	}

	srcVal, ok := raw["source"]
	if !ok {
		return Cell{}, false, &FieldError{Field: "source", Index: index, Err: ErrMissingField}
	}
	source, ok := rawSource(srcVal)
	if !ok {
		return Cell{}, false, &FieldError{Field: "source", Index: index, Err: fmt.Errorf("%w: expected list of strings, got %T", ErrInvalidField, srcVal)}
	}

	if CellType(typ) == CellMarkdown {
		return Cell{Type: CellMarkdown, ID: id, Source: source}, true, nil
	}

	countVal, ok := raw["execution_count"]
	if !ok {
		return Cell{}, false, &FieldError{Field: "execution_count", Index: index, Err: ErrMissingField}
	}
	cell := Cell{Type: CellCode, ID: id, Source: source}
	if countVal != nil {
		n, ok := rawInt(countVal)
		if !ok || n < 0 {
			return Cell{}, false, &FieldError{Field: "execution_count", Index: index, Err: fmt.Errorf("%w: expected non-negative integer, got %v", ErrInvalidField, countVal)}
		}
		cell.ExecutionCount = &n
	}
	return cell, true, nil
}

func requireString(index int, raw Raw, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", &FieldError{Field: key, Index: index, Err: ErrMissingField}
	}
	s, ok := v.(string)
	if !ok {
		return "", &FieldError{Field: key, Index: index, Err: fmt.Errorf("%w: expected string, got %T", ErrInvalidField, v)}
	}
	return s, nil
}
