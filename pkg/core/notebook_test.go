package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nbkit/pkg/core"
)

func helloWorldRaw() core.Raw {
	return core.Raw{
		"nbformat":       4.0,
		"nbformat_minor": 5.0,
		"metadata":       map[string]any{"kernelspec": map[string]any{"name": "python3"}},
		"cells": []any{
			map[string]any{
				"cell_type": "markdown",
				"id":        "a9541506",
				"metadata":  map[string]any{},
				"source":    []any{"Hello world!\n", "============\n", "Print `Hello world!`:"},
			},
			map[string]any{
				"cell_type":       "code",
				"execution_count": 1.0,
				"id":              "b777420a",
				"metadata":        map[string]any{},
				"outputs":         []any{map[string]any{"output_type": "stream", "text": []any{"Hello world!\n"}}},
				"source":          []any{`print("Hello world!")`},
			},
			map[string]any{
				"cell_type": "markdown",
				"id":        "a23ab5ac",
				"metadata":  map[string]any{},
				"source":    []any{"Goodbye! 👋"},
			},
		},
	}
}

func TestConstruct(t *testing.T) {
	nb, err := core.Construct(helloWorldRaw())
	require.NoError(t, err)

	assert.Equal(t, "4.5", nb.Version())
	require.Equal(t, 3, nb.Len())

	var ids []string
	for _, c := range nb.All() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"a9541506", "b777420a", "a23ab5ac"}, ids)

	md := nb.Cell(0)
	assert.True(t, md.IsMarkdown())
	assert.Nil(t, md.ExecutionCount)
	assert.Equal(t, []string{"Hello world!\n", "============\n", "Print `Hello world!`:"}, md.Source)

	code := nb.Cell(1)
	assert.True(t, code.IsCode())
	require.NotNil(t, code.ExecutionCount)
	assert.Equal(t, 1, *code.ExecutionCount)
}

func TestConstruct_DropsUnknownCellTypes(t *testing.T) {
	raw := helloWorldRaw()
	cells := raw["cells"].([]any)
	raw["cells"] = append([]any{
		map[string]any{"cell_type": "raw", "id": "r1", "source": []any{"%%latex"}},
	}, append(cells, map[string]any{"cell_type": "heading", "id": "h1", "source": []any{}})...)

	nb, err := core.Construct(raw)
	require.NoError(t, err)
	require.Equal(t, 3, nb.Len())
	assert.Equal(t, "a9541506", nb.Cell(0).ID)
	assert.Equal(t, "a23ab5ac", nb.Cell(2).ID)

	_, err = core.Construct(raw, core.WithStrictCellTypes(true))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownCellType)

	var fe *core.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 0, fe.Index)
}

func TestConstruct_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		cell  map[string]any
		field string
	}{
		{"missing id", map[string]any{"cell_type": "markdown", "source": []any{}}, "id"},
		{"missing source", map[string]any{"cell_type": "markdown", "id": "x"}, "source"},
		{"missing execution_count", map[string]any{"cell_type": "code", "id": "x", "source": []any{}}, "execution_count"},
		{"missing cell_type", map[string]any{"id": "x", "source": []any{}}, "cell_type"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw := core.Raw{"nbformat": 4, "nbformat_minor": 5, "cells": []any{tc.cell}}
			_, err := core.Construct(raw)
			require.ErrorIs(t, err, core.ErrMissingField)

			var fe *core.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tc.field, fe.Field)
		})
	}

	t.Run("missing version", func(t *testing.T) {
		_, err := core.Construct(core.Raw{"cells": []any{}})
		assert.ErrorIs(t, err, core.ErrMissingField)
	})
}

func TestConstruct_NullExecutionCount(t *testing.T) {
	raw := core.Raw{
		"nbformat": 4, "nbformat_minor": 5,
		"cells": []any{
			map[string]any{"cell_type": "code", "id": "c1", "execution_count": nil, "source": "a = 1\nb = 2\n"},
		},
	}
	nb, err := core.Construct(raw)
	require.NoError(t, err)
	c := nb.Cell(0)
	assert.Nil(t, c.ExecutionCount)
	assert.Equal(t, []string{"a = 1\n", "b = 2\n"}, c.Source)
}

func TestConstruct_InvalidExecutionCount(t *testing.T) {
	raw := core.Raw{
		"nbformat": 4, "nbformat_minor": 5,
		"cells": []any{
			map[string]any{"cell_type": "code", "id": "c1", "execution_count": 1.5, "source": []any{}},
		},
	}
	_, err := core.Construct(raw)
	assert.ErrorIs(t, err, core.ErrInvalidField)
}

func TestNotebook_Immutable(t *testing.T) {
	source := []string{"x = 1"}
	nb := core.NewNotebook("4.5", core.NewCodeCell("c1", source, core.Count(3)))
	source[0] = "changed"

	cells := nb.Cells()
	cells[0].Source[0] = "mutated"
	*cells[0].ExecutionCount = 99

	assert.Equal(t, "x = 1", nb.Cell(0).Source[0])
	assert.Equal(t, 3, *nb.Cell(0).ExecutionCount)
}

func TestNotebook_AllRestartable(t *testing.T) {
	nb, err := core.Construct(helloWorldRaw())
	require.NoError(t, err)

	count := func() int {
		n := 0
		for range nb.All() {
			n++
		}
		return n
	}
	assert.Equal(t, 3, count())
	assert.Equal(t, 3, count())

	for i := range nb.All() {
		if i == 0 {
			break
		}
	}
}

type fixtureReader struct {
	docs map[string]core.Raw
}

func (f fixtureReader) LoadRaw(_ context.Context, path string) (core.Raw, error) {
	raw, ok := f.docs[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return raw, nil
}

func (f fixtureReader) ExtractVersion(core.Raw) (string, error) {
	return "9.9", nil
}

func TestLoad_UsesReaderVersion(t *testing.T) {
	r := fixtureReader{docs: map[string]core.Raw{"hello": helloWorldRaw()}}

	nb, err := core.Load(context.Background(), r, "hello")
	require.NoError(t, err)
	assert.Equal(t, "9.9", nb.Version())
	assert.Equal(t, 3, nb.Len())

	_, err = core.Load(context.Background(), r, "missing")
	assert.Error(t, err)
}

func TestSplitVersion(t *testing.T) {
	tests := []struct {
		in           string
		major, minor int
		wantErr      bool
	}{
		{"4.5", 4, 5, false},
		{"10.2", 10, 2, false},
		{"4", 0, 0, true},
		{"4.5.1", 0, 0, true},
		{"a.5", 0, 0, true},
		{"4.b", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			major, minor, err := core.SplitVersion(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, core.ErrMalformedVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.major, major)
			assert.Equal(t, tc.minor, minor)
		})
	}
}
