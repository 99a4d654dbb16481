package fs_test

import (
	"context"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nbkit/pkg/adapters/fs"
	"github.com/aretw0/nbkit/pkg/codec"
	"github.com/aretw0/nbkit/pkg/core"
)

const helloWorldIPYNB = `{
 "cells": [
  {
   "cell_type": "markdown",
   "id": "a9541506",
   "metadata": {},
   "source": [
    "Hello world!\n",
    "============\n",
    "Print ` + "`Hello world!`" + `:"
   ]
  },
  {
   "cell_type": "code",
   "execution_count": 1,
   "id": "b777420a",
   "metadata": {},
   "outputs": [
    {
     "name": "stdout",
     "output_type": "stream",
     "text": [
      "Hello world!\n"
     ]
    }
   ],
   "source": [
    "print(\"Hello world!\")"
   ]
  },
  {
   "cell_type": "markdown",
   "id": "a23ab5ac",
   "metadata": {},
   "source": [
    "Goodbye! 👋"
   ]
  }
 ],
 "metadata": {
  "kernelspec": {
   "display_name": "Python 3",
   "language": "python",
   "name": "python3"
  }
 },
 "nbformat": 4,
 "nbformat_minor": 5
}
`

func writeSample(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "hello-world.ipynb")
	require.NoError(t, os.WriteFile(path, []byte(helloWorldIPYNB), 0o644))
	return path
}

func TestReader_Load(t *testing.T) {
	ctx := context.Background()
	path := writeSample(t, t.TempDir())

	nb, err := fs.NewReader(fs.Config{}).Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "4.5", nb.Version())

	var ids []string
	for _, c := range nb.All() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"a9541506", "b777420a", "a23ab5ac"}, ids)
}

func TestReader_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	r := fs.NewReader(fs.Config{})

	_, err := r.Load(ctx, filepath.Join(dir, "missing.ipynb"))
	assert.True(t, errors.Is(err, iofs.ErrNotExist), "got %v", err)

	broken := filepath.Join(dir, "broken.ipynb")
	require.NoError(t, os.WriteFile(broken, []byte("{"), 0o644))
	_, err = r.Load(ctx, broken)
	assert.ErrorIs(t, err, core.ErrDecode)

	_, err = r.Load(ctx, filepath.Join(dir, "notes.docx"))
	assert.ErrorContains(t, err, "no decoder")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = r.Load(cancelled, writeSample(t, dir))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReader_Strict(t *testing.T) {
	path := writeSample(t, t.TempDir())

	raw, err := fs.NewReader(fs.Config{Strict: true}).LoadRaw(context.Background(), path)
	require.NoError(t, err)
	assert.IsType(t, json.Number(""), raw["nbformat"])

	raw, err = fs.NewReader(fs.Config{}).LoadRaw(context.Background(), path)
	require.NoError(t, err)
	assert.IsType(t, float64(0), raw["nbformat"])
}

func TestWriter_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	src := writeSample(t, dir)

	r := fs.NewReader(fs.Config{})
	nb, err := r.Load(ctx, src)
	require.NoError(t, err)

	for _, atomic := range []bool{false, true} {
		w := fs.NewWriter(fs.Config{Atomic: atomic})
		for _, name := range []string{"out.ipynb", "out.yaml"} {
			dst := filepath.Join(dir, name)
			require.NoError(t, w.Write(ctx, nb, dst))

			back, err := r.Load(ctx, dst)
			require.NoError(t, err)
			assert.Equal(t, nb.Version(), back.Version())
			assert.Equal(t, nb.Cells(), back.Cells())
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.ipynb"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "kernelspec", "metadata is not carried")
	assert.NotContains(t, string(data), "stdout", "outputs are not carried")
}

func TestWriter_TextFormats(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	nb, err := fs.NewReader(fs.Config{}).Load(ctx, writeSample(t, dir))
	require.NoError(t, err)

	w := fs.NewWriter(fs.Config{})

	py := filepath.Join(dir, "hello.py")
	require.NoError(t, w.Write(ctx, nb, py))
	data, err := os.ReadFile(py)
	require.NoError(t, err)
	assert.Equal(t, codec.RenderPercent(nb)+"\n", string(data))

	outline := filepath.Join(dir, "hello.txt")
	require.NoError(t, w.Write(ctx, nb, outline))
	data, err = os.ReadFile(outline)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Jupyter Notebook v4.5\n"))

	err = w.Write(ctx, nb, filepath.Join(dir, "hello.docx"))
	assert.ErrorContains(t, err, "no encoder")

	err = w.Write(ctx, core.NewNotebook("4"), filepath.Join(dir, "bad.ipynb"))
	assert.ErrorIs(t, err, core.ErrMalformedVersion)
}

func TestGlob(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "b"), 0o755))
	for _, p := range []string{"one.ipynb", "a/two.ipynb", "a/b/three.ipynb", "a/b/skip.py"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, p), []byte("{}"), 0o644))
	}

	matches, err := fs.Glob(filepath.Join(dir, "**", "*.ipynb"))
	require.NoError(t, err)
	assert.Len(t, matches, 3)

	single := filepath.Join(dir, "one.ipynb")
	matches, err = fs.Glob(single)
	require.NoError(t, err)
	assert.Equal(t, []string{single}, matches)

	_, err = fs.Glob(filepath.Join(dir, "*.none"))
	assert.Error(t, err)
}
