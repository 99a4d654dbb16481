package codec_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/nbkit/pkg/codec"
	"github.com/aretw0/nbkit/pkg/core"
)

func helloWorld() *core.Notebook {
	return core.NewNotebook("4.5",
		core.NewMarkdownCell("a9541506", []string{"Hello world!\n", "============\n", "Print `Hello world!`:"}),
		core.NewCodeCell("b777420a", []string{`print("Hello world!")`}, core.Count(1)),
		core.NewMarkdownCell("a23ab5ac", []string{"Goodbye! 👋"}),
	)
}

type cellTuple struct {
	ID     string
	Type   core.CellType
	Source []string
	Count  *int
}

func tuples(nb *core.Notebook) []cellTuple {
	var out []cellTuple
	for _, c := range nb.All() {
		out = append(out, cellTuple{ID: c.ID, Type: c.Type, Source: c.Source, Count: c.ExecutionCount})
	}
	return out
}

func TestSerialize(t *testing.T) {
	raw, err := codec.Serialize(helloWorld())
	require.NoError(t, err)

	assert.Equal(t, 4, raw["nbformat"])
	assert.Equal(t, 5, raw["nbformat_minor"])
	assert.Equal(t, map[string]any{}, raw["metadata"])

	cells := raw["cells"].([]any)
	require.Len(t, cells, 3)

	md := cells[0].(map[string]any)
	assert.Equal(t, "markdown", md["cell_type"])
	assert.NotContains(t, md, "outputs")
	assert.NotContains(t, md, "execution_count")
	assert.Equal(t, []string{"Hello world!\n", "============\n", "Print `Hello world!`:"}, md["source"])

	code := cells[1].(map[string]any)
	assert.Equal(t, "code", code["cell_type"])
	assert.Equal(t, 1, code["execution_count"])
	assert.Equal(t, []any{}, code["outputs"])
	assert.Equal(t, map[string]any{}, code["metadata"])
}

func TestSerialize_Versions(t *testing.T) {
	tests := []struct {
		version      string
		major, minor int
		wantErr      bool
	}{
		{"4.5", 4, 5, false},
		{"10.2", 10, 2, false},
		{"4", 0, 0, true},
		{"4.5.0", 0, 0, true},
		{"four.5", 0, 0, true},
	}
	for _, tc := range tests {
		t.Run(tc.version, func(t *testing.T) {
			raw, err := codec.Serialize(core.NewNotebook(tc.version))
			if tc.wantErr {
				assert.ErrorIs(t, err, core.ErrMalformedVersion)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.major, raw["nbformat"])
			assert.Equal(t, tc.minor, raw["nbformat_minor"])
		})
	}
}

func TestIPYNB_RoundTrip(t *testing.T) {
	nb := core.NewNotebook("4.5",
		core.NewMarkdownCell("a9541506", []string{"Hello world!\n", "============\n", "Print `Hello world!`:"}),
		core.NewCodeCell("b777420a", []string{"x = 1\n", "  print(x)  "}, core.Count(7)),
		core.NewCodeCell("never", nil, nil),
		core.NewMarkdownCell("empty", nil),
	)

	for _, strict := range []bool{false, true} {
		s := codec.NewIPYNB()
		s.Strict = strict

		data, err := s.Encode(nb)
		require.NoError(t, err)

		raw, err := s.Decode(bytes.NewReader(data))
		require.NoError(t, err)

		back, err := core.Construct(raw)
		require.NoError(t, err)

		assert.Equal(t, nb.Version(), back.Version())
		want := tuples(nb)
		want[2].Source = []string{}
		want[3].Source = []string{}
		assert.Equal(t, want, tuples(back))
	}
}

func TestIPYNB_EncodeLayout(t *testing.T) {
	data, err := codec.NewIPYNB().Encode(core.NewNotebook("4.5",
		core.NewCodeCell("c1", []string{"a < b"}, nil),
	))
	require.NoError(t, err)

	text := string(data)
	assert.True(t, strings.HasSuffix(text, "}\n"))
	assert.Contains(t, text, `"a < b"`)
	assert.Contains(t, text, `"execution_count": null`)
	assert.Less(t, strings.Index(text, `"cell_type"`), strings.Index(text, `"source"`))

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.Equal(t, 4.0, generic["nbformat"])
}

func TestIPYNB_DecodeInvalid(t *testing.T) {
	_, err := codec.NewIPYNB().Decode(strings.NewReader("{not json"))
	assert.ErrorIs(t, err, core.ErrDecode)
}

func TestYAML_RoundTrip(t *testing.T) {
	nb := helloWorld()
	s := codec.NewYAML()

	data, err := s.Encode(nb)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nbformat: 4")
	assert.Contains(t, string(data), "cell_type: markdown")

	raw, err := s.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	back, err := core.Construct(raw)
	require.NoError(t, err)
	assert.Equal(t, "4.5", back.Version())
	assert.Equal(t, tuples(nb), tuples(back))

	_, err = s.Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, core.ErrDecode)
	_, err = s.Decode(strings.NewReader("cells: [unclosed"))
	assert.ErrorIs(t, err, core.ErrDecode)
}

func TestRegistry(t *testing.T) {
	r := codec.Default()

	for _, ext := range []string{".ipynb", ".json", ".yaml", ".yml", ".py", ".txt", ".outline", "IPYNB", "py"} {
		_, ok := r.Encoder(ext)
		assert.True(t, ok, "encoder for %s", ext)
	}
	for _, ext := range []string{".ipynb", ".json", ".yaml", ".py"} {
		_, ok := r.Decoder(ext)
		assert.True(t, ok, "decoder for %s", ext)
	}
	_, ok := r.Decoder(".txt")
	assert.False(t, ok, "outline is write-only")

	e, ok := r.ForPath("dir/notes.PY")
	require.True(t, ok)
	assert.IsType(t, &codec.Percent{}, e)

	_, ok = r.ForPath("notes.docx")
	assert.False(t, ok)

	r.Register(".ipynb", codec.NewOutline())
	_, ok = r.Decoder(".ipynb")
	assert.False(t, ok, "re-registering with an encoder-only format drops the decoder")
	assert.Len(t, r.Extensions(), 7)
}
