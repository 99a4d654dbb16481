package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/nbkit/pkg/core"
)

// IPYNB handles the JSON interchange format.
type IPYNB struct {
	// Strict enables strict number parsing (as json.Number) on decode.
	Strict bool
	// Indent is the per-level indentation used by Encode.
	Indent string
}

// NewIPYNB creates a JSON interchange codec indenting with one space, as Jupyter does.
func NewIPYNB() *IPYNB {
	return &IPYNB{Indent: " "}
}

// Serialize converts the notebook to the raw interchange structure.
// Outputs and metadata are not carried: code cells get an empty outputs list
// and every metadata mapping is empty.
func Serialize(nb *core.Notebook) (core.Raw, error) {
	major, minor, err := core.SplitVersion(nb.Version())
	if err != nil {
		return nil, err
	}

	cells := make([]any, 0, nb.Len())
	for _, c := range nb.All() {
		source := c.Source
		if source == nil {
			source = []string{}
		}
		entry := map[string]any{
			"id":       c.ID,
			"metadata": map[string]any{},
			"source":   source,
		}
		switch c.Type {
		case core.CellMarkdown:
			entry["cell_type"] = string(core.CellMarkdown)
		case core.CellCode:
			entry["cell_type"] = string(core.CellCode)
			if c.ExecutionCount != nil {
				entry["execution_count"] = *c.ExecutionCount
			} else {
				entry["execution_count"] = nil
			}
			entry["outputs"] = []any{}
		default:
			return nil, fmt.Errorf("%w: %q", core.ErrUnknownCellType, c.Type)
		}
		cells = append(cells, entry)
	}

	return core.Raw{
		"cells":          cells,
		"metadata":       map[string]any{},
		"nbformat":       major,
		"nbformat_minor": minor,
	}, nil
}

// Encode writes the notebook as JSON. Map keys are emitted in sorted order,
// which matches the key order Jupyter itself writes.
func (s *IPYNB) Encode(nb *core.Notebook) ([]byte, error) {
	raw, err := Serialize(nb)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", s.Indent)
	if err := enc.Encode(raw); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a JSON interchange document.
func (s *IPYNB) Decode(r io.Reader) (core.Raw, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	decoder := json.NewDecoder(bytes.NewReader(data))
	if s.Strict {
		decoder.UseNumber()
	}
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %w", core.ErrDecode, err)
	}
	return core.Raw(payload), nil
}
