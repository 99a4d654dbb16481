package codec

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/nbkit/pkg/core"
)

// YAML writes the interchange structure as YAML instead of JSON.
// The document shape is the one produced by Serialize.
type YAML struct {
	// Indent is the number of spaces per nesting level.
	Indent int
}

// NewYAML creates a YAML interchange codec.
func NewYAML() *YAML {
	return &YAML{Indent: 2}
}

func (s *YAML) Encode(nb *core.Notebook) ([]byte, error) {
	raw, err := Serialize(nb)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(s.Indent)
	if err := encoder.Encode(map[string]any(raw)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *YAML) Decode(r io.Reader) (core.Raw, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("%w: invalid yaml: %w", core.ErrDecode, err)
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: empty yaml document", core.ErrDecode)
	}
	return core.Raw(payload), nil
}
