package codec

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/aretw0/nbkit/pkg/core"
)

const (
	percentMarker         = "# %%"
	percentMarkdownMarker = "# %% [markdown]"
	percentComment        = "# "

	// DefaultPercentVersion is the format version given to notebooks read from scripts.
	DefaultPercentVersion = "4.5"
)

// Percent handles the py-percent script format, where "# %%" comment lines
// delimit cells and markdown is carried as "# " comments.
type Percent struct {
	// Version is the format version assigned to decoded notebooks.
	Version string
	// NewID generates ids for decoded cells, which the script format does not carry.
	NewID func() string
}

// NewPercent creates a py-percent codec.
func NewPercent() *Percent {
	return &Percent{Version: DefaultPercentVersion, NewID: newCellID}
}

// newCellID mimics Jupyter's short cell ids.
func newCellID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
}

// RenderPercent converts the notebook to py-percent text.
// Every cell is a blank line, its marker line and its trimmed source lines;
// the result as a whole is trimmed so it never starts or ends with blank lines.
func RenderPercent(nb *core.Notebook) string {
	var lines []string
	for _, c := range nb.All() {
		switch c.Type {
		case core.CellMarkdown:
			lines = append(lines, "", percentMarkdownMarker)
			if len(c.Source) == 0 {
				lines = append(lines, percentComment)
			}
			for _, l := range c.Source {
				lines = append(lines, percentComment+strings.TrimSpace(l))
			}
		case core.CellCode:
			lines = append(lines, "", percentMarker)
			if len(c.Source) == 0 {
				lines = append(lines, "")
			}
			for _, l := range c.Source {
				lines = append(lines, strings.TrimSpace(l))
			}
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Encode renders the notebook followed by a single trailing newline.
func (p *Percent) Encode(nb *core.Notebook) ([]byte, error) {
	return []byte(RenderPercent(nb) + "\n"), nil
}

// Decode parses py-percent text into a raw interchange document.
// Text before the first marker becomes a code cell unless it is blank.
// Cell ids are freshly generated; code cells have a null execution count.
func (p *Percent) Decode(r io.Reader) (core.Raw, error) {
	version := p.Version
	if version == "" {
		version = DefaultPercentVersion
	}
	major, minor, err := core.SplitVersion(version)
	if err != nil {
		return nil, err
	}
	newID := p.NewID
	if newID == nil {
		newID = newCellID
	}

	var (
		cells   []any
		kind    = core.CellCode
		body    []string
		started bool
	)

	flush := func() {
		for len(body) > 0 && strings.TrimSpace(body[len(body)-1]) == "" {
			body = body[:len(body)-1]
		}
		if !started && len(body) == 0 {
			return
		}
		source := make([]any, len(body))
		for i, l := range body {
			if i < len(body)-1 {
				l += "\n"
			}
			source[i] = l
		}
		cell := map[string]any{
			"cell_type": string(kind),
			"id":        newID(),
			"metadata":  map[string]any{},
			"source":    source,
		}
		if kind == core.CellCode {
			cell["execution_count"] = nil
			cell["outputs"] = []any{}
		}
		cells = append(cells, cell)
		body = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch {
		case strings.HasPrefix(line, percentMarkdownMarker):
			flush()
			kind, started = core.CellMarkdown, true
		case strings.HasPrefix(line, percentMarker):
			flush()
			kind, started = core.CellCode, true
		case kind == core.CellMarkdown:
			line = strings.TrimPrefix(line, "#")
			line = strings.TrimPrefix(line, " ")
			body = append(body, line)
		default:
			if !started && len(body) == 0 && strings.TrimSpace(line) == "" {
				continue
			}
			body = append(body, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: read percent script: %w", core.ErrDecode, err)
	}
	flush()

	if cells == nil {
		cells = []any{}
	}
	return core.Raw{
		"cells":          cells,
		"metadata":       map[string]any{},
		"nbformat":       major,
		"nbformat_minor": minor,
	}, nil
}
