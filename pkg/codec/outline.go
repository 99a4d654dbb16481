package codec

import (
	"fmt"
	"strings"

	"github.com/aretw0/nbkit/pkg/core"
)

// Part identifies a fragment of an outline line, for decoration.
type Part int

const (
	PartHeader Part = iota
	PartCell
	PartGlyph
	PartText
)

const (
	glyphSingle = "|"
	glyphFirst  = "┌ "
	glyphMiddle = "│ "
	glyphLast   = "└ "
	cellBranch  = "└─▶ "
	indent      = "    "
)

// Outline renders a human-readable tree of a notebook. It is write-only.
type Outline struct {
	// IndexedGlyphs picks the first/last line glyphs by position instead of by
	// comparing line content with the first and last lines. The two only differ
	// when a cell repeats its first or last line.
	IndexedGlyphs bool
	// Decorate, when set, wraps every fragment (e.g. with terminal colors).
	Decorate func(part Part, s string) string
}

// NewOutline creates an outliner with content-matched glyphs.
func NewOutline() *Outline {
	return &Outline{}
}

// Render outlines the notebook:
//
//	Jupyter Notebook v4.5
//	└─▶ Markdown cell #a9541506
//	    ┌  Hello world!
//	    │  ============
//	    └  Print `Hello world!`:
//	└─▶ Code cell #b777420a (1)
//	    | print("Hello world!")
func (o *Outline) Render(nb *core.Notebook) string {
	lines := []string{o.decorate(PartHeader, "Jupyter Notebook v"+nb.Version())}

	for _, c := range nb.All() {
		var head string
		switch c.Type {
		case core.CellMarkdown:
			head = fmt.Sprintf("Markdown cell #%s", c.ID)
		case core.CellCode:
			head = fmt.Sprintf("Code cell #%s (%s)", c.ID, formatCount(c.ExecutionCount))
		}
		lines = append(lines, cellBranch+o.decorate(PartCell, head))

		for i, l := range c.Source {
			glyph := o.glyph(c.Source, i)
			lines = append(lines, indent+o.decorate(PartGlyph, glyph)+" "+o.decorate(PartText, strings.TrimSpace(l)))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderOutline is a shorthand for NewOutline().Render(nb).
func RenderOutline(nb *core.Notebook) string {
	return NewOutline().Render(nb)
}

// Encode renders the outline followed by a trailing newline.
func (o *Outline) Encode(nb *core.Notebook) ([]byte, error) {
	return []byte(o.Render(nb) + "\n"), nil
}

func (o *Outline) glyph(source []string, i int) string {
	if len(source) <= 1 {
		return glyphSingle
	}
	if o.IndexedGlyphs {
		switch i {
		case 0:
			return glyphFirst
		case len(source) - 1:
			return glyphLast
		default:
			return glyphMiddle
		}
	}
	line := source[i]
	switch {
	case line == source[0]:
		return glyphFirst
	case line == source[len(source)-1]:
		return glyphLast
	default:
		return glyphMiddle
	}
}

func (o *Outline) decorate(part Part, s string) string {
	if o.Decorate == nil {
		return s
	}
	return o.Decorate(part, s)
}

func formatCount(n *int) string {
	if n == nil {
		return " "
	}
	return fmt.Sprint(*n)
}
