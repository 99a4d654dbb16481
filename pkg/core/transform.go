package core

import "strings"

const (
	fenceOpen  = "``` python\n"
	fenceClose = "```"
)

// Markdownize returns a copy of n where every code cell is turned into a
// markdown cell holding its source inside a python code fence. Cell IDs are kept.
func Markdownize(n *Notebook) *Notebook {
	out := &Notebook{version: n.version, cells: make([]Cell, 0, len(n.cells))}
	for _, c := range n.cells {
		switch c.Type {
		case CellCode:
			source := make([]string, 0, len(c.Source)+2)
			source = append(source, fenceOpen)
			source = append(source, c.Source...)
			// Joined lines must not glue the closing fence onto the last statement.
			if last := len(source) - 1; last > 0 && !strings.HasSuffix(source[last], "\n") {
				source[last] += "\n"
			}
			source = append(source, fenceClose)
			out.cells = append(out.cells, Cell{Type: CellMarkdown, ID: c.ID, Source: source})
		case CellMarkdown:
			out.cells = append(out.cells, c.clone())
		}
	}
	return out
}

// WithoutMarkdown returns a copy of n holding only its code cells.
func WithoutMarkdown(n *Notebook) *Notebook {
	out := &Notebook{version: n.version}
	for _, c := range n.cells {
		if c.Type == CellCode {
			out.cells = append(out.cells, c.clone())
		}
	}
	return out
}
