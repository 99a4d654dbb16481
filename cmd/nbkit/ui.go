package main

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/nbkit/pkg/codec"
)

var (
	colorCyan = lipgloss.Color("36")
	colorBlue = lipgloss.Color("75")
	colorDim  = lipgloss.Color("240")

	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleCell   = lipgloss.NewStyle().Foreground(colorBlue)
	styleGlyph  = lipgloss.NewStyle().Foreground(colorDim)
)

// colorize styles outline fragments for terminals.
func colorize(part codec.Part, s string) string {
	switch part {
	case codec.PartHeader:
		return styleHeader.Render(s)
	case codec.PartCell:
		return styleCell.Render(s)
	case codec.PartGlyph:
		return styleGlyph.Render(s)
	default:
		return s
	}
}
