package app

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/splitview/internal/splitview"
)

var (
	leafStyle   = lipgloss.NewStyle().Padding(0, 1)
	popupStyle  = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	paneTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("237"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dragStatus  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

// Handle glyphs, light when idle and heavy when focused.
const (
	rowHandleGlyph           = "│"
	rowHandleFocusedGlyph    = "┃"
	columnHandleGlyph        = "─"
	columnHandleFocusedGlyph = "━"
)

// handleStyle returns the style and glyph for a handle in the given state.
func (m *Model) handleStyle(axis splitview.Axis, focused bool) (lipgloss.Style, string) {
	color := m.cfg.Handle.DefaultColor
	glyph := rowHandleGlyph
	if axis == splitview.Column {
		glyph = columnHandleGlyph
	}
	if focused {
		color = m.cfg.Handle.FocusedColor
		glyph = rowHandleFocusedGlyph
		if axis == splitview.Column {
			glyph = columnHandleFocusedGlyph
		}
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)), glyph
}
