package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/treykane/splitview/internal/splitview"
)

// View draws the full UI (pane tree + footer).
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := m.calculateLayout()
	body := m.renderPane(m.root)
	if m.showHelp {
		body = m.renderHelpOverlay(layout.Width, layout.ContentHeight)
	}
	body = padBlock(body, layout.Width, layout.ContentHeight)

	view := body + "\n" + m.renderStatus(layout.Width, layout.FooterHeight)
	return padBlock(view, m.width, m.height)
}

// renderPane draws a pane into a block exactly the size of its bounds.
func (m *Model) renderPane(p *pane) string {
	if p.bounds.empty() {
		return ""
	}
	if !p.isSplit() {
		return m.renderLeaf(p)
	}

	axis := p.axis()
	parts := make([]string, 0, 2*len(p.children))
	for i, child := range p.children {
		if !child.bounds.empty() {
			parts = append(parts, m.renderPane(child))
		}
		if i < len(p.children)-1 && p.handleVisible(i+1) {
			parts = append(parts, m.renderHandle(p, i+1))
		}
	}

	var block string
	if axis == splitview.Column {
		block = lipgloss.JoinVertical(lipgloss.Left, parts...)
	} else {
		block = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	}
	return padBlock(block, p.bounds.w, p.bounds.h)
}

func (m *Model) renderLeaf(p *pane) string {
	lines := make([]string, 0, p.bounds.h)
	if p.titleRows() > 0 {
		title := " " + truncate(p.title, max(0, p.bounds.w-2)) + " "
		lines = append(lines, paneTitle.Width(p.bounds.w).Render(truncate(title, p.bounds.w)))
	}
	if p.viewport.Height > 0 {
		lines = append(lines, leafStyle.Render(p.viewport.View()))
	}
	return padBlock(strings.Join(lines, "\n"), p.bounds.w, p.bounds.h)
}

// renderHandle draws handle i of a split across the split's cross axis.
func (m *Model) renderHandle(p *pane, i int) string {
	style, glyph := m.handleStyle(p.axis(), m.isActive(p, i))
	if p.axis() == splitview.Column {
		return style.Render(strings.Repeat(glyph, p.bounds.w))
	}
	cells := make([]string, p.bounds.h)
	for row := range cells {
		cells[row] = style.Render(glyph)
	}
	return strings.Join(cells, "\n")
}

// renderHelpOverlay centers the full key reference over the pane area.
func (m *Model) renderHelpOverlay(width, height int) string {
	m.help.ShowAll = true
	content := strings.Join([]string{
		titleStyle.Render("Keyboard Shortcuts"),
		"",
		m.help.View(m.keys),
		"",
		"Mouse: drag a handle to resize, wheel scrolls a pane.",
		"Esc or ? closes this help.",
	}, "\n")
	m.help.ShowAll = false
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popupStyle.Render(content))
}
