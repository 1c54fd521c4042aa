// layout.go centralizes the terminal layout calculations.
//
// The screen is the pane tree above an adaptive footer. The footer reserves
// two or three rows depending on terminal width and footer content density;
// everything above it is handed to the root split, which distributes it to
// its views and recurses.
package app

import tea "github.com/charmbracelet/bubbletea"

// LayoutDimensions holds the calculated screen areas.
type LayoutDimensions struct {
	Width         int // terminal width, shared by panes and footer
	ContentHeight int // rows available to the pane tree
	FooterHeight  int // rows reserved for the footer
}

// calculateLayout computes the screen areas from the terminal size.
func (m *Model) calculateLayout() LayoutDimensions {
	footer := min(m.height, m.footerHeightForWidth(m.width))
	return LayoutDimensions{
		Width:         m.width,
		ContentHeight: max(0, m.height-footer),
		FooterHeight:  footer,
	}
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
// It prefers FooterMinRows and expands to FooterMaxRows when the footer
// segments cannot fit without dropping content.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout places the pane tree into the content area and requests
// renders for panes whose width changed.
func (m *Model) applyLayout(layout LayoutDimensions) tea.Cmd {
	m.root.place(rect{w: layout.Width, h: layout.ContentHeight})
	return m.refreshPanes(m.root)
}
