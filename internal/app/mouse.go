package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse routes mouse events to handle dragging, hover focus and wheel
// scrolling.
//
// A left press on a handle grabs it. Motion events while a handle is held
// move it; the engine ends the drag by itself when motion arrives without the
// left button, which covers releases the terminal never reported. Motion
// without a drag updates the hovered handle.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			return m, m.pressHandle(msg.X, msg.Y)
		case tea.MouseButtonWheelUp:
			m.scrollPaneAt(msg.X, msg.Y, -WheelScrollLines)
		case tea.MouseButtonWheelDown:
			m.scrollPaneAt(msg.X, msg.Y, WheelScrollLines)
		}
	case tea.MouseActionMotion:
		if m.drag != nil {
			return m, m.moveHandle(msg.X, msg.Y, msg.Button == tea.MouseButtonLeft)
		}
		m.hover, _ = m.handleAt(m.root, msg.X, msg.Y)
	case tea.MouseActionRelease:
		m.releaseHandle()
	}
	return m, nil
}

func (m *Model) pressHandle(x, y int) tea.Cmd {
	ref, ok := m.handleAt(m.root, x, y)
	if !ok {
		return nil
	}
	if m.drag != nil && m.drag != ref.pane {
		m.drag.engine.Unselect()
	}
	if !ref.pane.engine.Select(ref.index, ref.pane.pointer(x, y)) {
		return nil
	}
	m.drag = ref.pane
	m.focus = ref
	m.keys.setNudgeEnabled(true)
	return nil
}

func (m *Model) moveHandle(x, y int, leftHeld bool) tea.Cmd {
	p := m.drag
	p.engine.Move(p.pointer(x, y), leftHeld)
	if _, dragging := p.engine.Selected(); !dragging {
		m.drag = nil
	}
	p.layoutChildren()
	return m.refreshPanes(p)
}

func (m *Model) releaseHandle() {
	if m.drag == nil {
		return
	}
	m.drag.engine.Unselect()
	m.drag = nil
}

func (m *Model) scrollPaneAt(x, y, lines int) {
	leaf := m.root.leafAt(x, y)
	if leaf == nil {
		return
	}
	if lines < 0 {
		leaf.viewport.LineUp(-lines)
		return
	}
	leaf.viewport.LineDown(lines)
}
