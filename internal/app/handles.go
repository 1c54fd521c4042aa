package app

import (
	"fmt"
	"strings"

	"github.com/treykane/splitview/internal/splitview"
)

// handleRef identifies a handle of a split pane by index. The zero value means
// no handle.
type handleRef struct {
	pane  *pane
	index int
}

func (h handleRef) valid() bool {
	return h.pane != nil && h.pane.isSplit() && h.index > 0 && h.index < len(h.pane.children)
}

func (h handleRef) cell() int {
	return h.pane.engine.Layout().HandleCell(h.index)
}

// allHandles lists every handle in the tree, outer splits first.
func (m *Model) allHandles() []handleRef {
	var out []handleRef
	m.root.walk(func(p *pane) {
		if !p.isSplit() {
			return
		}
		for i := 1; i < len(p.children); i++ {
			out = append(out, handleRef{pane: p, index: i})
		}
	})
	return out
}

// activeHandle is the handle drawn in the focused style: the one being
// dragged, else the hovered one, else the keyboard focus.
func (m *Model) activeHandle() handleRef {
	if m.drag != nil {
		if index, ok := m.drag.engine.Selected(); ok {
			return handleRef{pane: m.drag, index: index}
		}
	}
	if m.hover.valid() {
		return m.hover
	}
	return m.focus
}

// isActive reports whether handle i of p should render focused. Handles of
// collapsed views share a cell with their neighbour, so the comparison is by
// cell.
func (m *Model) isActive(p *pane, i int) bool {
	active := m.activeHandle()
	if !active.valid() || active.pane != p {
		return false
	}
	return active.index == i || active.cell() == p.engine.Layout().HandleCell(i)
}

// handleReach is how many cells either side of its cell a handle accepts a
// press. It grows with the configured handle size.
func (m *Model) handleReach(h handleRef) int {
	size := m.cfg.Handle.DefaultSize
	if m.isActive(h.pane, h.index) {
		size = m.cfg.Handle.FocusedSize
	}
	return max(0, (size-1)/2)
}

// handleAt hit-tests the tree. The innermost split whose handle zone
// contains the position wins; among handles of one split the closest wins,
// and on a tie the later handle, so a collapsed view can be dragged open.
func (m *Model) handleAt(p *pane, x, y int) (handleRef, bool) {
	if p == nil || !p.isSplit() || !p.bounds.contains(x, y) {
		return handleRef{}, false
	}
	for _, child := range p.children {
		if ref, ok := m.handleAt(child, x, y); ok {
			return ref, true
		}
	}

	along := p.along(x, y)
	best := handleRef{}
	bestDist := -1
	for i := 1; i < len(p.children); i++ {
		ref := handleRef{pane: p, index: i}
		dist := abs(along - ref.cell())
		if dist > m.handleReach(ref) {
			continue
		}
		if bestDist < 0 || dist <= bestDist {
			best, bestDist = ref, dist
		}
	}
	return best, bestDist >= 0
}

// cycleFocus moves the keyboard focus to the next or previous handle.
func (m *Model) cycleFocus(step int) {
	handles := m.allHandles()
	if len(handles) == 0 {
		m.focus = handleRef{}
		m.status = "No handles to focus"
		return
	}
	next := 0
	if step < 0 {
		next = len(handles) - 1
	}
	for i, h := range handles {
		if h == m.focus {
			next = (i + step + len(handles)) % len(handles)
			break
		}
	}
	m.focus = handles[next]
	m.status = "Focused " + m.describeHandle(m.focus)
}

// nudgeFocused moves the focused handle by delta cells.
func (m *Model) nudgeFocused(delta int) {
	if !m.focus.valid() {
		m.status = "Tab to focus a handle first"
		return
	}
	p := m.focus.pane
	moved := p.engine.Nudge(m.focus.index, float64(delta))
	p.layoutChildren()
	if moved == 0 {
		m.status = "Handle is at its limit"
		return
	}
	m.status = fmt.Sprintf("Moved %s by %s", m.describeHandle(m.focus), formatCells(moved))
}

// resetSplits discards drag results everywhere and re-resolves the declared
// size hints.
func (m *Model) resetSplits() {
	m.root.walk(func(p *pane) {
		if !p.isSplit() {
			return
		}
		p.engine.Reset()
		p.layoutChildren()
	})
	m.status = "Layout reset"
}

func (m *Model) handleGrabbed(p *pane) {
	index, _ := p.engine.Selected()
	appLog.Debug("grab handle", "pane", p.id, "handle", index)
	m.status = "Dragging " + m.describeHandle(handleRef{pane: p, index: index})
}

func (m *Model) handleDragged(p *pane) {
	appLog.Debug("drag handle", "pane", p.id, "sizes", p.engine.Layout().Sizes())
	m.dragEvents++
}

func (m *Model) handleReleased(p *pane) {
	appLog.Debug("release handle", "pane", p.id)
	m.status = "Sizes " + describeSizes(p)
}

func (m *Model) describeHandle(h handleRef) string {
	if !h.valid() {
		return ""
	}
	name := h.pane.title
	if name == "" {
		name = h.pane.axis().String()
	}
	return fmt.Sprintf("handle %d/%d of %s", h.index, len(h.pane.children)-1, name)
}

func describeSizes(p *pane) string {
	spans := p.engine.Layout().Cells()
	parts := make([]string, len(spans))
	for i, s := range spans {
		parts[i] = fmt.Sprint(s.Extent)
	}
	unit := "cols"
	if p.axis() == splitview.Column {
		unit = "rows"
	}
	return strings.Join(parts, " | ") + " " + unit
}

func formatCells(v float64) string {
	if v == float64(int(v)) {
		return fmt.Sprintf("%d cells", int(v))
	}
	return fmt.Sprintf("%.1f cells", v)
}
