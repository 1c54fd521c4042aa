package app

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/treykane/splitview/internal/config"
	"github.com/treykane/splitview/internal/splitview"
)

// rect is a screen area in terminal cells.
type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) empty() bool {
	return r.w <= 0 || r.h <= 0
}

// pane is one node of the layout tree. Splits own a layout engine and child
// panes; leaves own a viewport with rendered markdown.
type pane struct {
	id     int
	title  string
	bounds rect

	// Split state.
	engine   *splitview.Engine
	children []*pane

	// Leaf state.
	file          string
	text          string
	viewport      viewport.Model
	renderSeq     int
	pendingWidth  int
	renderedWidth int
	rendering     bool
}

func (p *pane) isSplit() bool {
	return p.engine != nil
}

func (p *pane) axis() splitview.Axis {
	return p.engine.Axis()
}

// buildPane creates the pane tree for a layout node.
func (m *Model) buildPane(node config.Node) *pane {
	m.nextPaneID++
	p := &pane{id: m.nextPaneID, title: node.Title}
	if !node.IsSplit() {
		p.file = node.File
		p.text = node.Text
		if p.title == "" && p.file != "" {
			p.title = filepath.Base(p.file)
		}
		p.viewport = viewport.New(0, 0)
		return p
	}

	p.children = make([]*pane, len(node.Views))
	for i, child := range node.Views {
		p.children[i] = m.buildPane(child)
	}
	p.engine = splitview.New(node.Axis(), node.Constraints(), m.engineOptions(p)...)
	return p
}

// reseedPane applies a changed layout document to an existing tree. Splits
// that keep their direction keep their engine and receive the new view set
// through Seed; everything else is rebuilt.
func (m *Model) reseedPane(p *pane, node config.Node) *pane {
	if p == nil || !p.isSplit() || !node.IsSplit() || p.axis() != node.Axis() {
		return m.buildPane(node)
	}
	children := make([]*pane, len(node.Views))
	for i, child := range node.Views {
		var old *pane
		if i < len(p.children) {
			old = p.children[i]
		}
		children[i] = m.reseedPane(old, child)
	}
	p.title = node.Title
	p.children = children
	p.engine.Seed(node.Constraints())
	return p
}

func (m *Model) engineOptions(p *pane) []splitview.Option {
	opts := []splitview.Option{splitview.WithCallbacks(splitview.Callbacks{
		OnGrab:    func() { m.handleGrabbed(p) },
		OnDrag:    func() { m.handleDragged(p) },
		OnRelease: func() { m.handleReleased(p) },
	})}
	if m.cfg.ClampDistribution {
		opts = append(opts, splitview.WithClampedDistribution())
	}
	return opts
}

// place assigns a screen area to the pane and lays out its children.
func (p *pane) place(r rect) {
	p.bounds = r
	if !p.isSplit() {
		p.viewport.Width = max(0, r.w-leafStyle.GetHorizontalFrameSize())
		p.viewport.Height = max(0, r.h-p.titleRows())
		return
	}
	p.engine.Resize(float64(p.length()))
	p.layoutChildren()
}

// layoutChildren places the children from the engine's current snapshot. The
// last cell of every view except the final one holds the handle that follows
// it.
func (p *pane) layoutChildren() {
	spans := p.engine.Layout().Cells()
	last := len(p.children) - 1
	for i, child := range p.children {
		span := spans[i]
		extent := span.Extent
		if i < last && extent > 0 {
			extent--
		}
		child.place(p.childRect(span.Start, extent))
	}
}

func (p *pane) childRect(start, extent int) rect {
	if p.axis() == splitview.Column {
		return rect{x: p.bounds.x, y: p.bounds.y + start, w: p.bounds.w, h: extent}
	}
	return rect{x: p.bounds.x + start, y: p.bounds.y, w: extent, h: p.bounds.h}
}

// length is the split's extent along its axis.
func (p *pane) length() int {
	if p.axis() == splitview.Column {
		return p.bounds.h
	}
	return p.bounds.w
}

// along converts a screen position into the cell index along the split axis.
func (p *pane) along(x, y int) int {
	if p.axis() == splitview.Column {
		return y - p.bounds.y
	}
	return x - p.bounds.x
}

// pointer converts a screen position into the engine's coordinate space.
// Cell c covers [c, c+1), and the handle cell sits just before the boundary,
// so pressing a handle cell lands exactly on the handle offset.
func (p *pane) pointer(x, y int) float64 {
	return float64(p.along(x, y) + 1)
}

// handleVisible reports whether handle i has a cell to draw on.
func (p *pane) handleVisible(i int) bool {
	spans := p.engine.Layout().Cells()
	return i > 0 && i < len(spans) && spans[i-1].Extent > 0
}

func (p *pane) titleRows() int {
	if p.title == "" || p.bounds.h < PaneTitleRows+1 {
		return 0
	}
	return PaneTitleRows
}

// walk visits p and its descendants in pre-order.
func (p *pane) walk(fn func(*pane)) {
	if p == nil {
		return
	}
	fn(p)
	for _, child := range p.children {
		child.walk(fn)
	}
}

// leaves returns the leaf panes below p.
func (p *pane) leaves() []*pane {
	var out []*pane
	p.walk(func(q *pane) {
		if !q.isSplit() {
			out = append(out, q)
		}
	})
	return out
}

// find returns the pane with the given id.
func (p *pane) find(id int) *pane {
	var found *pane
	p.walk(func(q *pane) {
		if q.id == id {
			found = q
		}
	})
	return found
}

// leafAt returns the leaf under a screen position.
func (p *pane) leafAt(x, y int) *pane {
	if p == nil || !p.bounds.contains(x, y) {
		return nil
	}
	if !p.isSplit() {
		return p
	}
	for _, child := range p.children {
		if leaf := child.leafAt(x, y); leaf != nil {
			return leaf
		}
	}
	return nil
}

// files returns every markdown file shown by a leaf.
func (p *pane) files() []string {
	var out []string
	for _, leaf := range p.leaves() {
		if leaf.file != "" {
			out = append(out, leaf.file)
		}
	}
	return out
}
