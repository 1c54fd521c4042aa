package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWindowSizePlacesPanesAlongRow(t *testing.T) {
	m := newTestModel(t, threeColumns, 90, 20)
	height := m.calculateLayout().ContentHeight

	got := make([]rect, 0, 3)
	for _, child := range m.root.children {
		got = append(got, child.bounds)
	}
	want := []rect{
		{x: 0, y: 0, w: 29, h: height},
		{x: 30, y: 0, w: 29, h: height},
		{x: 60, y: 0, w: 30, h: height},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(rect{})); diff != "" {
		t.Fatalf("child bounds (-want +got):\n%s", diff)
	}

	leaf := m.root.children[0]
	if leaf.viewport.Width != 27 {
		t.Fatalf("expected viewport width 27 after padding, got %d", leaf.viewport.Width)
	}
	if leaf.viewport.Height != height-PaneTitleRows {
		t.Fatalf("expected viewport height %d, got %d", height-PaneTitleRows, leaf.viewport.Height)
	}
}

func TestNestedColumnSplitGetsChildRect(t *testing.T) {
	doc := `
views:
  - width: 25%
    text: left
  - direction: column
    views:
      - height: 3
        text: top
      - text: bottom
`
	m := newTestModel(t, doc, 100, 20)
	height := m.calculateLayout().ContentHeight

	column := m.root.children[1]
	if column.bounds != (rect{x: 25, y: 0, w: 75, h: height}) {
		t.Fatalf("unexpected column bounds %+v", column.bounds)
	}
	if diff := cmp.Diff([]int{3, height - 3}, extents(column)); diff != "" {
		t.Fatalf("column extents (-want +got):\n%s", diff)
	}
	top := column.children[0]
	if top.bounds != (rect{x: 25, y: 0, w: 75, h: 2}) {
		t.Fatalf("expected top pane to give its last row to the handle, got %+v", top.bounds)
	}
}

func TestResizeKeepsDraggedProportions(t *testing.T) {
	m := newTestModel(t, threeColumns, 90, 20)
	m.Update(press(29, 2))
	m.Update(drag(44, 2))
	m.Update(release(44, 2))

	before := m.root.engine.Layout().Sizes()
	if diff := cmp.Diff([]float64{45, 15, 30}, before, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("sizes after drag (-want +got):\n%s", diff)
	}

	m.Update(teaWindow(180, 20))
	after := m.root.engine.Layout().Sizes()
	if diff := cmp.Diff([]float64{90, 30, 60}, after, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Fatalf("sizes after resize (-want +got):\n%s", diff)
	}
}

func TestResizeThroughCollapsedContentKeepsExtents(t *testing.T) {
	doc := `
direction: column
views:
  - text: a
    height: 25%
  - text: b
`
	m := newTestModel(t, doc, 60, 40)
	before := extents(m.root)
	if before[0] == 0 || before[1] <= before[0] {
		t.Fatalf("unexpected initial extents %v", before)
	}

	m.Update(teaWindow(60, 2))
	if total := m.root.engine.Layout().Total(); total != 0 {
		t.Fatalf("expected collapsed content area, total = %v", total)
	}

	m.Update(teaWindow(60, 40))
	if diff := cmp.Diff(before, extents(m.root)); diff != "" {
		t.Fatalf("extents after restoring the terminal (-want +got):\n%s", diff)
	}
}

func TestZeroExtentPaneIsSkipped(t *testing.T) {
	m := newTestModel(t, threeColumns, 90, 20)
	m.Update(press(29, 2))
	m.Update(drag(59, 2))

	if diff := cmp.Diff([]int{60, 0, 30}, extents(m.root)); diff != "" {
		t.Fatalf("extents (-want +got):\n%s", diff)
	}
	if !m.root.children[1].bounds.empty() {
		t.Fatalf("expected collapsed pane to have empty bounds, got %+v", m.root.children[1].bounds)
	}
	if m.root.handleVisible(2) {
		t.Fatal("handle after a collapsed view should share its neighbour's cell")
	}

	// The later handle wins the shared cell so the collapsed view can be
	// dragged open again.
	ref, ok := m.handleAt(m.root, 59, 2)
	if !ok || ref.index != 2 {
		t.Fatalf("expected handle 2 at shared cell, got %+v ok=%v", ref, ok)
	}
}

func TestLeafAtAndFind(t *testing.T) {
	m := newTestModel(t, threeColumns, 90, 20)

	if leaf := m.root.leafAt(45, 3); leaf != m.root.children[1] {
		t.Fatalf("expected middle leaf, got %+v", leaf)
	}
	if leaf := m.root.leafAt(29, 3); leaf != nil {
		t.Fatalf("handle cell should not belong to a leaf, got %+v", leaf)
	}
	if got := m.root.find(m.root.children[2].id); got != m.root.children[2] {
		t.Fatal("find did not return the last leaf")
	}
	if got := len(m.root.leaves()); got != 3 {
		t.Fatalf("expected 3 leaves, got %d", got)
	}
}
