package splitview

import "math"

// Span is an integer extent along the axis, in terminal cells.
type Span struct {
	Start  int
	Extent int
}

// End returns the first cell after the span.
func (s Span) End() int { return s.Start + s.Extent }

// Cells projects the snapshot onto whole cells. Boundaries are rounded rather
// than extents, so the spans tile the container with no gaps and the extents
// sum to the rounded container length.
func (l Layout) Cells() []Span {
	spans := make([]Span, len(l.views))
	offset := 0.0
	start := 0
	for i, v := range l.views {
		offset += v.Size
		end := max(start, int(math.Round(offset)))
		spans[i] = Span{Start: start, Extent: end - start}
		start = end
	}
	return spans
}

// HandleCell returns the cell a handle is drawn on: the last cell of the view
// before it, or 0 when that view is empty.
func (l Layout) HandleCell(handle int) int {
	return max(0, int(math.Round(l.Offset(handle)))-1)
}
