// Package splitview implements the constrained one-dimensional layout behind a
// row or column of panes separated by draggable handles.
//
// A Layout is an immutable snapshot of resolved view extents. Fit distributes
// a container length across the views, Drag moves a handle and cascades the
// change across neighbours without breaking any view's min/max bounds, and
// Engine wraps both with the handle selection state machine.
package splitview

import (
	"fmt"
	"math"
	"strings"

	"github.com/treykane/splitview/internal/size"
)

// Axis is the dimension along which views are arranged.
type Axis uint8

const (
	Row    Axis = iota // horizontal: length is width, position is left
	Column             // vertical: length is height, position is top
)

// ParseAxis reads "row" or "column". Empty input defaults to Row.
func ParseAxis(value string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "row", "horizontal":
		return Row, nil
	case "column", "col", "vertical":
		return Column, nil
	default:
		return Row, fmt.Errorf("unknown direction %q", value)
	}
}

func (a Axis) String() string {
	if a == Column {
		return "column"
	}
	return "row"
}

// Constraint holds the declared hints for one view.
type Constraint struct {
	Size size.Spec
	Min  size.Spec
	Max  size.Spec
}

// View is the resolved record of one view along the axis.
type View struct {
	Size float64
	Min  float64
	Max  float64
}

// Layout is a snapshot of resolved views. Methods never mutate the receiver.
type Layout struct {
	axis   Axis
	length float64
	fitted bool
	views  []View
}

// Fit resolves constraints against a container length and distributes it.
func Fit(axis Axis, constraints []Constraint, length float64, opts ...Option) Layout {
	o := newOptions(opts)
	if math.IsNaN(length) {
		length = 0
	}
	length = math.Max(0, length)
	views := make([]View, len(constraints))
	for i, c := range constraints {
		views[i] = resolve(c, length)
	}
	return Layout{
		axis:   axis,
		length: length,
		fitted: true,
		views:  distribute(views, length, o.clampDistribution),
	}
}

// NewLayout builds an unfitted snapshot from already resolved views.
func NewLayout(axis Axis, views []View) Layout {
	return Layout{axis: axis, views: append([]View(nil), views...)}
}

// Fit re-runs the distribution pass over the already resolved sizes. A NaN
// length leaves the snapshot untouched.
func (l Layout) Fit(length float64, opts ...Option) Layout {
	if math.IsNaN(length) {
		return l
	}
	o := newOptions(opts)
	length = math.Max(0, length)
	views := l.Views()
	for i := range views {
		views[i] = sanitize(views[i])
	}
	return Layout{
		axis:   l.axis,
		length: length,
		fitted: true,
		views:  distribute(views, length, o.clampDistribution),
	}
}

// Axis returns the layout axis.
func (l Layout) Axis() Axis { return l.axis }

// Length returns the container length of the last fit.
func (l Layout) Length() float64 { return l.length }

// Fitted reports whether a distribution pass has run.
func (l Layout) Fitted() bool { return l.fitted }

// Len returns the number of views.
func (l Layout) Len() int { return len(l.views) }

// View returns the record at index i.
func (l Layout) View(i int) View { return l.views[i] }

// Views returns a copy of the view records.
func (l Layout) Views() []View {
	return append([]View(nil), l.views...)
}

// Sizes returns a copy of the view extents.
func (l Layout) Sizes() []float64 {
	sizes := make([]float64, len(l.views))
	for i, v := range l.views {
		sizes[i] = v.Size
	}
	return sizes
}

// Total returns the sum of all view extents.
func (l Layout) Total() float64 {
	return size.SumFloats(l.Sizes()...)
}

// Offset returns the position of view i from the container start: the sum of
// all preceding extents. It is also the position of handle i.
func (l Layout) Offset(i int) float64 {
	i = min(max(i, 0), len(l.views))
	total := 0.0
	for _, v := range l.views[:i] {
		total += v.Size
	}
	return total
}

// Offsets returns the position of every view.
func (l Layout) Offsets() []float64 {
	offsets := make([]float64, len(l.views))
	total := 0.0
	for i, v := range l.views {
		offsets[i] = total
		total += v.Size
	}
	return offsets
}

func (l Layout) withViews(views []View) Layout {
	l.views = views
	return l
}

// resolve converts one constraint into absolute values against length.
func resolve(c Constraint, length float64) View {
	v := View{
		Size: c.Size.ToPixels(length),
		Min:  c.Min.ToPixels(length),
		Max:  math.Inf(1),
	}
	if c.Max.IsSet() {
		v.Max = c.Max.ToPixels(length)
	}
	return sanitize(v)
}

// sanitize clamps values the distribution pass cannot work with. A malformed
// size is treated as unset, a malformed floor as 0 and a malformed ceiling as
// unbounded.
func sanitize(v View) View {
	if math.IsNaN(v.Size) || math.IsInf(v.Size, 0) {
		v.Size = 0
	}
	if math.IsNaN(v.Min) || math.IsInf(v.Min, 0) || v.Min < 0 {
		v.Min = 0
	}
	if math.IsNaN(v.Max) {
		v.Max = math.Inf(1)
	}
	return v
}

// distribute shares leftover space among views without a size and rescales
// every view so the extents sum to length. Without clamping, a view may end up
// outside its own bounds.
func distribute(views []View, length float64, clamp bool) []View {
	used := 0.0
	for _, v := range views {
		used += v.Size
	}
	available := math.Max(0, length-used)

	var unsized []int
	for i, v := range views {
		if v.Size == 0 {
			unsized = append(unsized, i)
		}
	}
	if len(unsized) > 0 {
		average := available / float64(len(unsized))
		for _, i := range unsized {
			views[i].Size = average
		}
	}

	total := 0.0
	for _, v := range views {
		total += v.Size
	}
	if total != 0 {
		ratio := length / total
		for i := range views {
			views[i].Size *= ratio
		}
	}

	if clamp {
		return clampDistribution(views, length)
	}
	return views
}

// clampDistribution pins views that violate their bounds and rescales the
// remaining views over what is left, repeating until nothing moves. When the
// bounds cannot be met for this length the unclamped result is returned.
func clampDistribution(views []View, length float64) []View {
	minTotal, maxTotal := 0.0, 0.0
	for _, v := range views {
		minTotal += v.Min
		maxTotal += v.Max
	}
	if minTotal > length || maxTotal < length {
		return views
	}

	out := append([]View(nil), views...)
	pinned := make([]bool, len(out))
	for range out {
		pinnedTotal, freeTotal := 0.0, 0.0
		for i, v := range out {
			if pinned[i] {
				pinnedTotal += v.Size
			} else {
				freeTotal += v.Size
			}
		}

		remaining := length - pinnedTotal
		changed := false
		for i := range out {
			if pinned[i] {
				continue
			}
			if freeTotal > 0 {
				out[i].Size *= remaining / freeTotal
			}
			switch {
			case out[i].Size < out[i].Min:
				out[i].Size = out[i].Min
				pinned[i] = true
				changed = true
			case out[i].Size > out[i].Max:
				out[i].Size = out[i].Max
				pinned[i] = true
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	total := 0.0
	for _, v := range out {
		total += v.Size
	}
	if math.Abs(total-length) > epsilon {
		return views
	}
	return out
}

const epsilon = 1e-6
