package splitview

import (
	"math"
)

// Engine owns the constraints of one split, its current snapshot and the
// handle selection state. It is not safe for concurrent use; it is driven
// from a single event loop.
type Engine struct {
	axis        Axis
	constraints []Constraint
	opts        options
	layout      Layout

	// restore is the last snapshot with a non-zero total. A container that
	// collapses to zero is refitted from it once length returns.
	restore []View

	// selected and reference are either both meaningful or both cleared.
	selected  int
	dragging  bool
	reference float64
}

// New creates an engine for the given views. No layout exists until the first
// Resize.
func New(axis Axis, constraints []Constraint, opts ...Option) *Engine {
	e := &Engine{axis: axis, opts: newOptions(opts)}
	e.Seed(constraints)
	return e
}

// Seed replaces the set of views. Any drag in progress is dropped without a
// release notification, and the new views are fitted to the last known
// container length.
func (e *Engine) Seed(constraints []Constraint) {
	e.constraints = append([]Constraint(nil), constraints...)
	e.selected, e.dragging, e.reference = 0, false, 0
	e.restore = nil
	if e.layout.Fitted() {
		e.layout = Fit(e.axis, e.constraints, e.layout.Length(), e.fitOptions()...)
		return
	}
	views := make([]View, len(e.constraints))
	for i, c := range e.constraints {
		views[i] = resolve(c, 0)
	}
	e.layout = NewLayout(e.axis, views)
}

// Axis returns the engine's layout axis.
func (e *Engine) Axis() Axis { return e.axis }

// Len returns the number of views.
func (e *Engine) Len() int { return len(e.constraints) }

// Layout returns the current snapshot.
func (e *Engine) Layout() Layout { return e.layout }

// Resize fits the views to a new container length. The first call resolves
// the declared hints; later calls rescale the current extents, so drags
// survive a resize, while min/max bounds are re-resolved from the hints so
// percentage bounds follow the container. A NaN length is ignored.
//
// A zero length collapses every view without forgetting the extents: the next
// non-zero length rescales the last non-empty snapshot, or re-resolves the
// hints if there never was one.
func (e *Engine) Resize(length float64) Layout {
	if math.IsNaN(length) {
		return e.layout
	}
	if !e.layout.Fitted() {
		e.layout = Fit(e.axis, e.constraints, length, e.fitOptions()...)
		return e.layout
	}

	length = math.Max(0, length)
	views := e.layout.Views()
	if e.layout.Total() > 0 {
		e.restore = append([]View(nil), views...)
	}
	if e.layout.Total() == 0 && length > 0 {
		if len(e.restore) != len(e.constraints) {
			e.layout = Fit(e.axis, e.constraints, length, e.fitOptions()...)
			return e.layout
		}
		views = append([]View(nil), e.restore...)
	}
	for i, c := range e.constraints {
		bounds := resolve(c, length)
		views[i].Min, views[i].Max = bounds.Min, bounds.Max
	}
	e.layout = NewLayout(e.axis, views).Fit(length, e.fitOptions()...)
	return e.layout
}

// Reset discards drag results and re-resolves the declared hints.
func (e *Engine) Reset() Layout {
	if !e.layout.Fitted() {
		return e.layout
	}
	e.restore = nil
	e.layout = Fit(e.axis, e.constraints, e.layout.Length(), e.fitOptions()...)
	return e.layout
}

// Select grabs handle at the given pointer position. Handle i sits between
// views i-1 and i, so valid handles are 1..Len()-1. Selecting while another
// handle is held replaces it without a release notification.
func (e *Engine) Select(handle int, pointer float64) bool {
	if handle <= 0 || handle >= len(e.constraints) {
		return false
	}
	e.selected = handle
	e.dragging = true
	e.reference = pointer
	e.fire(e.opts.callbacks.OnGrab)
	return true
}

// Selected returns the held handle, if any.
func (e *Engine) Selected() (int, bool) {
	return e.selected, e.dragging
}

// Reference returns the position future pointer deltas are measured from.
func (e *Engine) Reference() (float64, bool) {
	return e.reference, e.dragging
}

// Unselect releases the held handle. The release notification only fires when
// a handle was actually held.
func (e *Engine) Unselect() {
	if !e.dragging {
		return
	}
	e.selected, e.dragging, e.reference = 0, false, 0
	e.fire(e.opts.callbacks.OnRelease)
}

// Move handles a pointer move. When the primary button is no longer held the
// drag ends. Otherwise the held handle follows the pointer as far as the
// view bounds allow and the reference is re-anchored to where the handle
// actually ended up. It returns the displacement applied.
func (e *Engine) Move(pointer float64, primaryHeld bool) float64 {
	if !e.dragging {
		return 0
	}
	if !primaryHeld {
		e.Unselect()
		return 0
	}

	displacement := e.reference - pointer
	if displacement == 0 {
		return 0
	}
	var applied float64
	e.layout, applied = e.layout.Drag(e.selected, displacement)
	e.reference = e.layout.Offset(e.selected)
	e.fire(e.opts.callbacks.OnDrag)
	return applied
}

// Nudge moves a handle by delta cells, positive towards the end of the axis.
// It returns the signed movement achieved. Nudging the held handle re-anchors
// its reference, so the next pointer move is measured from the new position.
func (e *Engine) Nudge(handle int, delta float64) float64 {
	if handle <= 0 || handle >= len(e.constraints) || delta == 0 {
		return 0
	}
	var applied float64
	e.layout, applied = e.layout.Drag(handle, -delta)
	if e.dragging && handle == e.selected {
		e.reference = e.layout.Offset(handle)
	}
	if applied != 0 {
		e.fire(e.opts.callbacks.OnDrag)
	}
	return -applied
}

func (e *Engine) fitOptions() []Option {
	if e.opts.clampDistribution {
		return []Option{WithClampedDistribution()}
	}
	return nil
}

func (e *Engine) fire(fn func()) {
	if fn != nil {
		fn()
	}
}
