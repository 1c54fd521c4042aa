package splitview

import "math"

// Direction is the way a cascade walks away from a handle.
type Direction uint8

const (
	LeftOrUp    Direction = iota // towards lower view indexes
	RightOrDown                  // towards higher view indexes
)

// cascade asks view index to change by distance in direction dir and forwards
// whatever the view cannot absorb to its next neighbour in the same direction.
// It returns the total extent change achieved by this view and every view it
// cascaded into. Views are only written when commit is set.
//
// A view already outside its bounds clamps to the range widened to include its
// current size, so a step never jumps it to the bound.
func cascade(views []View, dir Direction, index int, distance float64, commit bool) float64 {
	if index < 0 || index >= len(views) || distance == 0 {
		return 0
	}

	v := views[index]
	desired := v.Size + distance
	if dir == LeftOrUp {
		desired = v.Size - distance
	}

	lo := math.Min(v.Min, v.Size)
	hi := math.Max(v.Max, v.Size)
	possible := math.Min(hi, math.Max(lo, desired))

	shortfall := possible - desired
	gain := possible - v.Size

	if shortfall != 0 {
		next, remaining := index+1, -shortfall
		if dir == LeftOrUp {
			next, remaining = index-1, shortfall
		}
		gain += cascade(views, dir, next, remaining, commit)
	}

	if commit {
		views[index].Size = possible
	}
	return gain
}

// Simulate returns the extent change a cascade starting at index could
// achieve, without changing the snapshot.
func (l Layout) Simulate(dir Direction, index int, distance float64) float64 {
	return cascade(l.views, dir, index, distance, false)
}

// Apply runs a cascade and returns the resulting snapshot and achieved gain.
func (l Layout) Apply(dir Direction, index int, distance float64) (Layout, float64) {
	views := l.Views()
	gain := cascade(views, dir, index, distance, true)
	return l.withViews(views), gain
}

// Drag moves handle (the boundary before view handle) by displacement, where
// displacement is the reference position minus the pointer position: positive
// values shrink the views before the handle and grow the ones after it.
//
// Both sides are simulated first and the weaker side bounds the step, so the
// total extent is conserved. It returns the new snapshot and the signed
// displacement actually applied.
func (l Layout) Drag(handle int, displacement float64) (Layout, float64) {
	if displacement == 0 || math.IsNaN(displacement) || handle <= 0 || handle >= len(l.views) {
		return l, 0
	}

	before := math.Abs(l.Simulate(LeftOrUp, handle-1, displacement))
	after := math.Abs(l.Simulate(RightOrDown, handle, displacement))
	magnitude := math.Min(before, after)
	if magnitude == 0 {
		return l, 0
	}

	applied := math.Copysign(magnitude, displacement)
	next, _ := l.Apply(LeftOrUp, handle-1, applied)
	next, _ = next.Apply(RightOrDown, handle, applied)
	return next, applied
}
