package splitview

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treykane/splitview/internal/size"
)

type notifications struct {
	grabs, drags, releases int
}

func (n *notifications) callbacks() Callbacks {
	return Callbacks{
		OnGrab:    func() { n.grabs++ },
		OnDrag:    func() { n.drags++ },
		OnRelease: func() { n.releases++ },
	}
}

func newBoundedEngine(n *notifications) *Engine {
	bounded := Constraint{Min: size.Pixels(50), Max: size.Pixels(200)}
	e := New(Row, []Constraint{bounded, bounded, bounded}, WithCallbacks(n.callbacks()))
	e.Resize(300)
	return e
}

func TestEngineDragScenario(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)

	if diff := cmp.Diff([]float64{100, 100, 100}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("initial sizes (-want +got):\n%s", diff)
	}

	if !e.Select(1, 100) {
		t.Fatal("expected handle 1 to be selectable")
	}
	applied := e.Move(20, true)
	if applied != 50 {
		t.Fatalf("applied = %v, want 50", applied)
	}
	if diff := cmp.Diff([]float64{50, 150, 100}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes after drag (-want +got):\n%s", diff)
	}
	ref, ok := e.Reference()
	if !ok || ref != 50 {
		t.Fatalf("reference = %v (ok=%v), want resolved handle offset 50", ref, ok)
	}
	if n.grabs != 1 || n.drags != 1 {
		t.Fatalf("notifications = %+v, want 1 grab and 1 drag", n)
	}
}

func TestEngineReanchorsToResolvedHandle(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)
	e.Select(1, 100)
	e.Move(20, true)

	// The pointer is still left of the handle's resolved position, but view 0
	// is at its minimum, so nothing moves.
	if applied := e.Move(40, true); applied != 0 {
		t.Fatalf("applied = %v, want 0", applied)
	}
	// Moving right of the resolved position grows view 0 by exactly the delta
	// from the handle, not from where the pointer was pressed.
	if applied := e.Move(60, true); applied != -10 {
		t.Fatalf("applied = %v, want -10", applied)
	}
	if diff := cmp.Diff([]float64{60, 140, 100}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes (-want +got):\n%s", diff)
	}
}

func TestEngineZeroDisplacementIsNoop(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)
	e.Select(1, 100)
	if applied := e.Move(100, true); applied != 0 {
		t.Fatalf("applied = %v, want 0", applied)
	}
	if n.drags != 0 {
		t.Fatalf("drags = %d, want 0", n.drags)
	}
}

func TestEngineUnselectGuard(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)

	e.Unselect()
	if n.releases != 0 {
		t.Fatalf("releases = %d, want 0 when nothing is selected", n.releases)
	}

	e.Select(2, 200)
	e.Unselect()
	if n.releases != 1 {
		t.Fatalf("releases = %d, want 1", n.releases)
	}
	if _, ok := e.Selected(); ok {
		t.Fatal("expected no selection after Unselect")
	}
	if _, ok := e.Reference(); ok {
		t.Fatal("expected no reference after Unselect")
	}

	e.Unselect()
	if n.releases != 1 {
		t.Fatalf("releases = %d, want still 1", n.releases)
	}
}

func TestEngineMoveWithoutButtonEndsDrag(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)
	e.Select(1, 100)

	if applied := e.Move(80, false); applied != 0 {
		t.Fatalf("applied = %v, want 0", applied)
	}
	if _, ok := e.Selected(); ok {
		t.Fatal("expected drag to end when the button is no longer held")
	}
	if n.releases != 1 {
		t.Fatalf("releases = %d, want 1", n.releases)
	}
	if diff := cmp.Diff([]float64{100, 100, 100}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes changed (-want +got):\n%s", diff)
	}
}

func TestEngineMoveWhileIdleIsNoop(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)
	if applied := e.Move(10, true); applied != 0 {
		t.Fatalf("applied = %v, want 0", applied)
	}
	if n != (notifications{}) {
		t.Fatalf("unexpected notifications %+v", n)
	}
}

// Pressing a second handle mid-drag swaps the selection and does not release
// the first one. This mirrors the component's long-standing behaviour and may
// be unintentional.
func TestEngineSelectReplacesActiveHandleWithoutRelease(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)

	e.Select(1, 100)
	e.Select(2, 200)

	handle, ok := e.Selected()
	if !ok || handle != 2 {
		t.Fatalf("selected = %d (ok=%v), want 2", handle, ok)
	}
	if n.grabs != 2 || n.releases != 0 {
		t.Fatalf("notifications = %+v, want 2 grabs and no release", n)
	}
}

func TestEngineSelectRejectsInvalidHandle(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)
	for _, handle := range []int{0, 3, -1} {
		if e.Select(handle, 0) {
			t.Fatalf("Select(%d) succeeded, want rejection", handle)
		}
	}
	if n.grabs != 0 {
		t.Fatalf("grabs = %d, want 0", n.grabs)
	}
}

func TestEngineNudge(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)

	if moved := e.Nudge(1, 5); moved != 5 {
		t.Fatalf("moved = %v, want 5", moved)
	}
	if diff := cmp.Diff([]float64{105, 95, 100}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes (-want +got):\n%s", diff)
	}
	if moved := e.Nudge(2, -500); moved != -100 {
		t.Fatalf("moved = %v, want -100", moved)
	}
	if n.drags != 2 {
		t.Fatalf("drags = %d, want 2", n.drags)
	}
}

func TestEngineResizeRescalesAndTracksPercentBounds(t *testing.T) {
	e := New(Column, []Constraint{
		{Max: size.Percentage(50)},
		{},
	})
	e.Resize(100)
	if got := e.Layout().View(0).Max; got != 50 {
		t.Fatalf("max at 100 = %v, want 50", got)
	}

	e.Nudge(1, -20)
	e.Resize(200)
	if diff := cmp.Diff([]float64{60, 140}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes after resize (-want +got):\n%s", diff)
	}
	if got := e.Layout().View(0).Max; got != 100 {
		t.Fatalf("max at 200 = %v, want 100", got)
	}
	if total := e.Layout().Total(); total != 200 {
		t.Fatalf("total = %v, want 200", total)
	}
}

func TestEngineResizeRecoversFromZeroLength(t *testing.T) {
	e := New(Column, []Constraint{{Size: size.Percentage(25)}, {}})
	e.Resize(100)
	if diff := cmp.Diff([]float64{25, 75}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("initial sizes (-want +got):\n%s", diff)
	}

	e.Resize(0)
	if total := e.Layout().Total(); total != 0 {
		t.Fatalf("total at zero length = %v, want 0", total)
	}
	e.Resize(0)
	e.Resize(100)
	if diff := cmp.Diff([]float64{25, 75}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes after recovering (-want +got):\n%s", diff)
	}
}

func TestEngineResizeKeepsDragsAcrossZeroLength(t *testing.T) {
	e := New(Row, []Constraint{{}, {Max: size.Percentage(70)}})
	e.Resize(100)
	e.Nudge(1, -10)
	if diff := cmp.Diff([]float64{40, 60}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes after nudge (-want +got):\n%s", diff)
	}

	e.Resize(0)
	e.Resize(200)
	if diff := cmp.Diff([]float64{80, 120}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes after recovering (-want +got):\n%s", diff)
	}
	if got := e.Layout().View(1).Max; got != 140 {
		t.Fatalf("max at 200 = %v, want 140", got)
	}
}

func TestEngineResizeFromZeroAfterResetUsesHints(t *testing.T) {
	e := New(Row, []Constraint{{Size: size.Pixels(30)}, {}})
	e.Resize(100)
	e.Nudge(1, 20)
	e.Resize(0)
	e.Reset()
	e.Resize(100)
	if diff := cmp.Diff([]float64{30, 70}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes (-want +got):\n%s", diff)
	}
}

func TestEngineNudgeReanchorsHeldHandle(t *testing.T) {
	e := New(Row, []Constraint{{}, {}})
	e.Resize(100)
	e.Select(1, 50)

	if moved := e.Nudge(1, 10); moved != 10 {
		t.Fatalf("moved = %v, want 10", moved)
	}
	if ref, ok := e.Reference(); !ok || ref != 60 {
		t.Fatalf("reference = %v (ok=%v), want 60", ref, ok)
	}

	e.Move(61, true)
	if diff := cmp.Diff([]float64{61, 39}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes after move (-want +got):\n%s", diff)
	}
}

func TestEngineResizeIsIdempotent(t *testing.T) {
	e := New(Row, []Constraint{{Size: size.Percentage(30)}, {}, {Min: size.Pixels(10)}})
	once := e.Resize(120).Sizes()
	twice := e.Resize(120).Sizes()
	if diff := cmp.Diff(once, twice, approx); diff != "" {
		t.Fatalf("second resize changed sizes (-once +twice):\n%s", diff)
	}
}

func TestEngineSeedReplacesViews(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)
	e.Select(1, 100)

	e.Seed([]Constraint{{}, {}})
	if e.Len() != 2 {
		t.Fatalf("len = %d, want 2", e.Len())
	}
	if _, ok := e.Selected(); ok {
		t.Fatal("expected selection to be dropped on reseed")
	}
	if diff := cmp.Diff([]float64{150, 150}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes after reseed (-want +got):\n%s", diff)
	}
}

func TestEngineResetDiscardsDrags(t *testing.T) {
	var n notifications
	e := newBoundedEngine(&n)
	e.Nudge(1, 30)
	e.Reset()
	if diff := cmp.Diff([]float64{100, 100, 100}, e.Layout().Sizes(), approx); diff != "" {
		t.Fatalf("sizes after reset (-want +got):\n%s", diff)
	}
}
