package splitview

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treykane/splitview/internal/size"
)

func threeViews(minSize, maxSize float64) Layout {
	return NewLayout(Row, []View{
		{Size: 100, Min: minSize, Max: maxSize},
		{Size: 100, Min: minSize, Max: maxSize},
		{Size: 100, Min: minSize, Max: maxSize},
	})
}

func TestDragCascades(t *testing.T) {
	type tc struct {
		layout       Layout
		handle       int
		displacement float64
		want         []float64
		applied      float64
	}

	tests := map[string]tc{
		"shrink clamps at min and weaker side bounds the step": {
			layout:       threeViews(50, 200),
			handle:       1,
			displacement: 80,
			want:         []float64{50, 150, 100},
			applied:      50,
		},
		"grow before handle": {
			layout:       threeViews(50, 200),
			handle:       1,
			displacement: -30,
			want:         []float64{130, 70, 100},
			applied:      -30,
		},
		"shortfall cascades across several views": {
			layout:       threeViews(50, 200),
			handle:       2,
			displacement: 120,
			want:         []float64{50, 50, 200},
			applied:      100,
		},
		"growing side cascades into next view": {
			layout:       threeViews(50, 120),
			handle:       1,
			displacement: 60,
			want:         []float64{60, 120, 120},
			applied:      40,
		},
		"zero displacement is a no-op": {
			layout:       threeViews(50, 200),
			handle:       1,
			displacement: 0,
			want:         []float64{100, 100, 100},
			applied:      0,
		},
		"handle out of range is a no-op": {
			layout:       threeViews(50, 200),
			handle:       3,
			displacement: 10,
			want:         []float64{100, 100, 100},
			applied:      0,
		},
		"fully blocked side applies nothing": {
			layout:       threeViews(100, 200),
			handle:       1,
			displacement: 10,
			want:         []float64{100, 100, 100},
			applied:      0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			before := tt.layout.Sizes()
			got, applied := tt.layout.Drag(tt.handle, tt.displacement)
			if diff := cmp.Diff(tt.want, got.Sizes(), approx); diff != "" {
				t.Fatalf("sizes mismatch (-want +got):\n%s", diff)
			}
			if math.Abs(applied-tt.applied) > 1e-9 {
				t.Fatalf("applied = %v, want %v", applied, tt.applied)
			}
			if diff := cmp.Diff(before, tt.layout.Sizes(), approx); diff != "" {
				t.Fatalf("Drag mutated its receiver (-before +after):\n%s", diff)
			}
		})
	}
}

func TestSimulateDoesNotMutate(t *testing.T) {
	l := threeViews(50, 200)
	gain := l.Simulate(LeftOrUp, 0, 80)
	if gain != -50 {
		t.Fatalf("simulated gain = %v, want -50", gain)
	}
	if diff := cmp.Diff([]float64{100, 100, 100}, l.Sizes(), approx); diff != "" {
		t.Fatalf("Simulate mutated the snapshot:\n%s", diff)
	}

	applied, gain := l.Apply(LeftOrUp, 0, 80)
	if gain != -50 {
		t.Fatalf("applied gain = %v, want -50", gain)
	}
	if applied.View(0).Size != 50 {
		t.Fatalf("applied size = %v, want 50", applied.View(0).Size)
	}
}

func TestCascadeTerminatesOutOfRange(t *testing.T) {
	l := threeViews(50, 200)
	if gain := l.Simulate(LeftOrUp, -1, 10); gain != 0 {
		t.Fatalf("gain at index -1 = %v, want 0", gain)
	}
	if gain := l.Simulate(RightOrDown, 3, 10); gain != 0 {
		t.Fatalf("gain past end = %v, want 0", gain)
	}
}

func TestDragFromOutOfBoundsViewConserves(t *testing.T) {
	// View 0 sits above its max, as a faithful distribution pass can leave it.
	l := NewLayout(Row, []View{
		{Size: 150, Min: 0, Max: 50},
		{Size: 150, Min: 0, Max: math.Inf(1)},
	})
	got, applied := l.Drag(1, 10)
	if applied != 10 {
		t.Fatalf("applied = %v, want 10", applied)
	}
	if diff := cmp.Diff([]float64{140, 160}, got.Sizes(), approx); diff != "" {
		t.Fatalf("sizes mismatch (-want +got):\n%s", diff)
	}

	// Growing further away from validity is blocked.
	got, applied = l.Drag(1, -10)
	if applied != 0 {
		t.Fatalf("applied = %v, want 0", applied)
	}
	if diff := cmp.Diff([]float64{150, 150}, got.Sizes(), approx); diff != "" {
		t.Fatalf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestDragPreservesConservationAndBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 200; round++ {
		n := 2 + rng.Intn(5)
		length := float64(100 + rng.Intn(400))
		share := length / float64(n)

		constraints := make([]Constraint, n)
		for i := range constraints {
			constraints[i].Min = size.Pixels(rng.Float64() * share)
			if rng.Intn(2) == 0 {
				constraints[i].Max = size.Pixels(share + rng.Float64()*share)
			}
		}
		l := Fit(Row, constraints, length, WithClampedDistribution())
		assertBounds(t, l)

		for step := 0; step < 20; step++ {
			handle := 1 + rng.Intn(n-1)
			before := l.Offset(handle)
			afterSide := l.Total() - before

			next, applied := l.Drag(handle, rng.Float64()*200-100)

			if math.Abs(next.Total()-length) > 1e-6 {
				t.Fatalf("round %d step %d: total = %v, want %v", round, step, next.Total(), length)
			}
			shrunk := before - next.Offset(handle)
			grown := (next.Total() - next.Offset(handle)) - afterSide
			if math.Abs(shrunk-grown) > 1e-6 || math.Abs(shrunk-applied) > 1e-6 {
				t.Fatalf("round %d step %d: before side -%v, after side +%v, applied %v", round, step, shrunk, grown, applied)
			}
			assertBounds(t, next)
			l = next
		}
	}
}

func assertBounds(t *testing.T, l Layout) {
	t.Helper()
	for i, v := range l.Views() {
		if v.Size < v.Min-1e-6 || v.Size > v.Max+1e-6 {
			t.Fatalf("view %d size %v outside [%v, %v]", i, v.Size, v.Min, v.Max)
		}
	}
}
