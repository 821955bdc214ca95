package wind

import (
	"math"
	"testing"

	"github.com/ausfire/firecore/terrain"
)

func TestMassConsistentReducesDivergence(t *testing.T) {
	tr := terrain.Flat(12, 12, 10, 0)
	f := Initialize(tr, 6, 20, 5.0, 10.0, 0.5)

	before := maxAbsDivergence(f)
	MassConsistentAdjust(f, StabilityD, 200, 1e-6)
	after := maxAbsDivergence(f)

	if after > before {
		t.Fatalf("divergence increased: before=%v after=%v", before, after)
	}
	if after > 0.5 {
		t.Fatalf("L-infinity divergence %v exceeds 0.5 tolerance", after)
	}
}

func maxAbsDivergence(f *Field) float64 {
	max := 0.0
	for z := 1; z < f.NZ-1; z++ {
		for y := 1; y < f.NY-1; y++ {
			for x := 1; x < f.NX-1; x++ {
				d := math.Abs(f.divergence(x, y, z))
				if d > max {
					max = d
				}
			}
		}
	}
	return max
}

// TestApplyPlumesAddsCoreUpdraft checks spec §4.7: a plume above a
// cell within its radius adds a positive vertical updraft at the first
// level above ground, capped at maxUpdraftMS.
func TestApplyPlumesAddsCoreUpdraft(t *testing.T) {
	tr := terrain.Flat(20, 20, 10, 0)
	f := Initialize(tr, 6, 5, 2.0, 10.0, 0)

	cx, cy := 100.0, 100.0
	before := f.W[f.idx(10, 10, 1)]

	ApplyPlumes(f, []Plume{{X: cx, Y: cy, Z: 0, IntensityKW: 5000, FlameHeightM: 10, FrontWidthM: 10}})

	after := f.W[f.idx(10, 10, 1)]
	if after <= before {
		t.Fatalf("expected plume core updraft to increase W at the plume center, before=%v after=%v", before, after)
	}
	for _, w := range f.W {
		if w > maxUpdraftMS {
			t.Fatalf("updraft %v exceeds maxUpdraftMS %v", w, maxUpdraftMS)
		}
	}
}

func TestChangeGateSkipsSmallDeltas(t *testing.T) {
	tr := terrain.Flat(8, 8, 10, 0)
	f := Initialize(tr, 4, 20, 5.0, 10.0, 0)
	if f.ShouldRecomputeBaseWind(5.2, 1, 100) {
		t.Fatalf("expected gate to skip a 0.2 m/s delta off a boundary frame")
	}
	if !f.ShouldRecomputeBaseWind(6.0, 1, 100) {
		t.Fatalf("expected gate to trigger on a 1.0 m/s delta")
	}
}
