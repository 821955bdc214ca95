package heat

import (
	"math"
	"testing"

	"github.com/ausfire/firecore/units"
)

const testTolerance = 1e-9

func baseSource() Source {
	return Source{
		Position:        units.Vec3{X: 0, Y: 0, Z: 0},
		TemperatureC:    700,
		FuelMassKg:      2,
		FlameAreaCoeff:  9,
		FuelRemainingKg: 2,
	}
}

func baseTarget(x, y float64) Target {
	return Target{
		Position:       units.Vec3{X: x, Y: y, Z: 0},
		TemperatureC:   20,
		SAV:            6500,
		AbsorptionBase: 0.6,
	}
}

func TestTransferNonNegative(t *testing.T) {
	src := baseSource()
	tgt := baseTarget(5, 0)
	q := Transfer(src, tgt, Wind{U: 3, V: 0}, 0, 0, false, 1)
	if q < 0 {
		t.Fatalf("Transfer returned negative heat: %v", q)
	}
	if math.IsNaN(q) || math.IsInf(q, 0) {
		t.Fatalf("Transfer returned non-finite heat: %v", q)
	}
}

func TestEarlyOutBeyondRange(t *testing.T) {
	src := baseSource()
	tgt := baseTarget(25, 0)
	q := Transfer(src, tgt, Wind{}, 0, 0, false, 1)
	if q != 0 {
		t.Fatalf("expected 0 heat beyond 20m, got %v", q)
	}
}

func TestEarlyOutColdSource(t *testing.T) {
	src := baseSource()
	src.TemperatureC = 50
	tgt := baseTarget(5, 0)
	q := Transfer(src, tgt, Wind{}, 0, 0, false, 1)
	if q != 0 {
		t.Fatalf("expected 0 heat from a cold source, got %v", q)
	}
}

func TestBackingFireSuppression(t *testing.T) {
	src := baseSource()
	downwind := Transfer(src, baseTarget(5, 0), Wind{U: 10, V: 0}, 0, 0, false, 1)
	upwind := Transfer(src, baseTarget(-5, 0), Wind{U: 10, V: 0}, 0, 0, false, 1)
	if upwind <= 0 {
		return // already suppressed to zero by other terms; ratio test moot
	}
	ratio := upwind / downwind
	if ratio >= 1e-3 {
		t.Fatalf("expected wind(upwind)/wind(downwind) < 1e-3 at 10 m/s, got %v", ratio)
	}
}

func TestViewFactorCap(t *testing.T) {
	src := baseSource()
	src.FuelMassKg = 1000
	tgt := baseTarget(0.1, 0)
	// directly exercise the formula's internal cap via a very close,
	// very large source: the radiative term must never imply a view
	// factor above 1 regardless of source size.
	q := Transfer(src, tgt, Wind{}, 0, 0, false, 1)
	if q < 0 || math.IsNaN(q) {
		t.Fatalf("unexpected result for oversized near source: %v", q)
	}
}
