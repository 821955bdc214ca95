package rothermel

import (
	"testing"

	"github.com/ausfire/firecore/fuel"
)

func TestRateAtZeroAboveMoistureOfExtinction(t *testing.T) {
	f := fuel.Get(fuel.DryGrass)
	r := RateAt(Inputs{Fuel: f, MoistureFraction: f.MoistureOfExtinction + 0.05})
	if r != 0 {
		t.Fatalf("RateAt above moisture-of-extinction = %v, want 0", r)
	}
}

func TestRateAtNonNegative(t *testing.T) {
	f := fuel.Get(fuel.DrySclerophyllForest)
	r := RateAt(Inputs{Fuel: f, MoistureFraction: 0.10, WindAligned: -5, SlopeAligned: -0.8, Curvature: -2})
	if r < 0 {
		t.Fatalf("RateAt = %v, want >= 0", r)
	}
}

func TestWindIncreasesSpreadRate(t *testing.T) {
	f := fuel.Get(fuel.DryGrass)
	base := RateAt(Inputs{Fuel: f, MoistureFraction: 0.05})
	withWind := RateAt(Inputs{Fuel: f, MoistureFraction: 0.05, WindAligned: 8})
	if !(withWind > base) {
		t.Fatalf("expected wind-aligned rate (%v) > no-wind rate (%v)", withWind, base)
	}
}

func TestNonBurnableFuelNeverSpreads(t *testing.T) {
	f := fuel.Get(fuel.Water)
	if r := RateAt(Inputs{Fuel: f, MoistureFraction: 0}); r != 0 {
		t.Fatalf("RateAt for non-burnable fuel = %v, want 0", r)
	}
}
