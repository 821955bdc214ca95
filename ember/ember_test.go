package ember

import (
	"math/rand"
	"testing"

	"github.com/ausfire/firecore/units"
)

func TestIgnitionBlockedByMoisture(t *testing.T) {
	e := &Ember{TemperatureC: 600, Active: true, Position: units.Vec3{}}
	attempt := IgnitionAttempt{
		CellUnburned:      true,
		MoistureFraction:  0.40,
		MoistureOfExtinct: 0.25,
		FuelReceptivity:   0.6,
	}
	rng := rand.New(rand.NewSource(1))
	if AttemptIgnition(e, attempt, rng) {
		t.Fatalf("expected ignition to be blocked by moisture 0.40")
	}
}

func TestGenerationSkippedBelowIntensityThreshold(t *testing.T) {
	g := NewGenerator(42)
	vertices := []FrontVertex{{Position: units.Vec3{}, IntensityKW: 50}}
	embers := g.Generate(vertices, 1.0)
	if len(embers) != 0 {
		t.Fatalf("expected no embers below 100 kW/m, got %d", len(embers))
	}
}

func TestAdvanceGroundClamp(t *testing.T) {
	e := &Ember{Position: units.Vec3{Z: 0.05}, Velocity: units.Vec3{Z: -1}, Active: true}
	Advance(e, 0, 0, 0, 1.0)
	if e.Position.Z < 0 {
		t.Fatalf("expected ground-clamped z >= 0, got %v", e.Position.Z)
	}
}

// TestAdvanceLoftBoostsVerticalVelocity checks spec §4.6/§9: an ember
// below its Albini lofting height (intensity^0.4) gets buoyant lift
// from local fire intensity, so it falls slower (or climbs) compared
// to an otherwise-identical ember over a zero-intensity cell.
func TestAdvanceLoftBoostsVerticalVelocity(t *testing.T) {
	lofted := &Ember{Position: units.Vec3{Z: 5}, Velocity: units.Vec3{Z: 0}, Active: true}
	Advance(lofted, 0, 0, 2000, 0.1)

	bare := &Ember{Position: units.Vec3{Z: 5}, Velocity: units.Vec3{Z: 0}, Active: true}
	Advance(bare, 0, 0, 0, 0.1)

	if lofted.Velocity.Z <= bare.Velocity.Z {
		t.Fatalf("expected lofted ember vertical velocity (%v) > bare ember's (%v)", lofted.Velocity.Z, bare.Velocity.Z)
	}
}
