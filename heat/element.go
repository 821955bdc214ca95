package heat

import "github.com/ausfire/firecore/units"

// Element is a discrete fuel element used by the legacy/validation
// heat-transfer regime named in spec §4.3. It carries raw scalars, not
// an interface, for the same hot-path reason as Cell.
type Element struct {
	Position        units.Vec3
	TemperatureC    float64
	FuelMassKg      float64
	FlameAreaCoeff  float64
	SAV             float64
	AbsorptionBase  float64
	WindU, WindV    float64
	SlopeAngleRad   float64
	Uphill          bool
}

// ElementTransfer computes the heat (kJ) transferred from src to tgt
// over dtSeconds, reusing the exact same Transfer formula the
// field-based regime calls, so the two regimes cannot physically
// diverge.
func ElementTransfer(src, tgt Element, dtSeconds float64) float64 {
	s := Source{
		Position:        src.Position,
		TemperatureC:    src.TemperatureC,
		FuelMassKg:      src.FuelMassKg,
		FlameAreaCoeff:  src.FlameAreaCoeff,
		FuelRemainingKg: src.FuelMassKg,
	}
	t := Target{
		Position:       tgt.Position,
		TemperatureC:   tgt.TemperatureC,
		SAV:            tgt.SAV,
		AbsorptionBase: tgt.AbsorptionBase,
	}
	wind := Wind{U: src.WindU, V: src.WindV}
	dz := tgt.Position.Z - src.Position.Z
	return Transfer(s, t, wind, dz, tgt.SlopeAngleRad, tgt.Uphill, dtSeconds)
}
