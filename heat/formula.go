// Package heat implements the Stefan-Boltzmann radiation plus buoyant
// convection model shared by the field-based and element-to-element
// heat-transfer regimes (spec §4.3). Both regimes call into formula.go
// so the physics cannot drift between the continuous-field solver and
// the discrete validation path — grounded on the teacher's practice of
// factoring one physics routine (Mixing, UpwindAdvection) and calling
// it from every consumer rather than re-deriving it per call site.
package heat

import (
	"math"

	"github.com/ausfire/firecore/units"
)

const (
	stefanBoltzmann = 5.67e-8 // W/(m^2*K^4)
	emissivity      = 0.95
	convectiveH     = 25.0 // W/(m^2*K)

	earlyOutMaxDistanceM  = 20.0
	earlyOutMinSourceTemp = 100.0 // deg C
)

// Source describes the radiating/convecting fuel element or cell.
type Source struct {
	Position        units.Vec3
	TemperatureC    float64
	FuelMassKg      float64
	FlameAreaCoeff  float64 // ~9 grass, ~5 forest
	FuelRemainingKg float64
}

// Target describes the receiving fuel element or cell.
type Target struct {
	Position     units.Vec3
	TemperatureC float64
	SAV          float64 // m^2/m^3
	AbsorptionBase float64
}

// Wind carries the 2-D wind vector (m/s) used for flame tilt and the
// Anderson wind-shape ellipse.
type Wind struct {
	U, V float64
}

func (w Wind) speed() float64 { return math.Hypot(w.U, w.V) }

// Transfer computes the net heat transferred from src to tgt over dt
// seconds (kJ), applying the early-out performance rules first. The
// result is always >= 0 (spec invariant 8). slopeAngleRad/uphill
// describe the terrain slope between src and tgt, used by the
// directional factor alongside the vertical (dz) term.
func Transfer(src Source, tgt Target, wind Wind, dz float64, slopeAngleRad float64, uphill bool, dtSeconds float64) float64 {
	dxRaw := tgt.Position.X - src.Position.X
	dyRaw := tgt.Position.Y - src.Position.Y
	horizDist := math.Hypot(dxRaw, dyRaw)

	if horizDist > earlyOutMaxDistanceM || src.TemperatureC < earlyOutMinSourceTemp || src.FuelRemainingKg <= 0 {
		return 0
	}

	u := wind.speed()
	tilt := 0.0
	if u > 0.5 {
		tilt = math.Min(0.40, (u-0.5)*0.02)
	}

	srcPos := src.Position
	if tilt > 0 && u > 0 {
		wx, wy := wind.U/u, wind.V/u
		disp := horizDist * tilt
		srcPos.X += wx * disp
		srcPos.Y += wy * disp
	}

	dx := tgt.Position.X - srcPos.X
	dy := tgt.Position.Y - srcPos.Y
	r := math.Hypot(dx, dy)
	if r < 1e-6 {
		r = 1e-6
	}

	tSrcK := units.Celsius(src.TemperatureC).Kelvin()
	tTgtK := units.Celsius(tgt.TemperatureC).Kelvin()
	qRad := stefanBoltzmann * emissivity * (math.Pow(float64(tSrcK), 4) - math.Pow(float64(tTgtK), 4))

	effectiveFlameArea := src.FuelMassKg * src.FlameAreaCoeff
	viewFactor := math.Min(1.0, effectiveFlameArea/(math.Pi*r*r))

	near := 1.0
	if r < 1.5 {
		near = 1 + 2*(1-r/1.5)
		if near > 3 {
			near = 3
		}
	}

	windFactor := windShapeFactor(wind, u, dx, dy, r)

	eta := math.Min(1.0, tgt.AbsorptionBase*math.Sqrt(tgt.SAV/1000))

	qConv := 0.0
	if dz > 0 {
		qConv = convectiveH * (float64(tSrcK) - float64(tTgtK)) * eta / (1 + r*r) * 0.001 // W -> kW
	}

	directional := DirectionalFactorWithSlope(dz, slopeAngleRad, uphill)

	total := (qRad*viewFactor*near*eta + qConv) * windFactor * directional * dtSeconds
	if total < 0 {
		return 0
	}
	return total
}

// windShapeFactor implements the Anderson (1983) wind-driven ellipse
// correction. a is the cosine of the angle between the source->target
// vector and the wind direction.
func windShapeFactor(wind Wind, u, dx, dy, r float64) float64 {
	if u <= 0 || r <= 1e-9 {
		return 1.0
	}
	uMph := u * 2.237
	lw := 0.936*math.Exp(0.2566*uMph) + 0.461*math.Exp(-0.1548*uMph) - 0.397
	lw = units.Clamp(lw, 1.0, 8.0)

	sq := math.Sqrt(lw*lw - 1)
	backTheo := (lw - sq) / (lw + sq)
	flankTheo := (1 + backTheo) / (2 * lw)
	// Squared correction compensating for cumulative-heating bias in a
	// discrete-element simulation (documented open decision: not from
	// the literature, see DESIGN.md).
	back := backTheo * backTheo
	flank := flankTheo * flankTheo
	head := 1 + math.Sqrt(u)*1.2

	wx, wy := wind.U/u, wind.V/u
	a := (dx*wx + dy*wy) / r
	a = units.Clamp(a, -1, 1)

	if a >= 0 {
		return flank*(1-math.Pow(a, 6)) + head*math.Pow(a, 6)
	}
	return flank*(1-math.Abs(a)) + back*math.Abs(a)
}

func directionalFactor(dz float64) float64 {
	vertical := 0.0
	if dz > 0 {
		vertical = 1.8 + math.Min(0.7, dz*0.08)
	} else if dz < 0 {
		vertical = 0.7 / (1 + 0.2*math.Abs(dz))
	} else {
		vertical = 1.0
	}
	return vertical
}

// DirectionalFactorWithSlope combines the vertical and slope-angle
// directional factors via max(), never multiplication, to avoid
// double-counting (spec §4.3).
func DirectionalFactorWithSlope(dz float64, slopeAngleRad float64, uphill bool) float64 {
	vertical := directionalFactor(dz)
	thetaDeg := slopeAngleRad * 180 / math.Pi
	var slope float64
	if uphill {
		t := math.Min(45, thetaDeg)
		slope = math.Min(6, 1+math.Pow(t/10, 1.5)*2)
	} else {
		slope = math.Max(0.3, 1+thetaDeg/30)
	}
	if vertical > slope {
		return vertical
	}
	return slope
}
