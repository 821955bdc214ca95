// Package rothermel computes the per-cell surface fire spread-rate field
// from the Rothermel (1972) surface-fire model, augmented with the
// curvature and vorticity correction terms this engine layers on top.
// All internal arithmetic is carried out in the imperial units the
// original correlation was fitted in; the conversion constants at the
// package boundary are bit-locked per the external interface contract.
package rothermel

import (
	"math"

	"github.com/ausfire/firecore/fuel"
)

// Unit-conversion constants, bit-locked: changing any of these changes
// on-the-wire spread-rate results.
const (
	savPerFtFromM2M3  = 1 / 3.28084 // SAV(1/ft) = SAV(m^2/m^3) / 3.28084
	depthFtFromM      = 3.28084     // depth(ft) = depth(m) * 3.28084
	heatBTUlbFromKJkg = 0.429923    // heat(BTU/lb) = heat(kJ/kg) * 0.429923
	loadLbFt2Coeff    = 0.204816    // load(lb/ft^2) = rho(kg/m^3) * depth(m) * 0.204816

	ftPerM    = 3.28084
	ftPerMin_From_MS = 196.850 // 1 m/s = 196.850 ft/min
	mPerFtMin = 0.3048 / 60    // 1 ft/min = this many m/s
)

// Inputs bundles a single cell's Rothermel inputs.
type Inputs struct {
	Fuel *fuel.Params

	MoistureFraction float64 // current fuel moisture, 0..1

	// WindAligned is the component of the wind vector (m/s) projected
	// onto the outward front normal n = grad(phi)/|grad(phi)|.
	WindAligned float64
	// SlopeAligned is the component of the slope vector projected onto
	// the same outward normal; positive means upslope-aligned.
	SlopeAligned float64

	Curvature      float64 // kappa = div(n), 0 if |grad(phi)| ~ 0
	VorticityAbs   float64 // 1/s
}

const vortexSensitivity = 0.05 // s, documented open decision (DESIGN.md)

// RateAt returns the spread rate R (m/s) for one cell, following the
// composite formula R = R_base * (1+0.25*kappa) * (1+vortex_boost),
// clamped to >= 0.
func RateAt(in Inputs) float64 {
	if in.Fuel == nil || !in.Fuel.Burnable {
		return 0
	}
	if in.MoistureFraction > in.Fuel.MoistureOfExtinction {
		return 0
	}

	rBase := baseRateFtMin(in)
	if rBase <= 0 {
		return 0
	}

	vortexBoost := math.Min(0.5, in.VorticityAbs*vortexSensitivity)
	r := rBase * (1 + 0.25*in.Curvature) * (1 + vortexBoost)
	rMS := r * mPerFtMin
	if rMS < 0 {
		return 0
	}
	return rMS
}

// baseRateFtMin implements the classic Rothermel (1972) ROS correlation
// in ft/min, with wind/slope coefficients driven by the aligned
// wind/slope components instead of a single scalar "midflame wind
// speed" input, since this engine derives alignment from the level-set
// normal rather than a fixed spread direction.
func baseRateFtMin(in Inputs) float64 {
	f := in.Fuel

	savFt := f.SAV * savPerFtFromM2M3
	depthFt := f.FuelBedDepthM * depthFtFromM
	heatBTUlb := f.HeatContentKJkg * heatBTUlbFromKJkg
	loadLbFt2 := f.BulkDensity * f.FuelBedDepthM * loadLbFt2Coeff

	if depthFt <= 0 || savFt <= 0 || loadLbFt2 <= 0 {
		return 0
	}

	beta := f.PackingRatio
	betaOp := math.Max(1e-6, f.OptimalPackingRatio)
	betaRatio := beta / betaOp

	A := 133 * math.Pow(savFt, -0.7913)
	sav15 := math.Pow(savFt, 1.5)
	gammaMax := sav15 / (495 + 0.0594*sav15)
	gammaPrime := gammaMax * math.Pow(betaRatio, A) * math.Exp(A*(1-betaRatio))

	mx := math.Max(1e-6, f.MoistureOfExtinction)
	mr := math.Min(1, in.MoistureFraction/mx)
	etaM := 1 - 2.59*mr + 5.11*mr*mr - 3.52*mr*mr*mr
	if etaM < 0 {
		etaM = 0
	}
	etaS := math.Max(0.01, math.Min(1, f.MineralDamping))

	wn := loadLbFt2 * (1 - 0.0555) // net of ~5.55% mineral content, standard Rothermel constant
	iR := gammaPrime * wn * heatBTUlb * etaM * etaS

	xi := math.Exp((0.792+0.681*math.Sqrt(savFt))*(beta+0.1)) / (192 + 0.2595*savFt)

	rhoB := loadLbFt2 / depthFt
	epsHeat := math.Exp(-138 / savFt)
	qIg := 250 + 1116*in.MoistureFraction

	windFtMin := math.Max(0, in.WindAligned) * ftPerMin_From_MS * f.WindSensitivity
	c := 7.47 * math.Exp(-0.133*math.Pow(savFt, 0.55))
	b := 0.02526 * math.Pow(savFt, 0.54)
	e := 0.715 * math.Exp(-0.000359*savFt)
	phiW := 0.0
	if windFtMin > 0 {
		phiW = c * math.Pow(windFtMin, b) * math.Pow(betaRatio, -e)
	}

	slopeAligned := in.SlopeAligned
	phiS := 0.0
	if slopeAligned > 0 {
		tanSlope := slopeAligned // treated as tan(theta) proxy, per fuel slope coefficients below
		phiS = 5.275 * math.Pow(beta, -0.3) * tanSlope * tanSlope
		phiS *= f.Slope.UphillBase
	} else if slopeAligned < 0 {
		phiS = -math.Min(0.9, -slopeAligned/math.Max(1, f.Slope.DownhillDivisor))
	}

	denom := rhoB * epsHeat * qIg
	if denom <= 0 {
		return 0
	}
	r := iR * xi * (1 + phiW + phiS) / denom
	if r < 0 {
		return 0
	}
	return r
}
