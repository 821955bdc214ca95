// Package crownfire implements the Van Wagner (1977) crown-fire
// transition classification and the Cruz (2005) active-crown rate of
// spread, layered on top of the Rothermel surface field per spec §4.5.
package crownfire

import "math"

// State is the crown-fire sum-typed state, stored as a per-cell byte
// tag per the design notes (not a method-dispatch polymorphic type).
type State uint8

const (
	Surface State = iota
	Passive
	Active
)

func (s State) String() string {
	switch s {
	case Surface:
		return "Surface"
	case Passive:
		return "Passive"
	default:
		return "Active"
	}
}

// CriticalIntensity returns I0 (kW/m), the Van Wagner (1977) critical
// surface intensity for crown-fire initiation.
func CriticalIntensity(cbhM, fmcPct float64) float64 {
	base := 0.010 * cbhM * (460 + 25.9*fmcPct)
	if base < 0 {
		return 0
	}
	return math.Pow(base, 1.5)
}

// CriticalROS returns R0 (m/min), the critical rate of spread for
// active crown fire.
func CriticalROS(cbdKgM3 float64) float64 {
	if cbdKgM3 <= 0 {
		return math.Inf(1)
	}
	return 3 / cbdKgM3
}

// CrownROS returns the Cruz (2005) active crown rate of spread in m/s
// given the 10m open wind speed in km/h (the unit the correlation is
// fitted in) and dead fuel moisture (%).
func CrownROS(u10KMH, deadFuelMoisturePct float64) float64 {
	mMinRate := 11.02 * math.Pow(u10KMH, 0.90) * (1 - 0.95*math.Exp(-0.17*deadFuelMoisturePct))
	if mMinRate < 0 {
		mMinRate = 0
	}
	return mMinRate / 60
}

// Classify returns the crown-fire state given the surface fireline
// intensity (kW/m), surface ROS (m/s), and crown parameters.
func Classify(surfaceIntensityKW, surfaceROSms, cbhM, fmcPct, cbdKgM3 float64) State {
	i0 := CriticalIntensity(cbhM, fmcPct)
	if surfaceIntensityKW < i0 {
		return Surface
	}
	r0MMin := CriticalROS(cbdKgM3)
	surfaceROSmMin := surfaceROSms * 60
	if surfaceROSmMin < r0MMin {
		return Passive
	}
	return Active
}

// EffectiveROS returns the effective spread rate (m/s) for the
// classified crown-fire state.
func EffectiveROS(state State, surfaceROSms, crownROSms float64) float64 {
	switch state {
	case Surface:
		return surfaceROSms
	case Passive:
		return surfaceROSms * 1.5
	default:
		if crownROSms > surfaceROSms {
			return crownROSms
		}
		return surfaceROSms
	}
}
