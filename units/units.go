// Package units holds the small set of dimensionally-tagged scalar types
// used throughout the simulation core. Unlike a general-purpose unit
// library, these are plain float64 definitions with zero allocation per
// operation — the heat-transfer and level-set kernels run at 10^5+
// cells/step and cannot afford a map-allocating dimension check on every
// arithmetic operation.
package units

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Celsius is a temperature in degrees Celsius.
type Celsius float64

// Kelvin is a temperature in Kelvin.
type Kelvin float64

// Kelvin converts a Celsius value to Kelvin.
func (c Celsius) Kelvin() Kelvin { return Kelvin(float64(c) + 273.15) }

// Celsius converts a Kelvin value to Celsius.
func (k Kelvin) Celsius() Celsius { return Celsius(float64(k) - 273.15) }

// Meters is a length in meters.
type Meters float64

// MetersPerSecond is a speed in meters/second.
type MetersPerSecond float64

// KMH converts a speed to kilometers/hour.
func (m MetersPerSecond) KMH() float64 { return float64(m) * 3.6 }

// MPH converts a speed to miles/hour, the unit the Anderson (1983)
// wind-shape correlation is fitted in.
func (m MetersPerSecond) MPH() float64 { return float64(m) * 2.237 }

// PerSecond is an inverse-time rate (1/s).
type PerSecond float64

// Radians is an angle in radians.
type Radians float64

// Degrees converts an angle to degrees.
func (r Radians) Degrees() float64 { return float64(r) * 180 / math.Pi }

// KWPerMeter is a fireline intensity in kW/m (Byram intensity).
type KWPerMeter float64

// Kilograms is a mass in kilograms.
type Kilograms float64

// KilogramsPerSquareMeter is an areal fuel load.
type KilogramsPerSquareMeter float64

// Vec3 is a 3-vector used for ember positions/velocities and wind
// vectors. It is a thin alias of gonum's r3.Vec rather than a
// hand-rolled struct, so the rest of the core gets gonum's vector
// arithmetic (Add, Scale, Norm, ...) for free.
type Vec3 = r3.Vec

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampMin restricts v to be no smaller than lo.
func ClampMin(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}
