// Package ember implements the Albini spotting model: ember generation
// at fire-front vertices, ballistic transport with wind drag and
// Newtonian cooling, and landing/ignition probability. Poisson
// generation and Bernoulli ignition sampling use
// gonum.org/v1/gonum/stat/distuv fed by a dedicated *rand.Rand rather
// than the package-level default source, resolving the spec's noted
// ember-determinism open question (seeded determinism requires its own
// PRNG channel).
package ember

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ausfire/firecore/fuel"
	"github.com/ausfire/firecore/units"
)

const (
	generationK        = 0.003
	minIntensityKW     = 100.0
	ambientTempC       = 20.0
	coolingRatePerSec  = 0.05 // Newtonian cooling constant toward ambient
	gravityMS2         = 9.81
	dragCoefficient    = 0.4
	minIgnitionTempC   = 300.0
	hardMoistureGate   = 0.30

	// loftHeightCoeff and loftLiftAccel shape the Albini lofting-height
	// scaling (height ~ intensity^0.4) as a decaying buoyant-lift
	// acceleration applied while the ember is below its lofting height,
	// rather than as a one-shot launch boost: the plume keeps supporting
	// the ember until it rises past the height the local intensity can
	// sustain.
	loftHeightCoeff = 0.5 // m per (kW/m)^0.4
	loftLiftAccel   = 2.0 // m/s^2, peak lift at the plume core
)

// Ember is a single spotting particle.
type Ember struct {
	ID           uint64
	Position     units.Vec3
	Velocity     units.Vec3
	TemperatureC float64
	MassKg       float64
	SourceFuel   fuel.ID
	Active       bool
}

// FrontVertex is one vertex of the extracted fire front, the generation
// source for new embers.
type FrontVertex struct {
	Position    units.Vec3
	IntensityKW float64
	SourceFuel  fuel.ID
}

// Generator owns the dedicated PRNG channel and emits new embers each
// step.
type Generator struct {
	rng    *rand.Rand
	nextID uint64
}

// NewGenerator constructs a Generator seeded for reproducible ember
// sequences.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate runs the Poisson generation test for every front vertex and
// returns the newly spawned embers.
func (g *Generator) Generate(vertices []FrontVertex, dtSeconds float64) []Ember {
	var out []Ember
	uniform := distuv.Uniform{Min: 0, Max: 1, Src: g.rng}
	for _, v := range vertices {
		if v.IntensityKW < minIntensityKW {
			continue
		}
		lambda := generationK * math.Sqrt(v.IntensityKW)
		if uniform.Rand() >= lambda*dtSeconds {
			continue
		}
		mass := units.Clamp(0.0001+uniform.Rand()*(0.0051-0.0001), 0.0001, 0.0051)
		temp := 700 + uniform.Rand()*(900-700)
		g.nextID++
		out = append(out, Ember{
			ID:           g.nextID,
			Position:     units.Vec3{X: v.Position.X, Y: v.Position.Y, Z: v.Position.Z + 1},
			Velocity:     units.Vec3{X: 0, Y: 0, Z: math.Sqrt(v.IntensityKW/1000) * 5},
			TemperatureC: temp,
			MassKg:       mass,
			SourceFuel:   v.SourceFuel,
			Active:       true,
		})
	}
	return out
}

// Advance steps one ember's ballistic transport under gravity and wind
// drag, with Newtonian cooling toward ambient temperature. While the
// ember is below the Albini lofting height (loftHeightCoeff *
// intensity^0.4), a buoyant lift acceleration that decays linearly to
// zero at that height is added to its vertical velocity.
func Advance(e *Ember, windU, windV float64, intensityKW float64, dtSeconds float64) {
	if !e.Active {
		return
	}
	loft := math.Pow(math.Max(0, intensityKW), 0.4)
	loftHeightM := loftHeightCoeff * loft
	if loftHeightM > 0 && e.Position.Z < loftHeightM {
		frac := 1 - e.Position.Z/loftHeightM
		e.Velocity.Z += loftLiftAccel * frac * dtSeconds
	}

	dvx := dragCoefficient * (windU - e.Velocity.X) * dtSeconds
	dvy := dragCoefficient * (windV - e.Velocity.Y) * dtSeconds
	e.Velocity.X += dvx
	e.Velocity.Y += dvy
	e.Velocity.Z -= gravityMS2 * dtSeconds

	e.Position.X += e.Velocity.X * dtSeconds
	e.Position.Y += e.Velocity.Y * dtSeconds
	e.Position.Z += e.Velocity.Z * dtSeconds

	e.TemperatureC += (ambientTempC - e.TemperatureC) * coolingRatePerSec * dtSeconds

	if e.Position.Z <= 0 {
		e.Position.Z = 0
	}
}

// Landed reports whether the ember has reached the ground.
func Landed(e *Ember) bool { return e.Position.Z <= 0 }

// IgnitionAttempt bundles the landing-site conditions an ember needs to
// attempt a spot ignition.
type IgnitionAttempt struct {
	CellUnburned      bool // phi > 0
	MoistureFraction  float64
	MoistureOfExtinct float64
	FuelReceptivity   float64
}

// AttemptIgnition runs the landing/ignition gate and Bernoulli sample
// from spec §4.6. It returns false immediately (without consuming a
// random draw) for any hard gate failure, so RNG sequences stay stable
// regardless of how many gates a given landing fails.
func AttemptIgnition(e *Ember, a IgnitionAttempt, rng *rand.Rand) bool {
	if !e.Active || !a.CellUnburned {
		return false
	}
	moistureGate := math.Min(hardMoistureGate, a.MoistureOfExtinct)
	if a.MoistureFraction > moistureGate {
		return false
	}
	if e.TemperatureC < minIgnitionTempC {
		return false
	}
	p := (1 - a.MoistureFraction/hardMoistureGate) * a.FuelReceptivity
	p = units.Clamp(p, 0, 1)
	bern := distuv.Bernoulli{P: p, Src: rng}
	return bern.Rand() == 1
}
