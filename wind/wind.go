// Package wind implements the mass-consistent 3-D wind field: a
// terrain-adjusted initial guess corrected by a variational
// (Poisson/Lagrange-multiplier) solve so the result satisfies
// divergence-free continuity, plus fire-plume coupling. The Red-Black
// Gauss-Seidel relaxation is grounded on the teacher's
// ctessum/atmos/advect upwind-flux helper's neighbor-difference shape
// (science.go's UpwindAdvection), generalized from an unstructured
// neighbor list to a structured 3-D stencil.
package wind

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/ausfire/firecore/logging"
	"github.com/ausfire/firecore/terrain"
	"github.com/ausfire/firecore/units"
)

// StabilityClass is the Pasquill-Gifford atmospheric stability class.
type StabilityClass int

const (
	StabilityA StabilityClass = iota // very unstable
	StabilityB
	StabilityC
	StabilityD // neutral
	StabilityE
	StabilityF // very stable
)

// Sigma returns the vertical-to-horizontal coupling coefficient for a
// stability class, A=0.1 .. F=1.5.
func (s StabilityClass) Sigma() float64 {
	switch s {
	case StabilityA:
		return 0.1
	case StabilityB:
		return 0.3
	case StabilityC:
		return 0.6
	case StabilityD:
		return 0.9
	case StabilityE:
		return 1.2
	default:
		return 1.5
	}
}

// Plume is a single buoyant fire plume coupling source.
type Plume struct {
	X, Y, Z      float64 // meters, Z = base
	IntensityKW  float64 // kW/m
	FlameHeightM float64
	FrontWidthM  float64
}

const (
	z0Roughness       = 0.03 // m, grass/low-fuel aerodynamic roughness length
	ambientAirDensity = 1.2  // kg/m^3
	ambientAirCp      = 1005 // J/(kg*K)
	ambientAirTempK   = 293.0
	maxUpdraftMS      = 30.0
	toleranceDefault  = 1e-6
)

// Field is a 3-D (nx*ny*nz) vector field, row-major with z-major
// ordering: index = z*(nx*ny) + y*nx + x.
type Field struct {
	NX, NY, NZ int
	DX, DY, DZ float64
	U, V, W    []float64 // m/s, each length NX*NY*NZ

	lastBaseWindMS float64
	frameCounter   int
	plumeCache     []Plume
	lastSolveKey   string
}

// solveKey hashes the inputs that determine the mass-consistent solve's
// outcome: the stability class, base wind speed, and every plume's
// fields, written field-by-field into an FNV-1a digest rather than
// through a generic encoder, since the fixed `Plume` shape here needs
// no reflection. A repeat call with an identical key is a pure cache
// hit: nothing about the solve's inputs changed, so
// MassConsistentAdjust can skip the relaxation entirely.
func solveKey(stability StabilityClass, baseWindMS float64, plumes []Plume) string {
	h := fnv.New64a()
	binary.Write(h, binary.LittleEndian, int32(stability))
	binary.Write(h, binary.LittleEndian, baseWindMS)
	binary.Write(h, binary.LittleEndian, int32(len(plumes)))
	for _, p := range plumes {
		binary.Write(h, binary.LittleEndian, p.X)
		binary.Write(h, binary.LittleEndian, p.Y)
		binary.Write(h, binary.LittleEndian, p.Z)
		binary.Write(h, binary.LittleEndian, p.IntensityKW)
		binary.Write(h, binary.LittleEndian, p.FlameHeightM)
		binary.Write(h, binary.LittleEndian, p.FrontWidthM)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

func (f *Field) idx(x, y, z int) int { return z*(f.NX*f.NY) + y*f.NX + x }

// NewField allocates an empty field.
func NewField(nx, ny, nz int, dx, dy, dz float64) *Field {
	n := nx * ny * nz
	return &Field{NX: nx, NY: ny, NZ: nz, DX: dx, DY: dy, DZ: dz,
		U: make([]float64, n), V: make([]float64, n), W: make([]float64, n)}
}

func clampf(v, lo, hi float64) float64 { return units.Clamp(v, lo, hi) }

// logWindProfile returns u(z) from the reference wind speed at z_ref,
// clamped to [0.3, 3.0] * u_ref.
func logWindProfile(uRef, zRef, z float64) float64 {
	if z < z0Roughness*1.01 {
		z = z0Roughness * 1.01
	}
	u := uRef * math.Log(z/z0Roughness) / math.Log(zRef/z0Roughness)
	return clampf(u, 0.3*uRef, 3*uRef)
}

// terrainSpeedup returns the fractional speed multiplier for wind
// blowing across a slope, boosting on the upwind (windward) face and
// reducing on the lee face based on the cosine of the angle between the
// wind direction and the upslope direction.
func terrainSpeedup(windDirRad, dzdx, dzdy float64) (speedup, vertComponent, alignment float64) {
	slopeMag := math.Hypot(dzdx, dzdy)
	if slopeMag < 1e-9 {
		return 1, 0, 0
	}
	upslopeDir := math.Atan2(dzdx, dzdy)
	alignment = math.Cos(windDirRad - upslopeDir)
	speedup = 1 + 0.3*alignment*math.Min(1, slopeMag)
	slopeAngle := math.Atan(slopeMag)
	vertComponent = math.Sin(slopeAngle) * alignment * 0.5
	return speedup, vertComponent, alignment
}

// terrainBlocking searches up to 50m upwind; if terrain there is
// higher, reduces wind speed linearly with the elevation difference.
func terrainBlocking(t *terrain.Terrain, x, y int, elevHere float64, windDirRad float64) float64 {
	const searchM = 50.0
	steps := 10
	stepM := searchM / float64(steps)
	maxDiff := 0.0
	for i := 1; i <= steps; i++ {
		dist := float64(i) * stepM
		ux := float64(x) - math.Sin(windDirRad)*dist/t.CellSize
		uy := float64(y) - math.Cos(windDirRad)*dist/t.CellSize
		xi, yi := int(ux+0.5), int(uy+0.5)
		if xi < 0 || xi >= t.Width || yi < 0 || yi >= t.Height {
			continue
		}
		e := t.ElevationAt(xi, yi)
		if e-elevHere > maxDiff {
			maxDiff = e - elevHere
		}
	}
	if maxDiff <= 0 {
		return 1.0
	}
	reduction := clampf(maxDiff/50.0, 0, 0.8)
	return 1 - reduction
}

// Initialize populates the field's initial guess from the log-wind
// profile plus terrain speedup/blocking, the "V0" input to the
// mass-consistent solve.
func Initialize(t *terrain.Terrain, nz int, dz float64, uRef, zRef, windDirRad float64) *Field {
	f := NewField(t.Width, t.Height, nz, t.CellSize, t.CellSize, dz)
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			elev := t.ElevationAt(x, y)
			dzdx, dzdy := t.Gradient(x, y)
			speedup, vert, align := terrainSpeedup(windDirRad, dzdx, dzdy)
			blocking := terrainBlocking(t, x, y, elev, windDirRad)
			for z := 0; z < nz; z++ {
				height := float64(z)*dz + 1.0
				u := logWindProfile(uRef, zRef, height) * speedup * blocking
				idx := f.idx(x, y, z)
				f.U[idx] = u * math.Sin(windDirRad)
				f.V[idx] = u * math.Cos(windDirRad)
				f.W[idx] = u * vert * align
			}
		}
	}
	f.lastBaseWindMS = uRef
	return f
}

// ApplyPlumes adds plume-driven radial inflow, core updraft, and aloft
// outflow contributions for every active plume, confined to a bounding
// box of 5x the maximum plume radius.
func ApplyPlumes(f *Field, plumes []Plume) {
	for _, p := range plumes {
		radius := math.Max(5.0, p.FrontWidthM/2)
		bbox := radius * 5
		x0 := int((p.X - bbox) / f.DX)
		x1 := int((p.X + bbox) / f.DX)
		y0 := int((p.Y - bbox) / f.DY)
		y1 := int((p.Y + bbox) / f.DY)
		x0, y0 = maxInt(x0, 0), maxInt(y0, 0)
		x1, y1 = minInt(x1, f.NX-1), minInt(y1, f.NY-1)

		for z := 0; z < f.NZ; z++ {
			height := float64(z)*f.DZ + 1.0
			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					dx := float64(x)*f.DX - p.X
					dy := float64(y)*f.DY - p.Y
					r := math.Hypot(dx, dy)
					entrain := math.Exp(-r / bbox)
					idx := f.idx(x, y, z)
					if r < 3*radius && r > 1e-6 {
						inflow := -0.5 * entrain
						f.U[idx] += inflow * dx / r
						f.V[idx] += inflow * dy / r
					}
					if r < radius {
						w := 2.25*math.Pow(p.IntensityKW/(ambientAirDensity*ambientAirCp*ambientAirTempK), 1.0/3.0) / math.Pow(math.Max(1, height), 1.0/3.0)
						w = math.Min(maxUpdraftMS, w)
						if height > 2*p.FlameHeightM {
							f.W[idx] -= w * 0.3 * entrain // outflow aloft
						} else {
							f.W[idx] += w * entrain
						}
					}
				}
			}
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// divergence computes the discrete divergence of the field at interior
// cell (x,y,z).
func (f *Field) divergence(x, y, z int) float64 {
	up := f.idx(x+1, y, z)
	um := f.idx(x-1, y, z)
	vp := f.idx(x, y+1, z)
	vm := f.idx(x, y-1, z)
	wp := f.idx(x, y, z+1)
	wm := f.idx(x, y, z-1)
	du := (f.U[up] - f.U[um]) / (2 * f.DX)
	dv := (f.V[vp] - f.V[vm]) / (2 * f.DY)
	dw := (f.W[wp] - f.W[wm]) / (2 * f.DZ)
	return du + dv + dw
}

// MassConsistentAdjust solves for the Lagrange multiplier lambda via
// Red-Black Gauss-Seidel and applies V = V0 - grad(lambda), z-scaled by
// sigma^2, copying boundary values unchanged.
func MassConsistentAdjust(f *Field, stability StabilityClass, maxIterations int, tolerance float64) int {
	if tolerance <= 0 {
		tolerance = toleranceDefault
	}

	key := solveKey(stability, f.lastBaseWindMS, f.plumeCache)
	if key == f.lastSolveKey {
		return 0
	}
	f.lastSolveKey = key

	sigma := stability.Sigma()
	sigma2 := sigma * sigma

	n := f.NX * f.NY * f.NZ
	lambda := make([]float64, n)

	dx2, dy2, dz2 := f.DX*f.DX, f.DY*f.DY, f.DZ*f.DZ
	denom := 2/dx2 + 2/dy2 + 2*sigma2/dz2

	iterationsUsed := 0
	for iter := 0; iter < maxIterations; iter++ {
		maxUpdate := 0.0
		for parity := 0; parity < 2; parity++ {
			for z := 1; z < f.NZ-1; z++ {
				for y := 1; y < f.NY-1; y++ {
					for x := 1; x < f.NX-1; x++ {
						if (x+y+z)%2 != parity {
							continue
						}
						idx := f.idx(x, y, z)
						rhs := 2 * f.divergence(x, y, z)
						lp := lambda[f.idx(x+1, y, z)]
						lm := lambda[f.idx(x-1, y, z)]
						mp := lambda[f.idx(x, y+1, z)]
						mm := lambda[f.idx(x, y-1, z)]
						np := lambda[f.idx(x, y, z+1)]
						nm := lambda[f.idx(x, y, z-1)]
						newVal := ((lp+lm)/dx2 + (mp+mm)/dy2 + sigma2*(np+nm)/dz2 - rhs) / denom
						update := math.Abs(newVal - lambda[idx])
						if update > maxUpdate {
							maxUpdate = update
						}
						lambda[idx] = newVal
					}
				}
			}
		}
		iterationsUsed = iter + 1
		if maxUpdate < tolerance {
			break
		}
	}

	for z := 1; z < f.NZ-1; z++ {
		for y := 1; y < f.NY-1; y++ {
			for x := 1; x < f.NX-1; x++ {
				idx := f.idx(x, y, z)
				dlambdaDx := (lambda[f.idx(x+1, y, z)] - lambda[f.idx(x-1, y, z)]) / (2 * f.DX)
				dlambdaDy := (lambda[f.idx(x, y+1, z)] - lambda[f.idx(x, y-1, z)]) / (2 * f.DY)
				dlambdaDz := (lambda[f.idx(x, y, z+1)] - lambda[f.idx(x, y, z-1)]) / (2 * f.DZ)
				f.U[idx] -= dlambdaDx
				f.V[idx] -= dlambdaDy
				f.W[idx] -= sigma2 * dlambdaDz
			}
		}
	}

	if iterationsUsed >= maxIterations {
		logging.Log().WithField("iterations", iterationsUsed).Warn("wind: mass-consistent solver did not converge within iteration budget")
	}
	return iterationsUsed
}

// ShouldRecomputeBaseWind implements the base-wind change-gate: skip
// the full initialization unless the base wind changed by >= 0.5 m/s or
// the frame counter lands on a terrain_update_interval boundary.
func (f *Field) ShouldRecomputeBaseWind(currentBaseWindMS float64, frame, terrainUpdateInterval int) bool {
	delta := math.Abs(currentBaseWindMS - f.lastBaseWindMS)
	onBoundary := terrainUpdateInterval > 0 && frame%terrainUpdateInterval == 0
	return delta >= 0.5 || onBoundary
}

// PlumeCount returns the number of plume sources recorded by the most
// recent NotePlumeState call.
func (f *Field) PlumeCount() int { return len(f.plumeCache) }

// NotePlumeState records the current plume snapshot for use by
// ShouldRecomputePlumes, along with the base wind speed and the given
// frame number.
func (f *Field) NotePlumeState(baseWindMS float64, plumes []Plume, frame int) {
	f.lastBaseWindMS = baseWindMS
	f.plumeCache = append([]Plume(nil), plumes...)
	f.frameCounter = frame
}

// ShouldRecomputePlumes implements the plume-update change-gate: skip
// unless a plume moved more than 10m, any intensity changed by more
// than 20%, or the frame lands on a plume_update_interval boundary.
func (f *Field) ShouldRecomputePlumes(plumes []Plume, frame, plumeUpdateInterval int) bool {
	if plumeUpdateInterval > 0 && frame%plumeUpdateInterval == 0 {
		return true
	}
	if len(plumes) != len(f.plumeCache) {
		return true
	}
	for i, p := range plumes {
		old := f.plumeCache[i]
		if math.Hypot(p.X-old.X, p.Y-old.Y) > 10 {
			return true
		}
		if old.IntensityKW > 0 && math.Abs(p.IntensityKW-old.IntensityKW)/old.IntensityKW > 0.20 {
			return true
		}
	}
	return false
}
