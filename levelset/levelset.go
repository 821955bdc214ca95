// Package levelset advects the fire-front signed-distance function phi
// under the Hamilton-Jacobi equation d(phi)/dt + R*|grad(phi)| = 0, with
// two independently scheduled back-ends (Solver and workgroup-dispatch
// Solver) that must agree bit-for-bit. Both perform arithmetic in
// fixed-point integers, grounded on the teacher's ping-pong buffer-swap
// pattern used for concentration fields in run.go's DomainManipulator
// chain, generalized here from a mesh-of-cells swap to a flat-array
// ping-pong swap.
package levelset

import (
	"fmt"

	"github.com/ausfire/firecore/logging"
)

// Scale is the fixed-point scale factor. It MUST remain 1024 (2^10):
// sqrt(scale) is then exactly 32, which the gradient-magnitude kernel
// depends on bit-for-bit. Do not replace with a non-power-of-two scale.
const Scale = 1024
const sqrtScale = 32 // exact sqrt(1024)

func toFixed(v float64) int64 {
	if v >= 0 {
		return int64(v*Scale + 0.5)
	}
	return -int64(-v*Scale + 0.5)
}

func fromFixed(v int64) float32 {
	return float32(float64(v) / Scale)
}

// intSqrt performs a 10-iteration integer Babylonian square root using
// int64 intermediates to avoid overflow on the squared gradient terms.
func intSqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	x := n
	if x > 1<<32 {
		x = 1 << 32
	}
	y := (x + 1) / 2
	for i := 0; i < 10; i++ {
		if y == 0 {
			break
		}
		y = (y + n/y) / 2
	}
	return y
}

// Solver is the capability set both back-ends satisfy, the level-set
// slice of the broader FieldSolver capability set named in the design
// notes.
type Solver interface {
	Initialize(phiInit []float32)
	UpdateSpreadRates(r []float32)
	Step(dtSeconds float64)
	ReadPhi() []float32
	Dimensions() (width, height int)
	GridSpacing() float64
	IsGPU() bool
}

// NewSolver constructs a level-set solver for a width x height grid of
// the given spacing (meters). It attempts the workgroup-dispatch
// ("GPU-shaped") backend first; any construction error falls back to
// the plain CPU backend with a one-line warning, never surfacing a
// different result to the caller (spec §4.1 failure model). A true
// insufficient-memory condition (grid too large for the estimated
// 3-buffers-of-4-bytes-per-cell budget) is returned as an error.
func NewSolver(width, height int, spacing float64, preferGPU bool, gpuMemoryBudgetBytes int64) (Solver, error) {
	cells := int64(width) * int64(height)
	requiredBytes := cells * 4 * 3
	if preferGPU {
		if gpuMemoryBudgetBytes > 0 && requiredBytes > gpuMemoryBudgetBytes {
			return nil, fmt.Errorf("levelset: grid requires %d bytes, exceeds GPU budget %d", requiredBytes, gpuMemoryBudgetBytes)
		}
		gpu, err := newWorkgroupSolver(width, height, spacing)
		if err == nil {
			return gpu, nil
		}
		logging.Log().WithError(err).Warn("levelset: GPU backend unavailable, falling back to CPU")
	}
	return newCPUSolver(width, height, spacing), nil
}

type cpuSolver struct {
	width, height int
	spacing       float64
	phi           []int64
	phiNext       []int64
	r             []float32
}

func newCPUSolver(width, height int, spacing float64) *cpuSolver {
	n := width * height
	return &cpuSolver{
		width: width, height: height, spacing: spacing,
		phi: make([]int64, n), phiNext: make([]int64, n), r: make([]float32, n),
	}
}

func (s *cpuSolver) Initialize(phiInit []float32) {
	for i, v := range phiInit {
		s.phi[i] = toFixed(float64(v))
	}
}

func (s *cpuSolver) UpdateSpreadRates(r []float32) {
	copy(s.r, r)
}

func clampIdx(v, max int) int {
	if v < 0 {
		return 0
	}
	if v >= max {
		return max - 1
	}
	return v
}

// stepCell runs the fixed-point kernel specified in spec §4.1 for a
// single cell. It is a free function (not a method) so both back-ends
// share exactly one implementation and cannot drift.
func stepCell(phi []int64, width, height, x, y int, spacing float64, rate float32, dtSeconds float64) int64 {
	idx := y*width + x
	c := phi[idx]
	xm := phi[y*width+clampIdx(x-1, width)]
	xp := phi[y*width+clampIdx(x+1, width)]
	ym := phi[clampIdx(y-1, height)*width+x]
	yp := phi[clampIdx(y+1, height)*width+x]

	dxm := c - xm
	dxp := xp - c
	dym := c - ym
	dyp := yp - c

	dx := dxm
	if abs64(dxp) > abs64(dxm) {
		dx = dxp
	}
	dy := dym
	if abs64(dyp) > abs64(dym) {
		dy = dyp
	}

	sq := dx*dx + dy*dy
	gradMag := intSqrt(sq) * sqrtScale
	gradMag = int64(float64(gradMag) / spacing)

	// delta = dt * R * |grad(phi)|, fixed-point multiply a*b/scale with
	// f64 intermediates per spec.
	rFixed := toFixed(float64(rate))
	delta := int64(float64(rFixed) * float64(gradMag) / Scale)
	delta = int64(dtSeconds * float64(delta))

	return c - delta
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func (s *cpuSolver) Step(dtSeconds float64) {
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			idx := y*s.width + x
			s.phiNext[idx] = stepCell(s.phi, s.width, s.height, x, y, s.spacing, s.r[idx], dtSeconds)
		}
	}
	s.phi, s.phiNext = s.phiNext, s.phi
}

func (s *cpuSolver) ReadPhi() []float32 {
	out := make([]float32, len(s.phi))
	for i, v := range s.phi {
		out[i] = fromFixed(v)
	}
	return out
}

func (s *cpuSolver) Dimensions() (int, int) { return s.width, s.height }
func (s *cpuSolver) GridSpacing() float64   { return s.spacing }
func (s *cpuSolver) IsGPU() bool            { return false }
