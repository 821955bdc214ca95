// Package terrain holds the immutable elevation grid and its derived
// slope/aspect fields, computed on demand via Horn's method, the same
// 3x3-neighborhood finite-difference shape the teacher uses for its own
// cell-to-cell gradient terms (neighbors.go's half-distance weighting),
// generalized here to a regular grid instead of an unstructured mesh.
package terrain

import "math"

// Terrain is an immutable elevation grid, constructed once and shared
// read-only by every solver back-end.
type Terrain struct {
	Width, Height int
	CellSize      float64 // meters
	elevation     []float64
}

// New builds a Terrain from a row-major elevation array (meters). The
// slice is copied; Terrain never aliases caller-owned memory.
func New(width, height int, cellSize float64, elevation []float64) *Terrain {
	if len(elevation) != width*height {
		panic("terrain: elevation length does not match width*height")
	}
	e := make([]float64, len(elevation))
	copy(e, elevation)
	return &Terrain{Width: width, Height: height, CellSize: cellSize, elevation: e}
}

// Flat constructs a Terrain at a uniform elevation, useful for test
// scenarios that need no relief.
func Flat(width, height int, cellSize, elevationM float64) *Terrain {
	e := make([]float64, width*height)
	for i := range e {
		e[i] = elevationM
	}
	return &Terrain{Width: width, Height: height, CellSize: cellSize, elevation: e}
}

func (t *Terrain) clampIdx(x, y int) int {
	if x < 0 {
		x = 0
	}
	if x >= t.Width {
		x = t.Width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= t.Height {
		y = t.Height - 1
	}
	return y*t.Width + x
}

// ElevationAt returns the elevation (meters) at (x,y), clamping
// out-of-bounds coordinates to the edge.
func (t *Terrain) ElevationAt(x, y int) float64 {
	return t.elevation[t.clampIdx(x, y)]
}

// Elevation returns the full row-major elevation array. Callers must not
// mutate the returned slice.
func (t *Terrain) Elevation() []float64 { return t.elevation }

// horn returns the 8 neighbor elevations in Horn's (1981) z1..z8 layout
// around (x,y):
//
//	z1 z2 z3
//	z4  .  z5
//	z6 z7 z8
func (t *Terrain) horn(x, y int) (z1, z2, z3, z4, z5, z6, z7, z8 float64) {
	z1 = t.ElevationAt(x-1, y-1)
	z2 = t.ElevationAt(x, y-1)
	z3 = t.ElevationAt(x+1, y-1)
	z4 = t.ElevationAt(x-1, y)
	z5 = t.ElevationAt(x+1, y)
	z6 = t.ElevationAt(x-1, y+1)
	z7 = t.ElevationAt(x, y+1)
	z8 = t.ElevationAt(x+1, y+1)
	return
}

// Gradient returns (dz/dx, dz/dy) at (x,y) via Horn's weighted 3x3 kernel.
func (t *Terrain) Gradient(x, y int) (dzdx, dzdy float64) {
	z1, z2, z3, z4, z5, z6, z7, z8 := t.horn(x, y)
	cs := t.CellSize
	dzdx = ((z3 + 2*z5 + z8) - (z1 + 2*z4 + z6)) / (8 * cs)
	dzdy = ((z6 + 2*z7 + z8) - (z1 + 2*z2 + z3)) / (8 * cs)
	return
}

// SlopeAt returns the slope angle (radians) at (x,y).
func (t *Terrain) SlopeAt(x, y int) float64 {
	dzdx, dzdy := t.Gradient(x, y)
	return math.Atan(math.Hypot(dzdx, dzdy))
}

// AspectAt returns the downslope aspect angle (radians, 0 = north,
// increasing clockwise, with +y north and +x east as in the wind
// package) at (x,y).
func (t *Terrain) AspectAt(x, y int) float64 {
	dzdx, dzdy := t.Gradient(x, y)
	if dzdx == 0 && dzdy == 0 {
		return 0
	}
	aspect := math.Atan2(-dzdx, -dzdy)
	if aspect < 0 {
		aspect += 2 * math.Pi
	}
	return aspect
}

// SlopeVector returns the (dz/dx, dz/dy) slope vector at (x,y), the form
// consumed directly by the Rothermel slope-alignment term.
func (t *Terrain) SlopeVector(x, y int) (dzdx, dzdy float64) {
	return t.Gradient(x, y)
}
