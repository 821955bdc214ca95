// Package atmosgrid implements the optional 3-D atmospheric grid named
// in spec §3/§9: air temperature, wind, humidity, species
// concentrations, radiation flux, pressure, suppression-agent
// concentration, per cell, with diffusion/advection and buoyancy. It is
// an optional collaborator of the field simulation, not a hard
// dependency of the surface solver.
//
// Diffusion reuses github.com/ctessum/atmos/advect's upwind flux
// helper, the same routine the teacher's science.go calls from
// UpwindAdvection, applied along the grid's 3 axes instead of an
// unstructured neighbor list.
package atmosgrid

import (
	"github.com/ctessum/atmos/advect"
)

// Cell is one 3-D atmospheric grid cell.
type Cell struct {
	TemperatureC    float64
	WindU, WindV, WindW float64
	HumidityPct     float64
	O2, CO, CO2     float64 // mass fractions
	Smoke           float64
	WaterVapor      float64
	RadiationFlux   float64 // W/m^2
	PressurePa      float64
	Suppressant     float64 // suppression agent concentration
	Active          bool
	RefinementLevel int
}

// Grid is a row-major (x fastest, then y, then z) 3-D grid of Cells.
type Grid struct {
	NX, NY, NZ int
	DX, DY, DZ float64
	Cells      []Cell
}

// New allocates an inactive atmospheric grid of the given dimensions.
func New(nx, ny, nz int, dx, dy, dz float64) *Grid {
	return &Grid{NX: nx, NY: ny, NZ: nz, DX: dx, DY: dy, DZ: dz, Cells: make([]Cell, nx*ny*nz)}
}

func (g *Grid) idx(x, y, z int) int { return z*(g.NX*g.NY) + y*g.NX + x }

func (g *Grid) clamp(x, y, z int) (int, int, int) {
	if x < 0 {
		x = 0
	}
	if x >= g.NX {
		x = g.NX - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= g.NY {
		y = g.NY - 1
	}
	if z < 0 {
		z = 0
	}
	if z >= g.NZ {
		z = g.NZ - 1
	}
	return x, y, z
}

// At returns the cell at (x,y,z), clamped to the grid bounds.
func (g *Grid) At(x, y, z int) *Cell {
	x, y, z = g.clamp(x, y, z)
	return &g.Cells[g.idx(x, y, z)]
}

// species indexes the concentration channel advected/diffused; Smoke is
// used as the representative species for buoyancy-driven transport.
func (c *Cell) species() float64 { return c.Smoke }

func (c *Cell) setSpecies(v float64) { c.Smoke = v }

// Diffuse applies one step of upwind advection/diffusion of the smoke
// species along all three axes, the same per-axis upwind-flux
// accumulation as the teacher's UpwindAdvection, generalized from an
// unstructured neighbor list to this grid's regular x/y/z stencil.
func (g *Grid) Diffuse(dtSeconds float64) {
	next := make([]float64, len(g.Cells))
	for z := 0; z < g.NZ; z++ {
		for y := 0; y < g.NY; y++ {
			for x := 0; x < g.NX; x++ {
				c := g.At(x, y, z)
				flux := 0.0

				west := g.At(x-1, y, z)
				flux += advect.UpwindFlux(c.WindU, west.species(), c.species(), g.DX)
				east := g.At(x+1, y, z)
				flux -= advect.UpwindFlux(east.WindU, c.species(), east.species(), g.DX)

				south := g.At(x, y-1, z)
				flux += advect.UpwindFlux(c.WindV, south.species(), c.species(), g.DY)
				north := g.At(x, y+1, z)
				flux -= advect.UpwindFlux(north.WindV, c.species(), north.species(), g.DY)

				below := g.At(x, y, z-1)
				flux += advect.UpwindFlux(c.WindW, below.species(), c.species(), g.DZ)
				above := g.At(x, y, z+1)
				flux -= advect.UpwindFlux(above.WindW, c.species(), above.species(), g.DZ)

				next[g.idx(x, y, z)] = c.species() + flux*dtSeconds
			}
		}
	}
	for i := range g.Cells {
		g.Cells[i].setSpecies(next[i])
	}
}

// Buoyancy applies a simple buoyant vertical acceleration to WindW based
// on the local temperature excess over ambient, driving the plume/
// atmosphere coupling named in spec §3.
func (g *Grid) Buoyancy(ambientTempC float64, dtSeconds float64) {
	const buoyancyCoeff = 0.03
	for i := range g.Cells {
		c := &g.Cells[i]
		if !c.Active {
			continue
		}
		excess := c.TemperatureC - ambientTempC
		if excess > 0 {
			c.WindW += buoyancyCoeff * excess * dtSeconds
		}
	}
}
