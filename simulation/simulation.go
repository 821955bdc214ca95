// Package simulation implements the field simulation driver that owns
// all grid state and orchestrates the mandatory per-step sequence:
// weather -> wind (change-gated) -> spread-rate field -> level set ->
// combustion/moisture -> embers -> spot ignitions -> front extraction ->
// statistics (spec §2).
//
// The driver's step sequencing is grounded on the teacher's
// DomainManipulator/CellManipulator functional-pipeline pattern
// (run.go): Update(dt) calls the step methods in a fixed order. The
// spread-rate field (StepLevelSet) and the heat-transfer kernel
// (heat.FieldTransfer) dispatch across runtime.GOMAXPROCS(0) row-chunks
// with a sync.WaitGroup, the same concurrency shape as the teacher's
// Calculations combinator; combustion and moisture run as serial loops.
package simulation

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"

	"github.com/ausfire/firecore/config"
	"github.com/ausfire/firecore/crownfire"
	"github.com/ausfire/firecore/ember"
	"github.com/ausfire/firecore/fuel"
	"github.com/ausfire/firecore/heat"
	"github.com/ausfire/firecore/levelset"
	"github.com/ausfire/firecore/logging"
	"github.com/ausfire/firecore/rothermel"
	"github.com/ausfire/firecore/subgrid"
	"github.com/ausfire/firecore/terrain"
	"github.com/ausfire/firecore/units"
	"github.com/ausfire/firecore/weather"
	"github.com/ausfire/firecore/wind"
	"github.com/sirupsen/logrus"
)

// FieldSolver is the single capability set both CPU and GPU-shaped
// solver back-ends satisfy, named in the design notes as the sole
// point of polymorphism over solver implementations. FieldSimulation
// holds exactly one implementation, chosen at construction.
type FieldSolver interface {
	StepHeatTransfer(dtSeconds float64)
	StepCombustion(dtSeconds float64)
	StepMoisture(dtSeconds float64)
	StepLevelSet(dtSeconds float64)
	StepIgnitionSync()
	ApplyHeat(x, y float64, temperatureC float64, radiusM float64)
	ReadTemperature() []float32
	ReadLevelSet() []float32
	IsGPUAccelerated() bool
	Dimensions() (int, int)
}

// CombustionPhase is the per-cell combustion sum-typed state, stored as
// a tagged byte per the design notes rather than a polymorphic type.
type CombustionPhase uint8

const (
	Unignited CombustionPhase = iota
	Flaming
	Transition
	Smoldering
	Extinguished
)

// grid holds every mutable per-cell field, exclusively owned by a
// solver implementation.
type grid struct {
	width, height int
	cellSize      float64

	temperatureK []float64
	fuelMassKg   []float64
	moisture     []float64
	fuelID       []fuel.ID
	windU, windV []float64
	slopeX, slopeY []float64
	vorticity    []float64
	crownState   []crownfire.State
	phase        []CombustionPhase

	fuelConsumedKg float64
}

func newGrid(width, height int, cellSize float64) *grid {
	n := width * height
	g := &grid{width: width, height: height, cellSize: cellSize,
		temperatureK: make([]float64, n), fuelMassKg: make([]float64, n),
		moisture: make([]float64, n), fuelID: make([]fuel.ID, n),
		windU: make([]float64, n), windV: make([]float64, n),
		slopeX: make([]float64, n), slopeY: make([]float64, n),
		vorticity: make([]float64, n), crownState: make([]crownfire.State, n),
		phase: make([]CombustionPhase, n),
	}
	for i := range g.temperatureK {
		g.temperatureK[i] = 293.15
	}
	return g
}

func (g *grid) idx(x, y int) int { return y*g.width + x }

// solverImpl is the concrete FieldSolver implementation wrapping a
// level-set back-end (CPU or workgroup-dispatch) plus the shared
// combustion/moisture/heat-transfer kernels, so the outer stepping
// logic is identical regardless of which level-set back-end was
// selected at construction.
type solverImpl struct {
	ls          levelset.Solver
	g           *grid
	spreadRates []float32
}

func newSolverImpl(width, height int, cellSize float64, preferGPU bool) (*solverImpl, error) {
	ls, err := levelset.NewSolver(width, height, cellSize, preferGPU, 0)
	if err != nil {
		return nil, err
	}
	s := &solverImpl{ls: ls, g: newGrid(width, height, cellSize), spreadRates: make([]float32, width*height)}
	phiInit := make([]float32, width*height)
	for i := range phiInit {
		phiInit[i] = 1000 // far outside any front
	}
	s.ls.Initialize(phiInit)
	return s, nil
}

// StepHeatTransfer applies one step of the Stefan-Boltzmann/convective
// proximity heat-transfer model across the whole grid.
func (s *solverImpl) StepHeatTransfer(dtSeconds float64) {
	g := s.g
	cells := make([]heat.Cell, len(g.temperatureK))
	for i := range cells {
		cells[i] = heat.Cell{
			TemperatureC: g.temperatureK[i] - 273.15,
			FuelMassKg:   g.fuelMassKg[i],
			FuelID:       g.fuelID[i],
			WindU:        g.windU[i],
			WindV:        g.windV[i],
		}
	}
	next := heat.FieldTransfer(g.width, g.height, g.cellSize, cells, dtSeconds)
	for i, tC := range next {
		g.temperatureK[i] = float64(units.Celsius(tC).Kelvin())
	}
}

// StepCombustion integrates fuel consumption and heat release for every
// burning cell (cells with phi < 0), the per-cell "is it on fire, and
// how fast is it eating fuel" update.
func (s *solverImpl) StepCombustion(dtSeconds float64) {
	g := s.g
	phi := s.ls.ReadPhi()
	for idx := range g.temperatureK {
		f := fuel.Get(g.fuelID[idx])
		if !f.Burnable || phi[idx] >= 0 || g.fuelMassKg[idx] <= 0 {
			continue
		}
		ignitionK := units.Celsius(f.PilotedIgnitionC).Kelvin()
		tempFactor := units.Clamp((g.temperatureK[idx]-float64(ignitionK))/f.TemperatureResponseK, 0, 1)
		rate := f.BurnRateCoefficient * f.CombustionEfficiency * tempFactor

		consumed := rate * dtSeconds * g.fuelMassKg[idx]
		if consumed > g.fuelMassKg[idx] {
			consumed = g.fuelMassKg[idx]
		}
		g.fuelMassKg[idx] -= consumed
		g.fuelConsumedKg += consumed
		releasedKJ := consumed * f.HeatContentKJkg * f.SelfHeatingFraction
		thermalMassKJperK := f.SpecificHeat * math.Max(g.fuelMassKg[idx], 1e-4) / 1000
		g.temperatureK[idx] += releasedKJ / thermalMassKJperK

		if g.fuelMassKg[idx] <= 1e-6 {
			g.phase[idx] = Extinguished
		} else {
			g.phase[idx] = Flaming
		}
	}
}

// StepMoisture advances fuel moisture toward equilibrium driven by
// local temperature, the Nelson timelag-class response (§4.4):
// 1-hour fuels equilibrate fastest, 1000-hour fuels slowest, weighted
// by the cell's size-class mass fractions.
func (s *solverImpl) StepMoisture(dtSeconds float64) {
	const (
		timelag1h    = 1 * 3600.0
		timelag10h   = 10 * 3600.0
		timelag100h  = 100 * 3600.0
		timelag1000h = 1000 * 3600.0
	)
	g := s.g
	for idx := range g.moisture {
		f := fuel.Get(g.fuelID[idx])
		if !f.Burnable {
			continue
		}
		tC := g.temperatureK[idx] - 273.15
		equilibrium := f.BaseMoisture
		if tC > 60 {
			equilibrium = f.BaseMoisture * math.Max(0.05, 1-(tC-60)/200)
		}
		sc := f.SizeClasses
		invTau := sc.Hour1/timelag1h + sc.Hour10/timelag10h + sc.Hour100/timelag100h + sc.Hour1000/timelag1000h
		if invTau <= 0 {
			invTau = 1 / timelag1h
		}
		g.moisture[idx] += (equilibrium - g.moisture[idx]) * invTau * dtSeconds
		if g.moisture[idx] < 0 {
			g.moisture[idx] = 0
		}
	}
}

// StepLevelSet recomputes the Rothermel spread-rate field (with the
// crown-fire override applied where the surface intensity exceeds the
// Van Wagner critical intensity) and advects phi one step.
func (s *solverImpl) StepLevelSet(dtSeconds float64) {
	g := s.g
	phi := s.ls.ReadPhi()

	workers := runtime.GOMAXPROCS(0)
	rowsPerWorker := (g.height + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * rowsPerWorker
		y1 := y0 + rowsPerWorker
		if y1 > g.height {
			y1 = g.height
		}
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				for x := 0; x < g.width; x++ {
					idx := g.idx(x, y)
					s.spreadRates[idx] = float32(s.cellSpreadRate(phi, x, y))
				}
			}
		}(y0, y1)
	}
	wg.Wait()

	s.ls.UpdateSpreadRates(s.spreadRates)
	s.ls.Step(dtSeconds)
}

func (s *solverImpl) cellSpreadRate(phi []float32, x, y int) float64 {
	g := s.g
	idx := g.idx(x, y)
	f := fuel.Get(g.fuelID[idx])
	if !f.Burnable {
		return 0
	}
	gradX, gradY, mag := gradient(phi, g.width, g.height, x, y, g.cellSize)

	var curvature float64
	if mag > 1e-3 {
		curvature = curvatureAt(phi, g.width, g.height, x, y, g.cellSize)
	}

	windAligned, slopeAligned := 0.0, 0.0
	if mag > 1e-6 {
		nx, ny := gradX/mag, gradY/mag
		windAligned = g.windU[idx]*nx + g.windV[idx]*ny
		slopeAligned = g.slopeX[idx]*nx + g.slopeY[idx]*ny
	}

	r := rothermel.RateAt(rothermel.Inputs{
		Fuel:             f,
		MoistureFraction: g.moisture[idx],
		WindAligned:      windAligned,
		SlopeAligned:     slopeAligned,
		Curvature:        curvature,
		VorticityAbs:     math.Abs(g.vorticity[idx]),
	})

	if r <= 0 || f.CrownBaseHeightM <= 0 {
		return r
	}

	loadKgM2 := f.BulkDensity * f.FuelBedDepthM
	surfaceIntensityKW := f.HeatContentKJkg * loadKgM2 * r
	state := crownfire.Classify(surfaceIntensityKW, r, f.CrownBaseHeightM, f.FoliarMoisturePct, f.CrownBulkDensity)
	g.crownState[idx] = state
	if state == crownfire.Surface {
		return r
	}
	u10KMH := math.Hypot(g.windU[idx], g.windV[idx]) * 3.6
	crownROS := crownfire.CrownROS(u10KMH, g.moisture[idx]*100)
	return crownfire.EffectiveROS(state, r, crownROS)
}

func gradient(phi []float32, width, height, x, y int, cellSize float64) (gx, gy, mag float64) {
	xm := phi[y*width+clampi(x-1, width)]
	xp := phi[y*width+clampi(x+1, width)]
	ym := phi[clampi(y-1, height)*width+x]
	yp := phi[clampi(y+1, height)*width+x]
	gx = float64(xp-xm) / (2 * cellSize)
	gy = float64(yp-ym) / (2 * cellSize)
	mag = math.Hypot(gx, gy)
	return
}

func curvatureAt(phi []float32, width, height, x, y int, cellSize float64) float64 {
	gxE, _, _ := gradient(phi, width, height, clampi(x+1, width), y, cellSize)
	gxW, _, _ := gradient(phi, width, height, clampi(x-1, width), y, cellSize)
	_, gyN, _ := gradient(phi, width, height, x, clampi(y-1, height), cellSize)
	_, gyS, _ := gradient(phi, width, height, x, clampi(y+1, height), cellSize)
	dnxdx := (gxE - gxW) / (2 * cellSize)
	dnydy := (gyN - gyS) / (2 * cellSize)
	return dnxdx + dnydy
}

func clampi(v, max int) int {
	if v < 0 {
		return 0
	}
	if v >= max {
		return max - 1
	}
	return v
}

// StepIgnitionSync bridges combustion/heat-transfer state back into the
// level-set geometry: any cell whose temperature crosses its fuel's
// piloted-ignition point but whose phi is still outside the front gets
// a direct phi override, so point ignitions (ember landings, apply_heat
// calls) show up in the front the very next extraction rather than
// waiting for the level-set's own gradient-driven advection to reach
// them.
func (s *solverImpl) StepIgnitionSync() {
	g := s.g
	phi := s.ls.ReadPhi()
	changed := false
	for idx := range phi {
		f := fuel.Get(g.fuelID[idx])
		if !f.Burnable || phi[idx] < 0 || g.fuelMassKg[idx] <= 0 {
			continue
		}
		ignitionK := float64(units.Celsius(f.PilotedIgnitionC).Kelvin())
		if g.temperatureK[idx] >= ignitionK && phi[idx] > -1 {
			phi[idx] = -1
			changed = true
		}
	}
	if changed {
		s.ls.Initialize(phi)
	}
}

// ApplyHeat raises the temperature field in a Gaussian-weighted disk
// around (x,y), letting StepCombustion/StepIgnitionSync decide ignition
// (spec §4.8). Position is in world meters.
func (s *solverImpl) ApplyHeat(x, y float64, temperatureC, radiusM float64) {
	if radiusM <= 0 {
		panic("simulation: apply_heat radius must be positive")
	}
	g := s.g
	cs := g.cellSize
	cx, cy := x/cs, y/cs
	radiusCells := radiusM/cs + 1
	x0, x1 := intClamp(cx-radiusCells, 0, g.width-1), intClamp(cx+radiusCells, 0, g.width-1)
	y0, y1 := intClamp(cy-radiusCells, 0, g.height-1), intClamp(cy+radiusCells, 0, g.height-1)

	targetK := float64(units.Celsius(temperatureC).Kelvin())
	for gy := y0; gy <= y1; gy++ {
		for gx := x0; gx <= x1; gx++ {
			d := math.Hypot(float64(gx)-cx, float64(gy)-cy) * cs
			w := gaussian(d, radiusM)
			idx := g.idx(gx, gy)
			cur := g.temperatureK[idx]
			blended := cur + (targetK-cur)*w
			if blended > cur {
				g.temperatureK[idx] = blended
			}
		}
	}
}

func intClamp(v float64, lo, hi int) int {
	iv := int(v)
	if iv < lo {
		return lo
	}
	if iv > hi {
		return hi
	}
	return iv
}

func gaussian(d, radius float64) float64 {
	sigma := radius / 2
	if sigma <= 0 {
		return 0
	}
	return math.Exp(-(d * d) / (2 * sigma * sigma))
}

func (s *solverImpl) ReadTemperature() []float32 {
	out := make([]float32, len(s.g.temperatureK))
	for i, k := range s.g.temperatureK {
		out[i] = float32(k)
	}
	return out
}

func (s *solverImpl) ReadLevelSet() []float32 { return s.ls.ReadPhi() }
func (s *solverImpl) IsGPUAccelerated() bool  { return s.ls.IsGPU() }
func (s *solverImpl) Dimensions() (int, int)  { return s.ls.Dimensions() }

// FuelConsumedKg returns the cumulative fuel mass burned since
// construction, accumulated incrementally by StepCombustion rather than
// diffed against a caller-supplied snapshot.
func (s *solverImpl) FuelConsumedKg() float64 { return s.g.fuelConsumedKg }

// FrontVertex is one vertex of the extracted fire front polyline.
type FrontVertex struct {
	X, Y        float64
	IntensityKW float64
}

// FireFront is the set of contours extracted this step.
type FireFront struct {
	Vertices   []FrontVertex
	FrontCount int
}

// FieldSimulation is the public driver. It exclusively owns the solver,
// the ember list, the terrain, and the weather state.
type FieldSimulation struct {
	Terrain *terrain.Terrain
	Weather *weather.State

	solver *solverImpl
	noise  *subgrid.Noise

	emberGen *ember.Generator
	emberRNG *rand.Rand
	embers   []ember.Ember
	front    FireFront

	simTimeS     float64
	frameCounter int

	windField *wind.Field

	cvFuelLoad, cvMoisture float64
}

// New constructs a field simulation for the given terrain, quality
// preset, and initial weather, choosing the solver back-end
// automatically (GPU-shaped if available, else CPU).
func New(t *terrain.Terrain, tier config.QualityTier, w *weather.State, seed int64) (*FieldSimulation, error) {
	spec := config.ResolveQuality(tier)
	solver, err := newSolverImpl(t.Width, t.Height, spec.CellSizeM, true)
	if err != nil {
		return nil, fmt.Errorf("simulation: constructing solver: %w", err)
	}

	fs := &FieldSimulation{
		Terrain:  t,
		Weather:  w,
		solver:   solver,
		noise:    subgrid.NewNoise(seed),
		emberGen: ember.NewGenerator(seed + 1),
		emberRNG: rand.New(rand.NewSource(seed + 2)),

		cvFuelLoad: subgrid.DefaultCVFuelLoad,
		cvMoisture: subgrid.DefaultCVMoisture,
	}

	fs.windField = wind.Initialize(t, 10, 20, w.WindSpeedMS, 10, w.WindDirRad)
	fs.initSlopeField()

	logging.Log().WithFields(logrus.Fields{
		"width": t.Width, "height": t.Height,
		"cell_size_m": spec.CellSizeM, "gpu": solver.IsGPUAccelerated(),
	}).Info("simulation: field solver constructed")

	return fs, nil
}

// initSlopeField caches the terrain's per-cell slope vector on the grid
// once at construction, since Terrain is immutable for the simulation's
// lifetime and the Rothermel slope-alignment term is otherwise
// recomputed every step for no benefit.
func (fs *FieldSimulation) initSlopeField() {
	g := fs.solver.g
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			idx := g.idx(x, y)
			dzdx, dzdy := fs.Terrain.SlopeVector(x, y)
			g.slopeX[idx], g.slopeY[idx] = dzdx, dzdy
		}
	}
}

// Solver exposes the driver's single solver implementation through the
// narrow FieldSolver capability set, for callers that only need the
// abstract contract (e.g. a rendering front-end reading temperature and
// level-set fields).
func (fs *FieldSimulation) Solver() FieldSolver { return fs.solver }

// SetFuel assigns the fuel type and initial load/moisture at (x,y),
// applying sub-grid heterogeneity via the noise field.
func (fs *FieldSimulation) SetFuel(x, y int, id fuel.ID, loadKg, moisture float64) {
	g := fs.solver.g
	idx := g.idx(x, y)
	n := fs.noise.At(float64(x)*g.cellSize, float64(y)*g.cellSize, 80)
	aspect := fs.Terrain.AspectAt(x, y)
	g.fuelID[idx] = id
	g.fuelMassKg[idx] = subgrid.FuelLoad(loadKg, fs.cvFuelLoad, n)
	g.moisture[idx] = subgrid.Moisture(moisture, fs.cvMoisture, n, aspect)
}

// ApplyHeat raises the temperature field in a Gaussian-weighted disk
// around (x,y). Position is in world meters.
func (fs *FieldSimulation) ApplyHeat(x, y float64, temperatureC, radiusM float64) {
	fs.solver.ApplyHeat(x, y, temperatureC, radiusM)
}

// Update advances the simulation by dtSeconds, running the mandatory
// step order from spec §2.
func (fs *FieldSimulation) Update(dtSeconds float64) {
	fs.frameCounter++
	fs.Weather.Advance(dtSeconds)
	fs.updateWindField(dtSeconds)
	fs.syncGridWind()

	fs.solver.StepLevelSet(dtSeconds)
	fs.solver.StepHeatTransfer(dtSeconds)
	fs.solver.StepCombustion(dtSeconds)
	fs.solver.StepMoisture(dtSeconds)
	fs.solver.StepIgnitionSync()

	fs.advanceEmbers(dtSeconds)
	fs.attemptSpotIgnitions()
	fs.extractFireFront()
	fs.simTimeS += dtSeconds
}

const (
	terrainUpdateInterval = 30
	plumeUpdateInterval   = 5

	// minPlumeIntensityKW matches the ember generation threshold (spec
	// §4.6): below it a front segment isn't treated as a real plume
	// source either.
	minPlumeIntensityKW = 100.0
)

func (fs *FieldSimulation) updateWindField(dtSeconds float64) {
	plumes := fs.buildPlumes()

	switch {
	case fs.windField.ShouldRecomputeBaseWind(fs.Weather.WindSpeedMS, fs.frameCounter, terrainUpdateInterval):
		fs.windField = wind.Initialize(fs.Terrain, fs.windField.NZ, fs.windField.DZ, fs.Weather.WindSpeedMS, 10, fs.Weather.WindDirRad)
		wind.ApplyPlumes(fs.windField, plumes)
		fs.windField.NotePlumeState(fs.Weather.WindSpeedMS, plumes, fs.frameCounter)
		wind.MassConsistentAdjust(fs.windField, wind.StabilityD, 100, 1e-6)
	case fs.windField.ShouldRecomputePlumes(plumes, fs.frameCounter, plumeUpdateInterval):
		wind.ApplyPlumes(fs.windField, plumes)
		fs.windField.NotePlumeState(fs.Weather.WindSpeedMS, plumes, fs.frameCounter)
		wind.MassConsistentAdjust(fs.windField, wind.StabilityD, 100, 1e-6)
	}
}

// buildPlumes turns the previous step's extracted fire front (fs.front
// is regenerated at the end of Update, so at this point in the
// sequence it reflects the last completed step) into plume coupling
// sources for the wind field: every front vertex above the ember-
// generation intensity threshold becomes one plume, with flame height
// from the Byram (1959) correlation H = 0.0775 * I^0.46.
func (fs *FieldSimulation) buildPlumes() []wind.Plume {
	g := fs.solver.g
	var out []wind.Plume
	for _, v := range fs.front.Vertices {
		if v.IntensityKW < minPlumeIntensityKW {
			continue
		}
		out = append(out, wind.Plume{
			X:            v.X,
			Y:            v.Y,
			Z:            0,
			IntensityKW:  v.IntensityKW,
			FlameHeightM: 0.0775 * math.Pow(v.IntensityKW, 0.46),
			FrontWidthM:  g.cellSize,
		})
	}
	return out
}

// syncGridWind samples the near-surface layer of the 3-D wind field
// into the 2-D per-cell wind used by the Rothermel and heat-transfer
// kernels.
func (fs *FieldSimulation) syncGridWind() {
	g := fs.solver.g
	wf := fs.windField
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			idx := g.idx(x, y)
			wx := clampiInt(x, wf.NX-1)
			wy := clampiInt(y, wf.NY-1)
			widx := wy*wf.NX + wx // z = 0 (near-surface layer)
			g.windU[idx] = wf.U[widx]
			g.windV[idx] = wf.V[widx]
		}
	}
}

func clampiInt(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func (fs *FieldSimulation) advanceEmbers(dtSeconds float64) {
	g := fs.solver.g
	newEmbers := fs.emberGen.Generate(fs.front.toVertices(), dtSeconds)
	fs.embers = append(fs.embers, newEmbers...)

	alive := fs.embers[:0]
	for i := range fs.embers {
		e := &fs.embers[i]
		cx := intClamp(e.Position.X/g.cellSize, 0, g.width-1)
		cy := intClamp(e.Position.Y/g.cellSize, 0, g.height-1)
		idx := g.idx(cx, cy)
		ember.Advance(e, g.windU[idx], g.windV[idx], cellIntensity(g, idx), dtSeconds)
		if e.Active {
			alive = append(alive, *e)
		}
	}
	fs.embers = alive
}

func (f FireFront) toVertices() []ember.FrontVertex {
	out := make([]ember.FrontVertex, len(f.Vertices))
	for i, v := range f.Vertices {
		out[i] = ember.FrontVertex{Position: units.Vec3{X: v.X, Y: v.Y, Z: 0}, IntensityKW: v.IntensityKW}
	}
	return out
}

func (fs *FieldSimulation) attemptSpotIgnitions() {
	g := fs.solver.g
	phi := fs.solver.ls.ReadPhi()
	for i := range fs.embers {
		e := &fs.embers[i]
		if !ember.Landed(e) || !e.Active {
			continue
		}
		cx := intClamp(e.Position.X/g.cellSize, 0, g.width-1)
		cy := intClamp(e.Position.Y/g.cellSize, 0, g.height-1)
		idx := g.idx(cx, cy)
		f := fuel.Get(g.fuelID[idx])

		attempt := ember.IgnitionAttempt{
			CellUnburned:      phi[idx] > 0,
			MoistureFraction:  g.moisture[idx],
			MoistureOfExtinct: f.MoistureOfExtinction,
			FuelReceptivity:   f.EmberReceptivity,
		}
		if ember.AttemptIgnition(e, attempt, fs.emberRNG) {
			fs.ApplyHeat(float64(cx)*g.cellSize, float64(cy)*g.cellSize, 600, g.cellSize)
		}
		e.Active = false
	}
}

// extractFireFront runs a 1-D marching-squares pass (horizontal edge
// crossings of the zero isocontour) to produce the front polyline
// consumed by ember generation and the public fire_front query.
func (fs *FieldSimulation) extractFireFront() {
	g := fs.solver.g
	phi := fs.solver.ls.ReadPhi()
	var verts []FrontVertex
	count := 0

	for y := 0; y < g.height-1; y++ {
		rowCrossings := 0
		for x := 0; x < g.width-1; x++ {
			idx := g.idx(x, y)
			a := phi[idx]
			b := phi[g.idx(x+1, y)]
			if (a < 0) != (b < 0) {
				t := float64(a) / float64(a-b)
				wx := (float64(x) + t) * g.cellSize
				wy := float64(y) * g.cellSize
				verts = append(verts, FrontVertex{X: wx, Y: wy, IntensityKW: cellIntensity(g, idx)})
				rowCrossings++
			}
		}
		if rowCrossings > 0 {
			count++
		}
	}
	fs.front = FireFront{Vertices: verts, FrontCount: count}
}

// cellIntensity approximates Byram intensity I = H*w*R using the cell's
// fuel heat content and remaining load as a proxy for consumption rate;
// a literal coupling to the Rothermel field's R would require exposing
// solverImpl's internal spreadRates buffer, which this query path
// intentionally keeps decoupled from.
func cellIntensity(g *grid, idx int) float64 {
	f := fuel.Get(g.fuelID[idx])
	return f.HeatContentKJkg * g.fuelMassKg[idx] * 0.01
}

// FireFront returns the most recently extracted fire front.
func (fs *FieldSimulation) FireFront() FireFront { return fs.front }

// TemperatureAt returns the temperature (deg C) at the grid cell
// containing world position (x,y).
func (fs *FieldSimulation) TemperatureAt(x, y float64) float64 {
	g := fs.solver.g
	cx := intClamp(x/g.cellSize, 0, g.width-1)
	cy := intClamp(y/g.cellSize, 0, g.height-1)
	return g.temperatureK[g.idx(cx, cy)] - 273.15
}

// LevelSetAt returns phi at the grid cell containing world position (x,y).
func (fs *FieldSimulation) LevelSetAt(x, y float64) float32 {
	g := fs.solver.g
	cx := intClamp(x/g.cellSize, 0, g.width-1)
	cy := intClamp(y/g.cellSize, 0, g.height-1)
	return fs.solver.ls.ReadPhi()[g.idx(cx, cy)]
}

// IsBurned reports whether the cell at (x,y) has phi < 0.
func (fs *FieldSimulation) IsBurned(x, y float64) bool { return fs.LevelSetAt(x, y) < 0 }

// IsNearFireFront reports whether (x,y) is within radiusM of any
// extracted front vertex.
func (fs *FieldSimulation) IsNearFireFront(x, y, radiusM float64) bool {
	for _, v := range fs.front.Vertices {
		if math.Hypot(v.X-x, v.Y-y) <= radiusM {
			return true
		}
	}
	return false
}

// BurnedAreaM2 returns the count of phi<0 cells times cell area.
func (fs *FieldSimulation) BurnedAreaM2() float64 {
	g := fs.solver.g
	phi := fs.solver.ls.ReadPhi()
	count := 0
	for _, v := range phi {
		if v < 0 {
			count++
		}
	}
	return float64(count) * g.cellSize * g.cellSize
}

// FuelConsumedKg returns the total fuel mass consumed since
// construction (spec §6 "fuel_consumed() -> kg").
func (fs *FieldSimulation) FuelConsumedKg() float64 {
	return fs.solver.FuelConsumedKg()
}

// SimulationTimeS returns elapsed simulated time in seconds.
func (fs *FieldSimulation) SimulationTimeS() float64 { return fs.simTimeS }

// EmberCount returns the number of active embers.
func (fs *FieldSimulation) EmberCount() int { return len(fs.embers) }

// Point is a world-space (x,y) query coordinate, shared by the batch
// query methods below.
type Point struct{ X, Y float64 }

// TemperaturesAt evaluates TemperatureAt for every point against a
// single field snapshot, guaranteeing the batch sees one consistent
// view of the grid (spec §6, "batch variants share a single field
// snapshot").
func (fs *FieldSimulation) TemperaturesAt(points []Point) []float64 {
	g := fs.solver.g
	tempK := g.temperatureK
	out := make([]float64, len(points))
	for i, p := range points {
		cx := intClamp(p.X/g.cellSize, 0, g.width-1)
		cy := intClamp(p.Y/g.cellSize, 0, g.height-1)
		out[i] = tempK[g.idx(cx, cy)] - 273.15
	}
	return out
}

// BurnStatesAt evaluates IsBurned for every point against a single phi
// snapshot (spec §6).
func (fs *FieldSimulation) BurnStatesAt(points []Point) []bool {
	g := fs.solver.g
	phi := fs.solver.ls.ReadPhi()
	out := make([]bool, len(points))
	for i, p := range points {
		cx := intClamp(p.X/g.cellSize, 0, g.width-1)
		cy := intClamp(p.Y/g.cellSize, 0, g.height-1)
		out[i] = phi[g.idx(cx, cy)] < 0
	}
	return out
}

// ReadTemperature returns a snapshot of the whole-field temperature
// grid (Kelvin, row-major) that the caller may hold without racing
// the next Update.
func (fs *FieldSimulation) ReadTemperature() []float32 {
	return fs.solver.ReadTemperature()
}

// ReadLevelSet returns the whole-field phi grid (metres, row-major),
// with the same snapshot semantics as ReadTemperature.
func (fs *FieldSimulation) ReadLevelSet() []float32 {
	return fs.solver.ReadLevelSet()
}
