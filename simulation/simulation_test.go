package simulation

import (
	"math"
	"testing"

	"github.com/ausfire/firecore/config"
	"github.com/ausfire/firecore/ember"
	"github.com/ausfire/firecore/fuel"
	"github.com/ausfire/firecore/terrain"
	"github.com/ausfire/firecore/units"
	"github.com/ausfire/firecore/weather"
)

func newTestSim(t *testing.T, terr *terrain.Terrain, w *weather.State) *FieldSimulation {
	t.Helper()
	fs, err := New(terr, config.Low, w, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return fs
}

func flatGrassWeather() *weather.State {
	return weather.New(32, 20, 8, 0, 8, 13, 20, weather.Neutral)
}

// TestApplyHeatIgnitesLocally checks spec §4.8: apply_heat raises
// temperature in a bounded radius and, once StepCombustion/
// StepIgnitionSync run, produces a burned cell at ground zero without
// affecting distant, untouched cells.
func TestApplyHeatIgnitesLocally(t *testing.T) {
	terr := terrain.Flat(20, 20, 20, 100)
	fs := newTestSim(t, terr, flatGrassWeather())

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			fs.SetFuel(x, y, fuel.DryGrass, 0.6, 0.08)
		}
	}

	cx, cy := 10.0*20, 10.0*20
	fs.ApplyHeat(cx, cy, 900, 20)

	for i := 0; i < 5; i++ {
		fs.Update(1.0)
	}

	if !fs.IsBurned(cx, cy) {
		t.Fatalf("expected ground-zero cell to be burned after ignition, temp=%v", fs.TemperatureAt(cx, cy))
	}

	farX, farY := 1.0*20, 1.0*20
	if fs.IsBurned(farX, farY) {
		t.Fatalf("expected distant untouched cell to remain unburned")
	}
}

// TestApplyHeatZeroUpdateIsLocal checks that a single apply_heat call
// with no elapsed update time only perturbs cells within its radius,
// never the whole grid (locality invariant).
func TestApplyHeatZeroUpdateIsLocal(t *testing.T) {
	terr := terrain.Flat(10, 10, 20, 0)
	fs := newTestSim(t, terr, flatGrassWeather())
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			fs.SetFuel(x, y, fuel.DryGrass, 0.6, 0.08)
		}
	}

	before := fs.TemperatureAt(9*20, 9*20)
	fs.ApplyHeat(0, 0, 900, 15)
	after := fs.TemperatureAt(9*20, 9*20)

	if math.Abs(after-before) > 1e-9 {
		t.Fatalf("apply_heat at origin perturbed a far corner cell: before=%v after=%v", before, after)
	}
}

// TestUphillSpreadFasterThanFlat exercises scenario S3: a cell with an
// upslope-aligned neighbor should compute a higher Rothermel spread
// rate than the same fuel/moisture/wind on flat terrain, now that
// terrain slope is wired into the per-cell spread-rate kernel via
// FieldSimulation.initSlopeField.
func TestUphillSpreadFasterThanFlat(t *testing.T) {
	setupCell := func(fs *FieldSimulation, x, y int) {
		g := fs.solver.g
		idx := g.idx(x, y)
		g.fuelID[idx] = fuel.DryGrass
		g.fuelMassKg[idx] = 0.6
		g.moisture[idx] = 0.08
		// A front to the cell's west (phi<0 at x-1, phi>0 at and east of
		// x) makes the gradient normal point in +x, i.e. toward the
		// upslope direction on the sloped terrain below.
		phi := make([]float32, g.width*g.height)
		for i := range phi {
			phi[i] = 10
		}
		phi[g.idx(x-1, y)] = -10
		fs.solver.ls.Initialize(phi)
	}

	flat := terrain.Flat(10, 10, 20, 0)
	fsFlat := newTestSim(t, flat, flatGrassWeather())
	setupCell(fsFlat, 5, 5)

	elevation := make([]float64, 10*10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			elevation[y*10+x] = float64(x) * 10 // steady upslope in +x
		}
	}
	slope := terrain.New(10, 10, 20, elevation)
	fsSlope := newTestSim(t, slope, flatGrassWeather())
	setupCell(fsSlope, 5, 5)

	rFlat := fsFlat.solver.cellSpreadRate(fsFlat.solver.ls.ReadPhi(), 5, 5)
	rSlope := fsSlope.solver.cellSpreadRate(fsSlope.solver.ls.ReadPhi(), 5, 5)

	if !(rSlope > rFlat) {
		t.Fatalf("expected upslope-aligned spread rate > flat rate, got slope=%v flat=%v", rSlope, rFlat)
	}
}

// TestMoistureBlocksSpotIgnition exercises scenario S6 at the driver
// level: an ember that has landed, is hot enough to ignite, and whose
// target cell is unburned must still fail to ignite a cell whose
// moisture exceeds the fuel's (capped) hard moisture gate. The ember is
// injected directly (rather than waiting on probabilistic generation)
// so the assertion is deterministic.
func TestMoistureBlocksSpotIgnition(t *testing.T) {
	terr := terrain.Flat(6, 6, 20, 0)
	fs := newTestSim(t, terr, flatGrassWeather())
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			// Wet sclerophyll forest has a high moisture-of-extinction;
			// push the requested moisture well above the 0.30 hard gate
			// used by ember.AttemptIgnition so it clears comfortably even
			// after the sub-grid noise/aspect adjustment SetFuel applies.
			fs.SetFuel(x, y, fuel.WetSclerophyllForest, 5, 0.9)
		}
	}

	landingX, landingY := 3, 3
	fs.embers = append(fs.embers, ember.Ember{
		ID: 1, Active: true, TemperatureC: 600,
		Position: units.Vec3{X: float64(landingX) * 20, Y: float64(landingY) * 20, Z: 0},
	})

	fs.attemptSpotIgnitions()

	if fs.IsBurned(float64(landingX)*20, float64(landingY)*20) {
		t.Fatalf("cell (%d,%d) ignited despite moisture above the hard gate", landingX, landingY)
	}
}

// TestWeatherPresetSwitchIsIdempotent checks ApplyPreset's documented
// contract: applying the same preset twice in a row only rewrites the
// preset pointer and prevailing wind, leaving the independently-driven
// temperature/humidity state untouched.
func TestWeatherPresetSwitchIsIdempotent(t *testing.T) {
	w := flatGrassWeather()
	preset := config.ResolveWeatherPreset(config.TemperateCoast)

	w.ApplyPreset(preset)
	w.Advance(60)
	tempAfterFirst, humAfterFirst := w.TemperatureC, w.HumidityPct

	w.ApplyPreset(preset)
	if w.TemperatureC != tempAfterFirst || w.HumidityPct != humAfterFirst {
		t.Fatalf("re-applying the same preset changed temperature/humidity: got (%v,%v) want (%v,%v)",
			w.TemperatureC, w.HumidityPct, tempAfterFirst, humAfterFirst)
	}
	if w.WindSpeedMS != preset.PrevailingWindMS || w.WindDirRad != preset.PrevailingWindRad {
		t.Fatalf("ApplyPreset did not set prevailing wind: got (%v,%v)", w.WindSpeedMS, w.WindDirRad)
	}
}

// TestFireFrontSanity exercises invariant 4: every extracted front
// vertex lies within the grid's world bounds and has a non-negative
// intensity.
func TestFireFrontSanity(t *testing.T) {
	terr := terrain.Flat(16, 16, 20, 0)
	fs := newTestSim(t, terr, flatGrassWeather())
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			fs.SetFuel(x, y, fuel.DryGrass, 0.6, 0.08)
		}
	}
	fs.ApplyHeat(8*20, 8*20, 900, 30)

	for i := 0; i < 10; i++ {
		fs.Update(1.0)
	}

	front := fs.FireFront()
	maxX := float64(16) * 20
	maxY := float64(16) * 20
	for _, v := range front.Vertices {
		if v.X < 0 || v.X > maxX || v.Y < 0 || v.Y > maxY {
			t.Fatalf("front vertex out of grid bounds: %+v", v)
		}
		if v.IntensityKW < 0 {
			t.Fatalf("front vertex has negative intensity: %+v", v)
		}
	}
}

// TestFireIntensityDrivesPlumeUpdraft checks spec §4.7: once the fire
// front carries intensity above the plume threshold, updateWindField
// wires real (non-nil) plumes into the wind field's change-gate and
// core-updraft state rather than the permanent nil of earlier builds.
func TestFireIntensityDrivesPlumeUpdraft(t *testing.T) {
	terr := terrain.Flat(16, 16, 20, 0)
	fs := newTestSim(t, terr, flatGrassWeather())
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			fs.SetFuel(x, y, fuel.DryGrass, 1.2, 0.06)
		}
	}
	fs.ApplyHeat(8*20, 8*20, 900, 40)

	for i := 0; i < 5; i++ {
		fs.Update(1.0)
	}

	plumes := fs.buildPlumes()
	if len(plumes) == 0 {
		t.Fatalf("expected a sustained burn to produce at least one plume source from the fire front")
	}
	if fs.windField.PlumeCount() == 0 {
		t.Fatalf("expected updateWindField to have recorded non-nil plume state on the wind field")
	}
}

// TestBurnedAreaMonotonicUnderSustainedIgnition checks that burned area
// never shrinks once fuel is alight and fuel remains available, since
// phi < 0 cells never revert to phi >= 0 in this engine.
func TestBurnedAreaMonotonicUnderSustainedIgnition(t *testing.T) {
	terr := terrain.Flat(24, 24, 20, 0)
	fs := newTestSim(t, terr, flatGrassWeather())
	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			fs.SetFuel(x, y, fuel.DryGrass, 0.6, 0.08)
		}
	}
	fs.ApplyHeat(12*20, 12*20, 900, 40)

	prev := fs.BurnedAreaM2()
	for i := 0; i < 20; i++ {
		fs.Update(1.0)
		cur := fs.BurnedAreaM2()
		if cur < prev {
			t.Fatalf("burned area shrank at step %d: %v -> %v", i, prev, cur)
		}
		prev = cur
	}
}

// TestFuelConsumedAccumulates exercises the zero-arg FuelConsumedKg
// query (spec §6): fuel consumption accumulates internally as
// StepCombustion burns mass, with no caller-supplied snapshot needed.
func TestFuelConsumedAccumulates(t *testing.T) {
	terr := terrain.Flat(12, 12, 20, 0)
	fs := newTestSim(t, terr, flatGrassWeather())
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			fs.SetFuel(x, y, fuel.DryGrass, 0.6, 0.08)
		}
	}
	if got := fs.FuelConsumedKg(); got != 0 {
		t.Fatalf("expected zero fuel consumed before any burn, got %v", got)
	}

	fs.ApplyHeat(6*20, 6*20, 900, 30)
	prev := 0.0
	for i := 0; i < 30; i++ {
		fs.Update(1.0)
		cur := fs.FuelConsumedKg()
		if cur < prev {
			t.Fatalf("fuel consumed decreased at step %d: %v -> %v", i, prev, cur)
		}
		prev = cur
	}
	if prev <= 0 {
		t.Fatalf("expected positive fuel consumption after sustained burn, got %v", prev)
	}
}

// TestSolverCapabilitySet checks that the public Solver() accessor
// exposes a working FieldSolver: dimensions match construction and the
// GPU/CPU back-end choice is reported consistently with ReadPhi's
// length.
func TestSolverCapabilitySet(t *testing.T) {
	terr := terrain.Flat(8, 8, 20, 0)
	fs := newTestSim(t, terr, flatGrassWeather())

	solver := fs.Solver()
	w, h := solver.Dimensions()
	if w != 8 || h != 8 {
		t.Fatalf("Dimensions() = (%d,%d), want (8,8)", w, h)
	}
	if got := len(solver.ReadLevelSet()); got != 64 {
		t.Fatalf("ReadLevelSet() length = %d, want 64", got)
	}
	if got := len(solver.ReadTemperature()); got != 64 {
		t.Fatalf("ReadTemperature() length = %d, want 64", got)
	}
}

// TestBatchQueriesMatchPointQueries checks spec §6: the batch query
// variants must agree with their single-point counterparts and share
// one consistent snapshot.
func TestBatchQueriesMatchPointQueries(t *testing.T) {
	terr := terrain.Flat(10, 10, 20, 0)
	fs := newTestSim(t, terr, flatGrassWeather())

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			fs.SetFuel(x, y, fuel.DryGrass, 0.6, 0.08)
		}
	}
	fs.ApplyHeat(100, 100, 650, 20)
	fs.Update(1.0)

	points := []Point{{X: 20, Y: 20}, {X: 100, Y: 100}, {X: 180, Y: 180}}
	temps := fs.TemperaturesAt(points)
	burns := fs.BurnStatesAt(points)
	if len(temps) != len(points) || len(burns) != len(points) {
		t.Fatalf("batch result length mismatch: temps=%d burns=%d want %d", len(temps), len(burns), len(points))
	}
	for i, p := range points {
		if got, want := temps[i], fs.TemperatureAt(p.X, p.Y); got != want {
			t.Fatalf("TemperaturesAt[%d] = %v, want %v (TemperatureAt)", i, got, want)
		}
		if got, want := burns[i], fs.IsBurned(p.X, p.Y); got != want {
			t.Fatalf("BurnStatesAt[%d] = %v, want %v (IsBurned)", i, got, want)
		}
	}
}

// TestReadTemperatureWholeField checks spec §6: ReadTemperature/
// ReadLevelSet return row-major whole-field snapshots sized to the
// grid, in Kelvin and metres respectively.
func TestReadTemperatureWholeField(t *testing.T) {
	terr := terrain.Flat(8, 8, 20, 0)
	fs := newTestSim(t, terr, flatGrassWeather())

	tempK := fs.ReadTemperature()
	phi := fs.ReadLevelSet()
	if len(tempK) != 64 || len(phi) != 64 {
		t.Fatalf("whole-field snapshot lengths = (%d,%d), want (64,64)", len(tempK), len(phi))
	}
	for _, k := range tempK {
		if k < 200 {
			t.Fatalf("ambient temperature %v K is implausibly low", k)
		}
	}
}
