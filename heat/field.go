package heat

import (
	"math"
	"runtime"
	"sync"

	"github.com/ausfire/firecore/fuel"
	"github.com/ausfire/firecore/units"
)

// Cell is the minimal per-cell view the field-based regime needs. It is
// intentionally raw scalars rather than an opaque element object, per
// the design notes' dynamic-dispatch-hotspot constraint.
type Cell struct {
	TemperatureC float64
	FuelMassKg   float64
	FuelID       fuel.ID
	ElevationM   float64
	WindU, WindV float64
}

// FieldTransfer computes the new temperature field for one step by
// summing contributions from every cell within the early-out radius of
// each source cell. It parallelizes across row-chunks sized by
// runtime.GOMAXPROCS, the same row-chunk concurrency shape as the
// teacher's Calculations combinator (run.go), writing into a separate
// output buffer so workers never race on a shared cell.
func FieldTransfer(width, height int, cellSize float64, cells []Cell, dtSeconds float64) []float64 {
	n := width * height
	out := make([]float64, n)
	copy(out, temperatures(cells))

	radiusCells := int(math.Ceil(earlyOutMaxDistanceM / cellSize))

	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}
	rowsPerWorker := (height + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * rowsPerWorker
		y1 := y0 + rowsPerWorker
		if y1 > height {
			y1 = height
		}
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				for x := 0; x < width; x++ {
					idx := y*width + x
					tgtCell := cells[idx]
					f := fuel.Get(tgtCell.FuelID)
					if !f.Burnable {
						continue
					}
					tgt := Target{
						Position:       units.Vec3{X: float64(x) * cellSize, Y: float64(y) * cellSize, Z: tgtCell.ElevationM},
						TemperatureC:   tgtCell.TemperatureC,
						SAV:            f.SAV,
						AbsorptionBase: f.AbsorptionBase,
					}
					var gained float64
					for sy := y - radiusCells; sy <= y+radiusCells; sy++ {
						if sy < 0 || sy >= height {
							continue
						}
						for sx := x - radiusCells; sx <= x+radiusCells; sx++ {
							if sx < 0 || sx >= width {
								continue
							}
							if sx == x && sy == y {
								continue
							}
							sidx := sy*width + sx
							srcCell := cells[sidx]
							sf := fuel.Get(srcCell.FuelID)
							src := Source{
								Position:        units.Vec3{X: float64(sx) * cellSize, Y: float64(sy) * cellSize, Z: srcCell.ElevationM},
								TemperatureC:    srcCell.TemperatureC,
								FuelMassKg:      srcCell.FuelMassKg,
								FlameAreaCoeff:  sf.FlameAreaCoefficient,
								FuelRemainingKg: srcCell.FuelMassKg,
							}
							wind := Wind{U: srcCell.WindU, V: srcCell.WindV}
							dz := tgtCell.ElevationM - srcCell.ElevationM
							horiz := math.Hypot(float64(sx-x)*cellSize, float64(sy-y)*cellSize)
							slopeAngle := math.Atan2(math.Abs(dz), math.Max(1e-6, horiz))
							q := Transfer(src, tgt, wind, dz, slopeAngle, dz > 0, dtSeconds)
							thermalMass := f.SpecificHeat * math.Max(tgtCell.FuelMassKg, 1e-4) / 1000 // kJ/K
							gained += q / thermalMass
						}
					}
					out[idx] = tgtCell.TemperatureC + gained
				}
			}
		}(y0, y1)
	}
	wg.Wait()
	return out
}

func temperatures(cells []Cell) []float64 {
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i] = c.TemperatureC
	}
	return out
}
