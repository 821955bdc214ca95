package levelset

import "testing"

func buildPhi(width, height int) []float32 {
	phi := make([]float32, width*height)
	cx, cy := width/2, height/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float32(x-cx), float32(y-cy)
			phi[y*width+x] = dx*dx + dy*dy - 25
		}
	}
	return phi
}

func TestCPUGPUDeterminism(t *testing.T) {
	const w, h = 40, 40
	cpu := newCPUSolver(w, h, 10)
	gpu, err := newWorkgroupSolver(w, h, 10)
	if err != nil {
		t.Fatalf("newWorkgroupSolver: %v", err)
	}

	phi := buildPhi(w, h)
	cpu.Initialize(phi)
	gpu.Initialize(phi)

	rates := make([]float32, w*h)
	for i := range rates {
		rates[i] = 0.02
	}
	cpu.UpdateSpreadRates(rates)
	gpu.UpdateSpreadRates(rates)

	for step := 0; step < 5; step++ {
		cpu.Step(1.0)
		gpu.Step(1.0)
	}

	cpuPhi := cpu.ReadPhi()
	gpuPhi := gpu.ReadPhi()
	for i := range cpuPhi {
		if cpuPhi[i] != gpuPhi[i] {
			t.Fatalf("cell %d: cpu=%v gpu=%v not bit-exact", i, cpuPhi[i], gpuPhi[i])
		}
	}
}

func TestMonotonicityUnderNonNegativeRate(t *testing.T) {
	const w, h = 20, 20
	s := newCPUSolver(w, h, 10)
	phi := buildPhi(w, h)
	s.Initialize(phi)
	rates := make([]float32, w*h)
	for i := range rates {
		rates[i] = 0.05
	}
	s.UpdateSpreadRates(rates)

	before := s.ReadPhi()
	s.Step(1.0)
	after := s.ReadPhi()

	for i := range before {
		if after[i] > before[i] {
			t.Fatalf("cell %d grew from %v to %v under non-negative rate", i, before[i], after[i])
		}
	}
}
