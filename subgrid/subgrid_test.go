package subgrid

import "testing"

func TestNoiseAtStaysInUnitRange(t *testing.T) {
	n := NewNoise(7)
	for _, x := range []float64{-500, -13, 0, 42, 1000} {
		for _, y := range []float64{-500, -13, 0, 42, 1000} {
			v := n.At(x, y, 80)
			if v < -1 || v > 1 {
				t.Fatalf("At(%v,%v) = %v, want in [-1,1]", x, y, v)
			}
		}
	}
}

func TestFuelLoadNeverNegative(t *testing.T) {
	if got := FuelLoad(1.0, 0.9, -5); got != 0 {
		t.Fatalf("FuelLoad with large negative noise = %v, want 0", got)
	}
}

func TestMoistureClampedToUnitRange(t *testing.T) {
	if got := Moisture(0.9, 0.9, 5, 0); got > 1 {
		t.Fatalf("Moisture() = %v, want <= 1", got)
	}
	if got := Moisture(0.1, 0.9, -5, 0); got < 0 {
		t.Fatalf("Moisture() = %v, want >= 0", got)
	}
}
