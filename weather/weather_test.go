package weather

import (
	"math"
	"testing"
)

// TestFFDIAlwaysFiniteAndNonNegative exercises spec invariant 3 across a
// spread of extreme inputs, including a zero drought factor that would
// otherwise send the log term to -Inf.
func TestFFDIAlwaysFiniteAndNonNegative(t *testing.T) {
	cases := []*State{
		New(45, 2, 30, 0, 10, 14, 40, Neutral),
		New(-10, 100, 0, 0, 0, 0, 1, LaNina),
		New(50, 0, 60, math.Pi, 10, 23.9, 365, ElNino),
	}
	for i, s := range cases {
		ffdi := s.CalculateFFDI()
		if math.IsNaN(ffdi) || math.IsInf(ffdi, 0) {
			t.Fatalf("case %d: FFDI not finite: %v", i, ffdi)
		}
		if ffdi < 0 {
			t.Fatalf("case %d: FFDI negative: %v", i, ffdi)
		}
	}
}

func TestRatingOfBandsAreOrdered(t *testing.T) {
	vals := []float64{0, 6, 13, 30, 60, 120, 200}
	want := []Rating{Low, Moderate, High, VeryHigh, Severe, Extreme, Catastrophic}
	for i, v := range vals {
		if got := RatingOf(v); got != want[i] {
			t.Fatalf("RatingOf(%v) = %v, want %v", v, got, want[i])
		}
	}
}

func TestNewPanicsOnInvalidDayOfYear(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on out-of-range day-of-year")
		}
	}()
	New(20, 50, 5, 0, 3, 12, 400, Neutral)
}

func TestAdvanceFrontEasesMonotonicallyTowardTarget(t *testing.T) {
	s := New(20, 50, 2, 0, 3, 12, 100, Neutral)
	s.BeginTransition(35, 20, 12, 100)

	prevDist := math.Abs(s.TemperatureC - 35)
	for i := 0; i < 10; i++ {
		s.AdvanceFront(10)
		dist := math.Abs(s.TemperatureC - 35)
		if dist > prevDist+1e-9 {
			t.Fatalf("step %d: front eased away from target, dist %v -> %v", i, prevDist, dist)
		}
		prevDist = dist
	}
	if s.FrontProgress != 1 {
		t.Fatalf("FrontProgress after 100s over a 100s transition = %v, want 1", s.FrontProgress)
	}
}
