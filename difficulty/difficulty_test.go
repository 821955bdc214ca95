package difficulty

import (
	"testing"

	"github.com/ausfire/firecore/config"
)

func TestMoistureClampedToUnitRange(t *testing.T) {
	s := New(config.Easy)
	if got := s.Moisture(2.0); got > 1 {
		t.Fatalf("Moisture(2.0) = %v, want <= 1", got)
	}
	if got := s.Moisture(-1.0); got < 0 {
		t.Fatalf("Moisture(-1.0) = %v, want >= 0", got)
	}
}

func TestSuppressionEffectivenessCapped(t *testing.T) {
	s := New(config.Hard)
	if got := s.SuppressionEffectiveness(10.0); got > 1 {
		t.Fatalf("SuppressionEffectiveness(10.0) = %v, want <= 1", got)
	}
}

func TestWindScalesLinearly(t *testing.T) {
	s := New(config.Normal)
	if got := s.Wind(0); got != 0 {
		t.Fatalf("Wind(0) = %v, want 0", got)
	}
}
