package crownfire

import "testing"

func TestVanWagnerCriticalIntensity(t *testing.T) {
	i0 := CriticalIntensity(8, 100)
	if i0 < 3300 || i0 > 3900 {
		t.Fatalf("I0 = %v, want in [3300,3900]", i0)
	}
	r0 := CriticalROS(0.15)
	if r0 < 19.9 || r0 > 20.1 {
		t.Fatalf("R0 = %v, want 20 m/min", r0)
	}
}

func TestCruzCrownROS(t *testing.T) {
	rMS := CrownROS(40, 8)
	rMMin := rMS * 60
	if rMMin < 220 || rMMin > 240 {
		t.Fatalf("R_crown = %v m/min, want in [220,240]", rMMin)
	}
}
