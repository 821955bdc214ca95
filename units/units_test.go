package units

import "testing"

func TestCelsiusKelvinRoundTrip(t *testing.T) {
	c := Celsius(21.5)
	if got := c.Kelvin().Celsius(); got != c {
		t.Fatalf("round-trip Celsius->Kelvin->Celsius = %v, want %v", got, c)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 1); got != 1 {
		t.Fatalf("Clamp(5,0,1) = %v, want 1", got)
	}
	if got := Clamp(-5, 0, 1); got != 0 {
		t.Fatalf("Clamp(-5,0,1) = %v, want 0", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Fatalf("Clamp(0.5,0,1) = %v, want 0.5", got)
	}
}

func TestVec3FieldsAddressable(t *testing.T) {
	v := Vec3{X: 1, Y: 2, Z: 3}
	if v.X != 1 || v.Y != 2 || v.Z != 3 {
		t.Fatalf("Vec3 literal fields = %+v, want (1,2,3)", v)
	}
}
