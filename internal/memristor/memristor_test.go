package memristor

import (
	"math"
	"testing"
)

func TestLinearIonDriftBounds(t *testing.T) {
	m := NewLinearIonDrift(DefaultROn, DefaultROff)

	gOff, gOn := m.ConductanceBounds()

	if gOff >= gOn {
		t.Fatalf("bounds out of order: gOff=%v, gOn=%v", gOff, gOn)
	}
	if math.Abs(gOn-1.0/100.0) > 1e-12 {
		t.Errorf("gOn = %v, want %v", gOn, 1.0/100.0)
	}
	if math.Abs(gOff-1.0/16000.0) > 1e-12 {
		t.Errorf("gOff = %v, want %v", gOff, 1.0/16000.0)
	}
}

func TestLinearIonDriftCurrent(t *testing.T) {
	m := NewLinearIonDrift(100, 16000)

	tests := []struct {
		g, v     float64
		expected float64
	}{
		{0.01, 1.0, 0.01},
		{0.01, -1.0, -0.01},
		{0.005, 0.5, 0.0025},
		{0.01, 0, 0},
	}

	for _, tt := range tests {
		if got := m.Current(tt.g, tt.v); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Current(%v, %v) = %v, want %v", tt.g, tt.v, got, tt.expected)
		}
	}
}

func TestLinearIonDriftMode(t *testing.T) {
	m := NewLinearIonDrift(100, 16000)

	if m.Mode() != Ideal {
		t.Errorf("Mode = %v, want Ideal", m.Mode())
	}
	if m.Name() != "LinearIonDrift" {
		t.Errorf("Name = %q", m.Name())
	}
}

func TestStanfordPKUSmallSignal(t *testing.T) {
	m := NewStanfordPKU(100, 16000, DefaultV0)

	// sinh(x) ~ x for small x, so the slope at tiny voltages is g.
	g := 0.003
	v := 1e-5
	got := m.Current(g, v)
	want := g * v

	if math.Abs(got-want)/want > 1e-6 {
		t.Errorf("small-signal current = %v, want ~%v", got, want)
	}
}

func TestStanfordPKUSuperlinear(t *testing.T) {
	m := NewStanfordPKU(100, 16000, 0.25)

	g := 0.01
	v := 0.5 // past the knee

	single := m.Current(g, v)
	double := m.Current(g, 2*v)

	if double <= 2*single {
		t.Errorf("current not superlinear: I(2v)=%v, 2*I(v)=%v", double, 2*single)
	}
}

func TestStanfordPKUOddSymmetry(t *testing.T) {
	m := NewStanfordPKU(100, 16000, 0.25)

	g := 0.007
	v := 0.4

	if got := m.Current(g, v) + m.Current(g, -v); math.Abs(got) > 1e-15 {
		t.Errorf("I(v) + I(-v) = %v, want 0", got)
	}
}

func TestStanfordPKULargeKneeRecoversIdeal(t *testing.T) {
	ideal := NewLinearIonDrift(100, 16000)
	nearIdeal := NewStanfordPKU(100, 16000, 1e6)

	g := 0.008
	v := 1.0

	want := ideal.Current(g, v)
	got := nearIdeal.Current(g, v)

	if math.Abs(got-want)/want > 1e-9 {
		t.Errorf("large-knee current = %v, ideal = %v", got, want)
	}
}

func TestStanfordPKUMode(t *testing.T) {
	m := NewStanfordPKU(100, 16000, 0.25)

	if m.Mode() != NonLinear {
		t.Errorf("Mode = %v, want NonLinear", m.Mode())
	}
	if m.Name() != "StanfordPKU" {
		t.Errorf("Name = %q", m.Name())
	}
}

func TestModeString(t *testing.T) {
	if Ideal.String() != "ideal" {
		t.Errorf("Ideal.String() = %q", Ideal.String())
	}
	if NonLinear.String() != "non-linear" {
		t.Errorf("NonLinear.String() = %q", NonLinear.String())
	}
}

func TestInvalidResistances(t *testing.T) {
	tests := []struct {
		name     string
		rOn, rOff float64
	}{
		{"ZeroOn", 0, 16000},
		{"NegativeOn", -100, 16000},
		{"OffBelowOn", 16000, 100},
		{"OffEqualsOn", 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("NewLinearIonDrift(%v, %v) should panic", tt.rOn, tt.rOff)
				}
			}()
			NewLinearIonDrift(tt.rOn, tt.rOff)
		})
	}
}

func TestInvalidKneeVoltage(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewStanfordPKU with zero knee should panic")
		}
	}()
	NewStanfordPKU(100, 16000, 0)
}
