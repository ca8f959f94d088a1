package cell

import (
	"math"
	"testing"
)

func TestReferenceGaAs(t *testing.T) {
	t.Parallel()

	p := ReferenceGaAs()
	if err := p.Validate(); err != nil {
		t.Fatalf("reference parameters failed validation: %v", err)
	}
	if p.Jsc != 30.52638788 {
		t.Errorf("expected Jsc 30.52638788, got %g", p.Jsc)
	}
	if p.Vt != 0.02585 {
		t.Errorf("expected Vt 0.02585, got %g", p.Vt)
	}
}

func TestParametersValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Parameters)
		wantErr bool
	}{
		{"reference set is valid", func(p *Parameters) {}, false},
		{"zero series resistance is valid", func(p *Parameters) { p.Rs = 0 }, false},
		{"zero thermal voltage", func(p *Parameters) { p.Vt = 0 }, true},
		{"negative thermal voltage", func(p *Parameters) { p.Vt = -0.025 }, true},
		{"zero ideality factor", func(p *Parameters) { p.N = 0 }, true},
		{"zero shunt resistance", func(p *Parameters) { p.Rsh = 0 }, true},
		{"negative shunt resistance", func(p *Parameters) { p.Rsh = -1 }, true},
		{"negative series resistance", func(p *Parameters) { p.Rs = -0.001 }, true},
		{"zero saturation current", func(p *Parameters) { p.J0 = 0 }, true},
		{"negative short-circuit current", func(p *Parameters) { p.Jsc = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := ReferenceGaAs()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestNVt(t *testing.T) {
	t.Parallel()

	p := ReferenceGaAs()
	want := 1.2 * 0.02585
	if got := p.NVt(); math.Abs(got-want) > 1e-15 {
		t.Errorf("expected NVt %g, got %g", want, got)
	}
}

func TestThermalVoltage(t *testing.T) {
	t.Parallel()

	// kT/q at 300.15 K is about 25.86 mV.
	vt := ThermalVoltage(300.15)
	if vt < 0.0258 || vt > 0.0259 {
		t.Errorf("expected thermal voltage near 25.86 mV at 300.15 K, got %g", vt)
	}

	// Non-positive temperature falls back to 300.15 K.
	if got := ThermalVoltage(0); got != vt {
		t.Errorf("expected fallback to 300.15 K value %g, got %g", vt, got)
	}
}
