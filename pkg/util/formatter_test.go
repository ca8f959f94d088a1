package util

import "testing"

func TestFormatValueFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value float64
		unit  string
		want  string
	}{
		{1.008312, "V", "1.008 V"},
		{0.0305, "A", "30.500 mA"},
		{3.05e-6, "A", "3.050 uA"},
		{2.5e-9, "s", "2.500 ns"},
		{1e-12, "A", "1.000 pA"},
		{0, "V", "0.000 V"},
		{1e-15, "A", "1.000e-15 A"},
	}

	for _, tt := range tests {
		if got := FormatValueFactor(tt.value, tt.unit); got != tt.want {
			t.Errorf("FormatValueFactor(%g, %q) = %q, want %q", tt.value, tt.unit, got, tt.want)
		}
	}
}

func TestDomainFormatters(t *testing.T) {
	t.Parallel()

	if got := FormatVoltage(1.008312); got != "1.008 V" {
		t.Errorf("FormatVoltage = %q", got)
	}
	if got := FormatCurrentDensity(30.52638788); got != "30.53 mA/cm²" {
		t.Errorf("FormatCurrentDensity = %q", got)
	}
	if got := FormatPowerDensity(24.444); got != "24.444 mW/cm²" {
		t.Errorf("FormatPowerDensity = %q", got)
	}
	if got := FormatPercent(0.883105); got != "88.31%" {
		t.Errorf("FormatPercent = %q", got)
	}
}
