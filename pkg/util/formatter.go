package util

import (
	"fmt"
	"math"
)

// FormatValueFactor renders value with an SI prefix picked by magnitude.
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case absValue >= 1 || absValue == 0:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	case absValue >= 1e-9:
		return fmt.Sprintf("%.3f n%s", value*1e9, unit)
	case absValue >= 1e-12:
		return fmt.Sprintf("%.3f p%s", value*1e12, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FormatVoltage renders a voltage in volts with three decimals.
func FormatVoltage(v float64) string {
	return fmt.Sprintf("%.3f V", v)
}

// FormatCurrentDensity renders a current density in mA/cm².
func FormatCurrentDensity(j float64) string {
	return fmt.Sprintf("%.2f mA/cm²", j)
}

// FormatPowerDensity renders a power density in mW/cm².
func FormatPowerDensity(p float64) string {
	return fmt.Sprintf("%.3f mW/cm²", p)
}

// FormatPercent renders a fraction as a percentage with two decimals.
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.2f%%", fraction*100)
}
