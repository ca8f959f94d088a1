// Package cell defines the single-diode equivalent-circuit parameters of a
// photovoltaic cell. A Parameters value is immutable data: it has no identity
// and no lifecycle, it is validated once and passed by value to the solver
// and sweep layers.
package cell

import (
	"fmt"

	"solarcell/internal/consts"
)

// Parameters holds the single-diode model parameters of one cell.
// Current densities are in mA/cm², resistances in Ω·cm², voltages in V.
type Parameters struct {
	Jsc float64 `json:"jsc" yaml:"jsc"` // Short-circuit current density (mA/cm²)
	J0  float64 `json:"j0" yaml:"j0"`   // Reverse saturation current density (mA/cm²)
	N   float64 `json:"n" yaml:"n"`     // Ideality factor
	Vt  float64 `json:"vt" yaml:"vt"`   // Thermal voltage (V)
	Rs  float64 `json:"rs" yaml:"rs"`   // Series resistance (Ω·cm²)
	Rsh float64 `json:"rsh" yaml:"rsh"` // Shunt resistance (Ω·cm²)
}

// ReferenceGaAs returns the reference GaAs p-i-n cell parameter set.
func ReferenceGaAs() Parameters {
	return Parameters{
		Jsc: 30.52638788,
		J0:  1e-12,
		N:   1.2,
		Vt:  0.02585,
		Rs:  0.001,
		Rsh: 10000,
	}
}

// Validate rejects parameter sets the diode equation is not defined for.
// Rs may be zero (ideal series path); Vt, N, Rsh, and J0 must be strictly
// positive, Jsc non-negative.
func (p Parameters) Validate() error {
	if p.Vt <= 0 {
		return fmt.Errorf("thermal voltage must be positive, got %g", p.Vt)
	}
	if p.N <= 0 {
		return fmt.Errorf("ideality factor must be positive, got %g", p.N)
	}
	if p.Rsh <= 0 {
		return fmt.Errorf("shunt resistance must be positive, got %g", p.Rsh)
	}
	if p.Rs < 0 {
		return fmt.Errorf("series resistance must not be negative, got %g", p.Rs)
	}
	if p.J0 <= 0 {
		return fmt.Errorf("saturation current density must be positive, got %g", p.J0)
	}
	if p.Jsc < 0 {
		return fmt.Errorf("short-circuit current density must not be negative, got %g", p.Jsc)
	}
	return nil
}

// NVt returns the product N·Vt, the denominator of the exponential argument.
func (p Parameters) NVt() float64 {
	return p.N * p.Vt
}

// ThermalVoltage returns kT/q for the given temperature in Kelvin.
// Non-positive temperatures fall back to 300.15 K (27 degC).
func ThermalVoltage(temp float64) float64 {
	if temp <= 0 {
		temp = 27 + consts.KELVIN
	}
	return consts.BOLTZMANN * temp / consts.CHARGE
}
