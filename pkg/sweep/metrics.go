package sweep

import (
	"fmt"
)

// Metrics are the scalar performance figures derived from a solved curve.
// All values come from the model curve itself, not from external
// measurement: Jsc by interpolation at V=0, Voc by the zero crossing of J,
// the maximum power point by scanning the power curve with parabolic
// refinement.
type Metrics struct {
	Voc        float64 `json:"voc"`        // Open-circuit voltage (V)
	Jsc        float64 `json:"jsc"`        // Short-circuit current density (mA/cm²)
	VMPP       float64 `json:"v_mpp"`      // Voltage at maximum power point (V)
	JMPP       float64 `json:"j_mpp"`      // Current density at maximum power point (mA/cm²)
	PMPP       float64 `json:"p_mpp"`      // Maximum power density (mW/cm²)
	FF         float64 `json:"ff"`         // Fill factor
	Efficiency float64 `json:"efficiency"` // PMPP / incident power
}

// Metrics derives the performance figures from the curve. incidentPower is
// the illumination power density in mW/cm² used for the efficiency figure.
func (c Curve) Metrics(incidentPower float64) (Metrics, error) {
	if len(c) < 3 {
		return Metrics{}, fmt.Errorf("curve needs at least 3 points, got %d", len(c))
	}
	if incidentPower <= 0 {
		return Metrics{}, fmt.Errorf("incident power must be positive, got %g", incidentPower)
	}

	jsc, err := c.shortCircuitCurrent()
	if err != nil {
		return Metrics{}, err
	}
	voc, err := c.openCircuitVoltage()
	if err != nil {
		return Metrics{}, err
	}
	vmpp, pmpp, err := c.maximumPower()
	if err != nil {
		return Metrics{}, err
	}

	return Metrics{
		Voc:        voc,
		Jsc:        jsc,
		VMPP:       vmpp,
		JMPP:       pmpp / vmpp,
		PMPP:       pmpp,
		FF:         pmpp / (voc * jsc),
		Efficiency: pmpp / incidentPower,
	}, nil
}

// shortCircuitCurrent interpolates J at V=0.
func (c Curve) shortCircuitCurrent() (float64, error) {
	for i := 0; i < len(c)-1; i++ {
		a, b := c[i], c[i+1]
		if a.V <= 0 && b.V >= 0 {
			if a.V == b.V {
				return a.J, nil
			}
			t := -a.V / (b.V - a.V)
			return a.J + t*(b.J-a.J), nil
		}
	}
	return 0, fmt.Errorf("curve does not cover V=0 (range [%g, %g])", c[0].V, c[len(c)-1].V)
}

// openCircuitVoltage interpolates the voltage where J crosses zero.
func (c Curve) openCircuitVoltage() (float64, error) {
	for i := 0; i < len(c)-1; i++ {
		a, b := c[i], c[i+1]
		if a.J > 0 && b.J <= 0 {
			if a.J == b.J {
				return a.V, nil
			}
			t := a.J / (a.J - b.J)
			return a.V + t*(b.V-a.V), nil
		}
	}
	return 0, fmt.Errorf("curve current never crosses zero (range [%g, %g])", c[0].V, c[len(c)-1].V)
}

// maximumPower finds the power-quadrant sample with the largest V·J and
// refines it with the parabola through its neighbors.
func (c Curve) maximumPower() (vmpp, pmpp float64, err error) {
	best := -1
	for i, op := range c {
		if op.V <= 0 || op.J <= 0 {
			continue
		}
		if best < 0 || op.Power() > c[best].Power() {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, fmt.Errorf("curve has no power-producing samples")
	}

	vmpp, pmpp = c[best].V, c[best].Power()
	if best == 0 || best == len(c)-1 {
		return vmpp, pmpp, nil
	}

	// Parabolic vertex through the three samples around the maximum.
	// The grid is uniform, so the equal-spacing vertex formula applies.
	p0, p1, p2 := c[best-1].Power(), pmpp, c[best+1].Power()
	denom := p0 - 2*p1 + p2
	if denom >= 0 {
		return vmpp, pmpp, nil
	}
	h := c[best+1].V - c[best].V
	delta := 0.5 * (p0 - p2) / denom
	if delta < -1 || delta > 1 {
		return vmpp, pmpp, nil
	}
	vmpp = c[best].V + delta*h
	pmpp = p1 - 0.125*(p0-p2)*(p0-p2)/denom
	return vmpp, pmpp, nil
}
