// Package circuit solves the single-diode cell as the two-node equivalent
// circuit it models: a photocurrent source, diode, and shunt resistance from
// the junction node to ground, the series resistance from the junction to the
// terminal, and an ideal voltage source at the terminal. Each Newton
// iteration stamps the diode's linearized companion model into a sparse MNA
// system and re-solves, the way a circuit simulator computes an operating
// point.
//
// The scalar root-find in package solver is the primary path; this
// formulation cross-validates it and scales to richer equivalent circuits.
package circuit

import (
	"fmt"
	"math"

	"solarcell/pkg/cell"
	"solarcell/pkg/mna"
)

// maxDiodeArg caps the diode exponent during iteration. Early iterates can
// place the junction far into forward bias; the clamp keeps the companion
// model finite while leaving the converged solution untouched, since the
// model's junction voltages stay well below clamp·N·Vt.
const maxDiodeArg = 40.0

// EquivalentCircuit computes operating points of one cell via MNA.
type EquivalentCircuit struct {
	params cell.Parameters

	convergence struct {
		maxIter int
		abstol  float64
		reltol  float64
		gmin    float64
	}
}

// New creates an equivalent circuit for the given cell parameters.
func New(p cell.Parameters) (*EquivalentCircuit, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cell parameters: %w", err)
	}

	c := &EquivalentCircuit{params: p}
	c.convergence.maxIter = 100
	c.convergence.abstol = 1e-9
	c.convergence.reltol = 1e-9
	c.convergence.gmin = 1e-12

	return c, nil
}

// OperatingPoint solves the circuit at terminal voltage v and returns the
// output current density (mA/cm²).
func (c *EquivalentCircuit) OperatingPoint(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("voltage must be finite, got %g", v)
	}

	// With Rs = 0 the junction sits directly on the terminal node.
	size, junction, branch := 3, 2, 3
	if c.params.Rs == 0 {
		size, junction, branch = 2, 1, 2
	}

	sys, err := mna.NewSystem(size)
	if err != nil {
		return 0, fmt.Errorf("building MNA system: %w", err)
	}
	defer sys.Destroy()

	vj := 0.0 // junction linearization point
	var oldSolution []float64

	for iter := 0; iter < c.convergence.maxIter; iter++ {
		if iter > 0 {
			vj = oldSolution[junction]
		}

		sys.Clear()
		c.stamp(sys, junction, branch, v, vj)
		sys.LoadGmin(c.convergence.gmin)

		if err := sys.Solve(); err != nil {
			return 0, fmt.Errorf("matrix solve error: %w", err)
		}

		solution := sys.Solution()
		if iter > 0 && c.checkConvergence(oldSolution, solution) {
			return solution[branch], nil
		}

		if oldSolution == nil {
			oldSolution = make([]float64, len(solution))
		}
		copy(oldSolution, solution)
	}

	return 0, fmt.Errorf("failed to converge in %d iterations at V=%g", c.convergence.maxIter, v)
}

// stamp loads the linearized circuit around junction voltage vj.
func (c *EquivalentCircuit) stamp(sys *mna.System, junction, branch int, v, vj float64) {
	p := c.params
	nvt := p.NVt()

	arg := vj / nvt
	if arg > maxDiodeArg {
		arg = maxDiodeArg
	}
	evj := math.Exp(arg)
	id := p.J0 * (evj - 1)
	gd := p.J0 * evj / nvt

	// Series resistance between terminal (node 1) and junction.
	if p.Rs > 0 {
		gs := 1 / p.Rs
		sys.AddElement(1, 1, gs)
		sys.AddElement(junction, junction, gs)
		sys.AddElement(1, junction, -gs)
		sys.AddElement(junction, 1, -gs)
	}

	// Diode companion model and shunt at the junction, photocurrent into it.
	sys.AddElement(junction, junction, gd+1/p.Rsh)
	sys.AddRHS(junction, p.Jsc-(id-gd*vj))

	// Ideal voltage source at the terminal.
	sys.AddElement(1, branch, 1)
	sys.AddElement(branch, 1, 1)
	sys.AddRHS(branch, v)
}

func (c *EquivalentCircuit) checkConvergence(oldSol, newSol []float64) bool {
	if len(oldSol) != len(newSol) {
		return false
	}
	for i := 1; i < len(newSol); i++ {
		diff := math.Abs(newSol[i] - oldSol[i])
		if diff > c.convergence.abstol &&
			diff > c.convergence.reltol*math.Abs(newSol[i]) {
			return false
		}
	}
	return true
}
