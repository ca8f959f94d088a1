// Package solver computes the output current density of a single-diode
// photovoltaic cell at a given terminal voltage. The model is the implicit
// equation
//
//	J = Jsc − J0·(exp((V + J·Rs)/(N·Vt)) − 1) − (V + J·Rs)/Rsh
//
// solved as a root-find on
//
//	f(J) = J − Jsc + J0·(exp((V + J·Rs)/(N·Vt)) − 1) + (V + J·Rs)/Rsh
//
// by Newton-Raphson with an analytic derivative. f is strictly increasing in
// J (f' ≥ 1), so the iteration keeps a sign-change bracket as a safeguard:
// an iterate that leaves the bracket is replaced by the bracket midpoint.
// Undamped Newton 2-cycles for voltages past the open-circuit point where the
// exponential dominates; the safeguard restores convergence there without
// changing the converged root.
//
// Each solve is a pure function of (V, Parameters): local state only,
// deterministic, no side effects.
package solver

import (
	"errors"
	"fmt"
	"math"

	"solarcell/pkg/cell"
)

const (
	// DefaultTolerance is the absolute step tolerance |J(k+1) − J(k)|.
	DefaultTolerance = 1e-10

	// DefaultMaxIterations caps the Newton iteration per solve.
	DefaultMaxIterations = 100

	// maxExpArg bounds the exponential argument. math.Exp overflows near
	// 709.78; anything this large is far outside the diode's operating
	// range and is reported instead of propagated as +Inf.
	maxExpArg = 700.0
)

var (
	// ErrNoConvergence reports that the step tolerance was not met within
	// the iteration cap. The accompanying Result still carries the last
	// iterate and the iteration count.
	ErrNoConvergence = errors.New("did not converge")

	// ErrOverflow reports that the diode exponential would overflow.
	ErrOverflow = errors.New("exponential overflow")
)

// Result is the outcome of one solve.
type Result struct {
	J          float64 // Current density (mA/cm²), last iterate if not converged
	Iterations int     // Newton iterations used
	Converged  bool
}

// Solver solves the implicit diode equation at a fixed tolerance and
// iteration cap. The zero value is not usable; use New.
type Solver struct {
	tolerance float64
	maxIter   int
}

// Option configures a Solver.
type Option func(*Solver)

// WithTolerance sets the absolute step tolerance.
func WithTolerance(tol float64) Option {
	return func(s *Solver) { s.tolerance = tol }
}

// WithMaxIterations sets the iteration cap.
func WithMaxIterations(n int) Option {
	return func(s *Solver) { s.maxIter = n }
}

// New creates a Solver with the default tolerance and iteration cap.
func New(opts ...Option) *Solver {
	s := &Solver{
		tolerance: DefaultTolerance,
		maxIter:   DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current solves for the output current density at terminal voltage v.
func (s *Solver) Current(v float64, p cell.Parameters) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid cell parameters: %w", err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Result{}, fmt.Errorf("voltage must be finite, got %g", v)
	}

	// Near short circuit the photocurrent dominates, which puts Jsc in the
	// basin of attraction for the whole operating range.
	j := p.Jsc

	// Sign-change bracket on J, tightened as iterates are evaluated.
	lo, hi := math.Inf(-1), math.Inf(1)

	for iter := 1; iter <= s.maxIter; iter++ {
		f, df, err := evaluate(v, j, p)
		if err != nil {
			return Result{J: j, Iterations: iter}, err
		}
		if f > 0 {
			hi = j
		} else {
			lo = j
		}

		next := j - f/df

		// Test the raw Newton step first: near the root it shrinks below
		// one ULP and rounds onto the bracket end just stored above, which
		// must read as convergence, not as an escape.
		if math.Abs(next-j) < s.tolerance {
			return Result{J: next, Iterations: iter, Converged: true}, nil
		}
		if (next <= lo || next >= hi) && !math.IsInf(lo, 0) && !math.IsInf(hi, 0) {
			// Newton escaped the known bracket; bisect instead.
			next = 0.5 * (lo + hi)
		}
		j = next
	}

	return Result{J: j, Iterations: s.maxIter},
		fmt.Errorf("at V=%g after %d iterations: %w", v, s.maxIter, ErrNoConvergence)
}

// Current solves with the default tolerance and iteration cap.
func Current(v float64, p cell.Parameters) (Result, error) {
	return New().Current(v, p)
}

// evaluate returns f(j) and f'(j) at terminal voltage v.
func evaluate(v, j float64, p cell.Parameters) (f, df float64, err error) {
	nvt := p.NVt()
	vj := v + j*p.Rs // junction voltage
	arg := vj / nvt
	if arg > maxExpArg {
		return 0, 0, fmt.Errorf("diode exponent %g at V=%g, J=%g: %w", arg, v, j, ErrOverflow)
	}

	evj := math.Exp(arg)
	f = j - p.Jsc + p.J0*(evj-1) + vj/p.Rsh
	df = 1 + (p.J0*p.Rs/nvt)*evj + p.Rs/p.Rsh
	return f, df, nil
}
