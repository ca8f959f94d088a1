// Package sweep evaluates a cell's J-V characteristic over a voltage grid
// and derives the scalar performance metrics from the solved curve.
package sweep

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"solarcell/pkg/cell"
	"solarcell/pkg/solver"
)

// Grid describes an evenly spaced, ascending voltage grid.
type Grid struct {
	Start  float64 // First voltage (V)
	Stop   float64 // Last voltage (V)
	Points int     // Number of samples, at least 2
}

// Validate rejects degenerate grids.
func (g Grid) Validate() error {
	if math.IsNaN(g.Start) || math.IsInf(g.Start, 0) ||
		math.IsNaN(g.Stop) || math.IsInf(g.Stop, 0) {
		return fmt.Errorf("grid bounds must be finite, got [%g, %g]", g.Start, g.Stop)
	}
	if g.Stop <= g.Start {
		return fmt.Errorf("grid stop %g must exceed start %g", g.Stop, g.Start)
	}
	if g.Points < 2 {
		return fmt.Errorf("grid needs at least 2 points, got %d", g.Points)
	}
	return nil
}

// Values returns the grid's voltage samples in ascending order.
func (g Grid) Values() []float64 {
	vals := make([]float64, g.Points)
	step := (g.Stop - g.Start) / float64(g.Points-1)
	for i := range vals {
		vals[i] = g.Start + float64(i)*step
	}
	vals[g.Points-1] = g.Stop
	return vals
}

// Runner sweeps a voltage grid through the solver. Samples are independent,
// so they are solved across a bounded worker pool; results are written by
// index, which keeps the curve voltage-ascending regardless of completion
// order.
type Runner struct {
	solver  *solver.Solver
	workers int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithSolver replaces the default solver.
func WithSolver(s *solver.Solver) RunnerOption {
	return func(r *Runner) { r.solver = s }
}

// WithWorkers bounds the number of concurrent solves. Values below 1 fall
// back to the default.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) {
		if n >= 1 {
			r.workers = n
		}
	}
}

// NewRunner creates a Runner with the default solver and one worker per CPU.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		solver:  solver.New(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run solves every grid sample for the given cell. The first failed sample
// cancels the remaining work and is reported with its voltage.
func (r *Runner) Run(ctx context.Context, p cell.Parameters, g Grid) (Curve, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cell parameters: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid grid: %w", err)
	}

	values := g.Values()
	curve := make(Curve, len(values))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.workers)

	for i, v := range values {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := r.solver.Current(v, p)
			if err != nil {
				return fmt.Errorf("solving at V=%g: %w", v, err)
			}
			curve[i] = OperatingPoint{V: v, J: res.J}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return curve, nil
}
