// Package mna wraps github.com/edp1096/sparse with the small real-valued
// modified-nodal-analysis surface the equivalent-circuit solver needs:
// accumulate conductance stamps and right-hand-side currents, factor, solve.
package mna

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// System is an n×n real MNA system with 1-based indexing. Row/column 0 is
// the ground reference and is never stamped.
type System struct {
	Size     int
	matrix   *sparse.Matrix
	rhs      []float64
	solution []float64
}

// NewSystem creates a system of the given size.
func NewSystem(size int) (*System, error) {
	config := &sparse.Configuration{
		Real:           true,
		Translate:      true,
		Expandable:     true,
		ModifiedNodal:  true,
		TiesMultiplier: 5,
		PrinterWidth:   140,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %w", err)
	}

	// Every element must exist before the first factorization: Factor
	// reorders the matrix internally, and GetElement on a reordered matrix
	// requires translation. Creating the full pattern up front keeps
	// clear-and-restamp loops valid across factorizations.
	for i := 1; i <= size; i++ {
		for j := 1; j <= size; j++ {
			mat.GetElement(int64(i), int64(j))
		}
	}

	return &System{
		Size:     size,
		matrix:   mat,
		rhs:      make([]float64, size+1), // 1-based
		solution: make([]float64, size+1),
	}, nil
}

// AddElement accumulates value into entry (i, j).
func (s *System) AddElement(i, j int, value float64) {
	if i <= 0 || j <= 0 || i > s.Size || j > s.Size {
		panic(fmt.Sprintf("mna: element index out of bounds (i=%d, j=%d, size=%d)", i, j, s.Size))
	}
	s.matrix.GetElement(int64(i), int64(j)).Real += value
}

// AddRHS accumulates value into right-hand-side entry i.
func (s *System) AddRHS(i int, value float64) {
	if i <= 0 || i > s.Size {
		panic(fmt.Sprintf("mna: rhs index out of bounds (i=%d, size=%d)", i, s.Size))
	}
	s.rhs[i] += value
}

// LoadGmin adds gmin to every diagonal entry. Used to condition the system
// when a junction is fully cut off.
func (s *System) LoadGmin(gmin float64) {
	if gmin == 0 {
		return
	}
	for i := 1; i <= s.Size; i++ {
		if diag := s.matrix.Diags[i]; diag != nil {
			diag.Real += gmin
		}
	}
}

// Clear zeroes the matrix and right-hand side for restamping.
func (s *System) Clear() {
	s.matrix.Clear()
	for i := range s.rhs {
		s.rhs[i] = 0
	}
}

// Solve factors the stamped system and solves it against the accumulated
// right-hand side.
func (s *System) Solve() error {
	if err := s.matrix.Factor(); err != nil {
		return fmt.Errorf("matrix factorization failed: %w", err)
	}

	solution, err := s.matrix.Solve(s.rhs)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %w", err)
	}
	s.solution = solution

	return nil
}

// Solution returns the last solve's solution vector, 1-based.
func (s *System) Solution() []float64 {
	return s.solution
}

// Destroy releases the underlying sparse matrix.
func (s *System) Destroy() {
	if s.matrix != nil {
		s.matrix.Destroy()
	}
}
