// Package solver builds and solves the small square linear systems used to
// fit transformation parameters.
package solver

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrSingular means the system has no unique solution. For point
	// fitting this signals coincident or collinear correspondences.
	ErrSingular = errors.New("solver: singular system")

	// ErrUnderdetermined means Solution was called with a number of
	// equations different from the number of unknowns.
	ErrUnderdetermined = errors.New("solver: equation count does not match unknowns")
)

// ConditionLimit is the largest condition number accepted before a system is
// reported as singular.
const ConditionLimit = 1e14

// Term is one coefficient of an equation, addressed by flat unknown index.
type Term struct {
	Index int
	Coef  float64
}

// T is shorthand for building a Term.
func T(index int, coef float64) Term {
	return Term{Index: index, Coef: coef}
}

// EquationSystem is a dense square system over nRows*nColumns unknowns,
// typically the entries of an nRows x nColumns parameter matrix.
type EquationSystem struct {
	nRows, nColumns int
	eqs             [][]float64
	b               []float64
}

// NewEquationSystem creates an empty system whose unknowns are the entries
// of an nRows x nColumns matrix.
func NewEquationSystem(nRows, nColumns int) *EquationSystem {
	return &EquationSystem{nRows: nRows, nColumns: nColumns}
}

// Unknowns returns the number of unknowns, which is also the number of
// equations Solution requires.
func (s *EquationSystem) Unknowns() int {
	return s.nRows * s.nColumns
}

// Len returns the number of equations added so far.
func (s *EquationSystem) Len() int {
	return len(s.eqs)
}

// Index maps the parameter matrix cell (i, j) to its flat unknown index.
func (s *EquationSystem) Index(i, j int) int {
	return i*s.nColumns + j
}

// AddEquation appends sum(coef * x[index]) = rhs. Terms repeating an index
// accumulate.
func (s *EquationSystem) AddEquation(terms []Term, rhs float64) error {
	row := make([]float64, s.Unknowns())
	for _, t := range terms {
		if t.Index < 0 || t.Index >= len(row) {
			return fmt.Errorf("solver: unknown index %d out of range [0, %d)", t.Index, len(row))
		}
		row[t.Index] += t.Coef
	}
	s.eqs = append(s.eqs, row)
	s.b = append(s.b, rhs)
	return nil
}

// Solution solves the system and returns the unknown vector.
func (s *EquationSystem) Solution() ([]float64, error) {
	n := s.Unknowns()
	if len(s.eqs) != n {
		return nil, fmt.Errorf("%w: have %d equations, need %d", ErrUnderdetermined, len(s.eqs), n)
	}

	data := make([]float64, 0, n*n)
	for _, row := range s.eqs {
		data = append(data, row...)
	}
	a := mat.NewDense(n, n, data)
	b := mat.NewVecDense(n, append([]float64(nil), s.b...))

	var lu mat.LU
	lu.Factorize(a)
	if cond := lu.Cond(); cond > ConditionLimit {
		return nil, fmt.Errorf("%w: condition number %g", ErrSingular, cond)
	}

	var x mat.VecDense
	if err := lu.SolveVecTo(&x, false, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}
