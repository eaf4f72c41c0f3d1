package builder

import (
	"fmt"

	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/solver"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"
)

// similarityRules fit [[a,-b,tx],[b,a,ty],[0,0,1]] from two pairs.
type similarityRules struct{}

func (similarityRules) needed() int { return 2 }

func (similarityRules) legalPath([]Pair, geometry.Point2D) (legalpath.Path, error) {
	return legalpath.Unconstrained{}, nil
}

func (similarityRules) fit(pairs []Pair) (transform.Transformation, error) {
	system := solver.NewEquationSystem(3, 3)
	addPointEquations(system, pairs)
	idx := system.Index
	constraints := []struct {
		terms []solver.Term
		rhs   float64
	}{
		{[]solver.Term{solver.T(idx(0, 0), 1), solver.T(idx(1, 1), -1)}, 0},
		{[]solver.Term{solver.T(idx(0, 1), 1), solver.T(idx(1, 0), 1)}, 0},
		{[]solver.Term{solver.T(idx(2, 0), 1)}, 0},
		{[]solver.Term{solver.T(idx(2, 1), 1)}, 0},
		{[]solver.Term{solver.T(idx(2, 2), 1)}, 1},
	}
	for _, c := range constraints {
		if err := system.AddEquation(c.terms, c.rhs); err != nil {
			return nil, err
		}
	}

	x, err := system.Solution()
	if err != nil {
		return nil, fmt.Errorf("%w: similarity: %w", ErrDegenerate, err)
	}
	return transform.Similarity(x[idx(0, 0)], x[idx(1, 0)], x[idx(0, 2)], x[idx(1, 2)]), nil
}

// addPointEquations adds, per pair, the rows
//
//	m[i][0]*src.X + m[i][1]*src.Y + m[i][2] = dst_i   for i in {0 (x), 1 (y)}
//
// over the unknown 3x3 matrix m.
func addPointEquations(system *solver.EquationSystem, pairs []Pair) {
	for _, sd := range pairs {
		for i, value := range [2]float64{sd.Dst.X, sd.Dst.Y} {
			// Indices are in range by construction.
			_ = system.AddEquation([]solver.Term{
				solver.T(system.Index(i, 0), sd.Src.X),
				solver.T(system.Index(i, 1), sd.Src.Y),
				solver.T(system.Index(i, 2), 1),
			}, value)
		}
	}
}
