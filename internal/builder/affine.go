package builder

import (
	"fmt"

	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/solver"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"
)

// affineRules fit a general affine map from three pairs.
type affineRules struct{}

func (affineRules) needed() int { return 3 }

func (affineRules) legalPath([]Pair, geometry.Point2D) (legalpath.Path, error) {
	return legalpath.Unconstrained{}, nil
}

func (affineRules) fit(pairs []Pair) (transform.Transformation, error) {
	system := solver.NewEquationSystem(3, 3)
	addPointEquations(system, pairs)
	idx := system.Index
	for j, rhs := range [3]float64{0, 0, 1} {
		if err := system.AddEquation([]solver.Term{solver.T(idx(2, j), 1)}, rhs); err != nil {
			return nil, err
		}
	}

	x, err := system.Solution()
	if err != nil {
		return nil, fmt.Errorf("%w: affine: %w", ErrDegenerate, err)
	}
	return transform.Affine(
		x[idx(0, 0)], x[idx(0, 1)], x[idx(0, 2)],
		x[idx(1, 0)], x[idx(1, 1)], x[idx(1, 2)],
	), nil
}
