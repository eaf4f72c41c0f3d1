package builder

import (
	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"
)

// translationRules fit a pure shift from a single pair.
type translationRules struct{}

func (translationRules) needed() int { return 1 }

func (translationRules) legalPath([]Pair, geometry.Point2D) (legalpath.Path, error) {
	return legalpath.Unconstrained{}, nil
}

func (translationRules) fit(pairs []Pair) (transform.Transformation, error) {
	shift := pairs[0].Dst.Sub(pairs[0].Src)
	return transform.Translation(shift.X, shift.Y), nil
}
