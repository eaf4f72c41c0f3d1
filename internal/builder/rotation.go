package builder

import (
	"fmt"

	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"
)

// rotationRules fit a rotation about a fixed pivot from one pair. The
// destination stays on the circle through the source around the pivot.
type rotationRules struct {
	pivot geometry.Point2D
}

func (rotationRules) needed() int { return 1 }

func (r rotationRules) legalPath(_ []Pair, src geometry.Point2D) (legalpath.Path, error) {
	circle, err := legalpath.NewCircle(r.pivot, geometry.Distance(r.pivot, src))
	if err != nil {
		return nil, fmt.Errorf("rotation source is the pivot: %w", err)
	}
	return circle, nil
}

func (r rotationRules) fit(pairs []Pair) (transform.Transformation, error) {
	theta := geometry.Angle(r.pivot, pairs[0].Src) - geometry.Angle(r.pivot, pairs[0].Dst)
	// Rotate about the pivot: x -> R(x - c) + c.
	t := r.pivot.Sub(r.pivot.Rotate(theta))
	return transform.Rigid(theta, t), nil
}
