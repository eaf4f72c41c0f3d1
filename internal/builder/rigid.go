package builder

import (
	"fmt"

	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"
)

// rigidRules fit rotation + translation from two pairs. The second
// destination is held on the circle around the first destination whose
// radius is the distance between the two sources, so the pair distance is
// preserved.
type rigidRules struct{}

func (rigidRules) needed() int { return 2 }

func (rigidRules) legalPath(committed []Pair, src geometry.Point2D) (legalpath.Path, error) {
	if len(committed) == 0 {
		return legalpath.Unconstrained{}, nil
	}
	first := committed[0]
	circle, err := legalpath.NewCircle(first.Dst, geometry.Distance(first.Src, src))
	if err != nil {
		return nil, fmt.Errorf("rigid second source coincides with the first: %w", err)
	}
	return circle, nil
}

func (rigidRules) fit(pairs []Pair) (transform.Transformation, error) {
	sd1, sd2 := pairs[0], pairs[1]
	theta := geometry.Angle(sd1.Src, sd2.Src) - geometry.Angle(sd1.Dst, sd2.Dst)

	// t = R(θ)·(-src1) + dst1, so that src1 lands on dst1.
	c := sd1.Dst.Sub(sd1.Src).Sub(sd1.Dst)
	t := c.Rotate(theta).Add(sd1.Dst)
	return transform.Rigid(theta, t), nil
}
