package builder

import (
	"fmt"
	"math"

	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/solver"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"
)

// projectiveRules fit a homography from four pairs. Points are normalized
// (centroid at the origin, mean distance √2) before solving and the result is
// mapped back, which keeps the 9x9 system well conditioned at pixel scale.
type projectiveRules struct{}

func (projectiveRules) needed() int { return 4 }

func (projectiveRules) legalPath([]Pair, geometry.Point2D) (legalpath.Path, error) {
	return legalpath.Unconstrained{}, nil
}

func (projectiveRules) fit(pairs []Pair) (transform.Transformation, error) {
	srcs := make([]geometry.Point2D, len(pairs))
	dsts := make([]geometry.Point2D, len(pairs))
	for i, sd := range pairs {
		srcs[i], dsts[i] = sd.Src, sd.Dst
	}
	if err := checkGeneralPosition("sources", srcs); err != nil {
		return nil, err
	}
	if err := checkGeneralPosition("destinations", dsts); err != nil {
		return nil, err
	}

	srcNorm, err := normalizer(srcs)
	if err != nil {
		return nil, err
	}
	dstNorm, err := normalizer(dsts)
	if err != nil {
		return nil, err
	}

	system := solver.NewEquationSystem(3, 3)
	idx := system.Index
	for i := range pairs {
		s := srcNorm.TransformPoint(srcs[i])
		d := dstNorm.TransformPoint(dsts[i])
		// h[r]·(x, y, 1) - d_r * h[2]·(x, y, 1) = 0 for r in {0 (u), 1 (v)}.
		for r, value := range [2]float64{d.X, d.Y} {
			_ = system.AddEquation([]solver.Term{
				solver.T(idx(r, 0), s.X),
				solver.T(idx(r, 1), s.Y),
				solver.T(idx(r, 2), 1),
				solver.T(idx(2, 0), -value*s.X),
				solver.T(idx(2, 1), -value*s.Y),
				solver.T(idx(2, 2), -value),
			}, 0)
		}
	}
	if err := system.AddEquation([]solver.Term{solver.T(idx(2, 2), 1)}, 1); err != nil {
		return nil, err
	}

	x, err := system.Solution()
	if err != nil {
		return nil, fmt.Errorf("%w: projective: %w", ErrDegenerate, err)
	}
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = x[idx(i, j)]
		}
	}

	dstDenorm, err := dstNorm.Inverse()
	if err != nil {
		return nil, fmt.Errorf("%w: projective: %w", ErrDegenerate, err)
	}
	h := dstDenorm.Compose(transform.NewProjective(m)).Compose(srcNorm)
	return rescale(h), nil
}

// collinearTol is the largest triangle area, relative to the squared
// longest side, that still counts as a straight line.
const collinearTol = 1e-9

// checkGeneralPosition rejects point sets where any three points are
// collinear. Such a quadruple has no unique homography, and after
// normalization roundoff hides the singularity from the solver.
func checkGeneralPosition(role string, pts []geometry.Point2D) error {
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				a, b, c := pts[i], pts[j], pts[k]
				span := math.Max(geometry.Distance(a, b), math.Max(geometry.Distance(a, c), geometry.Distance(b, c)))
				if geometry.Collinear(a, b, c, collinearTol*span*span) {
					return fmt.Errorf("%w: projective: %s %v, %v, %v are collinear", ErrDegenerate, role, a, b, c)
				}
			}
		}
	}
	return nil
}

// normalizer returns the similarity that moves the points' centroid to the
// origin and scales their mean distance from it to √2.
func normalizer(points []geometry.Point2D) (transform.Projective, error) {
	c := geometry.Centroid(points)
	var mean float64
	for _, p := range points {
		mean += geometry.Distance(c, p)
	}
	mean /= float64(len(points))
	if mean == 0 {
		return transform.Projective{}, fmt.Errorf("%w: projective: all points coincide", ErrDegenerate)
	}
	s := math.Sqrt2 / mean
	return transform.Similarity(s, 0, -s*c.X, -s*c.Y), nil
}

// rescale divides h by its bottom-right entry when that entry is nonzero,
// so fitted homographies read like the other kinds' matrices.
func rescale(h transform.Projective) transform.Projective {
	m := h.Matrix()
	if m[2][2] == 0 {
		return transform.NewProjective(m)
	}
	w := m[2][2]
	for i := range m {
		for j := range m[i] {
			m[i][j] /= w
		}
	}
	return transform.NewProjective(m)
}
