package transform

import (
	"errors"
	"fmt"
	"math"

	"shape-transformer/pkg/geometry"

	"gonum.org/v1/gonum/mat"
)

// Kind tags the most specific family a projective matrix belongs to.
// Kinds are ordered from most to least constrained.
type Kind int

const (
	KindTranslation Kind = iota
	KindRigid
	KindSimilarity
	KindAffine
	KindProjective
)

func (k Kind) String() string {
	switch k {
	case KindTranslation:
		return "translation"
	case KindRigid:
		return "rigid"
	case KindSimilarity:
		return "similarity"
	case KindAffine:
		return "affine"
	case KindProjective:
		return "projective"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ErrNotInvertible is returned by Inverse for a singular matrix.
var ErrNotInvertible = errors.New("transform: matrix is not invertible")

var identityMatrix = [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Projective is a homography acting on homogeneous coordinates (x, y, 1)
// followed by perspective division.
type Projective struct {
	m    [3][3]float64
	kind Kind
}

// NewProjective wraps an arbitrary 3x3 matrix (row-major, acting on column
// vectors).
func NewProjective(m [3][3]float64) Projective {
	return Projective{m: m, kind: KindProjective}
}

// Translation shifts every point by (x, y).
func Translation(x, y float64) Projective {
	return Projective{
		m: [3][3]float64{
			{1, 0, x},
			{0, 1, y},
			{0, 0, 1},
		},
		kind: KindTranslation,
	}
}

// Rigid rotates by theta radians about the origin and then translates by t.
func Rigid(theta float64, t geometry.Point2D) Projective {
	sin, cos := math.Sincos(theta)
	return Projective{
		m: [3][3]float64{
			{cos, -sin, t.X},
			{sin, cos, t.Y},
			{0, 0, 1},
		},
		kind: KindRigid,
	}
}

// Similarity is the conformal map [[a,-b,tx],[b,a,ty],[0,0,1]]: uniform
// scale sqrt(a²+b²), rotation atan2(b, a), translation (tx, ty).
func Similarity(a, b, tx, ty float64) Projective {
	return Projective{
		m: [3][3]float64{
			{a, -b, tx},
			{b, a, ty},
			{0, 0, 1},
		},
		kind: KindSimilarity,
	}
}

// Affine is [[a00,a01,a02],[a10,a11,a12],[0,0,1]].
func Affine(a00, a01, a02, a10, a11, a12 float64) Projective {
	return Projective{
		m: [3][3]float64{
			{a00, a01, a02},
			{a10, a11, a12},
			{0, 0, 1},
		},
		kind: KindAffine,
	}
}

// Kind returns the family the transformation was constructed as.
func (p Projective) Kind() Kind {
	return p.kind
}

// Matrix returns a copy of the homogeneous matrix.
func (p Projective) Matrix() [3][3]float64 {
	return p.m
}

// TransformPoint lifts pt to (x, y, 1), multiplies and divides by w. A zero
// w (a point mapped to infinity) yields non-finite coordinates.
func (p Projective) TransformPoint(pt geometry.Point2D) geometry.Point2D {
	m := &p.m
	x := m[0][0]*pt.X + m[0][1]*pt.Y + m[0][2]
	y := m[1][0]*pt.X + m[1][1]*pt.Y + m[1][2]
	w := m[2][0]*pt.X + m[2][1]*pt.Y + m[2][2]
	return geometry.Point2D{X: x / w, Y: y / w}
}

// Compose returns p∘other: other is applied first. The result keeps the
// least constrained kind of the two operands.
func (p Projective) Compose(other Projective) Projective {
	var prod mat.Dense
	prod.Mul(p.dense(), other.dense())
	kind := p.kind
	if other.kind > kind {
		kind = other.kind
	}
	return Projective{m: fromDense(&prod), kind: kind}
}

// Inverse returns the inverse homography.
func (p Projective) Inverse() (Projective, error) {
	var inv mat.Dense
	if err := inv.Inverse(p.dense()); err != nil {
		return Projective{}, fmt.Errorf("%w: %v", ErrNotInvertible, err)
	}
	m := fromDense(&inv)
	if m[2][2] != 0 {
		scale := 1 / m[2][2]
		for i := range m {
			for j := range m[i] {
				m[i][j] *= scale
			}
		}
	}
	return Projective{m: m, kind: p.kind}, nil
}

func (p Projective) String() string {
	m := p.m
	return fmt.Sprintf("%s[[%.6g %.6g %.6g] [%.6g %.6g %.6g] [%.6g %.6g %.6g]]", p.kind,
		m[0][0], m[0][1], m[0][2],
		m[1][0], m[1][1], m[1][2],
		m[2][0], m[2][1], m[2][2])
}

func (p Projective) dense() *mat.Dense {
	data := make([]float64, 0, 9)
	for _, row := range p.m {
		data = append(data, row[:]...)
	}
	return mat.NewDense(3, 3, data)
}

func fromDense(d *mat.Dense) [3][3]float64 {
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = d.At(i, j)
		}
	}
	return m
}

// Decomposition summarizes the linear part of a transformation for display.
type Decomposition struct {
	Kind        Kind
	Translation geometry.Point2D
	Rotation    float64 // radians
	ScaleX      float64
	ScaleY      float64
	Perspective bool
}

// Describe decomposes p's matrix. Rotation and scales come from the columns
// of the upper-left 2x2 block after normalizing by m[2][2].
func (p Projective) Describe() Decomposition {
	m := p.m
	w := m[2][2]
	if w == 0 {
		w = 1
	}
	a, b := m[0][0]/w, m[1][0]/w
	c, d := m[0][1]/w, m[1][1]/w
	return Decomposition{
		Kind:        p.kind,
		Translation: geometry.NewPoint2D(m[0][2]/w, m[1][2]/w),
		Rotation:    math.Atan2(b, a),
		ScaleX:      math.Hypot(a, b),
		ScaleY:      math.Hypot(c, d),
		Perspective: m[2][0] != 0 || m[2][1] != 0,
	}
}

func (d Decomposition) String() string {
	s := fmt.Sprintf("%s: translate (%.4g, %.4g), rotate %.4g°, scale (%.4g, %.4g)",
		d.Kind, d.Translation.X, d.Translation.Y, d.Rotation*180/math.Pi, d.ScaleX, d.ScaleY)
	if d.Perspective {
		s += ", perspective"
	}
	return s
}
