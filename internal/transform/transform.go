// Package transform represents 2D transformations: the identity, the
// projective family (translation, rigid, similarity, affine and general
// homographies stored as 3x3 homogeneous matrices) and ordered chains of
// arbitrary transformations.
package transform

import (
	"fmt"
	"strings"

	"shape-transformer/pkg/geometry"
)

// Transformation maps points of the plane. Implementations are immutable.
type Transformation interface {
	TransformPoint(p geometry.Point2D) geometry.Point2D
}

// Identity maps every point to itself.
type Identity struct{}

// TransformPoint returns p unchanged.
func (Identity) TransformPoint(p geometry.Point2D) geometry.Point2D {
	return p
}

// Matrix returns the 3x3 identity matrix.
func (Identity) Matrix() [3][3]float64 {
	return identityMatrix
}

func (Identity) String() string {
	return "identity"
}

// Composed applies its steps in order: the first step sees the input point.
type Composed struct {
	steps []Transformation
}

// NewComposed chains the transformations in application order.
func NewComposed(steps ...Transformation) Composed {
	return Composed{steps: append([]Transformation(nil), steps...)}
}

// TransformPoint feeds p through every step in order.
func (c Composed) TransformPoint(p geometry.Point2D) geometry.Point2D {
	for _, t := range c.steps {
		p = t.TransformPoint(p)
	}
	return p
}

// Steps returns a copy of the chain in application order.
func (c Composed) Steps() []Transformation {
	return append([]Transformation(nil), c.steps...)
}

func (c Composed) String() string {
	parts := make([]string, len(c.steps))
	for i, t := range c.steps {
		parts[i] = fmt.Sprint(t)
	}
	return "composed[" + strings.Join(parts, " then ") + "]"
}

// matrixer is implemented by transformations with a homogeneous matrix form.
type matrixer interface {
	Matrix() [3][3]float64
}

// Compose returns a transformation equivalent to applying second and then
// first:
//
//	Compose(t1, t2).TransformPoint(p) == t1.TransformPoint(t2.TransformPoint(p))
//
// Two matrix-representable operands are multiplied into a single Projective
// (t1's matrix times t2's). Anything else becomes a Composed chain; nested
// chains are flattened.
func Compose(first, second Transformation) Transformation {
	if _, ok := first.(Identity); ok {
		return second
	}
	if _, ok := second.(Identity); ok {
		return first
	}

	p1, ok1 := first.(Projective)
	p2, ok2 := second.(Projective)
	if ok1 && ok2 {
		return p1.Compose(p2)
	}

	var steps []Transformation
	steps = appendSteps(steps, second)
	steps = appendSteps(steps, first)
	return Composed{steps: steps}
}

func appendSteps(steps []Transformation, t Transformation) []Transformation {
	if c, ok := t.(Composed); ok {
		return append(steps, c.steps...)
	}
	return append(steps, t)
}

// Chain composes the transformations so that they are applied in the order
// given. Chain() is the identity.
func Chain(ts ...Transformation) Transformation {
	var out Transformation = Identity{}
	for _, t := range ts {
		out = Compose(t, out)
	}
	return out
}

// MatrixOf returns the homogeneous matrix of t when it has one.
func MatrixOf(t Transformation) ([3][3]float64, bool) {
	if m, ok := t.(matrixer); ok {
		return m.Matrix(), true
	}
	return [3][3]float64{}, false
}
