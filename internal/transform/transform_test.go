package transform

import (
	"errors"
	"math"
	"testing"

	"shape-transformer/pkg/geometry"
)

const eps = 1e-9

func near(a, b geometry.Point2D) bool {
	return a.Equal(b, eps)
}

var samplePoints = []geometry.Point2D{
	{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -3.5, Y: 2.25}, {X: 10, Y: -7},
}

func TestTranslation(t *testing.T) {
	tr := Translation(3, -2)
	got := tr.TransformPoint(geometry.NewPoint2D(1, 1))
	if want := geometry.NewPoint2D(4, -1); !near(got, want) {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
	if tr.Kind() != KindTranslation {
		t.Errorf("Kind() = %v, want translation", tr.Kind())
	}
}

func TestRigidRotatesThenTranslates(t *testing.T) {
	r := Rigid(math.Pi/2, geometry.NewPoint2D(1, 2))
	got := r.TransformPoint(geometry.NewPoint2D(1, 0))
	if want := geometry.NewPoint2D(1, 3); !near(got, want) {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
}

func TestSimilarityMatrix(t *testing.T) {
	s := Similarity(2, 1, 5, 6)
	want := [3][3]float64{{2, -1, 5}, {1, 2, 6}, {0, 0, 1}}
	if s.Matrix() != want {
		t.Errorf("Matrix() = %v, want %v", s.Matrix(), want)
	}
}

func TestAffineMatrix(t *testing.T) {
	a := Affine(1, 2, 3, 4, 5, 6)
	want := [3][3]float64{{1, 2, 3}, {4, 5, 6}, {0, 0, 1}}
	if a.Matrix() != want {
		t.Errorf("Matrix() = %v, want %v", a.Matrix(), want)
	}
	got := a.TransformPoint(geometry.NewPoint2D(1, 1))
	if want := geometry.NewPoint2D(6, 15); !near(got, want) {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}
}

func TestProjectivePerspectiveDivide(t *testing.T) {
	p := NewProjective([3][3]float64{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}})
	got := p.TransformPoint(geometry.NewPoint2D(3, 4))
	if want := geometry.NewPoint2D(3, 4); !near(got, want) {
		t.Errorf("TransformPoint = %v, want %v", got, want)
	}

	p = NewProjective([3][3]float64{{1, 0, 0}, {0, 1, 0}, {1, 0, 0}})
	got = p.TransformPoint(geometry.NewPoint2D(0, 1))
	if !math.IsNaN(got.X) && !math.IsInf(got.X, 0) {
		t.Errorf("point at infinity should be non-finite, got %v", got)
	}
}

func TestComposeOrder(t *testing.T) {
	t1 := Rigid(0.3, geometry.NewPoint2D(1, -1))
	t2 := Affine(1.5, 0.2, -4, 0.1, 0.7, 2)
	composed := Compose(t1, t2)
	if _, ok := composed.(Projective); !ok {
		t.Fatalf("Compose of projectives = %T, want Projective", composed)
	}
	for _, p := range samplePoints {
		got := composed.TransformPoint(p)
		want := t1.TransformPoint(t2.TransformPoint(p))
		if !near(got, want) {
			t.Errorf("Compose(t1,t2)(%v) = %v, want %v", p, got, want)
		}
	}
	if k := composed.(Projective).Kind(); k != KindAffine {
		t.Errorf("composed kind = %v, want affine", k)
	}
}

// shift is a transformation without a matrix form.
type shift struct{ dx float64 }

func (s shift) TransformPoint(p geometry.Point2D) geometry.Point2D {
	return geometry.NewPoint2D(p.X+s.dx, p.Y*2)
}

func TestComposeGenericChain(t *testing.T) {
	t1 := Translation(1, 1)
	t2 := shift{dx: 3}
	composed := Compose(t1, t2)
	c, ok := composed.(Composed)
	if !ok {
		t.Fatalf("Compose with non-matrix operand = %T, want Composed", composed)
	}
	if len(c.Steps()) != 2 {
		t.Fatalf("len(Steps()) = %d, want 2", len(c.Steps()))
	}
	for _, p := range samplePoints {
		got := composed.TransformPoint(p)
		want := t1.TransformPoint(t2.TransformPoint(p))
		if !near(got, want) {
			t.Errorf("Compose(t1,t2)(%v) = %v, want %v", p, got, want)
		}
	}

	// Composing again flattens the chain and keeps the order contract.
	t0 := Rigid(1, geometry.Point2D{})
	outer := Compose(t0, composed)
	if n := len(outer.(Composed).Steps()); n != 3 {
		t.Errorf("flattened chain has %d steps, want 3", n)
	}
	for _, p := range samplePoints {
		got := outer.TransformPoint(p)
		want := t0.TransformPoint(t1.TransformPoint(t2.TransformPoint(p)))
		if !near(got, want) {
			t.Errorf("Compose(t0, chain)(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestIdentityIsUnit(t *testing.T) {
	tests := []Transformation{
		Translation(2, 3),
		Similarity(0.5, 0.5, 1, 1),
		shift{dx: -1},
		NewComposed(Translation(1, 0), shift{dx: 2}),
	}
	for _, tr := range tests {
		left := Compose(Identity{}, tr)
		right := Compose(tr, Identity{})
		for _, p := range samplePoints {
			want := tr.TransformPoint(p)
			if got := left.TransformPoint(p); !near(got, want) {
				t.Errorf("Compose(Identity, %v)(%v) = %v, want %v", tr, p, got, want)
			}
			if got := right.TransformPoint(p); !near(got, want) {
				t.Errorf("Compose(%v, Identity)(%v) = %v, want %v", tr, p, got, want)
			}
		}
	}
}

func TestChainAppliesInOrder(t *testing.T) {
	a := Translation(1, 0)
	b := Rigid(math.Pi/2, geometry.Point2D{})
	c := shift{dx: 1}
	chain := Chain(a, b, c)
	for _, p := range samplePoints {
		want := c.TransformPoint(b.TransformPoint(a.TransformPoint(p)))
		if got := chain.TransformPoint(p); !near(got, want) {
			t.Errorf("Chain(a,b,c)(%v) = %v, want %v", p, got, want)
		}
	}
	if _, ok := Chain().(Identity); !ok {
		t.Errorf("Chain() = %T, want Identity", Chain())
	}
}

func TestInverse(t *testing.T) {
	p := NewProjective([3][3]float64{{1.2, 0.1, 3}, {-0.2, 0.9, 1}, {0.001, 0.002, 1}})
	inv, err := p.Inverse()
	if err != nil {
		t.Fatalf("Inverse() error: %v", err)
	}
	for _, pt := range samplePoints {
		if got := inv.TransformPoint(p.TransformPoint(pt)); !got.Equal(pt, 1e-6) {
			t.Errorf("inverse round trip of %v = %v", pt, got)
		}
	}

	_, err = Affine(1, 2, 0, 2, 4, 0).Inverse()
	if !errors.Is(err, ErrNotInvertible) {
		t.Errorf("Inverse() of singular matrix error = %v, want ErrNotInvertible", err)
	}
}

func TestDescribe(t *testing.T) {
	d := Similarity(0, 2, 3, 4).Describe()
	if math.Abs(d.Rotation-math.Pi/2) > eps {
		t.Errorf("Rotation = %v, want π/2", d.Rotation)
	}
	if math.Abs(d.ScaleX-2) > eps || math.Abs(d.ScaleY-2) > eps {
		t.Errorf("Scale = (%v, %v), want (2, 2)", d.ScaleX, d.ScaleY)
	}
	if d.Translation != geometry.NewPoint2D(3, 4) {
		t.Errorf("Translation = %v, want (3,4)", d.Translation)
	}
	if d.Perspective {
		t.Error("Perspective = true for a similarity")
	}
}
