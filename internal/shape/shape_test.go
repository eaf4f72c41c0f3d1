package shape

import (
	"errors"
	"testing"

	"shape-transformer/internal/builder"
	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"
)

func TestLabel(t *testing.T) {
	tests := map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"}
	for i, want := range tests {
		if got := Label(i); got != want {
			t.Errorf("Label(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestNewRectangleOrder(t *testing.T) {
	r := NewRectangle(geometry.NewRect(0, 0, 10, 10))
	want := []Corner{
		{"A", geometry.NewPoint2D(0, 0)},
		{"B", geometry.NewPoint2D(10, 0)},
		{"C", geometry.NewPoint2D(10, 10)},
		{"D", geometry.NewPoint2D(0, 10)},
	}
	got := r.Corners()
	if len(got) != len(want) {
		t.Fatalf("got %d corners, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("corner %d = %v, want %v", i, got[i], want[i])
		}
	}
	if ring := r.Ring(); len(ring) != 5 || ring[4] != ring[0] {
		t.Errorf("Ring() = %v, want closed ring of 5", ring)
	}
	if m := r.Mean(); m != geometry.NewPoint2D(5, 5) {
		t.Errorf("Mean() = %v, want (5,5)", m)
	}
}

func TestNewPolygonTooFewPoints(t *testing.T) {
	_, err := NewPolygon([]geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 1}})
	if !errors.Is(err, ErrTooFewPoints) {
		t.Errorf("error = %v, want ErrTooFewPoints", err)
	}
}

func TestManyCornersGetDistinctLabels(t *testing.T) {
	pts := geometry.GenerateCirclePoints(0, 0, 10, 30)
	p, err := NewPolygon(pts)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, c := range p.Corners() {
		if seen[c.Label] {
			t.Fatalf("duplicate label %q", c.Label)
		}
		seen[c.Label] = true
	}
}

func TestCornerAt(t *testing.T) {
	r := NewRectangle(geometry.NewRect(0, 0, 10, 10))
	if i, ok := r.CornerAt(geometry.NewPoint2D(9, 1), 3); !ok || i != 1 {
		t.Errorf("CornerAt((9,1)) = %d, %v; want 1, true", i, ok)
	}
	if _, ok := r.CornerAt(geometry.NewPoint2D(5, 5), 3); ok {
		t.Error("CornerAt(center) should miss")
	}
	if !r.Contains(geometry.NewPoint2D(5, 5)) {
		t.Error("Contains(center) = false")
	}
}

func TestTranslateRectangleByDraggingCorner(t *testing.T) {
	rect := NewRectangle(geometry.NewRect(0, 0, 10, 10))
	b := builder.MustNew(builder.KindTranslation)
	b, err := b.MovePoint(rect.Corner(0).Point, geometry.NewPoint2D(5, 5))
	if err != nil {
		t.Fatal(err)
	}
	tr, err := b.Transformation()
	if err != nil {
		t.Fatal(err)
	}
	moved, err := rect.Transform(tr)
	if err != nil {
		t.Fatal(err)
	}
	want := []geometry.Point2D{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 15, Y: 15}, {X: 5, Y: 15}}
	for i, p := range moved.Points() {
		if !p.Equal(want[i], 1e-12) {
			t.Errorf("corner %s = %v, want %v", moved.Corner(i).Label, p, want[i])
		}
	}
	if rect.Corner(0).Point != geometry.NewPoint2D(0, 0) {
		t.Error("Transform modified the receiver")
	}
}

func TestTransformRejectsPointsAtInfinity(t *testing.T) {
	rect := NewRectangle(geometry.NewRect(0, 0, 10, 10))
	h := transform.NewProjective([3][3]float64{{1, 0, 0}, {0, 1, 0}, {1, 0, 0}})
	if _, err := rect.Transform(h); !errors.Is(err, ErrNonFinite) {
		t.Errorf("error = %v, want ErrNonFinite", err)
	}
}
