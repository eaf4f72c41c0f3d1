package geometry

import (
	"math"
	"testing"
)

func TestSizeAndDistance(t *testing.T) {
	if got := NewPoint2D(3, 4).Size(); got != 5 {
		t.Errorf("Size() = %v, want 5", got)
	}
	if got := Distance(NewPoint2D(1, 1), NewPoint2D(4, 5)); got != 5 {
		t.Errorf("Distance() = %v, want 5", got)
	}
	if got := NewPoint2D(4, 5).Distance(NewPoint2D(1, 1)); got != 5 {
		t.Errorf("Point2D.Distance() = %v, want 5", got)
	}
}

func TestAngle(t *testing.T) {
	origin := NewPoint2D(0, 0)
	tests := []struct {
		name string
		p2   Point2D
		want float64
	}{
		{"up", NewPoint2D(0, 1), 0},
		{"right", NewPoint2D(1, 0), math.Pi / 2},
		{"down", NewPoint2D(0, -1), math.Pi},
		{"left", NewPoint2D(-1, 0), 3 * math.Pi / 2},
		{"up-right", NewPoint2D(1, 1), math.Pi / 4},
		{"up-left", NewPoint2D(-1, 1), 7 * math.Pi / 4},
		{"down-left", NewPoint2D(-1, -1), 5 * math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Angle(origin, tt.p2); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Angle(origin, %v) = %v, want %v", tt.p2, got, tt.want)
			}
		})
	}
}

func TestAngleMatchesRotation(t *testing.T) {
	// Rotating a vector by theta lowers its bearing by theta.
	v := NewPoint2D(2, 1)
	theta := 0.7
	before := Angle(Point2D{}, v)
	after := Angle(Point2D{}, v.Rotate(theta))
	diff := math.Mod(before-after+2*math.Pi, 2*math.Pi)
	if math.Abs(diff-theta) > 1e-9 {
		t.Errorf("bearing difference = %v, want %v", diff, theta)
	}
}

func TestRectCorners(t *testing.T) {
	r := RectFromCorners(NewPoint2D(10, 10), NewPoint2D(0, 0))
	want := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	got := r.Corners()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("corner %d = %v, want %v", i, got[i], want[i])
		}
	}
	if r.Empty() {
		t.Error("Empty() = true for 10x10 rect")
	}
	if !NewRect(0, 0, 0, 5).Empty() {
		t.Error("Empty() = false for zero-width rect")
	}
}

func TestCentroidAndBoundingBox(t *testing.T) {
	pts := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if c := Centroid(pts); c != NewPoint2D(5, 5) {
		t.Errorf("Centroid() = %v, want (5,5)", c)
	}
	if bb := BoundingBox(pts); bb != NewRect(0, 0, 10, 10) {
		t.Errorf("BoundingBox() = %v", bb)
	}
	if c := Centroid(nil); c != (Point2D{}) {
		t.Errorf("Centroid(nil) = %v, want zero", c)
	}
}

func TestPolygonHelpers(t *testing.T) {
	square := []Point2D{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !PointInPolygon(NewPoint2D(5, 5), square) {
		t.Error("center should be inside")
	}
	if PointInPolygon(NewPoint2D(15, 5), square) {
		t.Error("(15,5) should be outside")
	}
	if !Collinear(NewPoint2D(0, 0), NewPoint2D(1, 1), NewPoint2D(3, 3), 1e-9) {
		t.Error("diagonal points should be collinear")
	}
	if Collinear(NewPoint2D(0, 0), NewPoint2D(1, 0), NewPoint2D(0, 1), 1e-9) {
		t.Error("triangle corners should not be collinear")
	}
}
