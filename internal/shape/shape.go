// Package shape models editable shapes as closed rings of labeled corners.
package shape

import (
	"errors"
	"fmt"
	"math"

	"shape-transformer/internal/transform"
	"shape-transformer/pkg/geometry"
)

var (
	// ErrTooFewPoints is returned for polygons with fewer than three corners.
	ErrTooFewPoints = errors.New("shape: a polygon needs at least 3 points")

	// ErrNonFinite is returned when a transformation sends a corner to
	// infinity or produces NaN coordinates.
	ErrNonFinite = errors.New("shape: transformation produced a non-finite corner")
)

// Corner is a labeled vertex.
type Corner struct {
	Label string           `json:"label"`
	Point geometry.Point2D `json:"point"`
}

// Polygon is an ordered ring of corners; the last corner connects back to
// the first. Polygons are values: Transform returns a new one.
type Polygon struct {
	corners []Corner
}

// NewPolygon labels points A, B, C, ... in order.
func NewPolygon(points []geometry.Point2D) (Polygon, error) {
	if len(points) < 3 {
		return Polygon{}, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(points))
	}
	corners := make([]Corner, len(points))
	for i, p := range points {
		corners[i] = Corner{Label: Label(i), Point: p}
	}
	return Polygon{corners: corners}, nil
}

// NewRectangle returns the rectangle's corners in top-left, top-right,
// bottom-right, bottom-left order.
func NewRectangle(r geometry.Rect) Polygon {
	p, _ := NewPolygon(r.Corners())
	return p
}

// Label returns the label of the i-th corner: A..Z, then AA, AB, ... like
// spreadsheet columns.
func Label(i int) string {
	var buf []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		buf = append([]byte{byte('A' + (n-1)%26)}, buf...)
	}
	return string(buf)
}

// Len returns the number of corners.
func (p Polygon) Len() int {
	return len(p.corners)
}

// Corner returns the i-th corner.
func (p Polygon) Corner(i int) Corner {
	return p.corners[i]
}

// Corners returns a copy of the corners.
func (p Polygon) Corners() []Corner {
	return append([]Corner(nil), p.corners...)
}

// Points returns the corner positions.
func (p Polygon) Points() []geometry.Point2D {
	out := make([]geometry.Point2D, len(p.corners))
	for i, c := range p.corners {
		out[i] = c.Point
	}
	return out
}

// Ring returns the corner positions with the first repeated at the end.
func (p Polygon) Ring() []geometry.Point2D {
	pts := p.Points()
	if len(pts) == 0 {
		return pts
	}
	return append(pts, pts[0])
}

// Mean returns the centroid of the corners.
func (p Polygon) Mean() geometry.Point2D {
	return geometry.Centroid(p.Points())
}

// Bounds returns the axis-aligned bounding box.
func (p Polygon) Bounds() geometry.Rect {
	return geometry.BoundingBox(p.Points())
}

// Contains reports whether pos is inside the polygon.
func (p Polygon) Contains(pos geometry.Point2D) bool {
	return geometry.PointInPolygon(pos, p.Points())
}

// CornerAt returns the index of the corner nearest to pos among those
// within radius.
func (p Polygon) CornerAt(pos geometry.Point2D, radius float64) (int, bool) {
	best, bestDist := -1, math.Inf(1)
	for i, c := range p.corners {
		if d := geometry.Distance(c.Point, pos); d <= radius && d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, best >= 0
}

// Transform applies t to every corner at once and returns the new polygon.
// Labels are kept. The receiver is unchanged, also on error.
func (p Polygon) Transform(t transform.Transformation) (Polygon, error) {
	corners := make([]Corner, len(p.corners))
	for i, c := range p.corners {
		q := t.TransformPoint(c.Point)
		if !finite(q) {
			return Polygon{}, fmt.Errorf("%w: corner %s %v -> %v", ErrNonFinite, c.Label, c.Point, q)
		}
		corners[i] = Corner{Label: c.Label, Point: q}
	}
	return Polygon{corners: corners}, nil
}

func (p Polygon) String() string {
	s := "polygon["
	for i, c := range p.corners {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s(%g, %g)", c.Label, c.Point.X, c.Point.Y)
	}
	return s + "]"
}

func finite(p geometry.Point2D) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
