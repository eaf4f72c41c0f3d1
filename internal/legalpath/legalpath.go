// Package legalpath describes where a pending destination point may land.
// A Path projects any raw pointer position onto the legal region and gives
// the UI enough to draw that region.
package legalpath

import (
	"errors"
	"fmt"
	"image/color"

	"shape-transformer/pkg/geometry"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrDegenerateRadius is returned when a circle would have a non-positive
// radius, which means the points it was derived from coincide.
var ErrDegenerateRadius = errors.New("legalpath: circle radius must be positive")

// projectionTolerance bounds the distance between a projected point and the
// circle it was projected onto.
const projectionTolerance = 1e-4

// circleSegments is the number of vertices used to outline a circle.
const circleSegments = 96

// Path is a legal region for a destination point.
type Path interface {
	// Project maps p to the nearest legal point. It is deterministic.
	Project(p geometry.Point2D) geometry.Point2D

	// Outline returns a closed polyline of the region clipped to the
	// visible bounds, first vertex not repeated.
	Outline(bounds geometry.Rect) []geometry.Point2D

	// Brush is the tint used to fill the region.
	Brush() color.RGBA
}

// Unconstrained accepts every point.
type Unconstrained struct{}

// Project returns p.
func (Unconstrained) Project(p geometry.Point2D) geometry.Point2D {
	return p
}

// Outline covers the whole visible region.
func (Unconstrained) Outline(bounds geometry.Rect) []geometry.Point2D {
	return bounds.Corners()
}

// Brush is a translucent green wash.
func (Unconstrained) Brush() color.RGBA {
	return tint(colorful.Hsv(120, 1, 1), 40)
}

func (Unconstrained) String() string {
	return "unconstrained"
}

// Circle restricts points to a circle.
type Circle struct {
	center geometry.Point2D
	radius float64
}

// NewCircle returns the circle of the given center and radius.
func NewCircle(center geometry.Point2D, radius float64) (Circle, error) {
	if !(radius > 0) {
		return Circle{}, fmt.Errorf("%w: got %g", ErrDegenerateRadius, radius)
	}
	return Circle{center: center, radius: radius}, nil
}

// Center returns the circle's center.
func (c Circle) Center() geometry.Point2D {
	return c.center
}

// Radius returns the circle's radius.
func (c Circle) Radius() float64 {
	return c.radius
}

// Project moves p along the ray from the center through p onto the circle.
// The center itself projects straight below it, to (cx, cy+r).
func (c Circle) Project(p geometry.Point2D) geometry.Point2D {
	moved := p.Sub(c.center)
	var onCircle geometry.Point2D
	if size := moved.Size(); size == 0 {
		onCircle = geometry.NewPoint2D(0, c.radius)
	} else {
		onCircle = moved.Scale(c.radius / size)
	}
	return c.center.Add(onCircle)
}

// Contains reports whether p lies on the circle within the projection
// tolerance.
func (c Circle) Contains(p geometry.Point2D) bool {
	d := geometry.Distance(c.center, p) - c.radius
	return d <= projectionTolerance && d >= -projectionTolerance
}

// Outline samples the circle. It is not clipped; renderers clip to bounds.
func (c Circle) Outline(geometry.Rect) []geometry.Point2D {
	return geometry.GenerateCirclePoints(c.center.X, c.center.Y, c.radius, circleSegments)
}

// Brush is fully transparent: only the outline is drawn.
func (Circle) Brush() color.RGBA {
	return color.RGBA{}
}

func (c Circle) String() string {
	return fmt.Sprintf("circle(center=(%g, %g), r=%g)", c.center.X, c.center.Y, c.radius)
}

// tint converts c to a premultiplied RGBA with the given alpha.
func tint(c colorful.Color, alpha uint8) color.RGBA {
	r, g, b := c.RGB255()
	a := uint32(alpha)
	return color.RGBA{
		R: uint8(uint32(r) * a / 255),
		G: uint8(uint32(g) * a / 255),
		B: uint8(uint32(b) * a / 255),
		A: alpha,
	}
}
