package render

import (
	"image/color"

	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/shape"
	"shape-transformer/pkg/geometry"
)

// Drag is an in-progress drag of a corner towards its destination.
type Drag struct {
	Path  legalpath.Path
	Point geometry.Point2D
	Label string
}

// Frame is everything visible at one moment.
type Frame struct {
	Shapes  []shape.Polygon
	Sources []geometry.Point2D // committed sources of the pending transformation
	Drag    *Drag
	Rubber  *geometry.Rect // rectangle being drawn
}

// Draw renders f onto c.
func Draw(c *Canvas, f Frame, style Style) {
	if f.Drag != nil && f.Drag.Path != nil {
		c.LegalPath(f.Drag.Path, style.Drag)
	}

	colors := Palette(len(f.Shapes))
	for i, poly := range f.Shapes {
		c.Shape(poly, colors[i], style)
	}

	for _, src := range f.Sources {
		c.Disc(src, style.HandleRadius*0.6, style.Source)
	}

	if f.Drag != nil {
		c.handle(f.Drag.Point, f.Drag.Label, style.HandleRadius/2, style.Drag, style)
	}

	if f.Rubber != nil {
		r := *f.Rubber
		fill := color.RGBA{
			R: uint8(uint32(style.Rubber.R) * 40 / 255),
			G: uint8(uint32(style.Rubber.G) * 40 / 255),
			B: uint8(uint32(style.Rubber.B) * 40 / 255),
			A: 40,
		}
		c.FillPolygon(r.Corners(), fill)
		c.StrokePolyline(r.Corners(), true, 1, style.Rubber)
	}
}
