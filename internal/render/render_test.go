package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/shape"
	"shape-transformer/pkg/geometry"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func TestFillPolygonCoversInterior(t *testing.T) {
	c := NewCanvas(20, 20, 1, white)
	red := color.RGBA{R: 255, A: 255}
	c.FillPolygon(geometry.NewRect(5, 5, 10, 10).Corners(), red)

	if got := c.Image().RGBAAt(10, 10); got != red {
		t.Errorf("interior pixel = %v, want %v", got, red)
	}
	if got := c.Image().RGBAAt(1, 1); got != white {
		t.Errorf("exterior pixel = %v, want %v", got, white)
	}
}

func TestScaleMapsWorldToPixels(t *testing.T) {
	c := NewCanvas(40, 40, 2, white)
	if b := c.Bounds(); b.Width != 20 || b.Height != 20 {
		t.Errorf("Bounds() = %v, want 20x20 world units", b)
	}
	blue := color.RGBA{B: 255, A: 255}
	c.FillPolygon(geometry.NewRect(10, 10, 5, 5).Corners(), blue)
	if got := c.Image().RGBAAt(25, 25); got != blue {
		t.Errorf("scaled interior pixel = %v, want %v", got, blue)
	}
	if got := c.Image().RGBAAt(15, 15); got != white {
		t.Errorf("pixel outside scaled rect = %v, want white", got)
	}
}

func TestStrokePolyline(t *testing.T) {
	c := NewCanvas(30, 30, 1, white)
	black := color.RGBA{A: 255}
	c.StrokePolyline([]geometry.Point2D{{X: 5, Y: 15}, {X: 25, Y: 15}}, false, 4, black)
	if got := c.Image().RGBAAt(15, 15); got != black {
		t.Errorf("pixel on stroke = %v, want black", got)
	}
	if got := c.Image().RGBAAt(15, 5); got != white {
		t.Errorf("pixel off stroke = %v, want white", got)
	}
}

func TestPaletteDistinct(t *testing.T) {
	p := Palette(6)
	seen := map[color.RGBA]bool{}
	for _, c := range p {
		if c.A != 255 {
			t.Errorf("palette color %v is not opaque", c)
		}
		if seen[c] {
			t.Errorf("duplicate palette color %v", c)
		}
		seen[c] = true
	}
}

func TestDrawFrameAndEncode(t *testing.T) {
	c := NewCanvas(200, 200, 1, white)
	circle, err := legalpath.NewCircle(geometry.NewPoint2D(100, 100), 50)
	if err != nil {
		t.Fatal(err)
	}
	rubber := geometry.NewRect(150, 150, 30, 30)
	Draw(c, Frame{
		Shapes:  []shape.Polygon{shape.NewRectangle(geometry.NewRect(20, 20, 100, 60))},
		Sources: []geometry.Point2D{{X: 20, Y: 20}},
		Drag:    &Drag{Path: circle, Point: geometry.NewPoint2D(150, 100), Label: "B"},
		Rubber:  &rubber,
	}, DefaultStyle())

	if got := c.Image().RGBAAt(150, 100); got == white {
		t.Error("drag handle was not drawn")
	}
	if got := c.Image().RGBAAt(70, 20); got == white {
		t.Error("shape outline was not drawn")
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, c.Image()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
}
