// Package render rasterizes shapes, corner handles, labels and legal-path
// hints into RGBA images. It is shared by the desktop canvas and the
// command-line renderer.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/shape"
	"shape-transformer/pkg/geometry"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Style controls how a frame is drawn. Sizes are in output pixels.
type Style struct {
	Background   color.RGBA
	LineWidth    float64
	HandleRadius float64
	Handle       color.RGBA
	Source       color.RGBA
	Drag         color.RGBA
	Text         color.RGBA
	Rubber       color.RGBA
}

// DefaultStyle matches the desktop look: thick outlines, purple handles and
// a red in-progress drag handle.
func DefaultStyle() Style {
	return Style{
		Background:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		LineWidth:    5,
		HandleRadius: 8,
		Handle:       color.RGBA{R: 128, G: 0, B: 128, A: 255},
		Source:       color.RGBA{R: 255, G: 165, B: 0, A: 255},
		Drag:         color.RGBA{R: 255, G: 0, B: 0, A: 255},
		Text:         color.RGBA{A: 255},
		Rubber:       color.RGBA{R: 40, G: 90, B: 200, A: 255},
	}
}

// Canvas is a raster target with a world-to-pixel scale.
type Canvas struct {
	img   *image.RGBA
	scale float64
}

// NewCanvas allocates a w x h canvas filled with bg. scale converts world
// coordinates to pixels; values <= 0 mean 1.
func NewCanvas(w, h int, scale float64, bg color.RGBA) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{img: img, scale: scale}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Bounds returns the visible region in world coordinates.
func (c *Canvas) Bounds() geometry.Rect {
	b := c.img.Bounds()
	return geometry.NewRect(0, 0, float64(b.Dx())/c.scale, float64(b.Dy())/c.scale)
}

// FillPolygon fills a closed polygon given in world coordinates.
func (c *Canvas) FillPolygon(points []geometry.Point2D, col color.Color) {
	if len(points) < 3 {
		return
	}
	z := c.rasterizer()
	z.MoveTo(c.px(points[0]))
	for _, p := range points[1:] {
		z.LineTo(c.px(p))
	}
	z.ClosePath()
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// StrokePolyline draws segments of width pixels between consecutive points,
// and back to the first point when closed.
func (c *Canvas) StrokePolyline(points []geometry.Point2D, closed bool, width float64, col color.Color) {
	n := len(points)
	if n < 2 {
		return
	}
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		c.segment(points[i], points[(i+1)%n], width, col)
	}
}

// Disc fills a circle whose radius is given in pixels.
func (c *Canvas) Disc(center geometry.Point2D, radius float64, col color.Color) {
	r := radius / c.scale
	c.FillPolygon(geometry.GenerateCirclePoints(center.X, center.Y, r, 24), col)
}

// Text draws s with its baseline-left corner at p.
func (c *Canvas) Text(p geometry.Point2D, s string, col color.Color) {
	x, y := c.px(p)
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(math.Round(float64(x))), int(math.Round(float64(y)))),
	}
	d.DrawString(s)
}

// LegalPath shades the region a dragged point may occupy and outlines it.
func (c *Canvas) LegalPath(path legalpath.Path, col color.Color) {
	outline := path.Outline(c.Bounds())
	if brush := path.Brush(); brush.A > 0 {
		c.FillPolygon(outline, brush)
	}
	if _, ok := path.(legalpath.Circle); ok {
		c.StrokePolyline(outline, true, 1.5, col)
	}
}

// segment fills the quad covering the thick line a-b.
func (c *Canvas) segment(a, b geometry.Point2D, width float64, col color.Color) {
	ax, ay := c.px(a)
	bx, by := c.px(b)
	dx, dy := float64(bx-ax), float64(by-ay)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx := float32(-dy / length * width / 2)
	ny := float32(dx / length * width / 2)

	z := c.rasterizer()
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
	z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *Canvas) rasterizer() *vector.Rasterizer {
	b := c.img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return z
}

func (c *Canvas) px(p geometry.Point2D) (float32, float32) {
	return float32(p.X * c.scale), float32(p.Y * c.scale)
}

// Palette returns n visually distinct, fully opaque colors with evenly
// spread hues.
func Palette(n int) []color.RGBA {
	out := make([]color.RGBA, n)
	for i := range out {
		hue := math.Mod(220+float64(i)*137.508, 360)
		r, g, b := colorful.Hcl(hue, 0.6, 0.5).Clamped().RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Shape draws the outline, corner handles and labels of a polygon.
func (c *Canvas) Shape(poly shape.Polygon, outline color.RGBA, style Style) {
	c.StrokePolyline(poly.Points(), true, style.LineWidth, outline)
	for _, corner := range poly.Corners() {
		c.handle(corner.Point, corner.Label, style.HandleRadius, style.Handle, style)
	}
}

func (c *Canvas) handle(p geometry.Point2D, label string, radius float64, col color.RGBA, style Style) {
	c.Disc(p, radius, col)
	offset := geometry.NewPoint2D(radius/c.scale, -radius/c.scale)
	c.Text(p.Add(offset), label, style.Text)
}
