// Package canvas provides the interactive shape canvas with zoom.
package canvas

import (
	"image"
	"sync"

	"shape-transformer/internal/app"
	"shape-transformer/internal/render"
	"shape-transformer/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25
)

// ShapeCanvas draws the editor's shapes and forwards pointer and shift-key
// input to it in world coordinates. Style sizes are in fyne units, so the
// handles keep their on-screen size at every zoom.
type ShapeCanvas struct {
	widget.BaseWidget

	editor *app.Editor
	style  render.Style

	// Display state
	raster *fynecanvas.Raster
	zoom   float64

	// Interaction state
	mu      sync.Mutex
	pressed bool
	shift   bool

	// Callbacks
	onZoomChange func(zoom float64)
	onPointer    func(pos geometry.Point2D)
}

// NewShapeCanvas creates a canvas bound to editor.
func NewShapeCanvas(editor *app.Editor, style render.Style) *ShapeCanvas {
	sc := &ShapeCanvas{
		editor: editor,
		style:  style,
		zoom:   1.0,
	}

	sc.raster = fynecanvas.NewRaster(sc.draw)
	sc.raster.ScaleMode = fynecanvas.ImageScalePixels
	sc.raster.SetMinSize(fyne.NewSize(400, 300))

	sc.ExtendBaseWidget(sc)
	sc.syncHandleRadius()
	return sc
}

// SetZoom sets the zoom level.
func (sc *ShapeCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	sc.zoom = zoom
	sc.syncHandleRadius()
	sc.Refresh()

	if sc.onZoomChange != nil {
		sc.onZoomChange(zoom)
	}
}

// GetZoom returns the current zoom level.
func (sc *ShapeCanvas) GetZoom() float64 {
	return sc.zoom
}

// ZoomIn increases the zoom level.
func (sc *ShapeCanvas) ZoomIn() {
	sc.SetZoom(sc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (sc *ShapeCanvas) ZoomOut() {
	sc.SetZoom(sc.zoom / zoomStep)
}

// syncHandleRadius makes corner picking cover the handle as drawn.
func (sc *ShapeCanvas) syncHandleRadius() {
	sc.editor.SetHandleRadius(sc.style.HandleRadius / sc.zoom)
}

// OnZoomChange sets a callback for zoom changes.
func (sc *ShapeCanvas) OnZoomChange(callback func(zoom float64)) {
	sc.onZoomChange = callback
}

// OnPointer sets a callback receiving the pointer position in world
// coordinates.
func (sc *ShapeCanvas) OnPointer(callback func(pos geometry.Point2D)) {
	sc.onPointer = callback
}

// CanvasToWorld converts widget coordinates to world coordinates.
func (sc *ShapeCanvas) CanvasToWorld(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{
		X: float64(pos.X) / sc.zoom,
		Y: float64(pos.Y) / sc.zoom,
	}
}

// Refresh redraws the canvas.
func (sc *ShapeCanvas) Refresh() {
	sc.raster.Refresh()
}

// draw is the raster drawing function.
func (sc *ShapeCanvas) draw(w, h int) image.Image {
	// The raster works in device pixels; the widget size is in fyne units.
	pixels := 1.0
	if width := sc.Size().Width; width > 0 {
		pixels = float64(w) / float64(width)
	}
	style := sc.style
	style.HandleRadius *= pixels
	style.LineWidth *= pixels

	c := render.NewCanvas(w, h, sc.zoom*pixels, style.Background)
	render.Draw(c, sc.editor.Frame(), style)
	return c.Image()
}

// MouseDown implements desktop.Mouseable.
func (sc *ShapeCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	if c := fyne.CurrentApp().Driver().CanvasForObject(sc); c != nil {
		c.Focus(sc)
	}

	sc.mu.Lock()
	sc.pressed = true
	sc.shift = ev.Modifier&fyne.KeyModifierShift != 0
	shift := sc.shift
	sc.mu.Unlock()

	sc.editor.Press(sc.CanvasToWorld(ev.Position), shift)
	sc.Refresh()
}

// MouseUp implements desktop.Mouseable.
func (sc *ShapeCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	sc.release(sc.CanvasToWorld(ev.Position), ev.Modifier&fyne.KeyModifierShift != 0)
}

// Dragged implements fyne.Draggable. Motion with a button held arrives here
// instead of MouseMoved.
func (sc *ShapeCanvas) Dragged(ev *fyne.DragEvent) {
	sc.move(sc.CanvasToWorld(ev.Position))
}

// DragEnd implements fyne.Draggable.
func (sc *ShapeCanvas) DragEnd() {}

// MouseIn implements desktop.Hoverable.
func (sc *ShapeCanvas) MouseIn(ev *desktop.MouseEvent) {}

// MouseMoved implements desktop.Hoverable.
func (sc *ShapeCanvas) MouseMoved(ev *desktop.MouseEvent) {
	sc.mu.Lock()
	sc.shift = ev.Modifier&fyne.KeyModifierShift != 0
	sc.mu.Unlock()
	sc.move(sc.CanvasToWorld(ev.Position))
}

// MouseOut implements desktop.Hoverable.
func (sc *ShapeCanvas) MouseOut() {}

// Scrolled zooms with the mouse wheel.
func (sc *ShapeCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		sc.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		sc.ZoomOut()
	}
}

// KeyDown implements desktop.Keyable.
func (sc *ShapeCanvas) KeyDown(ev *fyne.KeyEvent) {
	if isShift(ev.Name) {
		sc.setShift(true)
	}
}

// KeyUp implements desktop.Keyable.
func (sc *ShapeCanvas) KeyUp(ev *fyne.KeyEvent) {
	if isShift(ev.Name) {
		sc.setShift(false)
	}
}

// FocusGained implements fyne.Focusable.
func (sc *ShapeCanvas) FocusGained() {}

// FocusLost implements fyne.Focusable.
func (sc *ShapeCanvas) FocusLost() {
	sc.setShift(false)
}

// TypedRune implements fyne.Focusable.
func (sc *ShapeCanvas) TypedRune(r rune) {}

// TypedKey implements fyne.Focusable. Escape aborts the gesture.
func (sc *ShapeCanvas) TypedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeyEscape {
		sc.editor.Reset()
		sc.Refresh()
	}
}

// Cursor implements desktop.Cursorable.
func (sc *ShapeCanvas) Cursor() desktop.Cursor {
	if sc.editor.Creator.Enabled() {
		return desktop.CrosshairCursor
	}
	return desktop.DefaultCursor
}

func (sc *ShapeCanvas) move(pos geometry.Point2D) {
	sc.mu.Lock()
	shift := sc.shift
	sc.mu.Unlock()

	sc.editor.Move(pos, shift)
	if sc.onPointer != nil {
		sc.onPointer(pos)
	}
	sc.Refresh()
}

func (sc *ShapeCanvas) release(pos geometry.Point2D, shift bool) {
	sc.mu.Lock()
	if !sc.pressed {
		sc.mu.Unlock()
		return
	}
	sc.pressed = false
	sc.shift = shift
	sc.mu.Unlock()

	sc.editor.Release(pos, shift)
	sc.Refresh()
}

func (sc *ShapeCanvas) setShift(down bool) {
	sc.mu.Lock()
	changed := sc.shift != down
	sc.shift = down
	sc.mu.Unlock()

	if changed {
		sc.editor.Modifiers(down)
		sc.Refresh()
	}
}

func isShift(name fyne.KeyName) bool {
	return name == desktop.KeyShiftLeft || name == desktop.KeyShiftRight
}

// CreateRenderer implements fyne.Widget.
func (sc *ShapeCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &shapeCanvasRenderer{canvas: sc}
}

type shapeCanvasRenderer struct {
	canvas *ShapeCanvas
}

func (r *shapeCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.raster.Resize(size)
}

func (r *shapeCanvasRenderer) MinSize() fyne.Size {
	return r.canvas.raster.MinSize()
}

func (r *shapeCanvasRenderer) Refresh() {
	r.canvas.raster.Refresh()
}

func (r *shapeCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.raster}
}

func (r *shapeCanvasRenderer) Destroy() {}
