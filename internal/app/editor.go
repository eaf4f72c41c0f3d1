package app

import (
	"shape-transformer/internal/render"
	"shape-transformer/pkg/geometry"
)

// Editor routes pointer events to the rectangle creator while it is armed
// and to the transformer otherwise.
type Editor struct {
	State       *State
	Transformer *Transformer
	Creator     *RectangleCreator
}

// NewEditor wires both controllers to state.
func NewEditor(state *State, handleRadius float64) *Editor {
	return &Editor{
		State:       state,
		Transformer: NewTransformer(state, handleRadius),
		Creator:     NewRectangleCreator(state),
	}
}

// Modifiers forwards the shift key state. It is ignored while a
// transformation gesture is in progress.
func (e *Editor) Modifiers(shift bool) {
	if !e.Transformer.Enabled() {
		e.Creator.UpdateModifiers(shift)
	}
}

// Press handles a button press at pos.
func (e *Editor) Press(pos geometry.Point2D, shift bool) {
	e.Modifiers(shift)
	if e.Creator.Enabled() {
		e.Creator.Press(pos)
		return
	}
	e.Transformer.Press(pos)
}

// Move handles pointer motion.
func (e *Editor) Move(pos geometry.Point2D, shift bool) {
	e.Modifiers(shift)
	if e.Creator.Enabled() {
		e.Creator.Move(pos)
		return
	}
	e.Transformer.Move(pos)
}

// Release handles a button release.
func (e *Editor) Release(pos geometry.Point2D, shift bool) {
	e.Modifiers(shift)
	if e.Creator.Enabled() {
		e.Creator.Release(pos)
		return
	}
	e.Transformer.Release(pos)
}

// SetHandleRadius sets the corner pick radius in world units.
func (e *Editor) SetHandleRadius(radius float64) {
	e.Transformer.SetHandleRadius(radius)
}

// Reset aborts any gesture.
func (e *Editor) Reset() {
	e.Transformer.Reset()
}

// Frame snapshots everything the canvas should draw.
func (e *Editor) Frame() render.Frame {
	sources, drag := e.Transformer.Overlay()
	return render.Frame{
		Shapes:  e.State.Shapes(),
		Sources: sources,
		Drag:    drag,
		Rubber:  e.Creator.Rubber(),
	}
}
