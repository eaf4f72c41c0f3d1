package app

import (
	"shape-transformer/internal/shape"
	"shape-transformer/pkg/geometry"
)

// RectangleCreator draws axis-aligned rectangles while shift is held.
type RectangleCreator struct {
	state *State
	mode  Mode

	origin geometry.Point2D
	target geometry.Point2D
}

// NewRectangleCreator returns a disabled creator.
func NewRectangleCreator(state *State) *RectangleCreator {
	return &RectangleCreator{state: state}
}

// Mode returns the controller state.
func (c *RectangleCreator) Mode() Mode {
	return c.mode
}

// Enabled reports whether shift is held or a rectangle is being drawn.
func (c *RectangleCreator) Enabled() bool {
	return c.mode != ModeDisabled
}

// UpdateModifiers arms drawing when shift goes down. Releasing shift
// mid-draw finishes the rectangle.
func (c *RectangleCreator) UpdateModifiers(shift bool) {
	switch {
	case c.mode == ModeDisabled && shift:
		c.mode = ModeWaitToDraw
	case c.mode == ModeDrawing && !shift:
		c.finish()
		c.mode = ModeDisabled
	case c.mode == ModeWaitToDraw && !shift:
		c.mode = ModeDisabled
	}
}

// Press anchors a new rectangle.
func (c *RectangleCreator) Press(pos geometry.Point2D) {
	if c.mode != ModeWaitToDraw {
		return
	}
	c.mode = ModeDrawing
	c.origin = pos
	c.target = pos
	c.state.Emit(EventDragChanged, nil)
}

// Move stretches the rectangle to pos.
func (c *RectangleCreator) Move(pos geometry.Point2D) {
	if c.mode != ModeDrawing {
		return
	}
	c.target = pos
	c.state.Emit(EventDragChanged, nil)
}

// Release adds the rectangle and waits for the next one.
func (c *RectangleCreator) Release(pos geometry.Point2D) {
	if c.mode != ModeDrawing {
		return
	}
	c.target = pos
	c.finish()
	c.mode = ModeWaitToDraw
}

// Rubber returns the rectangle being drawn, if any.
func (c *RectangleCreator) Rubber() *geometry.Rect {
	if c.mode != ModeDrawing {
		return nil
	}
	r := geometry.RectFromCorners(c.origin, c.target)
	return &r
}

func (c *RectangleCreator) finish() {
	r := geometry.RectFromCorners(c.origin, c.target)
	if r.Empty() {
		c.state.Status("Rectangle has no area; drag further to draw one")
		c.state.Emit(EventDragChanged, nil)
		return
	}
	c.state.AddShape(shape.NewRectangle(r))
}
