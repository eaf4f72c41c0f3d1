package app

import (
	"testing"

	"shape-transformer/internal/builder"
	"shape-transformer/pkg/geometry"
)

func TestRectangleCreatorDraws(t *testing.T) {
	s := NewState()
	c := NewRectangleCreator(s)

	c.Press(pt(1, 1))
	if c.Mode() != ModeDisabled {
		t.Fatalf("press without shift changed mode to %v", c.Mode())
	}

	c.UpdateModifiers(true)
	if c.Mode() != ModeWaitToDraw {
		t.Fatalf("mode after shift = %v", c.Mode())
	}
	c.Press(pt(20, 30))
	c.Move(pt(5, 10))
	r := c.Rubber()
	if r == nil || *r != geometry.NewRect(5, 10, 15, 20) {
		t.Fatalf("rubber = %v", r)
	}
	c.Release(pt(0, 0))
	if c.Mode() != ModeWaitToDraw || c.Rubber() != nil {
		t.Fatalf("after release: mode %v rubber %v", c.Mode(), c.Rubber())
	}

	shapes := s.Shapes()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes", len(shapes))
	}
	assertCorners(t, shapes[0], pt(0, 0), pt(20, 0), pt(20, 30), pt(0, 30))

	c.UpdateModifiers(false)
	if c.Mode() != ModeDisabled {
		t.Errorf("mode after shift release = %v", c.Mode())
	}
}

func TestRectangleCreatorShiftReleaseFinishes(t *testing.T) {
	s := NewState()
	c := NewRectangleCreator(s)
	c.UpdateModifiers(true)
	c.Press(pt(0, 0))
	c.Move(pt(4, 4))
	c.UpdateModifiers(false)

	if c.Mode() != ModeDisabled {
		t.Errorf("mode = %v", c.Mode())
	}
	if len(s.Shapes()) != 1 {
		t.Errorf("got %d shapes, want 1", len(s.Shapes()))
	}
}

func TestRectangleCreatorRejectsEmpty(t *testing.T) {
	s := NewState()
	var status string
	s.On(EventStatus, func(data interface{}) { status = data.(string) })

	c := NewRectangleCreator(s)
	c.UpdateModifiers(true)
	c.Press(pt(3, 3))
	c.Release(pt(3, 8))

	if len(s.Shapes()) != 0 {
		t.Errorf("empty rectangle was added")
	}
	if status == "" {
		t.Error("no status reported")
	}
}

func TestEditorRoutesByShift(t *testing.T) {
	s := NewState()
	s.SetKind(builder.KindTranslation)
	e := NewEditor(s, 3)

	e.Press(pt(0, 0), true)
	e.Move(pt(10, 10), true)
	if f := e.Frame(); f.Rubber == nil {
		t.Fatal("rubber band missing from frame")
	}
	e.Release(pt(10, 10), true)
	e.Modifiers(false)

	e.Press(pt(0, 0), false)
	if e.Transformer.Mode() != ModeDragging {
		t.Fatalf("transformer mode = %v", e.Transformer.Mode())
	}
	// Shift mid-gesture must not arm the creator.
	e.Move(pt(2, 2), true)
	if e.Creator.Enabled() {
		t.Fatal("creator armed during a transformation")
	}
	if f := e.Frame(); f.Drag == nil || f.Drag.Label != "A" {
		t.Fatalf("frame drag = %+v", f.Drag)
	}
	e.Release(pt(3, 4), false)

	shapes := s.Shapes()
	assertCorners(t, shapes[0], pt(3, 4), pt(13, 4), pt(13, 14), pt(3, 14))
}
