package app

import (
	"errors"
	"log"

	"shape-transformer/internal/builder"
	"shape-transformer/internal/legalpath"
	"shape-transformer/internal/render"
	"shape-transformer/pkg/geometry"
)

// Mode is the state of an interaction controller.
type Mode int

const (
	ModeDisabled Mode = iota
	ModeDragging
	ModeWaitToSelect
	ModeWaitToDraw
	ModeDrawing
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeDragging:
		return "dragging"
	case ModeWaitToSelect:
		return "wait-to-select"
	case ModeWaitToDraw:
		return "wait-to-draw"
	case ModeDrawing:
		return "drawing"
	}
	return "unknown"
}

// Transformer turns corner drags into a transformation of one shape.
//
// Pressing on a corner starts a gesture with a fresh builder of the selected
// kind. Each release commits one correspondence. While the builder needs
// more pairs the controller waits for another corner of the same shape that
// was not used yet. When the builder is done its transformation is applied
// to the whole shape and the controller resets.
type Transformer struct {
	state        *State
	handleRadius float64

	mode     Mode
	builder  builder.Builder
	shapeIdx int

	// Current drag
	src       geometry.Point2D
	srcLabel  string
	path      legalpath.Path
	dragPoint geometry.Point2D
}

// NewTransformer creates a controller picking corners within handleRadius.
func NewTransformer(state *State, handleRadius float64) *Transformer {
	t := &Transformer{state: state, handleRadius: handleRadius}
	t.reset()
	return t
}

// Mode returns the controller state.
func (t *Transformer) Mode() Mode {
	return t.mode
}

// Enabled reports whether a gesture is in progress.
func (t *Transformer) Enabled() bool {
	return t.mode != ModeDisabled
}

// HandleRadius returns the corner pick radius in world units.
func (t *Transformer) HandleRadius() float64 {
	return t.handleRadius
}

// SetHandleRadius sets the corner pick radius in world units. The canvas
// calls it when the zoom changes so picking matches the drawn handles.
func (t *Transformer) SetHandleRadius(radius float64) {
	t.handleRadius = radius
}

// Builder returns the builder of the gesture in progress, or nil.
func (t *Transformer) Builder() builder.Builder {
	return t.builder
}

// Press starts dragging the corner under pos, if any.
func (t *Transformer) Press(pos geometry.Point2D) {
	shapeIdx, cornerIdx, ok := t.state.CornerAt(pos, t.handleRadius)
	if !ok {
		if _, inside := t.state.ShapeAt(pos); inside && t.mode == ModeDisabled {
			t.state.Status("Drag a corner handle to start a %s transformation", t.state.Kind())
		}
		return
	}
	poly, _ := t.state.Shape(shapeIdx)
	corner := poly.Corner(cornerIdx)

	switch t.mode {
	case ModeDisabled:
		b, err := t.state.NewBuilder(poly.Mean())
		if err != nil {
			t.state.Status("Cannot start %s: %v", t.state.Kind(), err)
			return
		}
		t.builder = b
		t.shapeIdx = shapeIdx
		t.startDragging(corner.Point, corner.Label, pos)
	case ModeWaitToSelect:
		if shapeIdx != t.shapeIdx || containsPoint(t.builder.Sources(), corner.Point) {
			return
		}
		t.startDragging(corner.Point, corner.Label, pos)
	}
}

// Move updates the drag preview, snapped to the legal path.
func (t *Transformer) Move(pos geometry.Point2D) {
	if t.mode != ModeDragging {
		return
	}
	t.dragPoint = t.path.Project(pos)
	t.state.Emit(EventDragChanged, t.dragPoint)
}

// Release commits the dragged correspondence.
func (t *Transformer) Release(pos geometry.Point2D) {
	if t.mode != ModeDragging {
		return
	}
	next, err := t.builder.MovePoint(t.src, t.path.Project(pos))
	if err != nil {
		// The committed pairs stay valid; only this drag is dropped.
		log.Printf("Transformer: drag of %s rejected: %v", t.srcLabel, err)
		t.state.Status("Cannot use corner %s: %v", t.srcLabel, err)
		t.endDrag()
		return
	}

	if !next.IsDone() {
		t.builder = next
		t.endDrag()
		t.state.Status("%s: %d of %d points placed", next.Kind().Title(), len(next.Sources()), next.Kind().Pairs())
		return
	}

	t.apply(next)
	t.reset()
	t.state.Emit(EventDragChanged, nil)
}

// Reset aborts the gesture in progress.
func (t *Transformer) Reset() {
	t.reset()
	t.state.Emit(EventDragChanged, nil)
}

// Overlay returns what the canvas should draw for the gesture in progress.
func (t *Transformer) Overlay() (sources []geometry.Point2D, drag *render.Drag) {
	if t.builder != nil {
		sources = t.builder.Sources()
	}
	if t.mode == ModeDragging {
		drag = &render.Drag{Path: t.path, Point: t.dragPoint, Label: t.srcLabel}
	}
	return sources, drag
}

func (t *Transformer) apply(b builder.Builder) {
	tr, err := b.Transformation()
	if err != nil {
		if errors.Is(err, builder.ErrDegenerate) {
			t.state.Status("Points are degenerate, pick non-collinear corners: %v", err)
		} else {
			t.state.Status("Transformation failed: %v", err)
		}
		return
	}
	poly, ok := t.state.Shape(t.shapeIdx)
	if !ok {
		return
	}
	moved, err := poly.Transform(tr)
	if err != nil {
		t.state.Status("Transformation failed: %v", err)
		return
	}
	if err := t.state.ReplaceShape(t.shapeIdx, moved); err != nil {
		log.Printf("Transformer: %v", err)
		return
	}
	log.Printf("Transformer: applied %v", tr)
	t.state.Status("Applied %s transformation", b.Kind())
}

func (t *Transformer) startDragging(src geometry.Point2D, label string, pos geometry.Point2D) {
	path, err := t.builder.LegalPath(src)
	if err != nil {
		t.state.Status("Cannot drag corner %s: %v", label, err)
		return
	}
	t.src = src
	t.srcLabel = label
	t.path = path
	t.mode = ModeDragging
	t.dragPoint = path.Project(pos)
	t.state.Emit(EventDragChanged, t.dragPoint)
}

// endDrag drops the current drag but keeps the gesture's builder.
func (t *Transformer) endDrag() {
	t.path = nil
	t.srcLabel = ""
	if t.builder != nil && len(t.builder.Sources()) > 0 {
		t.mode = ModeWaitToSelect
	} else {
		t.reset()
	}
	t.state.Emit(EventDragChanged, nil)
}

func (t *Transformer) reset() {
	t.mode = ModeDisabled
	t.builder = nil
	t.shapeIdx = -1
	t.path = nil
	t.srcLabel = ""
}

func containsPoint(points []geometry.Point2D, p geometry.Point2D) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}
