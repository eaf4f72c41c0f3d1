// Package app holds the editor state and the pointer-driven controllers that
// turn drags into transformations. Nothing here depends on a UI toolkit:
// the canvas forwards positions in world coordinates.
package app

import (
	"fmt"
	"log"
	"sync"

	"shape-transformer/internal/builder"
	"shape-transformer/internal/shape"
	"shape-transformer/pkg/geometry"
)

// State holds the shapes on the canvas and the selected transformation kind.
type State struct {
	mu sync.RWMutex

	shapes []shape.Polygon
	kind   builder.Kind

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventShapeAdded EventType = iota
	EventShapeTransformed
	EventShapesCleared
	EventKindChanged
	EventDragChanged
	EventStatus
)

// EventListener is a callback for application events.
type EventListener func(data interface{})

// ShapeEvent is the payload of shape events.
type ShapeEvent struct {
	Index int
	Shape shape.Polygon
}

// NewState creates an empty state using translation as the default kind.
func NewState() *State {
	return &State{
		kind:      builder.KindTranslation,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// Status reports a user-facing message.
func (s *State) Status(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	log.Printf("status: %s", msg)
	s.Emit(EventStatus, msg)
}

// Kind returns the transformation kind new gestures use.
func (s *State) Kind() builder.Kind {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kind
}

// SetKind selects the transformation kind for the next gesture.
func (s *State) SetKind(kind builder.Kind) {
	s.mu.Lock()
	s.kind = kind
	s.mu.Unlock()
	s.Emit(EventKindChanged, kind)
}

// NewBuilder returns a fresh builder of the selected kind. pivot is used by
// rotation builders.
func (s *State) NewBuilder(pivot geometry.Point2D) (builder.Builder, error) {
	return builder.NewFor(s.Kind(), pivot)
}

// AddShape appends a shape and returns its index.
func (s *State) AddShape(p shape.Polygon) int {
	s.mu.Lock()
	s.shapes = append(s.shapes, p)
	idx := len(s.shapes) - 1
	s.mu.Unlock()

	log.Printf("Added %s", p)
	s.Emit(EventShapeAdded, ShapeEvent{Index: idx, Shape: p})
	return idx
}

// ReplaceShape swaps the shape at idx for p.
func (s *State) ReplaceShape(idx int, p shape.Polygon) error {
	s.mu.Lock()
	if idx < 0 || idx >= len(s.shapes) {
		s.mu.Unlock()
		return fmt.Errorf("shape index %d out of range", idx)
	}
	s.shapes[idx] = p
	s.mu.Unlock()

	s.Emit(EventShapeTransformed, ShapeEvent{Index: idx, Shape: p})
	return nil
}

// Shapes returns a copy of the shape list.
func (s *State) Shapes() []shape.Polygon {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shape.Polygon(nil), s.shapes...)
}

// Shape returns the shape at idx.
func (s *State) Shape(idx int) (shape.Polygon, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx < 0 || idx >= len(s.shapes) {
		return shape.Polygon{}, false
	}
	return s.shapes[idx], true
}

// Clear removes every shape.
func (s *State) Clear() {
	s.mu.Lock()
	s.shapes = nil
	s.mu.Unlock()
	s.Emit(EventShapesCleared, nil)
}

// ShapeAt returns the most recently added shape whose interior contains pos.
func (s *State) ShapeAt(pos geometry.Point2D) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if s.shapes[i].Contains(pos) {
			return i, true
		}
	}
	return -1, false
}

// CornerAt finds the corner handle under pos, preferring the most recently
// added shape. It returns the shape and corner indices.
func (s *State) CornerAt(pos geometry.Point2D, radius float64) (shapeIdx, cornerIdx int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := len(s.shapes) - 1; i >= 0; i-- {
		if c, hit := s.shapes[i].CornerAt(pos, radius); hit {
			return i, c, true
		}
	}
	return -1, -1, false
}
