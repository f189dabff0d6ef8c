package models

import (
	"iter"

	"github.com/jakecoffman/cp"
)

// Hardpoint is a named attachment slot holding at most one component.
type Hardpoint struct {
	id      string
	offset  cp.Vector
	angle   float64
	mounted Component
}

func NewHardpoint(id string, offset cp.Vector, angle float64) *Hardpoint {
	return &Hardpoint{id: id, offset: offset, angle: angle}
}

func (h *Hardpoint) ID() string        { return h.id }
func (h *Hardpoint) Offset() cp.Vector { return h.offset }
func (h *Hardpoint) Angle() float64    { return h.angle }

// Mounted returns the current component or nil.
func (h *Hardpoint) Mounted() Component { return h.mounted }

func (h *Hardpoint) Occupied() bool { return h.mounted != nil }

// Mount places c in the slot. An occupied slot is never overwritten.
func (h *Hardpoint) Mount(c Component) error {
	if c == nil {
		return ErrInvalidArgument
	}
	if h.mounted != nil {
		return ErrOccupiedHardpoint
	}
	h.mounted = c
	return nil
}

// Unmount clears the slot and hands the component back, or nil if empty.
func (h *Hardpoint) Unmount() Component {
	c := h.mounted
	h.mounted = nil
	return c
}

// Hardpoints is an entity's hardpoint table. Iteration follows registration order.
type Hardpoints struct {
	order []*Hardpoint
	index map[string]*Hardpoint
}

func NewHardpoints() *Hardpoints {
	return &Hardpoints{index: make(map[string]*Hardpoint)}
}

func (t *Hardpoints) Add(h *Hardpoint) error {
	if h == nil || h.id == "" {
		return ErrInvalidArgument
	}
	if _, exists := t.index[h.id]; exists {
		return ErrDuplicateHardpoint
	}
	t.index[h.id] = h
	t.order = append(t.order, h)
	return nil
}

func (t *Hardpoints) Get(id string) (*Hardpoint, bool) {
	h, ok := t.index[id]
	return h, ok
}

func (t *Hardpoints) Len() int { return len(t.order) }

// All yields hardpoints in registration order.
func (t *Hardpoints) All() iter.Seq[*Hardpoint] {
	return func(yield func(*Hardpoint) bool) {
		for _, h := range t.order {
			if !yield(h) {
				return
			}
		}
	}
}

// Mounted yields occupied hardpoints whose component has type typ.
func (t *Hardpoints) Mounted(typ ComponentType) iter.Seq2[*Hardpoint, Component] {
	return func(yield func(*Hardpoint, Component) bool) {
		for _, h := range t.order {
			if h.mounted == nil || h.mounted.Type() != typ {
				continue
			}
			if !yield(h, h.mounted) {
				return
			}
		}
	}
}
