package components

import (
	"github.com/google/uuid"

	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/physics"
)

// base carries what every component shares: identity, type tag, material,
// the owned shape and the weak parent reference.
type base struct {
	id       string
	kind     models.ComponentType
	material materials.Material
	shape    *physics.Shape
	parent   uint64
	attached bool
}

func newBase(id string, kind models.ComponentType, material materials.Material, radius float64) base {
	if id == "" {
		id = uuid.NewString()
	}
	b := base{id: id, kind: kind, material: material}
	if radius > 0 {
		b.shape = physics.NewCircle(radius, material)
	}
	return b
}

func (b *base) ID() string                   { return b.id }
func (b *base) Type() models.ComponentType   { return b.kind }
func (b *base) Material() materials.Material { return b.material }
func (b *base) Shape() *physics.Shape        { return b.shape }
func (b *base) Parent() (uint64, bool)       { return b.parent, b.attached }

func (b *base) Attach(parent uint64) {
	b.parent = parent
	b.attached = true
}

func (b *base) Detach() {
	b.parent = 0
	b.attached = false
}

// resolve picks m, or the named registry material when m is unset.
func resolve(reg *materials.Registry, m materials.Material, fallback string) materials.Material {
	if m.Name != "" {
		return m
	}
	if reg == nil {
		reg = materials.NewRegistry()
	}
	return reg.MustGet(fallback)
}
