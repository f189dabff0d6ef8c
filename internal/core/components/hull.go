package components

import (
	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/models"
)

// DefaultHullRadius is used when HullOptions.Radius is zero.
const DefaultHullRadius = 10

type HullOptions struct {
	ID       string
	Material materials.Material
	Radius   float64
}

// Hull is the structural core of a ship. It always carries a circle shape.
type Hull struct {
	base
	radius float64
}

var _ models.Component = (*Hull)(nil)

// NewHull builds a hull. Material defaults to the registry's metal.
func NewHull(reg *materials.Registry, opts HullOptions) *Hull {
	if opts.Radius <= 0 {
		opts.Radius = DefaultHullRadius
	}
	material := resolve(reg, opts.Material, materials.Metal)
	return &Hull{
		base:   newBase(opts.ID, models.Hull, material, opts.Radius),
		radius: opts.Radius,
	}
}

func (h *Hull) Radius() float64 { return h.radius }
