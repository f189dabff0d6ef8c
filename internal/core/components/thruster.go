package components

import (
	"github.com/jakecoffman/cp"

	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/models"
)

type ThrusterOptions struct {
	ID        string
	Material  materials.Material
	Offset    cp.Vector
	Magnitude cp.Vector
	// Radius of the thruster housing; zero means no collision shape.
	Radius float64
}

// Thruster contributes one entry to its entity's linear thrust aggregate.
type Thruster struct {
	base
	offset    cp.Vector
	magnitude cp.Vector
}

var _ models.ThrustSource = (*Thruster)(nil)

func NewThruster(reg *materials.Registry, opts ThrusterOptions) *Thruster {
	material := resolve(reg, opts.Material, materials.Metal)
	return &Thruster{
		base:      newBase(opts.ID, models.Thruster, material, opts.Radius),
		offset:    opts.Offset,
		magnitude: opts.Magnitude,
	}
}

func (t *Thruster) Offset() cp.Vector    { return t.offset }
func (t *Thruster) Magnitude() cp.Vector { return t.magnitude }
