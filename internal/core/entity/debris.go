package entity

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/physics"
)

// NewDebris builds a drifting rock with a single circle at its origin.
func NewDebris(position cp.Vector, radius float64, material materials.Material, logger log.Log) *PhysicalEntity {
	p := NewPhysicalEntity(PhysicalOptions{
		Name:     "debris",
		Position: position,
		Mass:     physics.NewCircle(radius, material).Mass(),
		Radius:   radius,
		Logger:   logger,
	})
	p.AddShape(physics.NewCircle(radius, material), cp.Vector{}, 0)
	return p
}

// NewCompositeDebris builds one body from three circles: a large core and two
// smaller lobes behind it.
func NewCompositeDebris(position cp.Vector, material materials.Material, logger log.Log) *PhysicalEntity {
	core := physics.NewCircle(40, material)
	left := physics.NewCircle(20, material)
	right := physics.NewCircle(20, material)

	p := NewPhysicalEntity(PhysicalOptions{
		Name:     "composite",
		Position: position,
		Mass:     core.Mass() + left.Mass() + right.Mass(),
		Radius:   40,
		Logger:   logger,
	})
	p.AddShape(core, cp.Vector{}, 0)
	p.AddShape(left, cp.Vector{X: 32, Y: -32}, math.Pi)
	p.AddShape(right, cp.Vector{X: -32, Y: -32}, math.Pi)
	return p
}
