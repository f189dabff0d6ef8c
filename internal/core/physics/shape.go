package physics

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/zeusync/skirmish/internal/core/materials"
)

// Shape describes a circle collision primitive. It is owned by the component
// that created it; bodies only hold a reference while it is registered and
// build the engine primitive from it.
type Shape struct {
	Radius   float64
	Material materials.Material
}

// NewCircle returns a circle shape descriptor.
func NewCircle(radius float64, material materials.Material) *Shape {
	return &Shape{Radius: radius, Material: material}
}

// Area of the circle.
func (s *Shape) Area() float64 {
	return math.Pi * s.Radius * s.Radius
}

// Mass estimated from the material density.
func (s *Shape) Mass() float64 {
	return s.Area() * s.Material.Density
}

// build creates the engine primitive for this shape on body at offset.
func (s *Shape) build(body *cp.Body, offset cp.Vector, owner uint64) *cp.Shape {
	engine := cp.NewCircle(body, s.Radius, offset)
	engine.SetFriction(s.Material.Friction)
	engine.SetElasticity(s.Material.Elasticity)
	engine.UserData = owner
	return engine
}
