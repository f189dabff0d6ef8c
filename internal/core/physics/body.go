package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

var _ ShapeService = (*Body)(nil)

type placement struct {
	Placement
	engine *cp.Shape
}

// Body is a rigid body handle plus its shape list. It may be built before it
// is added to a Space; shapes registered while detached reach the engine when
// the body is attached.
type Body struct {
	body       *cp.Body
	space      *Space
	placements []*placement
	owner      uint64

	LinearDamping  float64
	AngularDamping float64
}

// NewBody creates a dynamic body with a fixed mass and moment of inertia.
func NewBody(mass, moment float64) *Body {
	return &Body{body: cp.NewBody(mass, moment)}
}

// NewCircleBody creates a body whose moment is that of a solid disc.
func NewCircleBody(mass, radius float64) *Body {
	return NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
}

// SetOwner records the entity id stored on every engine shape of this body,
// so collision callbacks can resolve shapes back to entities.
func (b *Body) SetOwner(id uint64) {
	b.owner = id
	for _, p := range b.placements {
		p.engine.UserData = id
	}
}

func (b *Body) Owner() uint64 { return b.owner }

func (b *Body) AddShape(shape *Shape, offset cp.Vector, angle float64) bool {
	if shape == nil || b.indexOf(shape) >= 0 {
		return false
	}
	p := &placement{
		Placement: Placement{Shape: shape, Offset: offset, Angle: angle},
		engine:    shape.build(b.body, offset, b.owner),
	}
	b.placements = append(b.placements, p)
	if b.space != nil {
		b.space.space.AddShape(p.engine)
	}
	return true
}

func (b *Body) RemoveShape(shape *Shape) bool {
	i := b.indexOf(shape)
	if i < 0 {
		return false
	}
	p := b.placements[i]
	if b.space != nil {
		b.space.space.RemoveShape(p.engine)
	}
	b.placements = append(b.placements[:i], b.placements[i+1:]...)
	return true
}

func (b *Body) HasShape(shape *Shape) bool {
	return b.indexOf(shape) >= 0
}

func (b *Body) Shapes() []Placement {
	out := make([]Placement, len(b.placements))
	for i, p := range b.placements {
		out[i] = p.Placement
	}
	return out
}

func (b *Body) indexOf(shape *Shape) int {
	for i, p := range b.placements {
		if p.Shape == shape {
			return i
		}
	}
	return -1
}

// Space returns the space the body is attached to, or nil.
func (b *Body) Space() *Space { return b.space }

// Engine exposes the underlying cp body for systems that need raw access.
func (b *Body) Engine() *cp.Body { return b.body }

func (b *Body) Position() cp.Vector          { return b.body.Position() }
func (b *Body) SetPosition(pos cp.Vector)    { b.body.SetPosition(pos) }
func (b *Body) Angle() float64               { return b.body.Angle() }
func (b *Body) SetAngle(angle float64)       { b.body.SetAngle(angle) }
func (b *Body) Velocity() cp.Vector          { return b.body.Velocity() }
func (b *Body) SetVelocity(v cp.Vector)      { b.body.SetVelocity(v.X, v.Y) }
func (b *Body) AngularVelocity() float64     { return b.body.AngularVelocity() }
func (b *Body) SetAngularVelocity(w float64) { b.body.SetAngularVelocity(w) }
func (b *Body) Mass() float64                { return b.body.Mass() }

// LocalToWorld converts a body-local point to world coordinates.
func (b *Body) LocalToWorld(local cp.Vector) cp.Vector {
	return b.body.LocalToWorld(local)
}

// ApplyForce applies a world-frame force at a body-local point for the next step.
func (b *Body) ApplyForce(force, local cp.Vector) {
	b.body.ApplyForceAtWorldPoint(force, b.body.LocalToWorld(local))
}

// Integrate applies damping for dt seconds: each damping coefficient is the
// fraction of velocity lost per second.
func (b *Body) Integrate(dt float64) {
	if b.LinearDamping > 0 {
		v := b.body.Velocity().Mult(math.Pow(1-b.LinearDamping, dt))
		b.body.SetVelocity(v.X, v.Y)
	}
	if b.AngularDamping > 0 {
		b.body.SetAngularVelocity(b.body.AngularVelocity() * math.Pow(1-b.AngularDamping, dt))
	}
}

// Snapshot copies the body state for readers outside the tick.
func (b *Body) Snapshot() BodySnapshot {
	snap := BodySnapshot{
		Position:        b.Position(),
		Angle:           b.Angle(),
		Velocity:        b.Velocity(),
		AngularVelocity: b.AngularVelocity(),
		Shapes:          make([]ShapeSnapshot, len(b.placements)),
	}
	for i, p := range b.placements {
		snap.Shapes[i] = ShapeSnapshot{
			Radius:   p.Shape.Radius,
			Offset:   p.Offset,
			Angle:    p.Angle,
			Material: p.Shape.Material.Name,
		}
	}
	return snap
}
