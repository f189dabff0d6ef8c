package entity

import (
	"github.com/EngoEngine/ecs"
	"github.com/jakecoffman/cp"

	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/physics"
)

// DefaultMass of a body when PhysicalOptions.Mass is zero.
const DefaultMass = 1

type PhysicalOptions struct {
	Name     string
	Position cp.Vector
	Angle    float64
	Velocity cp.Vector
	Mass     float64
	// Radius of gyration used for the moment of inertia; defaults to 10.
	Radius float64
	Logger log.Log
}

// PhysicalEntity is the base of every simulated object: an ecs identity and a
// rigid body whose shape list is managed through the ShapeService methods.
type PhysicalEntity struct {
	ecs.BasicEntity
	*physics.Body

	Name   string
	logger log.Log
}

// Physical is implemented by every entity the world can simulate.
type Physical interface {
	Physical() *PhysicalEntity
}

var (
	_ Physical             = (*PhysicalEntity)(nil)
	_ physics.ShapeService = (*PhysicalEntity)(nil)
)

func NewPhysicalEntity(opts PhysicalOptions) *PhysicalEntity {
	if opts.Mass <= 0 {
		opts.Mass = DefaultMass
	}
	if opts.Radius <= 0 {
		opts.Radius = 10
	}
	if opts.Logger == nil {
		opts.Logger = log.Nop()
	}

	p := &PhysicalEntity{
		BasicEntity: ecs.NewBasic(),
		Body:        physics.NewCircleBody(opts.Mass, opts.Radius),
		Name:        opts.Name,
	}
	p.Body.SetOwner(p.ID())
	p.SetPosition(opts.Position)
	p.SetAngle(opts.Angle)
	p.SetVelocity(opts.Velocity)
	p.logger = opts.Logger.With(log.Entity(p.ID()))
	return p
}

func (p *PhysicalEntity) Physical() *PhysicalEntity { return p }

// AddShape registers shape at a local placement. Pass a zero offset and angle
// to place it at the body origin.
func (p *PhysicalEntity) AddShape(shape *physics.Shape, offset cp.Vector, angle float64) bool {
	if !p.Body.AddShape(shape, offset, angle) {
		return false
	}
	if p.logger.Enabled(log.LevelDebug) {
		p.logger.Debug("shape added",
			log.Float64("radius", shape.Radius),
			log.Vec("offset", offset.X, offset.Y),
			log.Float64("angle", angle),
		)
	}
	return true
}

// RemoveShape unregisters shape. It is a silent no-op for unknown shapes.
func (p *PhysicalEntity) RemoveShape(shape *physics.Shape) bool {
	if !p.Body.RemoveShape(shape) {
		return false
	}
	p.logger.Debug("shape removed", log.Float64("radius", shape.Radius))
	return true
}

// Logger returns the entity scoped logger.
func (p *PhysicalEntity) Logger() log.Log { return p.logger }
