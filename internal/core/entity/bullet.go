package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/physics"
)

// BulletMass keeps projectiles light enough not to shove their target around.
const BulletMass = 0.05

// Bullet is a short lived projectile spawned from a weapon launch.
type Bullet struct {
	*PhysicalEntity

	Owner   uint64
	Born    float64
	Expires float64
	shape   *physics.Shape
}

// NewBullet builds the projectile described by launch, fired at world time now.
func NewBullet(launch models.Launch, now float64, logger log.Log) *Bullet {
	base := NewPhysicalEntity(PhysicalOptions{
		Name:     "bullet",
		Position: launch.Position,
		Angle:    launch.Angle,
		Velocity: launch.Velocity,
		Mass:     BulletMass,
		Radius:   launch.Radius,
		Logger:   logger,
	})
	b := &Bullet{
		PhysicalEntity: base,
		Owner:          launch.Owner,
		Born:           now,
		Expires:        now + launch.Lifetime,
		shape:          physics.NewCircle(launch.Radius, launch.Material),
	}
	b.AddShape(b.shape, cp.Vector{}, 0)
	return b
}

// Expired reports whether the bullet has outlived its lifetime at now.
func (b *Bullet) Expired(now float64) bool {
	return now >= b.Expires
}
