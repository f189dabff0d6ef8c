package components

import (
	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/physics"
)

const (
	DefaultReload             = 0.75
	DefaultMuzzleSpeed        = 50
	DefaultProjectileRadius   = 2
	DefaultProjectileLifetime = 4

	// reloadEpsilon absorbs rounding in accumulated world time.
	reloadEpsilon = 1e-9
)

type TurretOptions struct {
	ID       string
	Material materials.Material
	// Radius of the turret mount; zero means no collision shape.
	Radius float64
	// Reload is the minimum time in seconds between two launches.
	Reload      float64
	MuzzleSpeed float64
	// Clearance is how far ahead of the muzzle projectiles appear, so they do
	// not spawn inside the firing ship.
	Clearance          float64
	ProjectileRadius   float64
	ProjectileLifetime float64
	ProjectileMaterial materials.Material
}

// Turret is a WEAPON component with its own reload gate.
type Turret struct {
	base
	opts     TurretOptions
	lastShot float64
	hasShot  bool
	shots    int
}

var _ models.Armament = (*Turret)(nil)

func NewTurret(reg *materials.Registry, opts TurretOptions) *Turret {
	if opts.Reload <= 0 {
		opts.Reload = DefaultReload
	}
	if opts.MuzzleSpeed <= 0 {
		opts.MuzzleSpeed = DefaultMuzzleSpeed
	}
	if opts.ProjectileRadius <= 0 {
		opts.ProjectileRadius = DefaultProjectileRadius
	}
	if opts.ProjectileLifetime <= 0 {
		opts.ProjectileLifetime = DefaultProjectileLifetime
	}
	if opts.Clearance <= 0 {
		opts.Clearance = (opts.Radius + opts.ProjectileRadius) * 1.5
	}
	material := resolve(reg, opts.Material, materials.Metal)
	opts.ProjectileMaterial = resolve(reg, opts.ProjectileMaterial, materials.Default)
	opts.Material = material
	return &Turret{
		base: newBase(opts.ID, models.Weapon, material, opts.Radius),
		opts: opts,
	}
}

// Fire launches a projectile along the muzzle heading unless the turret is
// still reloading.
func (t *Turret) Fire(muzzle models.Muzzle, now float64) (models.Launch, bool) {
	if t.hasShot && now-t.lastShot < t.opts.Reload-reloadEpsilon {
		return models.Launch{}, false
	}
	t.lastShot = now
	t.hasShot = true
	t.shots++

	dir := physics.Heading(muzzle.Angle)
	return models.Launch{
		Owner:    t.parent,
		Position: muzzle.Position.Add(dir.Mult(t.opts.Clearance)),
		Velocity: muzzle.Velocity.Add(dir.Mult(t.opts.MuzzleSpeed)),
		Angle:    muzzle.Angle,
		Radius:   t.opts.ProjectileRadius,
		Lifetime: t.opts.ProjectileLifetime,
		Material: t.opts.ProjectileMaterial,
	}, true
}

// Shots counts launches since construction.
func (t *Turret) Shots() int { return t.shots }

func (t *Turret) Reload() float64 { return t.opts.Reload }
