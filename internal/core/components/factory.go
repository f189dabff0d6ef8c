package components

import (
	"fmt"

	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/physics"
)

// Spec is the declarative form of a component, as found in config files.
// Fields that do not apply to the type are ignored.
type Spec struct {
	Type     string  `yaml:"type"`
	ID       string  `yaml:"id,omitempty"`
	Material string  `yaml:"material,omitempty"`
	Radius   float64 `yaml:"radius,omitempty"`

	// thruster
	Offset    [2]float64 `yaml:"offset,omitempty"`
	Magnitude [2]float64 `yaml:"magnitude,omitempty"`

	// turret
	Reload             float64 `yaml:"reload,omitempty"`
	MuzzleSpeed        float64 `yaml:"muzzle_speed,omitempty"`
	Clearance          float64 `yaml:"clearance,omitempty"`
	ProjectileRadius   float64 `yaml:"projectile_radius,omitempty"`
	ProjectileLifetime float64 `yaml:"projectile_lifetime,omitempty"`
	ProjectileMaterial string  `yaml:"projectile_material,omitempty"`
}

// Build instantiates spec against the registry.
func Build(reg *materials.Registry, spec Spec) (models.Component, error) {
	typ, err := models.ParseComponentType(spec.Type)
	if err != nil {
		return nil, err
	}
	material, err := lookup(reg, spec.Material)
	if err != nil {
		return nil, fmt.Errorf("component %q: %w", spec.ID, err)
	}

	switch typ {
	case models.Hull:
		return NewHull(reg, HullOptions{ID: spec.ID, Material: material, Radius: spec.Radius}), nil
	case models.Thruster:
		if spec.Magnitude == [2]float64{} {
			return nil, fmt.Errorf("thruster %q: %w: zero magnitude", spec.ID, models.ErrInvalidArgument)
		}
		return NewThruster(reg, ThrusterOptions{
			ID:        spec.ID,
			Material:  material,
			Offset:    physics.Vec(spec.Offset),
			Magnitude: physics.Vec(spec.Magnitude),
			Radius:    spec.Radius,
		}), nil
	case models.Weapon:
		projectile, err := lookup(reg, spec.ProjectileMaterial)
		if err != nil {
			return nil, fmt.Errorf("turret %q: %w", spec.ID, err)
		}
		return NewTurret(reg, TurretOptions{
			ID:                 spec.ID,
			Material:           material,
			Radius:             spec.Radius,
			Reload:             spec.Reload,
			MuzzleSpeed:        spec.MuzzleSpeed,
			Clearance:          spec.Clearance,
			ProjectileRadius:   spec.ProjectileRadius,
			ProjectileLifetime: spec.ProjectileLifetime,
			ProjectileMaterial: projectile,
		}), nil
	default:
		return nil, fmt.Errorf("%w: no builder for %s", models.ErrInvalidArgument, typ)
	}
}

// lookup resolves a material name; the empty name leaves the choice to the
// component constructor.
func lookup(reg *materials.Registry, name string) (materials.Material, error) {
	if name == "" {
		return materials.Material{}, nil
	}
	if reg == nil {
		reg = materials.NewRegistry()
	}
	return reg.Lookup(name)
}
