package models

import (
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"

	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/physics"
)

// ComponentType tags what a mounted component can do. The set is closed: a
// new category means a new constant here.
type ComponentType uint8

const (
	Hull ComponentType = iota + 1
	Thruster
	Weapon
)

var componentTypeNames = map[ComponentType]string{
	Hull:     "HULL",
	Thruster: "THRUSTER",
	Weapon:   "WEAPON",
}

func (t ComponentType) String() string {
	if name, ok := componentTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ComponentType(%d)", uint8(t))
}

// ParseComponentType resolves a config name, case-insensitively.
func ParseComponentType(s string) (ComponentType, error) {
	for t, name := range componentTypeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown component type %q", ErrInvalidArgument, s)
}

// Component is a mountable physical unit. The parent reference is the
// numeric id of the mounting entity; it is a lookup key, not ownership.
type Component interface {
	ID() string
	Type() ComponentType
	Material() materials.Material
	// Shape returns the collision shape owned by the component, or nil.
	Shape() *physics.Shape

	Parent() (uint64, bool)
	Attach(parent uint64)
	Detach()
}

// ThrustSource is implemented by THRUSTER components.
type ThrustSource interface {
	Component
	// Offset is where the force is applied, in the mounting entity's frame.
	Offset() cp.Vector
	// Magnitude is the force vector at full throttle, in the entity frame.
	Magnitude() cp.Vector
}

// LinearThrust is one entry of an entity's linear thrust aggregate.
type LinearThrust struct {
	Offset    cp.Vector
	Magnitude cp.Vector
}

// Muzzle is the world-frame placement a weapon fires from.
type Muzzle struct {
	Position cp.Vector
	Angle    float64
	// Velocity of the firing body, inherited by projectiles.
	Velocity cp.Vector
}

// Launch describes a projectile a weapon wants spawned.
type Launch struct {
	Owner    uint64
	Position cp.Vector
	Velocity cp.Vector
	Angle    float64
	Radius   float64
	Lifetime float64
	Material materials.Material
}

// Armament is implemented by WEAPON components. Fire is called at most once
// per accepted trigger pull; the weapon may still decline, for example while
// reloading, by returning false.
type Armament interface {
	Component
	Fire(muzzle Muzzle, now float64) (Launch, bool)
}
