// Package loadout turns declarative ship descriptions into equipped ships.
package loadout

import (
	"errors"
	"fmt"

	"github.com/zeusync/skirmish/internal/core/components"
	"github.com/zeusync/skirmish/internal/core/entity"
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/physics"
)

// HardpointSpec declares one hardpoint and, optionally, what starts mounted on it.
type HardpointSpec struct {
	ID     string           `yaml:"id"`
	Offset [2]float64       `yaml:"offset"`
	Angle  float64          `yaml:"angle,omitempty"`
	Mount  *components.Spec `yaml:"mount,omitempty"`
}

type ShipSpec struct {
	Name       string          `yaml:"name"`
	Position   [2]float64      `yaml:"position"`
	Angle      float64         `yaml:"angle,omitempty"`
	Mass       float64         `yaml:"mass,omitempty"`
	FireRate   float64         `yaml:"fire_rate,omitempty"`
	FireFrom   string          `yaml:"fire_from,omitempty"`
	Debug      bool            `yaml:"debug,omitempty"`
	Hardpoints []HardpointSpec `yaml:"hardpoints"`
}

// Validate checks the spec without building anything. All problems are reported.
func (s ShipSpec) Validate() error {
	var errs []error
	seen := make(map[string]struct{}, len(s.Hardpoints))
	for i, hp := range s.Hardpoints {
		if hp.ID == "" {
			errs = append(errs, fmt.Errorf("hardpoint #%d: %w: empty id", i, models.ErrInvalidArgument))
			continue
		}
		if _, dup := seen[hp.ID]; dup {
			errs = append(errs, fmt.Errorf("hardpoint %q: %w", hp.ID, models.ErrDuplicateHardpoint))
		}
		seen[hp.ID] = struct{}{}
		if hp.Mount != nil {
			if _, err := models.ParseComponentType(hp.Mount.Type); err != nil {
				errs = append(errs, fmt.Errorf("hardpoint %q: %w", hp.ID, err))
			}
		}
	}
	if s.FireRate < 0 {
		errs = append(errs, fmt.Errorf("ship %q: %w: negative fire rate", s.Name, models.ErrInvalidArgument))
	}
	return errors.Join(errs...)
}

// Deps are the collaborators a built ship is wired to.
type Deps struct {
	Materials *materials.Registry
	Clock     entity.Clock
	Events    bus.EventBus
	Logger    log.Log
}

// Build creates the ship, registers its hardpoints in order and mounts the
// declared components.
func Build(spec ShipSpec, deps Deps) (*entity.Ship, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	ship := entity.NewShip(entity.ShipOptions{
		Name:     spec.Name,
		Position: physics.Vec(spec.Position),
		Angle:    spec.Angle,
		Mass:     spec.Mass,
		Clock:    deps.Clock,
		Events:   deps.Events,
		Logger:   deps.Logger,
	})
	if spec.FireRate > 0 {
		ship.Weapon.FireRate = spec.FireRate
	}
	if spec.FireFrom != "" {
		ship.Weapon.Hardpoint = spec.FireFrom
	}
	ship.Debug.Enabled = spec.Debug

	var mounts []entity.Mount
	for _, hp := range spec.Hardpoints {
		if err := ship.AddHardpoint(models.NewHardpoint(hp.ID, physics.Vec(hp.Offset), hp.Angle)); err != nil {
			return nil, err
		}
		if hp.Mount == nil {
			continue
		}
		c, err := components.Build(deps.Materials, *hp.Mount)
		if err != nil {
			return nil, fmt.Errorf("hardpoint %q: %w", hp.ID, err)
		}
		mounts = append(mounts, entity.Mount{Hardpoint: hp.ID, Component: c})
	}
	if err := ship.Equip(mounts...); err != nil {
		return nil, err
	}
	return ship, nil
}

// Fighter is the stock player ship: a metal hull, a nose turret and a main
// engine pushing along +Y.
func Fighter(name string) ShipSpec {
	return ShipSpec{
		Name:     name,
		Position: [2]float64{0, 80},
		Debug:    true,
		Hardpoints: []HardpointSpec{
			{ID: "hull", Mount: &components.Spec{Type: "hull", ID: name + "-hull", Radius: components.DefaultHullRadius}},
			{ID: entity.MainTurret, Offset: [2]float64{0, 12}, Mount: &components.Spec{Type: "weapon", ID: name + "-turret", Radius: 2}},
			{ID: "mainEngine", Offset: [2]float64{0, -10}, Mount: &components.Spec{
				Type:      "thruster",
				ID:        name + "-engine",
				Magnitude: [2]float64{0, 150},
			}},
		},
	}
}
