package main

import (
	"github.com/zeusync/skirmish/internal/config"
	"github.com/zeusync/skirmish/internal/core/entity"
)

// scriptedPilot stands in for keyboard input: full ahead, weaving, trigger held.
type scriptedPilot struct {
	cfg config.PilotConfig
}

func newScriptedPilot(cfg config.PilotConfig) *scriptedPilot {
	return &scriptedPilot{cfg: cfg}
}

func (p *scriptedPilot) Sample(ship *entity.Ship, now float64) {
	ship.Thrust.SetForward(true)
	ship.Thrust.SetBoost(p.cfg.Boost)
	if p.cfg.Weave > 0 {
		left := int(now/p.cfg.Weave)%2 == 0
		ship.Thrust.SetLeft(left)
		ship.Thrust.SetRight(!left)
	}
	if p.cfg.Fire {
		ship.Weapon.Fire()
	}
}
