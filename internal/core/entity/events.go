package entity

import "github.com/zeusync/skirmish/internal/core/models"

// MountEvent is the payload of hardpoint.mounted and hardpoint.unmounted.
type MountEvent struct {
	Hardpoint string
	Component models.Component
}

// FireEvent is the payload of weapon.fired.
type FireEvent struct {
	Hardpoint string
	Component string
	// Launched is false when the weapon declined, for example while reloading.
	Launched bool
}
