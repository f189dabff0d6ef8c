package entity

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skirmish/internal/core/components"
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/physics"
)

// countingWeapon accepts every request and records the muzzles it saw.
type countingWeapon struct {
	parent   uint64
	attached bool
	muzzles  []models.Muzzle
}

func (w *countingWeapon) ID() string                   { return "counter" }
func (w *countingWeapon) Type() models.ComponentType   { return models.Weapon }
func (w *countingWeapon) Material() materials.Material { return materials.Material{} }
func (w *countingWeapon) Shape() *physics.Shape        { return nil }
func (w *countingWeapon) Parent() (uint64, bool)       { return w.parent, w.attached }
func (w *countingWeapon) Attach(parent uint64)         { w.parent, w.attached = parent, true }
func (w *countingWeapon) Detach()                      { w.parent, w.attached = 0, false }

func (w *countingWeapon) Fire(muzzle models.Muzzle, now float64) (models.Launch, bool) {
	w.muzzles = append(w.muzzles, muzzle)
	return models.Launch{Owner: w.parent, Position: muzzle.Position}, true
}

func armedShip(t *testing.T, clock Clock, events bus.EventBus, weapon models.Component) *Ship {
	t.Helper()
	s := NewShip(ShipOptions{Clock: clock, Events: events})
	require.NoError(t, s.AddHardpoint(models.NewHardpoint(MainTurret, cp.Vector{Y: 14}, 0)))
	if weapon != nil {
		require.NoError(t, s.MountHardpoint(MainTurret, weapon))
	}
	return s
}

func TestAttack_FireRate(t *testing.T) {
	clock := &manualClock{now: 3}
	weapon := &countingWeapon{}
	s := armedShip(t, clock, nil, weapon)

	require.Equal(t, FireDelegated, s.Weapon.Fire())
	require.Equal(t, 3.0, s.Weapon.LastFireTime)

	clock.now += s.Weapon.FireRate / 2
	require.Equal(t, FireRateLimited, s.Weapon.Fire())
	require.Equal(t, FireRateLimited, s.Weapon.Fire())
	require.Len(t, weapon.muzzles, 1)
	require.Equal(t, 3.0, s.Weapon.LastFireTime)

	clock.now = 3 + s.Weapon.FireRate
	require.Equal(t, FireDelegated, s.Weapon.Fire())
	require.Len(t, weapon.muzzles, 2)
	require.Equal(t, 2, s.Weapon.Delegations())
}

func TestAttack_FireEveryTick(t *testing.T) {
	clock := &manualClock{}
	weapon := &countingWeapon{}
	s := armedShip(t, clock, nil, weapon)

	const ticks = 600
	for i := 0; i < ticks; i++ {
		require.Equal(t, FireDelegated, s.Weapon.Fire(), "tick %d at t=%v", i, clock.now)
		clock.now += 1.0 / 60
	}
	require.Equal(t, ticks, s.Weapon.Delegations())
}

func TestAttack_FirstShotAtTimeZero(t *testing.T) {
	weapon := &countingWeapon{}
	s := armedShip(t, &manualClock{}, nil, weapon)

	require.Equal(t, FireDelegated, s.Weapon.Fire())
	require.Len(t, weapon.muzzles, 1)
}

func TestAttack_Unarmed(t *testing.T) {
	reg := materials.NewRegistry()
	tests := []struct {
		name  string
		setup func(t *testing.T, s *Ship)
	}{
		{
			name:  "No Hardpoint",
			setup: func(t *testing.T, s *Ship) {},
		},
		{
			name: "Empty Hardpoint",
			setup: func(t *testing.T, s *Ship) {
				require.NoError(t, s.AddHardpoint(models.NewHardpoint(MainTurret, cp.Vector{}, 0)))
			},
		},
		{
			name: "Not A Weapon",
			setup: func(t *testing.T, s *Ship) {
				require.NoError(t, s.AddHardpoint(models.NewHardpoint(MainTurret, cp.Vector{}, 0)))
				require.NoError(t, s.MountHardpoint(MainTurret, components.NewHull(reg, components.HullOptions{})))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewShip(ShipOptions{Clock: &manualClock{now: 10}})
			tt.setup(t, s)
			require.Equal(t, FireUnarmed, s.Weapon.Fire())
			require.Equal(t, FireUnarmed, s.Weapon.Fire(), "unarmed pulls are not rate limited")
			require.Zero(t, s.Weapon.LastFireTime)
			require.Zero(t, s.Weapon.Delegations())
		})
	}
}

func TestAttack_MuzzleFollowsBody(t *testing.T) {
	weapon := &countingWeapon{}
	s := armedShip(t, &manualClock{}, nil, weapon)
	s.SetPosition(cp.Vector{X: 100, Y: 50})
	s.SetVelocity(cp.Vector{X: 3, Y: 4})

	require.Equal(t, FireDelegated, s.Weapon.Fire())
	muzzle := weapon.muzzles[0]
	require.True(t, physics.NearlyEqual(cp.Vector{X: 100, Y: 64}, muzzle.Position, 1e-9), "%v", muzzle.Position)
	require.Equal(t, cp.Vector{X: 3, Y: 4}, muzzle.Velocity)
}

func TestAttack_PublishesLaunch(t *testing.T) {
	events := bus.New()
	var fired []FireEvent
	var launches []models.Launch
	_, err := events.Subscribe(bus.WeaponFired, func(ev bus.Event) error {
		fired = append(fired, ev.Data().(FireEvent))
		return nil
	})
	require.NoError(t, err)
	_, err = events.Subscribe(bus.ProjectileLaunched, func(ev bus.Event) error {
		launches = append(launches, ev.Data().(models.Launch))
		return nil
	})
	require.NoError(t, err)

	clock := &manualClock{now: 1}
	turret := components.NewTurret(materials.NewRegistry(), components.TurretOptions{ID: "gun"})
	s := armedShip(t, clock, events, turret)

	require.Equal(t, FireDelegated, s.Weapon.Fire())
	clock.now += 0.1
	require.Equal(t, FireDelegated, s.Weapon.Fire(), "module gate passed, turret still reloading")

	require.Equal(t, []FireEvent{
		{Hardpoint: MainTurret, Component: "gun", Launched: true},
		{Hardpoint: MainTurret, Component: "gun", Launched: false},
	}, fired)
	require.Len(t, launches, 1)
	require.Equal(t, s.ID(), launches[0].Owner)
	require.True(t, physics.NearlyEqual(cp.Vector{Y: 17}, launches[0].Position, 1e-9), "%v", launches[0].Position)
	require.True(t, physics.NearlyEqual(cp.Vector{Y: components.DefaultMuzzleSpeed}, launches[0].Velocity, 1e-9))
	require.Equal(t, 1, turret.Shots())
}

func TestFireOutcome_String(t *testing.T) {
	require.Equal(t, "delegated", FireDelegated.String())
	require.Equal(t, "rate-limited", FireRateLimited.String())
	require.Equal(t, "unarmed", FireUnarmed.String())
}
