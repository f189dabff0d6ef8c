package entity

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skirmish/internal/core/components"
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/physics"
)

type manualClock struct{ now float64 }

func (c *manualClock) Now() float64 { return c.now }

func newTestShip(t *testing.T, hardpoints ...*models.Hardpoint) *Ship {
	t.Helper()
	s := NewShip(ShipOptions{})
	for _, hp := range hardpoints {
		require.NoError(t, s.AddHardpoint(hp))
	}
	return s
}

// requireShapesMatchMounts checks the body carries exactly the shapes of the
// mounted components.
func requireShapesMatchMounts(t *testing.T, s *Ship) {
	t.Helper()
	want := make(map[*physics.Shape]struct{})
	for hp := range s.Hardpoints() {
		if c := hp.Mounted(); c != nil && c.Shape() != nil {
			want[c.Shape()] = struct{}{}
		}
	}
	placed := s.Shapes()
	got := make(map[*physics.Shape]struct{}, len(placed))
	for _, p := range placed {
		got[p.Shape] = struct{}{}
	}
	require.Len(t, placed, len(want), "no duplicate registrations")
	require.Equal(t, want, got)
}

func TestNewShip_Defaults(t *testing.T) {
	s := NewShip(ShipOptions{})
	require.Equal(t, DefaultShipName, s.Name)
	require.Equal(t, ShipLinearDamping, s.LinearDamping)
	require.Equal(t, ShipAngularDamping, s.AngularDamping)
	require.Equal(t, DefaultTurnThrust, s.Thrust.Turn)
	require.Equal(t, float64(DefaultBankThrust), s.Thrust.Bank)
	require.Empty(t, s.LinearThrust())
	require.Equal(t, DefaultFireRate, s.Weapon.FireRate)
	require.Equal(t, MainTurret, s.Weapon.Hardpoint)
	require.Empty(t, s.Shapes())
	require.Equal(t, s.ID(), s.Owner())
}

func TestShip_AddHardpoint(t *testing.T) {
	s := newTestShip(t, models.NewHardpoint("hull", cp.Vector{}, 0))

	err := s.AddHardpoint(models.NewHardpoint("hull", cp.Vector{X: 1}, 0))
	require.ErrorIs(t, err, models.ErrDuplicateHardpoint)

	var hpErr *models.HardpointError
	require.True(t, errors.As(err, &hpErr))
	require.Equal(t, "add hardpoint", hpErr.Op)
	require.Equal(t, "hull", hpErr.Hardpoint)
	require.Equal(t, DefaultShipName, hpErr.Entity)

	count := 0
	for range s.Hardpoints() {
		count++
	}
	require.Equal(t, 1, count)

	hp, ok := s.Hardpoint("hull")
	require.True(t, ok)
	require.Equal(t, cp.Vector{}, hp.Offset(), "first hardpoint kept")

	require.ErrorIs(t, s.AddHardpoint(nil), models.ErrInvalidArgument)
}

func TestShip_MountHardpoint(t *testing.T) {
	reg := materials.NewRegistry()

	t.Run("Placement", func(t *testing.T) {
		s := newTestShip(t, models.NewHardpoint("wing", cp.Vector{X: 5, Y: -5}, 0.5))
		hull := components.NewHull(reg, components.HullOptions{Radius: 4})

		require.NoError(t, s.MountHardpoint("wing", hull))

		shapes := s.Shapes()
		require.Len(t, shapes, 1)
		require.Same(t, hull.Shape(), shapes[0].Shape)
		require.Equal(t, cp.Vector{X: 5, Y: -5}, shapes[0].Offset)
		require.Equal(t, 0.5, shapes[0].Angle)

		parent, ok := hull.Parent()
		require.True(t, ok)
		require.Equal(t, s.ID(), parent)
	})

	t.Run("Invalid Arguments", func(t *testing.T) {
		s := newTestShip(t, models.NewHardpoint("hull", cp.Vector{}, 0))
		hull := components.NewHull(reg, components.HullOptions{})

		require.ErrorIs(t, s.MountHardpoint("", hull), models.ErrInvalidArgument)
		require.ErrorIs(t, s.MountHardpoint("hull", nil), models.ErrInvalidArgument)
		require.ErrorIs(t, s.MountHardpoint("missing", hull), models.ErrUnknownHardpoint)
		require.Empty(t, s.Shapes())

		_, attached := hull.Parent()
		require.False(t, attached)
	})

	t.Run("Occupied", func(t *testing.T) {
		s := newTestShip(t, models.NewHardpoint("hull", cp.Vector{}, 0))
		first := components.NewHull(reg, components.HullOptions{ID: "first"})
		second := components.NewHull(reg, components.HullOptions{ID: "second"})

		require.NoError(t, s.MountHardpoint("hull", first))
		before := s.Shapes()

		err := s.MountHardpoint("hull", second)
		require.ErrorIs(t, err, models.ErrOccupiedHardpoint)

		hp, _ := s.Hardpoint("hull")
		require.Same(t, first, hp.Mounted())
		require.Equal(t, before, s.Shapes())
		_, attached := second.Parent()
		require.False(t, attached)
	})

	t.Run("Component Already Attached", func(t *testing.T) {
		s := newTestShip(t,
			models.NewHardpoint("a", cp.Vector{}, 0),
			models.NewHardpoint("b", cp.Vector{X: 3}, 0),
		)
		hull := components.NewHull(reg, components.HullOptions{})

		require.NoError(t, s.MountHardpoint("a", hull))
		require.ErrorIs(t, s.MountHardpoint("b", hull), models.ErrComponentAttached)

		hp, _ := s.Hardpoint("b")
		require.False(t, hp.Occupied())
		requireShapesMatchMounts(t, s)
	})

	t.Run("Equip Stops At First Failure", func(t *testing.T) {
		s := newTestShip(t, models.NewHardpoint("hull", cp.Vector{}, 0))
		hull := components.NewHull(reg, components.HullOptions{})
		spare := components.NewHull(reg, components.HullOptions{})

		err := s.Equip(
			Mount{Hardpoint: "hull", Component: hull},
			Mount{Hardpoint: "nope", Component: spare},
			Mount{Hardpoint: "hull", Component: spare},
		)
		require.ErrorIs(t, err, models.ErrUnknownHardpoint)
		hp, _ := s.Hardpoint("hull")
		require.Same(t, hull, hp.Mounted())
	})
}

func TestShip_UnmountHardpoint(t *testing.T) {
	reg := materials.NewRegistry()

	t.Run("Round Trip", func(t *testing.T) {
		s := newTestShip(t, models.NewHardpoint("hull", cp.Vector{}, 0))
		hull := components.NewHull(reg, components.HullOptions{})
		shape := hull.Shape()

		require.NoError(t, s.MountHardpoint("hull", hull))
		require.True(t, s.HasShape(shape))

		got, err := s.UnmountHardpoint("hull")
		require.NoError(t, err)
		require.Same(t, hull, got)
		require.False(t, s.HasShape(shape))
		require.Same(t, shape, hull.Shape(), "component keeps its shape")
		require.Equal(t, float64(components.DefaultHullRadius), shape.Radius)

		_, attached := hull.Parent()
		require.False(t, attached)

		// and it can go straight back on
		require.NoError(t, s.MountHardpoint("hull", hull))
		require.True(t, s.HasShape(shape))
	})

	t.Run("Empty", func(t *testing.T) {
		s := newTestShip(t,
			models.NewHardpoint("hull", cp.Vector{}, 0),
			models.NewHardpoint("spare", cp.Vector{X: 8}, 0),
		)
		require.NoError(t, s.MountHardpoint("hull", components.NewHull(reg, components.HullOptions{})))
		before := s.Shapes()

		got, err := s.UnmountHardpoint("spare")
		require.NoError(t, err)
		require.Nil(t, got)
		require.Equal(t, before, s.Shapes())
	})

	t.Run("Unknown", func(t *testing.T) {
		s := newTestShip(t)
		got, err := s.UnmountHardpoint("ghost")
		require.ErrorIs(t, err, models.ErrUnknownHardpoint)
		require.Nil(t, got)
	})

	t.Run("Empty ID", func(t *testing.T) {
		s := newTestShip(t, models.NewHardpoint("hull", cp.Vector{}, 0))
		_, err := s.UnmountHardpoint("")
		require.ErrorIs(t, err, models.ErrInvalidArgument)
		require.ErrorIs(t, s.MountHardpoint("", components.NewHull(reg, components.HullOptions{})), models.ErrInvalidArgument)
	})
}

func TestShip_LinearThrust(t *testing.T) {
	reg := materials.NewRegistry()
	s := newTestShip(t,
		models.NewHardpoint("main", cp.Vector{}, 0),
		models.NewHardpoint("hull", cp.Vector{}, 0),
		models.NewHardpoint("side", cp.Vector{X: 5, Y: -5}, 0),
	)
	main := components.NewThruster(reg, components.ThrusterOptions{
		Magnitude: cp.Vector{Y: 150},
	})
	side := components.NewThruster(reg, components.ThrusterOptions{
		Offset:    cp.Vector{X: 5, Y: -5},
		Magnitude: cp.Vector{X: 10},
		Radius:    2,
	})

	// mount out of hardpoint order; aggregate follows the table
	require.NoError(t, s.MountHardpoint("side", side))
	require.NoError(t, s.MountHardpoint("hull", components.NewHull(reg, components.HullOptions{})))
	require.NoError(t, s.MountHardpoint("main", main))

	require.Equal(t, []models.LinearThrust{
		{Offset: cp.Vector{}, Magnitude: cp.Vector{Y: 150}},
		{Offset: cp.Vector{X: 5, Y: -5}, Magnitude: cp.Vector{X: 10}},
	}, s.LinearThrust())

	_, err := s.UnmountHardpoint("main")
	require.NoError(t, err)
	require.Equal(t, []models.LinearThrust{
		{Offset: cp.Vector{X: 5, Y: -5}, Magnitude: cp.Vector{X: 10}},
	}, s.LinearThrust(), "unmounting a thruster refreshes the aggregate")

	_, err = s.UnmountHardpoint("side")
	require.NoError(t, err)
	require.Empty(t, s.LinearThrust())

	// a stale copy is not shared with the ship
	require.NoError(t, s.MountHardpoint("main", main))
	out := s.LinearThrust()
	out[0].Magnitude = cp.Vector{}
	require.Equal(t, cp.Vector{Y: 150}, s.LinearThrust()[0].Magnitude)
}

func TestShip_ShapesTrackMountsUnderRandomSequences(t *testing.T) {
	reg := materials.NewRegistry()
	ids := []string{"hull", "mainTurret", "left", "right", "aft"}

	for seed := uint64(1); seed <= 5; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31))
		s := newTestShip(t)
		for i, id := range ids {
			require.NoError(t, s.AddHardpoint(models.NewHardpoint(id, cp.Vector{X: float64(i * 4)}, 0)))
		}
		space := physics.NewSpace()
		space.Add(s.Body)

		pool := []models.Component{
			components.NewHull(reg, components.HullOptions{}),
			components.NewTurret(reg, components.TurretOptions{Radius: 2}),
			components.NewTurret(reg, components.TurretOptions{}),
			components.NewThruster(reg, components.ThrusterOptions{Magnitude: cp.Vector{Y: 100}}),
			components.NewThruster(reg, components.ThrusterOptions{Magnitude: cp.Vector{Y: 50}, Radius: 3}),
		}

		for step := 0; step < 200; step++ {
			id := ids[rng.IntN(len(ids))]
			if rng.IntN(2) == 0 {
				c := pool[rng.IntN(len(pool))]
				err := s.MountHardpoint(id, c)
				if err != nil {
					require.True(t,
						errors.Is(err, models.ErrOccupiedHardpoint) || errors.Is(err, models.ErrComponentAttached),
						"unexpected error %v", err)
				}
			} else {
				_, err := s.UnmountHardpoint(id)
				require.NoError(t, err)
			}

			requireShapesMatchMounts(t, s)
			for _, p := range s.Shapes() {
				require.True(t, space.ContainsShape(s.Body, p.Shape))
			}

			var thrusters int
			for range s.Mounted(models.Thruster) {
				thrusters++
			}
			require.Len(t, s.LinearThrust(), thrusters)
		}
	}
}

func TestShip_PublishesMountEvents(t *testing.T) {
	events := bus.New()
	var got []string
	for _, typ := range []string{bus.HardpointMounted, bus.HardpointUnmounted} {
		_, err := events.Subscribe(typ, func(ev bus.Event) error {
			got = append(got, ev.Type()+":"+ev.Data().(MountEvent).Hardpoint)
			return nil
		})
		require.NoError(t, err)
	}

	s := NewShip(ShipOptions{Events: events})
	require.NoError(t, s.AddHardpoint(models.NewHardpoint("hull", cp.Vector{}, 0)))
	require.NoError(t, s.MountHardpoint("hull", components.NewHull(nil, components.HullOptions{})))
	_, err := s.UnmountHardpoint("hull")
	require.NoError(t, err)
	_, err = s.UnmountHardpoint("hull")
	require.NoError(t, err)

	require.Equal(t, []string{"hardpoint.mounted:hull", "hardpoint.unmounted:hull"}, got)
}
