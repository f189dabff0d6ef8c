package entity

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/physics"
)

func TestThrust_WorldForce(t *testing.T) {
	linear := []models.LinearThrust{
		{Offset: cp.Vector{}, Magnitude: cp.Vector{Y: 150}},
		{Offset: cp.Vector{X: 5, Y: -5}, Magnitude: cp.Vector{X: 10}},
	}

	tests := []struct {
		name     string
		controls Controls
		angle    float64
		want     cp.Vector
	}{
		{name: "Idle", want: cp.Vector{}},
		{name: "Forward", controls: Controls{Forward: true}, want: cp.Vector{X: 10, Y: 150}},
		{name: "Backward", controls: Controls{Backward: true}, want: cp.Vector{X: -10, Y: -150}},
		{name: "Both Cancel", controls: Controls{Forward: true, Backward: true}, want: cp.Vector{}},
		{name: "Boost", controls: Controls{Forward: true, Boost: true}, want: cp.Vector{X: 10 * DefaultBoost, Y: 190}},
		{name: "Boost Alone", controls: Controls{Boost: true}, want: cp.Vector{}},
		{name: "Bank Right", controls: Controls{BankRight: true}, want: cp.Vector{X: DefaultBankThrust}},
		{name: "Bank Left", controls: Controls{BankLeft: true}, want: cp.Vector{X: -DefaultBankThrust}},
		{name: "Rotated", controls: Controls{Forward: true}, angle: math.Pi / 2, want: cp.Vector{X: -150, Y: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := NewThrust(physics.NewCircleBody(1, 10))
			th.Linear = linear
			th.SetControls(tt.controls)
			got := th.WorldForce(tt.angle)
			require.True(t, physics.NearlyEqual(tt.want, got, 1e-9), "want %v got %v", tt.want, got)
		})
	}
}

func TestThrust_Apply(t *testing.T) {
	const dt = 1.0 / 60

	t.Run("Forward", func(t *testing.T) {
		s := NewShip(ShipOptions{})
		s.Thrust.Linear = []models.LinearThrust{{Magnitude: cp.Vector{Y: 150}}}
		space := physics.NewSpace()
		space.Add(s.Body)

		s.Thrust.SetForward(true)
		s.Thrust.Apply(dt)
		space.Step(dt)

		require.InDelta(t, 150*dt, s.Velocity().Y, 1e-9)
		require.InDelta(t, 0, s.Velocity().X, 1e-9)
		require.InDelta(t, 0, s.AngularVelocity(), 1e-9, "force through the centre does not spin")
	})

	t.Run("Turn", func(t *testing.T) {
		s := NewShip(ShipOptions{})
		s.Thrust.SetLeft(true)
		s.Thrust.Apply(dt)
		require.InDelta(t, DefaultTurnThrust*dt, s.AngularVelocity(), 1e-12)

		s.Thrust.SetLeft(false)
		s.Thrust.SetRight(true)
		s.Thrust.Apply(dt)
		s.Thrust.Apply(dt)
		require.InDelta(t, -DefaultTurnThrust*dt, s.AngularVelocity(), 1e-12)
	})

	t.Run("Controls Latch", func(t *testing.T) {
		th := NewThrust(physics.NewCircleBody(1, 10))
		th.SetBankLeft(true)
		th.SetBoost(true)
		th.SetBackward(true)
		require.Equal(t, Controls{BankLeft: true, Boost: true, Backward: true}, th.Controls())
	})
}
