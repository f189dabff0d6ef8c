package entity

import (
	"github.com/jakecoffman/cp"

	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/physics"
)

const (
	DefaultTurnThrust = 0.25
	DefaultBankThrust = 50
	// DefaultBoost scales linear thrust while boosting, 190 over a cruise of 150.
	DefaultBoost = 190.0 / 150
)

// Controls is the pilot input latched for the next tick.
type Controls struct {
	Forward   bool
	Backward  bool
	Left      bool
	Right     bool
	BankLeft  bool
	BankRight bool
	Boost     bool
}

// Thrust is the movement capability. Linear holds the thruster aggregate;
// its owner rebuilds it whenever thrusters are mounted or unmounted.
type Thrust struct {
	Linear []models.LinearThrust
	// Turn is the angular acceleration in rad/s^2 at full rudder.
	Turn float64
	// Bank is the lateral force at full bank.
	Bank  float64
	Boost float64

	controls Controls
	body     *physics.Body
}

func NewThrust(body *physics.Body) *Thrust {
	return &Thrust{
		Turn:  DefaultTurnThrust,
		Bank:  DefaultBankThrust,
		Boost: DefaultBoost,
		body:  body,
	}
}

func (t *Thrust) Controls() Controls { return t.controls }

func (t *Thrust) SetControls(c Controls) { t.controls = c }

func (t *Thrust) SetForward(on bool)   { t.controls.Forward = on }
func (t *Thrust) SetBackward(on bool)  { t.controls.Backward = on }
func (t *Thrust) SetLeft(on bool)      { t.controls.Left = on }
func (t *Thrust) SetRight(on bool)     { t.controls.Right = on }
func (t *Thrust) SetBankLeft(on bool)  { t.controls.BankLeft = on }
func (t *Thrust) SetBankRight(on bool) { t.controls.BankRight = on }
func (t *Thrust) SetBoost(on bool)     { t.controls.Boost = on }

// throttle is +1 forward, -1 backward and 0 when both or neither are held.
func (t *Thrust) throttle() float64 {
	var v float64
	if t.controls.Forward {
		v++
	}
	if t.controls.Backward {
		v--
	}
	if v != 0 && t.controls.Boost {
		v *= t.Boost
	}
	return v
}

func (t *Thrust) rudder() float64 {
	var v float64
	if t.controls.Left {
		v++
	}
	if t.controls.Right {
		v--
	}
	return v
}

func (t *Thrust) bank() float64 {
	var v float64
	if t.controls.BankLeft {
		v--
	}
	if t.controls.BankRight {
		v++
	}
	return v
}

// WorldForce is the net linear force the current controls produce for a body
// facing angle.
func (t *Thrust) WorldForce(angle float64) cp.Vector {
	var local cp.Vector
	if throttle := t.throttle(); throttle != 0 {
		for _, lt := range t.Linear {
			local = local.Add(lt.Magnitude.Mult(throttle))
		}
	}
	local = local.Add(cp.Vector{X: t.bank() * t.Bank})
	return physics.Rotate(local, angle)
}

// Apply pushes the current controls into the body for one tick of dt seconds.
// Forces are cleared by the engine after every step.
func (t *Thrust) Apply(dt float64) {
	angle := t.body.Angle()
	if throttle := t.throttle(); throttle != 0 {
		for _, lt := range t.Linear {
			t.body.ApplyForce(physics.Rotate(lt.Magnitude.Mult(throttle), angle), lt.Offset)
		}
	}
	if bank := t.bank(); bank != 0 {
		t.body.ApplyForce(physics.Rotate(cp.Vector{X: bank * t.Bank}, angle), cp.Vector{})
	}
	if rudder := t.rudder(); rudder != 0 {
		t.body.SetAngularVelocity(t.body.AngularVelocity() + rudder*t.Turn*dt)
	}
}
