package entity

import (
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/models"
	"github.com/zeusync/skirmish/internal/core/observability/log"
)

const (
	// DefaultFireRate is the minimum time between trigger pulls, one frame at 60Hz.
	DefaultFireRate = 1.0 / 60
	// MainTurret is the hardpoint Attack fires from unless told otherwise.
	MainTurret = "mainTurret"

	// fireRateEpsilon absorbs rounding in accumulated world time.
	fireRateEpsilon = 1e-9
)

// Clock supplies the current world time in seconds.
type Clock interface {
	Now() float64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() float64

func (f ClockFunc) Now() float64 { return f() }

// FireOutcome reports what a trigger pull did. None of the outcomes is an error.
type FireOutcome uint8

const (
	// FireDelegated means the mounted weapon was asked to fire.
	FireDelegated FireOutcome = iota
	// FireRateLimited means the pull came too soon after the previous one.
	FireRateLimited
	// FireUnarmed means no weapon is mounted at the firing hardpoint.
	FireUnarmed
)

func (o FireOutcome) String() string {
	switch o {
	case FireDelegated:
		return "delegated"
	case FireRateLimited:
		return "rate-limited"
	case FireUnarmed:
		return "unarmed"
	default:
		return "unknown"
	}
}

// Armory is what Attack needs from its host entity.
type Armory interface {
	ID() uint64
	Hardpoint(id string) (*models.Hardpoint, bool)
	Muzzle(hp *models.Hardpoint) models.Muzzle
}

// Attack is the weapon capability. It rate limits trigger pulls and forwards
// accepted ones to whatever armament sits on the firing hardpoint; the weapon
// applies its own reload on top.
type Attack struct {
	FireRate     float64
	LastFireTime float64
	// Hardpoint is the id fired from.
	Hardpoint string

	hasFired    bool
	delegations int

	host   Armory
	clock  Clock
	events bus.EventBus
	logger log.Log
}

// NewAttack builds the weapon capability for host. events may be nil.
func NewAttack(host Armory, clock Clock, events bus.EventBus, logger log.Log) *Attack {
	if logger == nil {
		logger = log.Nop()
	}
	return &Attack{
		FireRate:  DefaultFireRate,
		Hardpoint: MainTurret,
		host:      host,
		clock:     clock,
		events:    events,
		logger:    logger.Named("weapon"),
	}
}

// Fire pulls the trigger once. It is safe to call any number of times per tick.
func (a *Attack) Fire() FireOutcome {
	now := a.clock.Now()
	if a.hasFired && now-a.LastFireTime < a.FireRate-fireRateEpsilon {
		a.logger.Debug("fire rate limited", log.Float64("now", now), log.Float64("last", a.LastFireTime))
		return FireRateLimited
	}

	hp, ok := a.host.Hardpoint(a.Hardpoint)
	if !ok {
		a.logger.Debug("no firing hardpoint", log.String("hardpoint", a.Hardpoint))
		return FireUnarmed
	}
	weapon, ok := hp.Mounted().(models.Armament)
	if !ok {
		a.logger.Debug("nothing to fire", log.String("hardpoint", a.Hardpoint))
		return FireUnarmed
	}

	a.LastFireTime = now
	a.hasFired = true
	a.delegations++

	launch, launched := weapon.Fire(a.host.Muzzle(hp), now)
	a.publish(bus.WeaponFired, now, FireEvent{
		Hardpoint: hp.ID(),
		Component: weapon.ID(),
		Launched:  launched,
	})
	if launched {
		a.publish(bus.ProjectileLaunched, now, launch)
	}
	return FireDelegated
}

// Delegations counts trigger pulls forwarded to a weapon.
func (a *Attack) Delegations() int { return a.delegations }

func (a *Attack) publish(typ string, now float64, data any) {
	if a.events == nil {
		return
	}
	if err := a.events.Publish(bus.NewEvent(typ, a.host.ID(), now, data)); err != nil {
		a.logger.Warn("event handler failed", log.String("event", typ), log.Error(err))
	}
}
