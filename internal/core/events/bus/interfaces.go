package bus

// EventBus is an in-process pub/sub bus used to decouple entities from the
// world that owns them.
//
// Key characteristics:
//   - Type-based fan-out: handlers subscribe by Event.Type() string.
//   - Synchronous delivery: Publish calls handler callbacks in the caller goroutine,
//     in subscription order, so a tick stays deterministic.
//   - Error aggregation: multiple handler errors are joined and returned from Publish/PublishBatch.
//   - Optional observability: metrics are produced only when observers are registered.
//
// All methods are safe for concurrent use, although the simulation only publishes
// from the tick goroutine.
type EventBus interface {
	// Publish delivers the event synchronously to all active subscribers of event.Type().
	Publish(event Event) error
	// PublishBatch publishes a set of events sequentially and aggregates errors across them.
	PublishBatch(events ...Event) error
	// Subscribe registers a handler for a specific event type and returns a
	// Subscription handle that can be used to cancel later.
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe cancels the given Subscription. It is safe to call with nil.
	Unsubscribe(Subscription) error

	// AddObserver registers an observer to receive delivery callbacks.
	AddObserver(obs EventBusObserver)
	// RemoveObserver unregisters a previously added observer.
	RemoveObserver(obs EventBusObserver)
	// GetMetrics returns a snapshot of accumulated metrics. Metrics are only
	// collected when at least one observer is registered.
	GetMetrics() EventBusMetrics
}

// Event types published by entities and the world.
const (
	HardpointMounted   = "hardpoint.mounted"
	HardpointUnmounted = "hardpoint.unmounted"
	WeaponFired        = "weapon.fired"
	ProjectileLaunched = "projectile.launched"
	EntityRemoved      = "entity.removed"
)

// Event is an immutable message transported by the EventBus.
//
// Fields:
// - Type: routing key used to select handlers.
// - Source: id of the publishing entity (0 for the world itself).
// - At: world time in seconds when the event was raised.
// - Data: payload, typed per event type.
type Event interface {
	Type() string
	Source() uint64
	At() float64
	Data() any
}

type (
	// EventHandler is invoked per delivered event. A returned error is
	// aggregated into the Publish result.
	EventHandler func(event Event) error
)

// Subscription represents a registered handler bound to an event type.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	// Cancel de-registers the handler from the bus. Multiple calls are safe.
	Cancel() error
}

// EventBusObserver is notified about deliveries and errors.
type EventBusObserver interface {
	OnPublish(eventType string, event Event)
	OnDelivered(eventType string, handlers int, err error)
}

// EventBusMetrics is updated only when at least one observer is registered.
type EventBusMetrics struct {
	Published         uint64
	DeliveredHandlers uint64
	Errors            uint64
	SubscribersActive uint64
}
