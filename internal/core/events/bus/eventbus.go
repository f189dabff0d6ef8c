package bus

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// simpleEvent is the Event implementation used by publishers in this module.
type simpleEvent struct {
	typeStr string
	source  uint64
	at      float64
	data    any
}

func (e simpleEvent) Type() string   { return e.typeStr }
func (e simpleEvent) Source() uint64 { return e.source }
func (e simpleEvent) At() float64    { return e.at }
func (e simpleEvent) Data() any      { return e.data }

// NewEvent creates a simple Event implementation.
func NewEvent(typ string, source uint64, at float64, data any) Event {
	return simpleEvent{typeStr: typ, source: source, at: at, data: data}
}

// subscription implements Subscription interface.
type subscription struct {
	id        string
	eventType string
	handler   EventHandler
	active    bool
	cancel    func()
}

func (s *subscription) ID() string        { return s.id }
func (s *subscription) EventType() string { return s.eventType }
func (s *subscription) IsActive() bool    { return s.active }
func (s *subscription) Cancel() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.active = false
	return nil
}

// inMemoryBus is a thread-safe implementation of EventBus with optional observers.
type inMemoryBus struct {
	mu sync.RWMutex
	// handlers: eventType -> subscriptions in subscription order
	handlers  map[string][]*subscription
	metrics   EventBusMetrics
	observers map[EventBusObserver]struct{}
}

// New creates a new EventBus instance.
func New() EventBus {
	return &inMemoryBus{
		handlers:  make(map[string][]*subscription),
		observers: make(map[EventBusObserver]struct{}),
	}
}

func (b *inMemoryBus) Publish(event Event) error {
	return b.deliver(event)
}

func (b *inMemoryBus) PublishBatch(events ...Event) error {
	var all error
	for _, e := range events {
		if err := b.Publish(e); err != nil {
			all = errors.Join(all, err)
		}
	}
	return all
}

func (b *inMemoryBus) Subscribe(eventType string, handler EventHandler) (Subscription, error) {
	if handler == nil {
		return nil, errors.New("bus: nil handler")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.NewString()
	s := &subscription{id: id, eventType: eventType, handler: handler, active: true}
	s.cancel = func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.handlers[eventType]
		for i, other := range subs {
			if other.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		s.active = false
	}
	b.handlers[eventType] = append(b.handlers[eventType], s)
	return s, nil
}

func (b *inMemoryBus) Unsubscribe(sub Subscription) error {
	if sub == nil {
		return nil
	}
	return sub.Cancel()
}

func (b *inMemoryBus) AddObserver(obs EventBusObserver) {
	b.mu.Lock()
	b.observers[obs] = struct{}{}
	b.mu.Unlock()
}

func (b *inMemoryBus) RemoveObserver(obs EventBusObserver) {
	b.mu.Lock()
	delete(b.observers, obs)
	b.mu.Unlock()
}

func (b *inMemoryBus) GetMetrics() EventBusMetrics {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.metrics
}

func (b *inMemoryBus) deliver(event Event) error {
	etype := event.Type()

	b.mu.RLock()
	subs := append([]*subscription(nil), b.handlers[etype]...)
	observers := make([]EventBusObserver, 0, len(b.observers))
	for obs := range b.observers {
		observers = append(observers, obs)
	}
	b.mu.RUnlock()

	for _, obs := range observers {
		obs.OnPublish(etype, event)
	}

	var all error
	delivered := 0
	for _, s := range subs {
		if !s.active {
			continue
		}
		delivered++
		if err := s.handler(event); err != nil {
			all = errors.Join(all, err)
		}
	}

	if len(observers) > 0 {
		for _, obs := range observers {
			obs.OnDelivered(etype, delivered, all)
		}
		b.mu.Lock()
		b.metrics.Published++
		b.metrics.DeliveredHandlers += uint64(delivered)
		if all != nil {
			b.metrics.Errors++
		}
		var active uint64
		for _, m := range b.handlers {
			active += uint64(len(m))
		}
		b.metrics.SubscribersActive = active
		b.mu.Unlock()
	}
	return all
}
