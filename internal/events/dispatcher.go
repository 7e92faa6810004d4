package events

import (
	"time"

	"go.uber.org/zap"
)

// Event is one published editor notification.
type Event struct {
	Type       string
	Payload    any
	OccurredAt time.Time
}

// Listener receives every published event. Listeners run synchronously
// on the mutating call; they must not block.
type Listener func(Event)

// Dispatcher fans editor events out to registered listeners. The editor
// is single-threaded, so subscription and publication need no locking.
type Dispatcher struct {
	log       *zap.Logger
	listeners []Listener
}

func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{log: log.Named("events")}
}

// Subscribe registers a listener for all subsequent events.
func (d *Dispatcher) Subscribe(listener Listener) {
	if d == nil || listener == nil {
		return
	}
	d.listeners = append(d.listeners, listener)
}

// Publish delivers an event to every listener in subscription order.
func (d *Dispatcher) Publish(event Event) {
	if d == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	d.log.Debug("publishing event", zap.String("type", event.Type))
	for _, listener := range d.listeners {
		listener(event)
	}
}
