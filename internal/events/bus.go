// Package events fans live-state changes out to interested readers.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/micro-nova/amplipi-prefs/internal/models"
)

const subBufferSize = 8

// Kind says what happened to the live state.
type Kind int

const (
	// StateChanged carries a freshly read state.
	StateChanged Kind = iota
	// SourceLost reports that the state could no longer be read.
	SourceLost
)

func (k Kind) String() string {
	switch k {
	case StateChanged:
		return "state_changed"
	case SourceLost:
		return "source_lost"
	default:
		return "unknown"
	}
}

// Event is one live-state notification. State is set for StateChanged and
// Err for SourceLost.
type Event struct {
	Kind  Kind
	State models.State
	Err   error
	At    time.Time
}

// Bus is a non-blocking publish-subscribe event bus.
// Subscribers that are slow to consume events will have events dropped rather
// than blocking publishers.
type Bus struct {
	mu   sync.Mutex
	subs map[string]chan Event
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string]chan Event),
	}
}

// Subscribe creates a subscription with the given ID, replacing any previous
// one of the same ID. Call Unsubscribe when done.
func (b *Bus) Subscribe(id string) <-chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if old, ok := b.subs[id]; ok {
		close(old)
	}
	ch := make(chan Event, subBufferSize)
	b.subs[id] = ch
	return ch
}

// SubscribeNew subscribes under a fresh random ID and returns it.
func (b *Bus) SubscribeNew() (string, <-chan Event) {
	id := uuid.New().String()
	return id, b.Subscribe(id)
}

// Unsubscribe removes a subscription and closes its channel.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish sends ev to all subscribers, stamping At if unset.
// If a subscriber's channel is full, the event is dropped (non-blocking).
func (b *Bus) Publish(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Drop if subscriber is slow
		}
	}
}

// PublishState is shorthand for publishing a StateChanged event.
func (b *Bus) PublishState(s models.State) {
	b.Publish(Event{Kind: StateChanged, State: s})
}

// SubscriberCount returns the current number of subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
