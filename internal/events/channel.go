// Package events exposes host push-events as named subscriptions with
// always-safe cancellation handles.
package events

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"opsdesk/internal/bridge"
	"opsdesk/pkg/logging"
)

// Handler receives the raw JSON payload of one event.
type Handler func(payload json.RawMessage)

// Channel subscribes handlers to named push-events through the transport.
// It adds no buffering or reordering: handlers see events in the order the
// transport delivers them.
type Channel struct {
	transport bridge.Transport
}

// NewChannel wires a Channel to the shared host transport.
func NewChannel(transport bridge.Transport) *Channel {
	return &Channel{transport: transport}
}

// Subscribe registers handler for events named eventName. Multiple
// subscriptions to the same name are independent; each gets its own handle.
func (c *Channel) Subscribe(eventName string, handler Handler) (*Subscription, error) {
	if handler == nil {
		return nil, fmt.Errorf("nil handler for event %q", eventName)
	}

	stop, err := c.transport.Listen(eventName, bridge.EventHandler(handler))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to event %q: %w", eventName, err)
	}

	sub := &Subscription{
		id:        uuid.New().String(),
		eventName: eventName,
		stop:      stop,
	}
	logging.Debug("Channel", "Subscribed %s to event '%s'", sub.id, eventName)
	return sub, nil
}

// Subscription is the cancellation handle returned by Subscribe.
type Subscription struct {
	id        string
	eventName string
	stop      func()

	mu        sync.Mutex
	cancelled bool
}

// ID returns the subscription's identifier, for logging.
func (s *Subscription) ID() string {
	return s.id
}

// EventName returns the event this subscription listens to.
func (s *Subscription) EventName() string {
	return s.eventName
}

// Cancel tears the subscription down. It is idempotent: extra calls, or
// calls after the transport itself has closed, do nothing and never panic.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelled {
		return
	}
	s.cancelled = true
	if s.stop != nil {
		s.stop()
	}
	logging.Debug("Channel", "Cancelled subscription %s for event '%s'", s.id, s.eventName)
}

// IsCancelled reports whether Cancel has run.
func (s *Subscription) IsCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}
