package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"opsdesk/pkg/logging"
)

// nullResult is what every standalone invocation resolves to.
var nullResult = json.RawMessage("null")

type standaloneListener struct {
	id      string
	handler EventHandler
}

// StandaloneTransport implements Transport without a host. Invocations
// resolve immediately with a JSON null and never fail; events are produced
// by Emit, so demos and tests can drive the shell in-process.
type StandaloneTransport struct {
	mu        sync.RWMutex
	listeners map[string][]standaloneListener
	closed    bool
}

// NewStandaloneTransport creates a transport for hostless operation.
func NewStandaloneTransport() *StandaloneTransport {
	return &StandaloneTransport{
		listeners: make(map[string][]standaloneListener),
	}
}

// Mode implements Transport.
func (t *StandaloneTransport) Mode() Mode {
	return ModeStandalone
}

// Invoke implements Transport. There is no host to consult, so every
// command resolves to null success regardless of ctx, name, or args.
func (t *StandaloneTransport) Invoke(_ context.Context, command string, _ map[string]any) (json.RawMessage, error) {
	logging.Debug("StandaloneTransport", "Stubbing command '%s' with null result", command)
	return nullResult, nil
}

// Listen implements Transport. Handlers are kept in registration order so
// Emit delivers deterministically.
func (t *StandaloneTransport) Listen(eventName string, handler EventHandler) (func(), error) {
	if handler == nil {
		return nil, fmt.Errorf("nil handler for event %q", eventName)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, fmt.Errorf("transport is closed")
	}

	id := uuid.New().String()
	t.listeners[eventName] = append(t.listeners[eventName], standaloneListener{id: id, handler: handler})

	stop := func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		kept := t.listeners[eventName][:0]
		for _, l := range t.listeners[eventName] {
			if l.id != id {
				kept = append(kept, l)
			}
		}
		if len(kept) == 0 {
			delete(t.listeners, eventName)
		} else {
			t.listeners[eventName] = kept
		}
	}
	return stop, nil
}

// Emit simulates a host push: payload is marshaled once and delivered
// synchronously to every listener registered for eventName, in registration
// order. Unknown event names are a no-op.
func (t *StandaloneTransport) Emit(eventName string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload for event %q: %w", eventName, err)
	}

	t.mu.RLock()
	targets := make([]standaloneListener, len(t.listeners[eventName]))
	copy(targets, t.listeners[eventName])
	t.mu.RUnlock()

	for _, l := range targets {
		deliver("StandaloneTransport", eventName, l.handler, data)
	}
	return nil
}

// deliver runs one handler, keeping a panicking handler from taking down
// the dispatch loop.
func deliver(subsystem, eventName string, handler EventHandler, payload json.RawMessage) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn(subsystem, "Handler for event '%s' panicked: %v", eventName, r)
		}
	}()
	handler(payload)
}

// Close implements Transport. Pending stop functions stay safe to call.
func (t *StandaloneTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.listeners = make(map[string][]standaloneListener)
	return nil
}

var _ Transport = (*StandaloneTransport)(nil)
