package bridge

import (
	"context"
	"encoding/json"
)

// EventHandler receives the raw JSON payload of one pushed event.
type EventHandler func(payload json.RawMessage)

// Transport is the single strategy for reaching the host. NativeTransport
// speaks to a real host process; StandaloneTransport fakes one in-process.
// The implementation is chosen once at startup and injected into the Bridge
// and the event Channel.
type Transport interface {
	// Mode reports which strategy this transport implements.
	Mode() Mode

	// Invoke dispatches a named command with its arguments and returns the
	// host's raw JSON result. Failures are returned as plain errors; the
	// Bridge owns their classification.
	Invoke(ctx context.Context, command string, args map[string]any) (json.RawMessage, error)

	// Listen registers handler for events pushed under eventName. The
	// returned stop function removes the registration and is safe to call
	// any number of times, including after Close.
	Listen(eventName string, handler EventHandler) (stop func(), err error)

	// Close tears the transport down. Registered handlers are dropped.
	Close() error
}
