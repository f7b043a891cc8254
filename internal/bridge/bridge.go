package bridge

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"opsdesk/pkg/logging"
)

// Bridge dispatches named commands to the host through the injected
// transport and classifies what comes back. One Invoke is one attempt:
// no retries, no implicit timeout. Callers that need a deadline pass it
// via ctx.
type Bridge struct {
	transport Transport
	sink      TraceSink
}

// NewBridge wires a Bridge to its transport. sink may be nil to disable
// invocation tracing.
func NewBridge(transport Transport, sink TraceSink) *Bridge {
	return &Bridge{
		transport: transport,
		sink:      sink,
	}
}

// Mode reports the transport's execution mode.
func (b *Bridge) Mode() Mode {
	return b.transport.Mode()
}

// Transport exposes the underlying transport so the event channel can share
// the same host link.
func (b *Bridge) Transport() Transport {
	return b.transport
}

// Invoke dispatches command with args and returns the host's raw JSON
// result. In standalone mode it resolves to null and cannot fail. Host
// failures matching the invalid-args shape come back as
// *MissingArgumentError; everything else as *HostError. Every invocation is
// traced, success or not.
func (b *Bridge) Invoke(ctx context.Context, command string, args map[string]any) (json.RawMessage, error) {
	start := time.Now()
	result, err := b.transport.Invoke(ctx, command, args)
	if err != nil {
		err = classifyHostFailure(command, err.Error())
		logging.Debug("Bridge", "Command '%s' failed: %v", command, err)
	}

	record(b.sink, TraceEntry{
		ID:       uuid.New().String(),
		Mode:     b.transport.Mode(),
		Command:  command,
		Args:     args,
		Start:    start,
		Duration: time.Since(start),
		Err:      err,
	})

	return result, err
}

// Close releases the underlying transport.
func (b *Bridge) Close() error {
	return b.transport.Close()
}
