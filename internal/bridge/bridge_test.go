package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport scripts transport outcomes for Bridge tests.
type fakeTransport struct {
	mode   Mode
	result json.RawMessage
	err    error

	mu      sync.Mutex
	invoked []string
}

func (f *fakeTransport) Mode() Mode { return f.mode }

func (f *fakeTransport) Invoke(_ context.Context, command string, _ map[string]any) (json.RawMessage, error) {
	f.mu.Lock()
	f.invoked = append(f.invoked, command)
	f.mu.Unlock()
	return f.result, f.err
}

func (f *fakeTransport) Listen(string, EventHandler) (func(), error) {
	return func() {}, nil
}

func (f *fakeTransport) Close() error { return nil }

// collectSink gathers trace entries for assertions.
type collectSink struct {
	mu      sync.Mutex
	entries []TraceEntry
}

func (s *collectSink) Record(entry TraceEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

// panicSink exercises the sink isolation path.
type panicSink struct{}

func (panicSink) Record(TraceEntry) { panic("sink exploded") }

func TestBridge_Invoke_Standalone(t *testing.T) {
	b := NewBridge(NewStandaloneTransport(), nil)
	defer b.Close()

	result, err := b.Invoke(context.Background(), "load_kube_config", map[string]any{"path": "~/.kube/config"})
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage("null"), result)
	assert.Equal(t, ModeStandalone, b.Mode())
}

func TestBridge_Invoke_ClassifiesMissingArgument(t *testing.T) {
	transport := &fakeTransport{
		mode: ModeNative,
		err:  errors.New("invalid args `path` for command `load_kube_config`: missing"),
	}
	b := NewBridge(transport, nil)

	_, err := b.Invoke(context.Background(), "load_kube_config", nil)

	var missing *MissingArgumentError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "path", missing.Field)
	assert.Equal(t, "load_kube_config", missing.Command)
}

func TestBridge_Invoke_PassesThroughHostFailure(t *testing.T) {
	raw := "backend exploded: stack trace follows"
	transport := &fakeTransport{mode: ModeNative, err: errors.New(raw)}
	b := NewBridge(transport, nil)

	_, err := b.Invoke(context.Background(), "env", nil)

	var hostErr *HostError
	require.True(t, errors.As(err, &hostErr))
	assert.Equal(t, raw, hostErr.Raw)
}

func TestBridge_Invoke_TracesEveryInvocation(t *testing.T) {
	sink := &collectSink{}
	transport := &fakeTransport{mode: ModeNative, result: json.RawMessage(`{"ok":true}`)}
	b := NewBridge(transport, sink)

	_, err := b.Invoke(context.Background(), "set_dock_badge", map[string]any{"label": "3"})
	require.NoError(t, err)

	transport.err = errors.New("boom")
	_, err = b.Invoke(context.Background(), "set_dock_badge", map[string]any{"label": "4"})
	require.Error(t, err)

	require.Len(t, sink.entries, 2, "success and failure must both be traced")
	assert.Equal(t, "set_dock_badge", sink.entries[0].Command)
	assert.NotEmpty(t, sink.entries[0].ID)
	assert.NoError(t, sink.entries[0].Err)
	assert.Error(t, sink.entries[1].Err)
	assert.Equal(t, ModeNative, sink.entries[1].Mode)
}

func TestBridge_Invoke_SinkPanicDoesNotAlterResult(t *testing.T) {
	transport := &fakeTransport{mode: ModeNative, result: json.RawMessage(`"fine"`)}
	b := NewBridge(transport, panicSink{})

	var (
		result json.RawMessage
		err    error
	)
	assert.NotPanics(t, func() {
		result, err = b.Invoke(context.Background(), "env", nil)
	})
	require.NoError(t, err)
	assert.Equal(t, json.RawMessage(`"fine"`), result)
}
