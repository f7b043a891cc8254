package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"opsdesk/pkg/logging"
)

const protocolVersion = "2024-11-05"

type nativeListener struct {
	id      string
	handler EventHandler
}

// NativeTransport implements Transport over an MCP session to the host
// process. Commands map to tool calls; host push-events arrive as JSON-RPC
// notifications whose method is the event name.
type NativeTransport struct {
	endpoint string
	client   *client.Client

	mu        sync.RWMutex
	listeners map[string][]nativeListener
	closed    bool
}

// NewNativeTransport prepares a transport for the given host endpoint.
// Endpoints ending in /sse use the SSE transport; anything else uses
// streamable HTTP. Call Connect before the first Invoke.
func NewNativeTransport(endpoint string) *NativeTransport {
	return &NativeTransport{
		endpoint:  endpoint,
		listeners: make(map[string][]nativeListener),
	}
}

// Connect establishes the MCP session: transport start, initialize
// handshake, and the notification hook that feeds Listen registrations.
func (t *NativeTransport) Connect(ctx context.Context) error {
	var (
		c   *client.Client
		err error
	)
	if strings.HasSuffix(t.endpoint, "/sse") {
		c, err = client.NewSSEMCPClient(t.endpoint)
	} else {
		c, err = client.NewStreamableHttpClient(t.endpoint)
	}
	if err != nil {
		return fmt.Errorf("failed to create host client: %w", err)
	}

	c.OnNotification(func(notification mcp.JSONRPCNotification) {
		t.dispatch(notification)
	})

	if err := c.Start(ctx); err != nil {
		return fmt.Errorf("failed to start host client: %w", err)
	}

	initReq := mcp.InitializeRequest{
		Params: struct {
			ProtocolVersion string                 `json:"protocolVersion"`
			Capabilities    mcp.ClientCapabilities `json:"capabilities"`
			ClientInfo      mcp.Implementation     `json:"clientInfo"`
		}{
			ProtocolVersion: protocolVersion,
			ClientInfo: mcp.Implementation{
				Name:    "opsdesk",
				Version: "1.0.0",
			},
			Capabilities: mcp.ClientCapabilities{},
		},
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return fmt.Errorf("host handshake failed: %w", err)
	}

	t.mu.Lock()
	t.client = c
	t.mu.Unlock()

	logging.Info("NativeTransport", "Connected to host at %s", t.endpoint)
	return nil
}

// Mode implements Transport.
func (t *NativeTransport) Mode() Mode {
	return ModeNative
}

// Invoke implements Transport. Failures come back as plain errors carrying
// the host's message verbatim; the Bridge classifies them. No timeout is
// applied here: one invocation is one attempt for as long as ctx allows.
func (t *NativeTransport) Invoke(ctx context.Context, command string, args map[string]any) (json.RawMessage, error) {
	t.mu.RLock()
	c := t.client
	t.mu.RUnlock()
	if c == nil {
		return nil, errors.New("not connected to host")
	}

	req := mcp.CallToolRequest{
		Params: struct {
			Name      string    `json:"name"`
			Arguments any       `json:"arguments,omitempty"`
			Meta      *mcp.Meta `json:"_meta,omitempty"`
		}{
			Name:      command,
			Arguments: args,
		},
	}

	result, err := c.CallTool(ctx, req)
	if err != nil {
		return nil, err
	}

	if result.IsError {
		var msgs []string
		for _, content := range result.Content {
			if textContent, ok := mcp.AsTextContent(content); ok {
				msgs = append(msgs, textContent.Text)
			}
		}
		return nil, errors.New(strings.Join(msgs, "\n"))
	}

	for _, content := range result.Content {
		if textContent, ok := mcp.AsTextContent(content); ok {
			return json.RawMessage(textContent.Text), nil
		}
	}
	return nullResult, nil
}

// Listen implements Transport. Registration is purely client-side: the host
// pushes all events and the notification hook fans them out by name.
func (t *NativeTransport) Listen(eventName string, handler EventHandler) (func(), error) {
	if handler == nil {
		return nil, fmt.Errorf("nil handler for event %q", eventName)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, fmt.Errorf("transport is closed")
	}

	id := uuid.New().String()
	t.listeners[eventName] = append(t.listeners[eventName], nativeListener{id: id, handler: handler})

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

// dispatch routes one notification to the handlers registered for its
// method. MCP protocol notifications (tools/resources/prompts list changes
// and friends) are not host events and are skipped.
func (t *NativeTransport) dispatch(notification mcp.JSONRPCNotification) {
	if strings.HasPrefix(notification.Method, "notifications/") {
		return
	}

	t.mu.RLock()
	targets := make([]nativeListener, len(t.listeners[notification.Method]))
	copy(targets, t.listeners[notification.Method])
	t.mu.RUnlock()

	if len(targets) == 0 {
		return
	}

	payload, err := json.Marshal(notification.Params)
	if err != nil {
		logging.Warn("NativeTransport", "Dropping event '%s' with unencodable params: %v", notification.Method, err)
		return
	}

	for _, l := range targets {
		deliver("NativeTransport", notification.Method, l.handler, payload)
	}
}

// Close implements Transport. Stop functions handed out by Listen remain
// safe to call afterwards.
func (t *NativeTransport) Close() error {
	t.mu.Lock()
	t.closed = true
	t.listeners = make(map[string][]nativeListener)
	c := t.client
	t.client = nil
	t.mu.Unlock()

	if c != nil {
		return c.Close()
	}
	return nil
}

var _ Transport = (*NativeTransport)(nil)
