// Package bridge mediates every outbound command and inbound push-event
// between the shell and the privileged host process.
//
// The package is built around a single strategy interface, Transport, with
// two implementations chosen once at startup:
//
//   - NativeTransport speaks to a real host over an MCP session: commands
//     become tool calls and host events arrive as JSON-RPC notifications.
//   - StandaloneTransport runs without any host: every command resolves to
//     a JSON null success and events are produced in-process via Emit, so
//     the shell stays fully demoable on its own.
//
// The Bridge wraps a Transport and owns failure classification. Host
// failures arrive as opaque strings; the one shape the shell understands,
//
//	invalid args `field` for command `name`: ...
//
// is re-raised as *MissingArgumentError, and anything else passes through
// verbatim as *HostError. Each invocation is also recorded to an optional
// TraceSink for diagnostics.
//
// There are no retries and no built-in timeouts anywhere in this package:
// one Invoke is one attempt, bounded only by the caller's context.
package bridge
