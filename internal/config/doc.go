// Package config provides configuration management for opsdesk.
//
// This package implements a layered configuration system that allows users
// to customize opsdesk's behavior through YAML files. Configuration is
// loaded from multiple sources and merged in a specific order, with later
// sources overriding earlier ones.
//
// # Configuration Layers
//
// Configuration is loaded and merged in the following order:
//
//  1. Default Configuration (embedded in binary)
//     - Standalone mode, info-level logging
//
//  2. User Configuration (~/.config/opsdesk/config.yaml)
//     - User-specific settings that apply to all projects
//
//  3. Project Configuration (./.opsdesk/config.yaml)
//     - Project-specific settings in the current directory
//     - Allows teams to share configuration via version control
//
//  4. Environment Variables (OPSDESK_MODE, OPSDESK_ENDPOINT)
//     - Per-invocation overrides without touching files
//
// Command-line flags override all of the above.
//
// # Configuration Structure
//
// The configuration file uses YAML format:
//
//	mode: native
//	endpoint: http://127.0.0.1:4010/mcp
//	kubeconfig: ~/.kube/config
//	logLevel: debug
//	trace: true
//
// Mode selects how commands reach the host: "native" talks to a running
// host over its bridge endpoint, "standalone" answers every command with
// null and delivers only in-process events.
package config
