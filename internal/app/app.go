// Package app assembles the shell core: it selects the transport for the
// configured mode, builds the bridge on top of it, and wires the event
// channel, configuration loader, application state, and dock components.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"opsdesk/internal/appstate"
	"opsdesk/internal/bridge"
	"opsdesk/internal/config"
	"opsdesk/internal/dock"
	"opsdesk/internal/events"
	"opsdesk/internal/kubeconfig"
	"opsdesk/pkg/logging"
)

// ErrEndpointRequired is returned when native mode is selected without a
// bridge endpoint.
var ErrEndpointRequired = errors.New("native mode requires an endpoint")

// App holds the assembled shell core. Fields are exported for command
// handlers to reach.
type App struct {
	Config       *config.Config
	Bridge       *bridge.Bridge
	Channel      *events.Channel
	Loader       *kubeconfig.Loader
	State        *appstate.State
	Dock         *dock.Controller
	Synchronizer *dock.Synchronizer

	// Standalone is set in standalone mode so callers can emit in-process
	// events. nil in native mode.
	Standalone *bridge.StandaloneTransport
}

// New builds the shell core for the given configuration. In native mode it
// connects to the host before returning.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	mode, err := bridge.ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	var transport bridge.Transport
	var standalone *bridge.StandaloneTransport

	switch mode {
	case bridge.ModeNative:
		if cfg.Endpoint == "" {
			return nil, ErrEndpointRequired
		}
		native := bridge.NewNativeTransport(cfg.Endpoint)
		if err := native.Connect(ctx); err != nil {
			return nil, fmt.Errorf("failed to connect to host at %s: %w", cfg.Endpoint, err)
		}
		transport = native
	case bridge.ModeStandalone:
		standalone = bridge.NewStandaloneTransport()
		transport = standalone
	}

	var sink bridge.TraceSink
	if cfg.Trace {
		sink = bridge.NewTraceWriter(os.Stderr)
	}

	b := bridge.NewBridge(transport, sink)
	channel := events.NewChannel(transport)
	state := appstate.New()

	synchronizer := dock.NewSynchronizer(channel, state.Dock())
	if err := synchronizer.Start(); err != nil {
		_ = b.Close()
		return nil, err
	}

	logging.Info("App", "Shell core ready in %s mode", mode)

	return &App{
		Config:       cfg,
		Bridge:       b,
		Channel:      channel,
		Loader:       kubeconfig.NewLoader(b),
		State:        state,
		Dock:         dock.NewController(b),
		Synchronizer: synchronizer,
		Standalone:   standalone,
	}, nil
}

// Close stops the dock synchronizer and closes the transport.
func (a *App) Close() error {
	a.Synchronizer.Stop()
	return a.Bridge.Close()
}
