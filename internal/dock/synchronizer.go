package dock

import (
	"encoding/json"
	"fmt"
	"sync"

	"opsdesk/internal/events"
	"opsdesk/pkg/logging"
)

// Synchronizer keeps a State in step with the host's dock events. It
// subscribes to progress-updated and badge-updated and applies each
// payload field-wise: a null field clears, an absent field leaves the
// current value alone.
type Synchronizer struct {
	channel *events.Channel
	state   *State

	mu      sync.Mutex
	subs    []*events.Subscription
	running bool
}

// NewSynchronizer creates a synchronizer that writes into state.
func NewSynchronizer(channel *events.Channel, state *State) *Synchronizer {
	return &Synchronizer{channel: channel, state: state}
}

// Start subscribes to the dock events. Calling Start on a running
// synchronizer is a no-op.
func (s *Synchronizer) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	progressSub, err := s.channel.Subscribe(EventProgressUpdated, s.applyProgress)
	if err != nil {
		return fmt.Errorf("failed to start dock synchronizer: %w", err)
	}

	badgeSub, err := s.channel.Subscribe(EventBadgeUpdated, s.applyBadge)
	if err != nil {
		progressSub.Cancel()
		return fmt.Errorf("failed to start dock synchronizer: %w", err)
	}

	s.subs = []*events.Subscription{progressSub, badgeSub}
	s.running = true

	logging.Info("Dock-Synchronizer", "Started dock state synchronization")
	return nil
}

// Stop cancels the subscriptions. Calling Stop on a stopped synchronizer
// is a no-op.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
	s.running = false

	logging.Info("Dock-Synchronizer", "Stopped dock state synchronization")
}

// IsRunning reports whether the synchronizer currently holds
// subscriptions.
func (s *Synchronizer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Synchronizer) applyProgress(payload json.RawMessage) {
	raw, ok := probeField(payload, "progress")
	if !ok {
		return
	}

	var fraction *float64
	if err := json.Unmarshal(raw, &fraction); err != nil {
		logging.Warn("Dock-Synchronizer", "Ignoring progress-updated with malformed progress: %v", err)
		return
	}
	s.state.SetProgress(fraction)
}

func (s *Synchronizer) applyBadge(payload json.RawMessage) {
	raw, ok := probeField(payload, "badge")
	if !ok {
		return
	}

	var label *string
	if err := json.Unmarshal(raw, &label); err != nil {
		logging.Warn("Dock-Synchronizer", "Ignoring badge-updated with malformed badge: %v", err)
		return
	}
	s.state.SetBadge(label)
}

// probeField extracts one field from an event payload. The second return
// distinguishes an absent key from an explicit null value: absent keys
// must not overwrite replicated state, null values clear it.
func probeField(payload json.RawMessage, key string) (json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		logging.Warn("Dock-Synchronizer", "Ignoring event with non-object payload: %v", err)
		return nil, false
	}
	raw, ok := fields[key]
	return raw, ok
}
