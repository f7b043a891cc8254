// Package dock mirrors the host dock indicator and drives it.
//
// State is the in-process replica of the dock: a progress fraction and a
// badge label, each either set or cleared. Synchronizer keeps a State in
// step with host events, Controller sends dock commands to the host.
package dock

import (
	"math"
	"sync"
)

// Event names the host emits when the dock changes.
const (
	EventProgressUpdated = "progress-updated"
	EventBadgeUpdated    = "badge-updated"
)

// Snapshot is a point-in-time copy of the dock state. A nil field means
// the indicator is cleared.
type Snapshot struct {
	Progress *float64
	Badge    *string
}

// State holds the replicated dock state. Updates are field-wise: setting
// progress never touches the badge and vice versa. The zero value is a
// cleared dock, ready to use.
type State struct {
	mu       sync.RWMutex
	progress *float64
	badge    *string
}

// NewState returns an empty dock state.
func NewState() *State {
	return &State{}
}

// SetProgress stores the progress fraction. nil clears it.
func (s *State) SetProgress(fraction *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fraction == nil {
		s.progress = nil
		return
	}
	v := *fraction
	s.progress = &v
}

// SetBadge stores the badge label. nil clears it.
func (s *State) SetBadge(label *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if label == nil {
		s.badge = nil
		return
	}
	v := *label
	s.badge = &v
}

// Progress returns the current fraction, or nil when cleared.
func (s *State) Progress() *float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.progress == nil {
		return nil
	}
	v := *s.progress
	return &v
}

// Badge returns the current label, or nil when cleared.
func (s *State) Badge() *string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.badge == nil {
		return nil
	}
	v := *s.badge
	return &v
}

// Percent derives a whole-number percentage from the stored fraction,
// recomputed on every call. A cleared progress reads as 0.
func (s *State) Percent() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.progress == nil {
		return 0
	}
	return int(math.Round(*s.progress * 100))
}

// Snapshot copies both fields under a single lock.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{}
	if s.progress != nil {
		v := *s.progress
		snap.Progress = &v
	}
	if s.badge != nil {
		v := *s.badge
		snap.Badge = &v
	}
	return snap
}
