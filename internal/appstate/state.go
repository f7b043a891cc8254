// Package appstate holds the shell's application state: theme, window
// title, window geometry, and the dock replica. The state object is
// constructed once and passed by reference; there is no package-level
// instance.
package appstate

import (
	"sync"

	"github.com/google/uuid"

	"opsdesk/internal/dock"
	"opsdesk/pkg/logging"
)

// Field identifies which part of the application state changed.
type Field string

const (
	FieldTheme  Field = "theme"
	FieldTitle  Field = "title"
	FieldWindow Field = "window"
	FieldDock   Field = "dock"
)

// EventName returns the host event name announcing changes to this field.
func (f Field) EventName() string {
	return string(f) + "-updated"
}

// WindowState describes the shell window geometry.
type WindowState struct {
	Width       int     `json:"width" yaml:"width"`
	Height      int     `json:"height" yaml:"height"`
	X           int     `json:"x" yaml:"x"`
	Y           int     `json:"y" yaml:"y"`
	MonitorName string  `json:"monitorName,omitempty" yaml:"monitorName,omitempty"`
	ScaleFactor float64 `json:"scaleFactor,omitempty" yaml:"scaleFactor,omitempty"`
}

// State is the explicitly owned application state. Every mutation touches
// exactly one field group and notifies subscribers with that field's tag,
// synchronously and in mutation order.
type State struct {
	mu     sync.RWMutex
	theme  string
	title  string
	window WindowState
	dock   *dock.State

	subscribers map[string]func(Field)
}

// New creates an empty application state with its own dock replica.
func New() *State {
	return &State{
		dock:        dock.NewState(),
		subscribers: make(map[string]func(Field)),
	}
}

// Theme returns the current theme name.
func (s *State) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Title returns the current window title.
func (s *State) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// Window returns the current window geometry.
func (s *State) Window() WindowState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.window
}

// Dock returns the dock replica shared with the synchronizer.
func (s *State) Dock() *dock.State {
	return s.dock
}

// SetTheme stores the theme and notifies subscribers.
func (s *State) SetTheme(theme string) {
	s.mu.Lock()
	s.theme = theme
	s.mu.Unlock()
	s.notify(FieldTheme)
}

// SetTitle stores the window title and notifies subscribers.
func (s *State) SetTitle(title string) {
	s.mu.Lock()
	s.title = title
	s.mu.Unlock()
	s.notify(FieldTitle)
}

// SetWindow stores the window geometry and notifies subscribers.
func (s *State) SetWindow(window WindowState) {
	s.mu.Lock()
	s.window = window
	s.mu.Unlock()
	s.notify(FieldWindow)
}

// NotifyDockChanged tells subscribers the dock replica changed. The dock
// fields themselves are mutated through the dock package.
func (s *State) NotifyDockChanged() {
	s.notify(FieldDock)
}

// Subscribe registers a change listener. The returned cancel is safe to
// call more than once.
func (s *State) Subscribe(fn func(Field)) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	id := uuid.New().String()

	s.mu.Lock()
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// notify invokes subscribers outside the lock so they can read state.
func (s *State) notify(field Field) {
	s.mu.RLock()
	targets := make([]func(Field), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		targets = append(targets, fn)
	}
	s.mu.RUnlock()

	for _, fn := range targets {
		invokeSubscriber(fn, field)
	}
}

func invokeSubscriber(fn func(Field), field Field) {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("AppState", "Subscriber panicked on %s change: %v", field, r)
		}
	}()
	fn(field)
}
