package appstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_SettersAndReaders(t *testing.T) {
	s := New()

	s.SetTheme("dark")
	s.SetTitle("opsdesk - dev")
	s.SetWindow(WindowState{Width: 1280, Height: 800, X: 10, Y: 20, ScaleFactor: 2.0})

	assert.Equal(t, "dark", s.Theme())
	assert.Equal(t, "opsdesk - dev", s.Title())
	assert.Equal(t, 1280, s.Window().Width)
	assert.Equal(t, 2.0, s.Window().ScaleFactor)
	require.NotNil(t, s.Dock())
}

func TestState_SubscribeReceivesFieldTags(t *testing.T) {
	s := New()

	var seen []Field
	cancel := s.Subscribe(func(f Field) { seen = append(seen, f) })
	defer cancel()

	s.SetTheme("light")
	s.SetWindow(WindowState{Width: 640, Height: 480})
	s.SetTitle("t")
	s.NotifyDockChanged()

	assert.Equal(t, []Field{FieldTheme, FieldWindow, FieldTitle, FieldDock}, seen)
}

func TestState_SubscriberSeesNewValue(t *testing.T) {
	s := New()

	var observed string
	cancel := s.Subscribe(func(f Field) {
		if f == FieldTheme {
			observed = s.Theme()
		}
	})
	defer cancel()

	s.SetTheme("dark")
	assert.Equal(t, "dark", observed)
}

func TestState_CancelStopsNotifications(t *testing.T) {
	s := New()

	calls := 0
	cancel := s.Subscribe(func(Field) { calls++ })

	s.SetTheme("dark")
	cancel()
	s.SetTheme("light")

	assert.Equal(t, 1, calls, "a cancelled subscriber is never re-invoked")
	assert.NotPanics(t, cancel, "cancel is idempotent")
}

func TestState_MultipleSubscribers(t *testing.T) {
	s := New()

	first, second := 0, 0
	cancelFirst := s.Subscribe(func(Field) { first++ })
	defer s.Subscribe(func(Field) { second++ })()

	s.SetTitle("a")
	cancelFirst()
	s.SetTitle("b")

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second, "cancelling one subscription leaves others active")
}

func TestState_PanickingSubscriberDoesNotStopOthers(t *testing.T) {
	s := New()

	delivered := false
	defer s.Subscribe(func(Field) { panic("boom") })()
	defer s.Subscribe(func(Field) { delivered = true })()

	assert.NotPanics(t, func() { s.SetTheme("dark") })
	assert.True(t, delivered)
	assert.Equal(t, "dark", s.Theme(), "the mutation itself sticks")
}

func TestState_NilSubscriber(t *testing.T) {
	s := New()
	cancel := s.Subscribe(nil)
	assert.NotPanics(t, func() {
		s.SetTheme("dark")
		cancel()
	})
}

func TestField_EventName(t *testing.T) {
	assert.Equal(t, "theme-updated", FieldTheme.EventName())
	assert.Equal(t, "window-updated", FieldWindow.EventName())
	assert.Equal(t, "dock-updated", FieldDock.EventName())
	assert.Equal(t, "title-updated", FieldTitle.EventName())
}
