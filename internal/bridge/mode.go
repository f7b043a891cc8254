package bridge

import "fmt"

// Mode selects how the shell reaches the privileged host. It is decided
// once at startup and baked into the transport; call sites never branch
// on it again.
type Mode string

const (
	// ModeNative talks to a real host process over its command/event link.
	ModeNative Mode = "native"

	// ModeStandalone runs without any host. Commands resolve to a null
	// success and events come from an in-process emitter.
	ModeStandalone Mode = "standalone"
)

// ParseMode converts a user-supplied string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeNative:
		return ModeNative, nil
	case ModeStandalone:
		return ModeStandalone, nil
	default:
		return "", fmt.Errorf("unknown execution mode %q (expected %q or %q)", s, ModeNative, ModeStandalone)
	}
}

// String makes Mode satisfy fmt.Stringer.
func (m Mode) String() string {
	return string(m)
}
