package bridge

import (
	"fmt"
	"regexp"
)

// MissingArgumentError is the structured form of the host's "invalid args"
// failure. Field is the argument the host rejected; Command is the command
// name as it was invoked, regardless of what the host message claims.
type MissingArgumentError struct {
	Field   string
	Command string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("missing argument %q for command %q", e.Field, e.Command)
}

// HostError carries any host failure that does not match the recognized
// invalid-args shape. Raw is the original message, untouched.
type HostError struct {
	Raw string
}

func (e *HostError) Error() string {
	return e.Raw
}

// InvalidFormatError reports a configuration document that is not a JSON
// object. Only the configuration loader produces it.
type InvalidFormatError struct {
	Reason string
}

func (e *InvalidFormatError) Error() string {
	if e.Reason == "" {
		return "configuration document is not an object"
	}
	return fmt.Sprintf("configuration document is not an object: %s", e.Reason)
}

// Host failures for a bad argument arrive as one opaque string shaped like
//
//	invalid args `path` for command `load_kube_config`: ...
//
// matched case-insensitively. Everything else passes through as HostError.
var invalidArgsPattern = regexp.MustCompile("(?i)invalid args `([^`]+)` for command `([^`]+)`")

// classifyHostFailure turns a raw host failure message into the typed error
// the caller pattern-matches on. command is the name used at the call site.
func classifyHostFailure(command, raw string) error {
	if m := invalidArgsPattern.FindStringSubmatch(raw); m != nil {
		return &MissingArgumentError{Field: m[1], Command: command}
	}
	return &HostError{Raw: raw}
}
