package cmd

import (
	"strings"
	"testing"

	"opsdesk/internal/dock"
)

func TestNewDockCmd(t *testing.T) {
	dockCmd := newDockCmd()

	expected := []string{"set", "badge", "clear", "watch", "demo"}
	found := make(map[string]bool)
	for _, sub := range dockCmd.Commands() {
		found[sub.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("Expected dock subcommand %s to be registered", name)
		}
	}
}

func TestDockSetRejectsNonNumericFraction(t *testing.T) {
	setCmd := newDockSetCmd()

	err := setCmd.RunE(setCmd, []string{"not-a-number"})
	if err == nil {
		t.Fatal("Expected error for a non-numeric fraction")
	}

	if !strings.Contains(err.Error(), "invalid fraction") {
		t.Errorf("Expected invalid fraction error, got: %s", err.Error())
	}
}

func TestFormatDockState(t *testing.T) {
	state := dock.NewState()

	out := formatDockState(state)
	if !strings.Contains(out, "progress: (none)") || !strings.Contains(out, "badge: (none)") {
		t.Errorf("Empty state should print (none) for both fields, got: %q", out)
	}

	fraction := 0.5
	label := "3"
	state.SetProgress(&fraction)
	state.SetBadge(&label)

	out = formatDockState(state)
	if !strings.Contains(out, "progress: 50%") {
		t.Errorf("Expected 50%% progress, got: %q", out)
	}
	if !strings.Contains(out, "badge: 3") {
		t.Errorf("Expected badge 3, got: %q", out)
	}
}
