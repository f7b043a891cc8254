package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"opsdesk/internal/dock"
)

var (
	dockClearBadge bool
	dockDemoSteps  int
)

func newDockCmd() *cobra.Command {
	dockCmd := &cobra.Command{
		Use:   "dock",
		Short: "Control and observe the host dock indicator",
		Long: `Drives the host dock through the bridge (progress fraction and badge
label) and follows the dock events the host emits in return. In standalone
mode the host commands answer null; 'dock demo' emits the events in-process
instead so the full event path can be exercised without a host.`,
	}

	dockCmd.AddCommand(newDockSetCmd())
	dockCmd.AddCommand(newDockBadgeCmd())
	dockCmd.AddCommand(newDockClearCmd())
	dockCmd.AddCommand(newDockWatchCmd())
	dockCmd.AddCommand(newDockDemoCmd())

	return dockCmd
}

func newDockSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set FRACTION",
		Short: "Set the dock progress fraction (0.0 to 1.0)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fraction, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid fraction %q: %w", args[0], err)
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Dock.SetProgress(cmd.Context(), fraction); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dock progress set to %.0f%%\n", fraction*100)
			return nil
		},
	}
}

func newDockBadgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "badge LABEL",
		Short: "Set the dock badge label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Dock.SetBadge(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Dock badge set to %q\n", args[0])
			return nil
		},
	}
}

func newDockClearCmd() *cobra.Command {
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear the dock progress indicator (or the badge with --badge)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if dockClearBadge {
				if err := a.Dock.ClearBadge(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Dock badge cleared")
				return nil
			}

			if err := a.Dock.ClearProgress(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Dock progress cleared")
			return nil
		},
	}

	clearCmd.Flags().BoolVar(&dockClearBadge, "badge", false, "Clear the badge instead of the progress indicator")
	return clearCmd
}

func newDockWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the dock state on every host update until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			state := a.State.Dock()

			printState := func(json.RawMessage) {
				fmt.Fprintln(out, formatDockState(state))
			}

			progressSub, err := a.Channel.Subscribe(dock.EventProgressUpdated, printState)
			if err != nil {
				return err
			}
			defer progressSub.Cancel()

			badgeSub, err := a.Channel.Subscribe(dock.EventBadgeUpdated, printState)
			if err != nil {
				return err
			}
			defer badgeSub.Cancel()

			fmt.Fprintln(out, "Watching dock updates. Press Ctrl+C to stop.")

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sigChan:
			case <-cmd.Context().Done():
			}

			fmt.Fprintln(out, "Stopped watching.")
			return nil
		},
	}
}

func newDockDemoCmd() *cobra.Command {
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a standalone progress animation through the event path",
		Long: `Emits a ramp of progress-updated events plus a badge through the
in-process emitter and prints the folded dock state after each one. Only
available in standalone mode; against a real host the dock is driven by
'dock set' and observed with 'dock watch'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.Standalone == nil {
				return fmt.Errorf("dock demo requires standalone mode")
			}

			steps := dockDemoSteps
			if steps < 1 {
				steps = 20
			}

			out := cmd.OutOrStdout()
			state := a.State.Dock()

			for i := 0; i <= steps; i++ {
				fraction := float64(i) / float64(steps)
				if err := a.Standalone.Emit(dock.EventProgressUpdated, map[string]any{"progress": fraction}); err != nil {
					return err
				}
				fmt.Fprintln(out, formatDockState(state))
				time.Sleep(100 * time.Millisecond)
			}

			if err := a.Standalone.Emit(dock.EventBadgeUpdated, map[string]any{"badge": "done"}); err != nil {
				return err
			}
			if err := a.Standalone.Emit(dock.EventProgressUpdated, map[string]any{"progress": nil}); err != nil {
				return err
			}

			fmt.Fprintln(out, formatDockState(state))
			return nil
		},
	}

	demoCmd.Flags().IntVar(&dockDemoSteps, "steps", 20, "Number of progress steps to emit")
	return demoCmd
}

func formatDockState(state *dock.State) string {
	snap := state.Snapshot()

	progress := "(none)"
	if snap.Progress != nil {
		progress = fmt.Sprintf("%d%%", state.Percent())
	}

	badge := "(none)"
	if snap.Badge != nil {
		badge = *snap.Badge
	}

	return fmt.Sprintf("progress: %-7s badge: %s", progress, badge)
}
