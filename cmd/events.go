package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Follow events emitted by the host",
	}

	eventsCmd.AddCommand(newEventsListenCmd())
	return eventsCmd
}

func newEventsListenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "listen EVENT [EVENT...]",
		Short: "Subscribe to events and print raw payloads until interrupted",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()

			for _, name := range args {
				eventName := name
				sub, err := a.Channel.Subscribe(eventName, func(payload json.RawMessage) {
					fmt.Fprintf(out, "[%s] %s\n", eventName, string(payload))
				})
				if err != nil {
					return err
				}
				defer sub.Cancel()
			}

			fmt.Fprintf(out, "Listening for %s. Press Ctrl+C to stop.\n", strings.Join(args, ", "))

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			select {
			case <-sigChan:
			case <-cmd.Context().Done():
			}

			fmt.Fprintln(out, "Stopped listening.")
			return nil
		},
	}
}
