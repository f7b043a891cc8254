package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"opsdesk/internal/app"
	"opsdesk/internal/config"
	"opsdesk/pkg/logging"
)

var (
	flagMode     string
	flagEndpoint string
	flagLogLevel string
	flagTrace    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "opsdesk",
	Short: "Drive the opsdesk shell's host bridge from the command line",
	Long: `opsdesk talks to the desktop shell host: it loads and inspects the
host-normalized kubeconfig document, controls the dock progress and badge
indicators, and follows host events as they arrive.

In native mode commands are forwarded to a running host over its bridge
endpoint. In standalone mode every command answers null and only in-process
events are delivered, which keeps the same code paths usable without a host.`,
	// SilenceUsage is set to true to prevent printing usage message on errors
	// handled by us (e.g. invalid arguments, failed connections)
	SilenceUsage: true,
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "opsdesk version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagMode, "mode", "", "Execution mode: native or standalone (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "Host bridge endpoint URL for native mode")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&flagTrace, "trace", false, "Write one line per bridge invocation to stderr")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDockCmd())
	rootCmd.AddCommand(newEventsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newSelfUpdateCmd())
}

// runtimeConfig layers command-line flags over the file and environment
// configuration and initializes logging.
func runtimeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("mode") {
		cfg.Mode = flagMode
	}
	if cmd.Flags().Changed("endpoint") {
		cfg.Endpoint = flagEndpoint
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace = flagTrace
	}

	logging.InitForCLI(logging.ParseLevel(cfg.LogLevel), os.Stderr)

	return &cfg, nil
}

// newApp assembles the shell core for one command invocation. The caller
// owns the returned App and must Close it.
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := runtimeConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(cmd.Context(), cfg)
}
