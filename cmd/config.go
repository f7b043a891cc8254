package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"opsdesk/internal/kubeconfig"
)

var (
	configPathFlag   string // --path for all config subcommands
	configViewOutput string // -o for config view
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the kubeconfig document served by the host",
		Long: `Loads the kubeconfig document through the host bridge and prints it in
its normalized form: camelCase top-level keys and only user entries that
carry a credential object. In standalone mode there is no host to answer,
so loading reports the document as invalid.`,
	}

	configCmd.AddCommand(newConfigViewCmd())
	configCmd.AddCommand(newConfigResolveCmd())
	configCmd.AddCommand(newConfigExportCmd())

	return configCmd
}

// loadDocument runs a fresh load through the bridge for one subcommand
// invocation.
func loadDocument(cmd *cobra.Command) (*kubeconfig.Document, error) {
	a, err := newApp(cmd)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	path := configPathFlag
	if path == "" {
		path = a.Config.Kubeconfig
	}

	doc, err := a.Loader.Load(cmd.Context(), path)
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig document: %w", err)
	}
	return doc, nil
}

func newConfigViewCmd() *cobra.Command {
	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "Print the normalized kubeconfig document",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd)
			if err != nil {
				return err
			}

			switch configViewOutput {
			case "yaml":
				out, err := yaml.Marshal(doc)
				if err != nil {
					return fmt.Errorf("failed to render document: %w", err)
				}
				fmt.Fprint(cmd.OutOrStdout(), string(out))
			case "json":
				out, err := json.MarshalIndent(doc, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to render document: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			default:
				return fmt.Errorf("unknown output format %q (expected yaml or json)", configViewOutput)
			}
			return nil
		},
	}

	viewCmd.Flags().StringVar(&configPathFlag, "path", "", "Document path handed to the host (default ~/.kube/config)")
	viewCmd.Flags().StringVarP(&configViewOutput, "output", "o", "yaml", "Output format: yaml or json")
	return viewCmd
}

func newConfigResolveCmd() *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve [CONTEXT]",
		Short: "Resolve a context to its cluster, user and namespace",
		Long: `Resolves a named context (the document's current context when omitted)
against the loaded document. Dangling cluster or user references are
reported as (none) rather than failing.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd)
			if err != nil {
				return err
			}

			contextName := doc.CurrentContext
			if len(args) == 1 {
				contextName = args[0]
			}

			res := kubeconfig.Resolve(doc, contextName)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Context:   %s\n", orNone(contextName, res.Context != nil))
			if res.Cluster != nil {
				fmt.Fprintf(out, "Cluster:   %s (%s)\n", res.Cluster.Name, res.Cluster.Cluster.Server)
			} else {
				fmt.Fprintf(out, "Cluster:   (none)\n")
			}
			if res.User != nil {
				fmt.Fprintf(out, "User:      %s\n", res.User.Name)
			} else {
				fmt.Fprintf(out, "User:      (none)\n")
			}
			fmt.Fprintf(out, "Namespace: %s\n", res.EffectiveNamespace())
			return nil
		},
	}

	resolveCmd.Flags().StringVar(&configPathFlag, "path", "", "Document path handed to the host (default ~/.kube/config)")
	return resolveCmd
}

func newConfigExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Print the document as kubectl-compatible YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd)
			if err != nil {
				return err
			}

			out, err := kubeconfig.Export(doc)
			if err != nil {
				return fmt.Errorf("failed to export document: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	exportCmd.Flags().StringVar(&configPathFlag, "path", "", "Document path handed to the host (default ~/.kube/config)")
	return exportCmd
}

func orNone(name string, found bool) string {
	if name == "" || !found {
		return "(none)"
	}
	return name
}
