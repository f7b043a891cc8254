package config

// Config is the top-level configuration structure for opsdesk.
type Config struct {
	// Mode selects the transport: "native" or "standalone".
	Mode string `yaml:"mode,omitempty"`
	// Endpoint is the host bridge URL, required in native mode.
	Endpoint string `yaml:"endpoint,omitempty"`
	// Kubeconfig overrides the default document path handed to the host.
	Kubeconfig string `yaml:"kubeconfig,omitempty"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel,omitempty"`
	// Trace writes one line per bridge invocation to stderr.
	Trace bool `yaml:"trace,omitempty"`
}
