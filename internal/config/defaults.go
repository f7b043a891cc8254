package config

// DefaultConfig returns the built-in defaults applied before any file or
// environment layer.
func DefaultConfig() Config {
	return Config{
		Mode:     "standalone",
		LogLevel: "info",
	}
}
