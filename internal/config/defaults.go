package config

import "stackctl/internal/reconciler"

// GetDefaultConfig returns the configuration used when no config file
// exists. Field-level zero values in a loaded file also fall back to
// these through the accessor methods.
func GetDefaultConfig() Config {
	return Config{
		PollIntervalSeconds: int(reconciler.DefaultPollInterval.Seconds()),
		Capabilities:        reconciler.DefaultCapabilities,
		LogLevel:            "info",
	}
}
