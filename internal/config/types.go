// Package config loads the stackctl configuration file and provides the
// process-wide defaults used when no file is present.
package config

import (
	"time"

	"stackctl/internal/reconciler"
)

// Config is the on-disk configuration, merged over the defaults.
type Config struct {
	// Region is the AWS region. Empty defers to the SDK's own chain.
	Region string `yaml:"region,omitempty"`

	// PollIntervalSeconds is how often operation progress is polled.
	PollIntervalSeconds int `yaml:"pollIntervalSeconds,omitempty"`

	// Capabilities sent with create/update calls.
	Capabilities []string `yaml:"capabilities,omitempty"`

	// Tags applied to every deployed stack.
	Tags map[string]string `yaml:"tags,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel,omitempty"`
}

// PollInterval converts the configured seconds to a duration, falling
// back to the reconciler default when unset.
func (c Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return reconciler.DefaultPollInterval
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}
