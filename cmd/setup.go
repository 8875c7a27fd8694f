package cmd

import (
	"context"
	"fmt"
	"os"

	"stackctl/internal/config"
	"stackctl/internal/controlplane"
	"stackctl/internal/reconciler"
	"stackctl/internal/template"
	"stackctl/pkg/logging"
)

// setup loads configuration, initializes logging, and builds the
// reconciler Manager every command works through. sink may be nil to
// suppress event output.
func setup(ctx context.Context, sink reconciler.EventSink) (*reconciler.Manager, config.Config, error) {
	configPath := rootConfigPath
	if configPath == "" {
		var err error
		configPath, err = config.GetDefaultConfigPath()
		if err != nil {
			return nil, config.Config{}, err
		}
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	level := cfg.LogLevel
	if rootLogLevel != "" {
		level = rootLogLevel
	}
	logging.Init(logging.ParseLevel(level), os.Stderr)

	region := cfg.Region
	if rootRegion != "" {
		region = rootRegion
	}

	client, err := controlplane.NewAWS(ctx, region)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("initializing AWS client: %w", err)
	}

	mgr := reconciler.New(reconciler.Config{
		Client:       client,
		Resolver:     template.NewResolver(),
		PollInterval: cfg.PollInterval(),
		Capabilities: cfg.Capabilities,
		Tags:         cfg.Tags,
		Events:       sink,
	})
	return mgr, cfg, nil
}
