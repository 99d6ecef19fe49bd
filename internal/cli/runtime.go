package cli

import (
	"fmt"

	"github.com/harun/toolgate/internal/config"
	"github.com/harun/toolgate/internal/logger"
	"github.com/harun/toolgate/pkg/profile"
	"github.com/harun/toolgate/pkg/toolset"
)

// runtime bundles what every subcommand needs: validated config and the
// composed profile registry. Composition errors abort here, at startup.
type runtime struct {
	cfg      *config.Config
	registry *profile.Registry
	log      *logger.Logger
}

func loadRuntime() (*runtime, error) {
	loader := config.NewLoader(cfgFile)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logCfg := logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	}
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	lg, err := logger.New(logCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	registry, err := profile.BuildRegistry(cfg.ProfileSpecs()...)
	if err != nil {
		return nil, fmt.Errorf("failed to build profiles: %w", err)
	}

	return &runtime{cfg: cfg, registry: registry, log: lg}, nil
}

func (r *runtime) toolSet(profileName string) (*toolset.ToolSet, error) {
	name := profileName
	if name == "" {
		name = r.cfg.DefaultProfile
	}
	set, ok := r.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("unknown profile: %s", name)
	}
	return set, nil
}

func (r *runtime) close() {
	if r.log != nil {
		_ = r.log.Close()
	}
}
