package config

import (
	"encoding/json"

	"github.com/harun/toolgate/pkg/profile"
)

// Config represents the main toolgate configuration
type Config struct {
	// Profile selected when a dispatch request names none
	DefaultProfile string `json:"default_profile" mapstructure:"default_profile"`

	// Config-defined profiles composed on top of the built-ins
	Profiles []ProfileConfig `json:"profiles" mapstructure:"profiles"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// ProfileConfig defines one agent profile as a composition recipe.
type ProfileConfig struct {
	Name    string   `json:"name" mapstructure:"name"`
	Base    string   `json:"base" mapstructure:"base"`
	Tools   []string `json:"tools" mapstructure:"tools"`
	Exclude []string `json:"exclude" mapstructure:"exclude"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DefaultProfile: profile.Full,
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Pretty:  true,
		},
	}
}

// ProfileSpecs converts the config-defined profiles into composition specs.
func (c *Config) ProfileSpecs() []profile.Spec {
	specs := make([]profile.Spec, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		specs = append(specs, profile.Spec{
			Name:    p.Name,
			Base:    p.Base,
			Tools:   p.Tools,
			Exclude: p.Exclude,
		})
	}
	return specs
}

// String returns the config as pretty JSON
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
