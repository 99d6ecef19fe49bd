package config

import (
	"fmt"

	"github.com/harun/toolgate/pkg/profile"
)

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var builtinProfiles = map[string]bool{
	profile.Full:       true,
	profile.ReadOnly:   true,
	profile.SearchOnly: true,
}

// Validator validates configuration values
type Validator struct{}

// NewValidator creates a new validator
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the whole configuration. Profile composition itself is
// verified later by profile.BuildRegistry; this catches structural
// problems before any composition is attempted.
func (v *Validator) Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := v.ValidateLogging(cfg.Logging); err != nil {
		return err
	}

	defined := map[string]bool{}
	for i, p := range cfg.Profiles {
		if p.Name == "" {
			return fmt.Errorf("profile %d: name cannot be empty", i)
		}
		if builtinProfiles[p.Name] {
			return fmt.Errorf("profile %q: name shadows a built-in profile", p.Name)
		}
		if defined[p.Name] {
			return fmt.Errorf("profile %q: defined twice", p.Name)
		}
		defined[p.Name] = true

		switch {
		case p.Base == "" || p.Base == "core":
		case builtinProfiles[p.Base] || defined[p.Base]:
		default:
			return fmt.Errorf("profile %q: unknown base %q", p.Name, p.Base)
		}
	}

	if cfg.DefaultProfile == "" {
		return fmt.Errorf("default_profile cannot be empty")
	}
	if !builtinProfiles[cfg.DefaultProfile] && !defined[cfg.DefaultProfile] {
		return fmt.Errorf("default_profile %q is not a known profile", cfg.DefaultProfile)
	}

	return nil
}

// ValidateLogging validates the logging section
func (v *Validator) ValidateLogging(logging LoggingConfig) error {
	if logging.Level != "" && !validLogLevels[logging.Level] {
		return fmt.Errorf("invalid log level: %s", logging.Level)
	}
	return nil
}
