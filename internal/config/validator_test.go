package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harun/toolgate/pkg/profile"
)

func TestValidate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name: "valid custom profiles",
			mutate: func(cfg *Config) {
				cfg.Profiles = []ProfileConfig{
					{Name: "reviewer", Base: "core", Exclude: []string{"exec"}},
					{Name: "auditor", Base: "reviewer"},
				}
				cfg.DefaultProfile = "auditor"
			},
		},
		{
			name:    "nil config",
			mutate:  nil,
			wantErr: "config cannot be nil",
		},
		{
			name: "invalid log level",
			mutate: func(cfg *Config) {
				cfg.Logging.Level = "verbose"
			},
			wantErr: "invalid log level",
		},
		{
			name: "empty profile name",
			mutate: func(cfg *Config) {
				cfg.Profiles = []ProfileConfig{{Base: "core"}}
			},
			wantErr: "name cannot be empty",
		},
		{
			name: "profile shadows builtin",
			mutate: func(cfg *Config) {
				cfg.Profiles = []ProfileConfig{{Name: profile.ReadOnly, Base: "core"}}
			},
			wantErr: "shadows a built-in",
		},
		{
			name: "duplicate profile",
			mutate: func(cfg *Config) {
				cfg.Profiles = []ProfileConfig{
					{Name: "reviewer", Base: "core"},
					{Name: "reviewer", Base: "core"},
				}
			},
			wantErr: "defined twice",
		},
		{
			name: "unknown base",
			mutate: func(cfg *Config) {
				cfg.Profiles = []ProfileConfig{{Name: "reviewer", Base: "missing"}}
			},
			wantErr: "unknown base",
		},
		{
			name: "base defined later",
			mutate: func(cfg *Config) {
				cfg.Profiles = []ProfileConfig{
					{Name: "auditor", Base: "reviewer"},
					{Name: "reviewer", Base: "core"},
				}
			},
			wantErr: "unknown base",
		},
		{
			name: "empty default profile",
			mutate: func(cfg *Config) {
				cfg.DefaultProfile = ""
			},
			wantErr: "default_profile cannot be empty",
		},
		{
			name: "unknown default profile",
			mutate: func(cfg *Config) {
				cfg.DefaultProfile = "missing"
			},
			wantErr: "not a known profile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg *Config
			if tt.mutate != nil {
				cfg = DefaultConfig()
				tt.mutate(cfg)
			}
			err := validator.Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidateLogging(t *testing.T) {
	validator := NewValidator()

	assert.NoError(t, validator.ValidateLogging(LoggingConfig{Level: ""}))
	assert.NoError(t, validator.ValidateLogging(LoggingConfig{Level: "trace"}))
	assert.Error(t, validator.ValidateLogging(LoggingConfig{Level: "loud"}))
}
