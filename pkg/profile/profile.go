// Package profile assembles the per-agent tool sets. A profile is an
// explicit composition recipe over the core catalog: a base set plus
// additions and exclusions, so the full capability surface of any agent
// is readable in one place. There is no inheritance between profiles.
package profile

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/harun/toolgate/pkg/coretools"
	"github.com/harun/toolgate/pkg/toolset"
)

// Built-in profile names.
const (
	Full       = "full"
	ReadOnly   = "read-only"
	SearchOnly = "search-only"
)

// Spec is a composition recipe for one profile. Base is "core" for the
// full built-in catalog or empty for a from-scratch set. Tools names
// core catalog additions; Exclude removes base tools by name.
type Spec struct {
	Name    string   `json:"name"`
	Base    string   `json:"base"`
	Tools   []string `json:"tools,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

func builtinSpecs() []Spec {
	return []Spec{
		{Name: Full, Base: "core"},
		{
			Name: ReadOnly,
			Base: "core",
			Exclude: []string{
				"exec", "write_file", "edit_file", "apply_patch",
				"browser_click", "browser_type",
			},
		},
		{
			Name:  SearchOnly,
			Tools: []string{"find_files", "grep", "web_search"},
		},
	}
}

// Registry holds the composed tool set of every known profile. Built once
// at startup; a config reload builds a whole new registry.
type Registry struct {
	sets  map[string]*toolset.ToolSet
	order []string
}

// BuildRegistry composes the built-in profiles plus any config-defined
// specs. Any composition problem (unknown tool, name collision, malformed
// schema) fails the build; nothing is ever partially registered.
func BuildRegistry(extra ...Spec) (*Registry, error) {
	base, err := coretools.BaseSet()
	if err != nil {
		return nil, fmt.Errorf("failed to compose core tool set: %w", err)
	}

	reg := &Registry{sets: map[string]*toolset.ToolSet{}}

	for _, spec := range append(builtinSpecs(), extra...) {
		if spec.Name == "" {
			return nil, fmt.Errorf("profile name cannot be empty")
		}
		if _, exists := reg.sets[spec.Name]; exists {
			return nil, fmt.Errorf("duplicate profile name: %s", spec.Name)
		}

		var specBase *toolset.ToolSet
		switch spec.Base {
		case "":
		case "core":
			specBase = base
		default:
			parent, ok := reg.sets[spec.Base]
			if !ok {
				return nil, fmt.Errorf("profile %s: unknown base %q", spec.Name, spec.Base)
			}
			specBase = parent
		}

		additions, err := coretools.Select(spec.Tools...)
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", spec.Name, err)
		}

		set, err := toolset.Compose(spec.Name, specBase, additions, spec.Exclude)
		if err != nil {
			return nil, err
		}

		reg.sets[spec.Name] = set
		reg.order = append(reg.order, spec.Name)
	}

	log.Info().
		Strs("profiles", reg.order).
		Msg("Profile registry built")

	return reg, nil
}

// Get returns the tool set for a profile name.
func (r *Registry) Get(name string) (*toolset.ToolSet, bool) {
	set, ok := r.sets[name]
	return set, ok
}

// Names returns profile names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
