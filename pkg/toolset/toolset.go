// Package toolset assembles immutable, name-unique collections of tool
// definitions. Agent profiles are built by composing a shared base set
// with explicit additions and exclusions, never by mutation.
//
// Invariants:
// - No two definitions in a set share a name.
// - Ordering is deterministic: base order, then addition order.
// - Name collisions and malformed schemas fail at composition time.
package toolset

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/harun/toolgate/pkg/tooldef"
)

// ConfigurationError reports a problem assembling a ToolSet. It is a
// programmer or configuration error: composition happens at startup, so
// this aborts initialization rather than surfacing to the conversation.
type ConfigurationError struct {
	Set    string
	Tool   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Tool == "" {
		return fmt.Sprintf("tool set %q: %s", e.Set, e.Reason)
	}
	return fmt.Sprintf("tool set %q: tool %q: %s", e.Set, e.Tool, e.Reason)
}

type entry struct {
	def     tooldef.ToolDefinition
	schemas *tooldef.CompiledSchemas
}

// ToolSet is an ordered, name-unique collection of tool definitions with
// their compiled schemas. Immutable after construction.
type ToolSet struct {
	name    string
	order   []string
	entries map[string]*entry
}

// New builds a base ToolSet from definitions.
func New(name string, defs ...tooldef.ToolDefinition) (*ToolSet, error) {
	return Compose(name, nil, defs, nil)
}

// Compose builds a new ToolSet from a base set, explicit additions, and
// explicit exclusions. An addition may only reuse a base name when that
// name is listed in exclusions (remove-then-re-add override). The base is
// never modified.
func Compose(name string, base *ToolSet, additions []tooldef.ToolDefinition, exclusions []string) (*ToolSet, error) {
	excluded := make(map[string]bool, len(exclusions))
	for _, ex := range exclusions {
		if base == nil || base.entries[ex] == nil {
			return nil, &ConfigurationError{Set: name, Tool: ex, Reason: "exclusion does not match any base tool"}
		}
		excluded[ex] = true
	}

	set := &ToolSet{
		name:    name,
		entries: map[string]*entry{},
	}

	if base != nil {
		for _, toolName := range base.order {
			if excluded[toolName] {
				continue
			}
			set.order = append(set.order, toolName)
			set.entries[toolName] = base.entries[toolName]
		}
	}

	for i := range additions {
		def := additions[i]
		if err := def.Validate(); err != nil {
			return nil, &ConfigurationError{Set: name, Tool: def.Name, Reason: err.Error()}
		}
		if set.entries[def.Name] != nil {
			return nil, &ConfigurationError{Set: name, Tool: def.Name, Reason: "name collision (exclude the base tool to override it)"}
		}
		schemas, err := def.CompileSchemas()
		if err != nil {
			return nil, &ConfigurationError{Set: name, Tool: def.Name, Reason: err.Error()}
		}
		set.order = append(set.order, def.Name)
		set.entries[def.Name] = &entry{def: def, schemas: schemas}
	}

	log.Debug().
		Str("set", name).
		Int("tools", len(set.order)).
		Msg("Tool set composed")

	return set, nil
}

// Name returns the set's profile name.
func (s *ToolSet) Name() string { return s.name }

// Len returns the number of tools in the set.
func (s *ToolSet) Len() int { return len(s.order) }

// Names returns tool names in stable order.
func (s *ToolSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Lookup returns the definition and compiled schemas for a tool name.
func (s *ToolSet) Lookup(name string) (*tooldef.ToolDefinition, *tooldef.CompiledSchemas, bool) {
	e, ok := s.entries[name]
	if !ok {
		return nil, nil, false
	}
	return &e.def, e.schemas, true
}

// Definitions returns the definitions in stable order.
func (s *ToolSet) Definitions() []tooldef.ToolDefinition {
	out := make([]tooldef.ToolDefinition, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.entries[name].def)
	}
	return out
}
