package tooldef

import (
	"fmt"

	"github.com/harun/toolgate/pkg/action"
)

// ConstructFunc maps a validated parameter set to a concrete Action.
// It must be pure: no I/O, no side effects, never executes anything.
type ConstructFunc func(params map[string]interface{}) (action.Action, error)

// ToolParameter defines a single parameter of a tool.
type ToolParameter struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Enum        []string    `json:"enum,omitempty"`
	Minimum     *float64    `json:"minimum,omitempty"`
	Maximum     *float64    `json:"maximum,omitempty"`
	// AllowEmpty permits an empty string for a required string parameter.
	// Without it a required string must be non-empty.
	AllowEmpty bool `json:"allow_empty,omitempty"`
}

// ToolVariant is a discriminator-specific sub-schema. Its parameters apply
// only when the definition's discriminator field equals When.
type ToolVariant struct {
	When       string          `json:"when"`
	Parameters []ToolParameter `json:"parameters"`
}

// ToolDefinition describes one callable capability: its name, the
// description shown to the LLM, its parameter schema, and the constructor
// that turns validated parameters into an Action. Definitions are
// immutable once registered in a ToolSet.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ToolParameter `json:"parameters"`

	// Discriminator names the field that selects a variant. When set,
	// Variants must be non-empty and the discriminator field is implied:
	// it is not listed in Parameters.
	Discriminator string        `json:"discriminator,omitempty"`
	Variants      []ToolVariant `json:"variants,omitempty"`

	Construct ConstructFunc `json:"-"`
}

var validParamTypes = map[string]bool{
	"string": true, "number": true, "integer": true,
	"boolean": true, "object": true, "array": true,
}

// Validate checks the definition for structural problems. Registration
// rejects invalid definitions so that malformed schemas surface at
// composition time, never at call time.
func (d *ToolDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if d.Description == "" {
		return fmt.Errorf("tool %s: description cannot be empty", d.Name)
	}
	if d.Construct == nil {
		return fmt.Errorf("tool %s: constructor cannot be nil", d.Name)
	}

	if err := validateParams(d.Name, d.Parameters); err != nil {
		return err
	}

	if d.Discriminator == "" {
		if len(d.Variants) > 0 {
			return fmt.Errorf("tool %s: variants require a discriminator field", d.Name)
		}
		return nil
	}

	if len(d.Variants) == 0 {
		return fmt.Errorf("tool %s: discriminator %s has no variants", d.Name, d.Discriminator)
	}
	for _, p := range d.Parameters {
		if p.Name == d.Discriminator {
			return fmt.Errorf("tool %s: discriminator %s must not be listed in parameters", d.Name, d.Discriminator)
		}
	}
	seen := map[string]bool{}
	for _, v := range d.Variants {
		if v.When == "" {
			return fmt.Errorf("tool %s: variant value cannot be empty", d.Name)
		}
		if seen[v.When] {
			return fmt.Errorf("tool %s: duplicate variant %s", d.Name, v.When)
		}
		seen[v.When] = true
		if err := validateParams(d.Name, v.Parameters); err != nil {
			return err
		}
	}
	return nil
}

// VariantValues returns the declared discriminator values in definition order.
func (d *ToolDefinition) VariantValues() []string {
	values := make([]string, 0, len(d.Variants))
	for _, v := range d.Variants {
		values = append(values, v.When)
	}
	return values
}

// Variant returns the sub-schema for a discriminator value.
func (d *ToolDefinition) Variant(value string) (*ToolVariant, bool) {
	for i := range d.Variants {
		if d.Variants[i].When == value {
			return &d.Variants[i], true
		}
	}
	return nil, false
}

func validateParams(tool string, params []ToolParameter) error {
	seen := map[string]bool{}
	for _, p := range params {
		if p.Name == "" {
			return fmt.Errorf("tool %s: parameter name cannot be empty", tool)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %s: duplicate parameter %s", tool, p.Name)
		}
		seen[p.Name] = true
		if !validParamTypes[p.Type] {
			return fmt.Errorf("tool %s: invalid parameter type %s for %s", tool, p.Type, p.Name)
		}
		if len(p.Enum) > 0 && p.Type != "string" {
			return fmt.Errorf("tool %s: enum parameter %s must be a string", tool, p.Name)
		}
		if (p.Minimum != nil || p.Maximum != nil) && p.Type != "number" && p.Type != "integer" {
			return fmt.Errorf("tool %s: range on non-numeric parameter %s", tool, p.Name)
		}
	}
	return nil
}
