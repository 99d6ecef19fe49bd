package tooldef

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// CompiledSchemas holds the gojsonschema form of a definition's parameter
// schema. Discriminator tools compile one schema per variant; the validator
// picks the schema matching the discriminator value.
type CompiledSchemas struct {
	Schema   *gojsonschema.Schema
	Variants map[string]*gojsonschema.Schema
}

// JSONSchema returns the function-calling projection of the parameter
// schema: a JSON Schema object with strict additionalProperties. For
// discriminator tools the projection flattens every variant's parameters
// as optional fields so the whole surface is visible to the LLM; strict
// per-variant enforcement happens at validation time.
func (d *ToolDefinition) JSONSchema() map[string]interface{} {
	properties := map[string]interface{}{}
	required := []string{}

	if d.Discriminator != "" {
		properties[d.Discriminator] = map[string]interface{}{
			"type":        "string",
			"description": fmt.Sprintf("Sub-command selecting the %s operation", d.Name),
			"enum":        toInterfaceSlice(d.VariantValues()),
		}
		required = append(required, d.Discriminator)
	}

	for _, p := range d.Parameters {
		properties[p.Name] = paramJSONSchema(p)
		if p.Required {
			required = append(required, p.Name)
		}
	}
	for _, v := range d.Variants {
		for _, p := range v.Parameters {
			if _, ok := properties[p.Name]; ok {
				continue
			}
			schema := paramJSONSchema(p)
			if p.Required {
				schema["description"] = fmt.Sprintf("%s (required when %s is %q)", p.Description, d.Discriminator, v.When)
			}
			properties[p.Name] = schema
		}
	}

	schema := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// CompileSchemas compiles the validation schemas for the definition.
func (d *ToolDefinition) CompileSchemas() (*CompiledSchemas, error) {
	if d.Discriminator == "" {
		schema, err := compileObjectSchema(d.Parameters, nil, "")
		if err != nil {
			return nil, fmt.Errorf("tool %s: %w", d.Name, err)
		}
		return &CompiledSchemas{Schema: schema}, nil
	}

	variants := make(map[string]*gojsonschema.Schema, len(d.Variants))
	for _, v := range d.Variants {
		schema, err := compileObjectSchema(d.Parameters, v.Parameters, d.Discriminator)
		if err != nil {
			return nil, fmt.Errorf("tool %s variant %s: %w", d.Name, v.When, err)
		}
		variants[v.When] = schema
	}
	return &CompiledSchemas{Variants: variants}, nil
}

func compileObjectSchema(shared, variant []ToolParameter, discriminator string) (*gojsonschema.Schema, error) {
	properties := map[string]interface{}{}
	required := []string{}

	if discriminator != "" {
		properties[discriminator] = map[string]interface{}{"type": "string"}
		required = append(required, discriminator)
	}

	for _, p := range append(append([]ToolParameter{}, shared...), variant...) {
		properties[p.Name] = paramJSONSchema(p)
		if p.Required {
			required = append(required, p.Name)
		}
	}

	schemaMap := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           properties,
	}
	if len(required) > 0 {
		schemaMap["required"] = required
	}

	return gojsonschema.NewSchema(gojsonschema.NewGoLoader(schemaMap))
}

func paramJSONSchema(p ToolParameter) map[string]interface{} {
	schema := map[string]interface{}{
		"type":        p.Type,
		"description": p.Description,
	}
	if p.Default != nil {
		schema["default"] = p.Default
	}
	if len(p.Enum) > 0 {
		schema["enum"] = toInterfaceSlice(p.Enum)
	}
	if p.Minimum != nil {
		schema["minimum"] = *p.Minimum
	}
	if p.Maximum != nil {
		schema["maximum"] = *p.Maximum
	}
	if p.Type == "string" && p.Required && !p.AllowEmpty {
		schema["minLength"] = 1
	}
	return schema
}

func toInterfaceSlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
