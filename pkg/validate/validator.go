// Package validate checks raw tool-call arguments against a tool's
// declared parameter schema.
//
// Invariants:
// - Validation is total: it returns either validated parameters or a
//   single *ValidationError, never a panic and never partial state.
// - Strict mode: fields not declared in the schema are rejected.
// - The input map is never mutated; coercions apply to a copy.
package validate

import (
	"sort"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/harun/toolgate/pkg/tooldef"
)

// Validate checks rawArguments against the definition's schema and returns
// the validated (and coerced) parameter set. Discriminator tools validate
// the discriminator field first and then apply only the matching variant's
// sub-schema. String-encoded numbers and booleans are coerced to their
// declared types before schema evaluation.
func Validate(def *tooldef.ToolDefinition, schemas *tooldef.CompiledSchemas, rawArguments map[string]interface{}) (map[string]interface{}, *ValidationError) {
	params := make(map[string]interface{}, len(rawArguments))
	for k, v := range rawArguments {
		params[k] = v
	}

	declared := def.Parameters
	schema := schemas.Schema

	if def.Discriminator != "" {
		value, present := params[def.Discriminator]
		if !present {
			return nil, missingErr(def.Name, def.Discriminator)
		}
		text, ok := value.(string)
		if !ok {
			return nil, typeErr(def.Name, def.Discriminator, "string")
		}
		variant, ok := def.Variant(text)
		if !ok {
			return nil, enumErr(def.Name, def.Discriminator, def.VariantValues())
		}
		declared = append(append([]tooldef.ToolParameter{}, def.Parameters...), variant.Parameters...)
		schema = schemas.Variants[text]
	}

	coerce(params, declared)

	result, err := schema.Validate(gojsonschema.NewGoLoader(params))
	if err != nil {
		return nil, &ValidationError{Tool: def.Name, Kind: KindInternal, Message: err.Error()}
	}
	if !result.Valid() {
		return nil, pickError(def, declared, result.Errors())
	}

	applyDefaults(params, declared)
	return params, nil
}

// coerce converts string-encoded scalars to their declared types. LLMs
// routinely emit "30" for a number field; rejecting that would only cause
// a correction round-trip.
func coerce(params map[string]interface{}, declared []tooldef.ToolParameter) {
	for _, d := range declared {
		value, ok := params[d.Name]
		if !ok {
			continue
		}
		text, ok := value.(string)
		if !ok {
			continue
		}
		switch d.Type {
		case "number", "integer":
			if f, err := strconv.ParseFloat(strings.TrimSpace(text), 64); err == nil {
				params[d.Name] = f
			}
		case "boolean":
			if b, err := strconv.ParseBool(strings.TrimSpace(text)); err == nil {
				params[d.Name] = b
			}
		}
	}
}

func applyDefaults(params map[string]interface{}, declared []tooldef.ToolParameter) {
	for _, d := range declared {
		if d.Default == nil {
			continue
		}
		if _, ok := params[d.Name]; !ok {
			params[d.Name] = d.Default
		}
	}
}

// pickError translates gojsonschema results into a single deterministic
// ValidationError. Missing required fields win over unknown fields, which
// win over per-field violations; ties break on parameter declaration order.
func pickError(def *tooldef.ToolDefinition, declared []tooldef.ToolParameter, errs []gojsonschema.ResultError) *ValidationError {
	order := make(map[string]int, len(declared)+1)
	if def.Discriminator != "" {
		order[def.Discriminator] = 0
	}
	for i, d := range declared {
		order[d.Name] = i + 1
	}
	declIndex := func(field string) int {
		if i, ok := order[field]; ok {
			return i
		}
		return len(order) + 1
	}
	declByName := func(field string) *tooldef.ToolParameter {
		for i := range declared {
			if declared[i].Name == field {
				return &declared[i]
			}
		}
		return nil
	}

	type candidate struct {
		priority int
		rank     int
		field    string
		err      *ValidationError
	}
	candidates := []candidate{}

	for _, re := range errs {
		switch re.Type() {
		case "required":
			field, _ := re.Details()["property"].(string)
			candidates = append(candidates, candidate{0, declIndex(field), field, missingErr(def.Name, field)})
		case "additional_property_not_allowed":
			field, _ := re.Details()["property"].(string)
			candidates = append(candidates, candidate{1, 0, field, unknownFieldErr(def.Name, field)})
		case "invalid_type":
			field := re.Field()
			want := "valid value"
			if d := declByName(field); d != nil {
				want = d.Type
			}
			candidates = append(candidates, candidate{2, declIndex(field), field, typeErr(def.Name, field, want)})
		case "enum":
			field := re.Field()
			allowed := []string{}
			if d := declByName(field); d != nil {
				allowed = d.Enum
			}
			candidates = append(candidates, candidate{2, declIndex(field), field, enumErr(def.Name, field, allowed)})
		case "number_gte", "number_lte", "number_gt", "number_lt":
			field := re.Field()
			var min, max *float64
			if d := declByName(field); d != nil {
				min, max = d.Minimum, d.Maximum
			}
			candidates = append(candidates, candidate{2, declIndex(field), field, rangeErr(def.Name, field, min, max)})
		case "string_gte":
			field := re.Field()
			candidates = append(candidates, candidate{2, declIndex(field), field, emptyErr(def.Name, field)})
		default:
			field := re.Field()
			candidates = append(candidates, candidate{3, declIndex(field), field, &ValidationError{
				Tool: def.Name, Field: field, Kind: KindType, Message: re.Description(),
			}})
		}
	}

	if len(candidates) == 0 {
		return &ValidationError{Tool: def.Name, Kind: KindInternal, Message: "schema validation failed"}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].priority != candidates[j].priority {
			return candidates[i].priority < candidates[j].priority
		}
		if candidates[i].rank != candidates[j].rank {
			return candidates[i].rank < candidates[j].rank
		}
		return candidates[i].field < candidates[j].field
	})
	return candidates[0].err
}
