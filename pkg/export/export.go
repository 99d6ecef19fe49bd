// Package export projects tool definitions into provider function-calling
// formats. Projections are pure and deterministic: nothing beyond the
// name, description, and parameter schema leaks through.
package export

import (
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"

	"github.com/harun/toolgate/pkg/tooldef"
)

// Schema is the provider-neutral projection of one tool.
type Schema struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"input_schema"`
}

// Schemas returns the neutral projection of every definition in order.
func Schemas(defs []tooldef.ToolDefinition) []Schema {
	out := make([]Schema, 0, len(defs))
	for _, def := range defs {
		out = append(out, Schema{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.JSONSchema(),
		})
	}
	return out
}

// Anthropic projects definitions into the Anthropic tools array.
func Anthropic(defs []tooldef.ToolDefinition) []anthropic.ToolUnionParam {
	tools := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, def := range defs {
		schema := def.JSONSchema()

		toolParam := anthropic.ToolParam{
			Name:        def.Name,
			Description: anthropic.String(def.Description),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: schema["properties"],
			},
		}
		if required, ok := schema["required"].([]string); ok {
			toolParam.InputSchema.Required = required
		}

		tools = append(tools, anthropic.ToolUnionParam{OfTool: &toolParam})
	}
	return tools
}

// OpenAI projects definitions into the OpenAI chat-completions tools array.
func OpenAI(defs []tooldef.ToolDefinition) []openai.ChatCompletionToolParam {
	tools := make([]openai.ChatCompletionToolParam, 0, len(defs))
	for _, def := range defs {
		tools = append(tools, openai.ChatCompletionToolParam{
			Type: "function",
			Function: openai.FunctionDefinitionParam{
				Name:        def.Name,
				Description: openai.String(def.Description),
				Parameters:  openai.FunctionParameters(def.JSONSchema()),
			},
		})
	}
	return tools
}
