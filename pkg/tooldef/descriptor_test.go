package tooldef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/toolgate/pkg/action"
)

func number(v float64) *float64 { return &v }

func noopConstruct(params map[string]interface{}) (action.Action, error) {
	return action.RunCommand{}, nil
}

func validDef() ToolDefinition {
	return ToolDefinition{
		Name:        "run_command",
		Description: "Run a shell command",
		Parameters: []ToolParameter{
			{Name: "command", Type: "string", Description: "Command", Required: true},
			{Name: "timeout_seconds", Type: "number", Description: "Timeout", Minimum: number(1), Maximum: number(600)},
		},
		Construct: noopConstruct,
	}
}

func validDiscriminatorDef() ToolDefinition {
	return ToolDefinition{
		Name:          "edit_file",
		Description:   "View or edit a file",
		Discriminator: "command",
		Parameters: []ToolParameter{
			{Name: "path", Type: "string", Description: "Path", Required: true},
		},
		Variants: []ToolVariant{
			{When: "view", Parameters: []ToolParameter{
				{Name: "start_line", Type: "integer", Description: "First line", Minimum: number(1)},
			}},
			{When: "edit", Parameters: []ToolParameter{
				{Name: "old_text", Type: "string", Description: "Text to replace", Required: true},
				{Name: "new_text", Type: "string", Description: "Replacement", Required: true, AllowEmpty: true},
			}},
		},
		Construct: noopConstruct,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ToolDefinition)
		wantErr string
	}{
		{
			name:   "valid definition",
			mutate: func(d *ToolDefinition) {},
		},
		{
			name:    "empty name",
			mutate:  func(d *ToolDefinition) { d.Name = "" },
			wantErr: "name cannot be empty",
		},
		{
			name:    "empty description",
			mutate:  func(d *ToolDefinition) { d.Description = "" },
			wantErr: "description cannot be empty",
		},
		{
			name:    "nil constructor",
			mutate:  func(d *ToolDefinition) { d.Construct = nil },
			wantErr: "constructor cannot be nil",
		},
		{
			name: "duplicate parameter",
			mutate: func(d *ToolDefinition) {
				d.Parameters = append(d.Parameters, ToolParameter{Name: "command", Type: "string", Description: "Dup"})
			},
			wantErr: "duplicate parameter",
		},
		{
			name: "invalid parameter type",
			mutate: func(d *ToolDefinition) {
				d.Parameters[0].Type = "text"
			},
			wantErr: "invalid parameter type",
		},
		{
			name: "enum on non-string",
			mutate: func(d *ToolDefinition) {
				d.Parameters[1].Enum = []string{"a"}
			},
			wantErr: "must be a string",
		},
		{
			name: "range on non-numeric",
			mutate: func(d *ToolDefinition) {
				d.Parameters[0].Minimum = number(1)
			},
			wantErr: "range on non-numeric",
		},
		{
			name: "variants without discriminator",
			mutate: func(d *ToolDefinition) {
				d.Variants = []ToolVariant{{When: "view"}}
			},
			wantErr: "require a discriminator",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDef()
			tt.mutate(&def)
			err := def.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Discriminator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ToolDefinition)
		wantErr string
	}{
		{
			name:   "valid discriminator definition",
			mutate: func(d *ToolDefinition) {},
		},
		{
			name:    "discriminator without variants",
			mutate:  func(d *ToolDefinition) { d.Variants = nil },
			wantErr: "has no variants",
		},
		{
			name: "discriminator listed in parameters",
			mutate: func(d *ToolDefinition) {
				d.Parameters = append(d.Parameters, ToolParameter{Name: "command", Type: "string", Description: "Clash"})
			},
			wantErr: "must not be listed",
		},
		{
			name: "duplicate variant value",
			mutate: func(d *ToolDefinition) {
				d.Variants = append(d.Variants, ToolVariant{When: "view"})
			},
			wantErr: "duplicate variant",
		},
		{
			name: "empty variant value",
			mutate: func(d *ToolDefinition) {
				d.Variants[0].When = ""
			},
			wantErr: "variant value cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := validDiscriminatorDef()
			tt.mutate(&def)
			err := def.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestVariantAccessors(t *testing.T) {
	def := validDiscriminatorDef()

	assert.Equal(t, []string{"view", "edit"}, def.VariantValues())

	v, ok := def.Variant("edit")
	require.True(t, ok)
	assert.Equal(t, "old_text", v.Parameters[0].Name)

	_, ok = def.Variant("destroy")
	assert.False(t, ok)
}

func TestJSONSchema(t *testing.T) {
	def := validDef()
	schema := def.JSONSchema()

	assert.Equal(t, "object", schema["type"])
	assert.Equal(t, false, schema["additionalProperties"])
	assert.Equal(t, []string{"command"}, schema["required"])

	props := schema["properties"].(map[string]interface{})
	command := props["command"].(map[string]interface{})
	assert.Equal(t, "string", command["type"])
	// Required strings must be non-empty unless AllowEmpty is set.
	assert.Equal(t, 1, command["minLength"])

	timeout := props["timeout_seconds"].(map[string]interface{})
	assert.Equal(t, float64(1), timeout["minimum"])
	assert.Equal(t, float64(600), timeout["maximum"])
}

func TestJSONSchema_DiscriminatorFlattensVariants(t *testing.T) {
	def := validDiscriminatorDef()
	schema := def.JSONSchema()

	props := schema["properties"].(map[string]interface{})

	// Discriminator appears as an enum and is the only variant-side
	// required field in the flattened projection.
	command := props["command"].(map[string]interface{})
	assert.Equal(t, []interface{}{"view", "edit"}, command["enum"])
	assert.Equal(t, []string{"command", "path"}, schema["required"])

	// Variant parameters are flattened in as optional fields.
	assert.Contains(t, props, "start_line")
	assert.Contains(t, props, "old_text")
	oldText := props["old_text"].(map[string]interface{})
	assert.Contains(t, oldText["description"], `required when command is "edit"`)
}

func TestCompileSchemas(t *testing.T) {
	def := validDef()
	schemas, err := def.CompileSchemas()
	require.NoError(t, err)
	assert.NotNil(t, schemas.Schema)
	assert.Nil(t, schemas.Variants)

	disc := validDiscriminatorDef()
	schemas, err = disc.CompileSchemas()
	require.NoError(t, err)
	assert.Nil(t, schemas.Schema)
	assert.Len(t, schemas.Variants, 2)
	assert.Contains(t, schemas.Variants, "view")
	assert.Contains(t, schemas.Variants, "edit")
}
