package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/toolgate/pkg/dispatch"
	"github.com/harun/toolgate/pkg/validate"
)

func TestRootCommand(t *testing.T) {
	root := GetRootCmd()

	assert.Equal(t, "toolgate", root.Use)

	names := []string{}
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	assert.Contains(t, names, "tools")
	assert.Contains(t, names, "profiles")
	assert.Contains(t, names, "dispatch")

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}

func TestReadCalls(t *testing.T) {
	writeInput := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "calls.json")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	t.Run("single object", func(t *testing.T) {
		path := writeInput(t, `{"name": "exec", "arguments": {"command": "ls"}}`)
		calls, err := readCalls(dispatchCmd, []string{path})
		require.NoError(t, err)
		require.Len(t, calls, 1)
		assert.Equal(t, "exec", calls[0].Name)
	})

	t.Run("turn array", func(t *testing.T) {
		path := writeInput(t, `[
			{"name": "exec", "arguments": {"command": "ls"}},
			{"name": "grep", "arguments": {"pattern": "TODO"}}
		]`)
		calls, err := readCalls(dispatchCmd, []string{path})
		require.NoError(t, err)
		require.Len(t, calls, 2)
		assert.Equal(t, "grep", calls[1].Name)
	})

	t.Run("malformed input", func(t *testing.T) {
		path := writeInput(t, `{"name": `)
		_, err := readCalls(dispatchCmd, []string{path})
		assert.Error(t, err)
	})
}

func TestToErrorOutcome(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType string
	}{
		{
			name:     "validation error",
			err:      &validate.ValidationError{Tool: "exec", Field: "command", Kind: validate.KindMissing, Message: "missing"},
			wantType: "validation_error",
		},
		{
			name:     "unknown tool",
			err:      &dispatch.UnknownToolError{Tool: "teleport", Set: "full"},
			wantType: "unknown_tool",
		},
		{
			name:     "construction error",
			err:      &dispatch.ConstructionError{Tool: "exec", Err: errors.New("bad shape")},
			wantType: "construction_error",
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			wantType: "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := toErrorOutcome(tt.err)
			assert.Equal(t, tt.wantType, outcome.Type)
			assert.NotEmpty(t, outcome.Message)
		})
	}
}
