package bridge

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harun/toolgate/pkg/action"
	"github.com/harun/toolgate/pkg/dispatch"
	"github.com/harun/toolgate/pkg/tooldef"
	"github.com/harun/toolgate/pkg/toolset"
	"github.com/harun/toolgate/pkg/validate"
)

func testBridge(t *testing.T) *Bridge {
	t.Helper()
	set, err := toolset.New("test", tooldef.ToolDefinition{
		Name:        "exec",
		Description: "Run a command",
		Parameters: []tooldef.ToolParameter{
			{Name: "command", Type: "string", Description: "Command", Required: true},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			return action.RunCommand{Command: params["command"].(string)}, nil
		},
	})
	require.NoError(t, err)
	return New(dispatch.New(set))
}

func TestTryNew_MigratedTool(t *testing.T) {
	b := testBridge(t)

	act, err := b.TryNew("exec", map[string]interface{}{"command": "ls"})
	require.NoError(t, err)
	assert.Equal(t, action.KindRunCommand, act.ActionKind())
}

func TestTryNew_NotMigratedOnlyForUnregisteredNames(t *testing.T) {
	b := testBridge(t)

	_, err := b.TryNew("screenshot", map[string]interface{}{})
	assert.ErrorIs(t, err, ErrNotMigrated)
}

func TestTryNew_NeverMasksValidationFailure(t *testing.T) {
	b := testBridge(t)

	// A registered tool with bad arguments must fail validation, not
	// fall through to legacy.
	_, err := b.TryNew("exec", map[string]interface{}{})
	assert.NotErrorIs(t, err, ErrNotMigrated)

	var verr *validate.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "command", verr.Field)
}

func TestDispatch_LegacyFallback(t *testing.T) {
	b := testBridge(t)
	b.RegisterLegacy("screenshot", func(raw json.RawMessage) (action.Action, error) {
		return action.BrowserNavigate{URL: "about:blank"}, nil
	})

	act, err := b.Dispatch(dispatch.ToolCall{Name: "screenshot", Arguments: map[string]interface{}{"whatever": true}})
	require.NoError(t, err)
	assert.Equal(t, action.KindBrowserNavigate, act.ActionKind())
}

func TestDispatch_LegacyErrorPropagates(t *testing.T) {
	b := testBridge(t)
	b.RegisterLegacy("screenshot", func(raw json.RawMessage) (action.Action, error) {
		return nil, fmt.Errorf("screenshot: no display")
	})

	_, err := b.Dispatch(dispatch.ToolCall{Name: "screenshot"})
	assert.ErrorContains(t, err, "no display")
}

func TestDispatch_UnknownEverywhere(t *testing.T) {
	b := testBridge(t)

	_, err := b.Dispatch(dispatch.ToolCall{Name: "delete_universe"})

	var unknown *dispatch.UnknownToolError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "delete_universe", unknown.Tool)
}

func TestDispatch_NewPathWinsOverLegacy(t *testing.T) {
	b := testBridge(t)
	b.RegisterLegacy("exec", func(raw json.RawMessage) (action.Action, error) {
		return action.RunCommand{Command: "legacy"}, nil
	})

	act, err := b.Dispatch(dispatch.ToolCall{Name: "exec", Arguments: map[string]interface{}{"command": "ls"}})
	require.NoError(t, err)
	run := act.(action.RunCommand)
	assert.Equal(t, "ls", run.Command)
}

func TestPending(t *testing.T) {
	b := testBridge(t)
	b.RegisterLegacy("exec", func(raw json.RawMessage) (action.Action, error) { return nil, nil })
	b.RegisterLegacy("screenshot", func(raw json.RawMessage) (action.Action, error) { return nil, nil })

	// exec is migrated; only screenshot is still pending.
	assert.Equal(t, []string{"screenshot"}, b.Pending())
}

func TestLegacySearch(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    action.WebSearch
		wantErr bool
	}{
		{
			name: "query field",
			raw:  `{"query": "golang", "limit": 5}`,
			want: action.WebSearch{Query: "golang", MaxResults: 5},
		},
		{
			name: "legacy q alias",
			raw:  `{"q": "golang"}`,
			want: action.WebSearch{Query: "golang", MaxResults: 10},
		},
		{
			name: "unknown fields ignored",
			raw:  `{"query": "golang", "safe_mode": true}`,
			want: action.WebSearch{Query: "golang", MaxResults: 10},
		},
		{
			name:    "missing query",
			raw:     `{"limit": 5}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := LegacySearch(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, act)
		})
	}
}

func TestLegacyListDir(t *testing.T) {
	act, err := LegacyListDir(json.RawMessage(`{"dir": "src"}`))
	require.NoError(t, err)
	assert.Equal(t, action.FindFiles{Pattern: "*", Root: "src"}, act)

	act, err = LegacyListDir(json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, action.FindFiles{Pattern: "*", Root: "."}, act)
}

func TestLegacyOpenURL(t *testing.T) {
	act, err := LegacyOpenURL(json.RawMessage(`{"href": " https://example.com "}`))
	require.NoError(t, err)
	assert.Equal(t, action.BrowserNavigate{URL: "https://example.com"}, act)

	_, err = LegacyOpenURL(json.RawMessage(`{}`))
	assert.Error(t, err)
}
