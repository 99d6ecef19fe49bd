package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harun/toolgate/pkg/action"
	"github.com/harun/toolgate/pkg/bridge"
	"github.com/harun/toolgate/pkg/dispatch"
	"github.com/harun/toolgate/pkg/validate"
)

var dispatchProfile string

var dispatchCmd = &cobra.Command{
	Use:   "dispatch [file]",
	Short: "Dry-run tool calls through the validation pipeline",
	Long: `Read one tool call (a JSON object) or a turn of tool calls (a JSON
array) from a file or stdin, dispatch them against a profile's tool set,
and print the constructed actions or structured errors. Nothing is
executed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDispatch,
}

func init() {
	dispatchCmd.Flags().StringVar(&dispatchProfile, "profile", "", "agent profile (default from config)")
	rootCmd.AddCommand(dispatchCmd)
}

// callOutcome is the printable result of one dispatched call.
type callOutcome struct {
	ID     string         `json:"id,omitempty"`
	Tool   string         `json:"tool"`
	Status string         `json:"status"`
	Kind   string         `json:"action_kind,omitempty"`
	Action action.Action  `json:"action,omitempty"`
	Error  *errorOutcome  `json:"error,omitempty"`
}

type errorOutcome struct {
	Type    string   `json:"type"`
	Field   string   `json:"field,omitempty"`
	Message string   `json:"message"`
	Allowed []string `json:"allowed,omitempty"`
}

func runDispatch(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	set, err := rt.toolSet(dispatchProfile)
	if err != nil {
		return err
	}

	calls, err := readCalls(cmd, args)
	if err != nil {
		return err
	}
	for i := range calls {
		if calls[i].ID == "" {
			calls[i].ID = uuid.NewString()
		}
	}

	dispatcher := dispatch.New(set)
	br := bridge.New(dispatcher)
	br.RegisterLegacy("search", bridge.LegacySearch)
	br.RegisterLegacy("list_dir", bridge.LegacyListDir)
	br.RegisterLegacy("open_url", bridge.LegacyOpenURL)

	outcomes := make([]callOutcome, 0, len(calls))
	for _, result := range dispatcher.DispatchTurn(calls) {
		outcome := callOutcome{
			ID:     result.CallID,
			Tool:   result.Tool,
			Status: string(result.Status),
		}
		if result.Status == dispatch.StatusUnknownTool {
			// Not in the structured set; the bridge may still know it.
			act, err := br.Dispatch(dispatch.ToolCall{Name: result.Tool, Arguments: argumentsFor(calls, result.CallID)})
			if err == nil {
				outcome.Status = string(dispatch.StatusConstructed)
				outcome.Kind = string(act.ActionKind())
				outcome.Action = act
				outcomes = append(outcomes, outcome)
				continue
			}
			result.Err = err
		}
		if result.Err != nil {
			outcome.Error = toErrorOutcome(result.Err)
			outcomes = append(outcomes, outcome)
			continue
		}
		outcome.Kind = string(result.Action.ActionKind())
		outcome.Action = result.Action
		outcomes = append(outcomes, outcome)
	}

	return printJSON(cmd, outcomes)
}

func readCalls(cmd *cobra.Command, args []string) ([]dispatch.ToolCall, error) {
	var reader io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		file, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		reader = file
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	// Accept a single call object or a turn-shaped array.
	var calls []dispatch.ToolCall
	if err := json.Unmarshal(data, &calls); err == nil {
		return calls, nil
	}
	call, err := dispatch.ParseToolCall(data)
	if err != nil {
		return nil, err
	}
	return []dispatch.ToolCall{call}, nil
}

func argumentsFor(calls []dispatch.ToolCall, callID string) map[string]interface{} {
	for _, c := range calls {
		if c.ID == callID {
			return c.Arguments
		}
	}
	return nil
}

func toErrorOutcome(err error) *errorOutcome {
	switch e := err.(type) {
	case *validate.ValidationError:
		return &errorOutcome{
			Type:    "validation_error",
			Field:   e.Field,
			Message: e.Message,
			Allowed: e.Allowed,
		}
	case *dispatch.UnknownToolError:
		return &errorOutcome{Type: "unknown_tool", Message: e.Error()}
	case *dispatch.ConstructionError:
		return &errorOutcome{Type: "construction_error", Message: e.Error()}
	default:
		return &errorOutcome{Type: "error", Message: err.Error()}
	}
}
