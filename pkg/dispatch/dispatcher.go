package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/harun/toolgate/pkg/action"
	"github.com/harun/toolgate/pkg/toolset"
	"github.com/harun/toolgate/pkg/validate"
)

// ToolCall is one structured invocation request produced by an LLM turn.
// Arguments is the raw payload as received; it is consumed immediately and
// not retained.
type ToolCall struct {
	ID        string                 `json:"id,omitempty"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ParseToolCall decodes a JSON-shaped tool call. The arguments document is
// kept semi-structured; type checking happens during validation.
func ParseToolCall(data []byte) (ToolCall, error) {
	var call ToolCall
	if err := json.Unmarshal(data, &call); err != nil {
		return ToolCall{}, fmt.Errorf("failed to parse tool call: %w", err)
	}
	if call.Name == "" {
		return ToolCall{}, fmt.Errorf("tool call has no tool name")
	}
	return call, nil
}

// Status records the terminal state of one dispatched call.
type Status string

const (
	StatusConstructed Status = "constructed"
	StatusUnknownTool Status = "unknown_tool"
	StatusInvalid     Status = "invalid"
	StatusInternal    Status = "internal_error"
)

// Result is the outcome of dispatching one ToolCall. Exactly one of
// Action and Err is set.
type Result struct {
	CallID string
	Tool   string
	Status Status
	Action action.Action
	Err    error
}

// Dispatcher resolves tool calls against one agent profile's ToolSet.
// It carries no per-request state; a single Dispatcher is safe for
// concurrent use because the underlying set is immutable.
type Dispatcher struct {
	set *toolset.ToolSet
}

// New creates a Dispatcher over an immutable ToolSet.
func New(set *toolset.ToolSet) *Dispatcher {
	return &Dispatcher{set: set}
}

// Set returns the dispatcher's tool set.
func (d *Dispatcher) Set() *toolset.ToolSet { return d.set }

// Dispatch resolves one tool call to an Action or a terminal error.
// Unknown names yield *UnknownToolError, invalid arguments yield
// *validate.ValidationError, and a constructor failure after successful
// validation yields *ConstructionError.
func (d *Dispatcher) Dispatch(call ToolCall) (action.Action, error) {
	def, schemas, ok := d.set.Lookup(call.Name)
	if !ok {
		log.Warn().
			Str("tool", call.Name).
			Str("set", d.set.Name()).
			Msg("Tool call for unknown tool")
		return nil, &UnknownToolError{Tool: call.Name, Set: d.set.Name()}
	}

	params, verr := validate.Validate(def, schemas, call.Arguments)
	if verr != nil {
		log.Debug().
			Str("tool", call.Name).
			Str("field", verr.Field).
			Str("kind", string(verr.Kind)).
			Msg("Tool call failed validation")
		return nil, verr
	}

	act, err := def.Construct(params)
	if err != nil {
		// Validated parameters must always construct; this is a bug in
		// the tool definition, so make it loud.
		log.Error().
			Str("tool", call.Name).
			Err(err).
			Msg("Action construction failed for validated parameters")
		return nil, &ConstructionError{Tool: call.Name, Err: err}
	}

	log.Debug().
		Str("tool", call.Name).
		Str("kind", string(act.ActionKind())).
		Msg("Tool call dispatched")

	return act, nil
}

// DispatchTurn dispatches a turn's calls independently, preserving
// declaration order. A failure in one call never invalidates another;
// each Result carries its own terminal status. Calls without an ID are
// assigned one so results stay attributable.
func (d *Dispatcher) DispatchTurn(calls []ToolCall) []Result {
	results := make([]Result, 0, len(calls))
	for _, call := range calls {
		if call.ID == "" {
			call.ID = uuid.NewString()
		}
		act, err := d.Dispatch(call)
		results = append(results, Result{
			CallID: call.ID,
			Tool:   call.Name,
			Status: statusFor(act, err),
			Action: act,
			Err:    err,
		})
	}
	return results
}

func statusFor(act action.Action, err error) Status {
	if err == nil && act != nil {
		return StatusConstructed
	}
	switch err.(type) {
	case *UnknownToolError:
		return StatusUnknownTool
	case *ConstructionError:
		return StatusInternal
	default:
		return StatusInvalid
	}
}
