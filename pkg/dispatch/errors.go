package dispatch

import "fmt"

// UnknownToolError is returned when the requested tool name is absent from
// the agent's composed ToolSet. Distinct from a validation failure: it
// usually means a prompt/tool-set mismatch or a hallucinated tool name.
type UnknownToolError struct {
	Tool string
	Set  string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q (not in tool set %q)", e.Tool, e.Set)
}

// ConstructionError reports a mismatch between a successfully validated
// parameter set and the tool's constructor. This is an internal invariant
// violation in the tool definition itself, not a user-facing validation
// failure.
type ConstructionError struct {
	Tool string
	Err  error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("tool %q: action construction failed after validation: %v", e.Tool, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }
