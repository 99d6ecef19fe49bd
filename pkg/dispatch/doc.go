// Package dispatch resolves LLM tool-call requests into typed Actions.
//
// Each call moves through lookup, validation, and construction in one
// stateless pass: the tool name is resolved against an immutable ToolSet,
// raw arguments are validated against the tool's schema, and the validated
// parameters are mapped to an Action for an external execution backend.
//
// Invariants:
// - Calls within a turn dispatch sequentially in declaration order and
//   never affect one another's outcome.
// - Unknown tool names and invalid arguments are returned as values
//   (*UnknownToolError, *validate.ValidationError), never panics.
// - A constructor failure after successful validation is a
//   *ConstructionError and is logged at error level.
//
// Usage:
//
//	d := dispatch.New(set)
//	act, err := d.Dispatch(dispatch.ToolCall{Name: "exec", Arguments: args})
package dispatch
