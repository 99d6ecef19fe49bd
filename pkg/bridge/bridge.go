// Package bridge lets structured tools coexist with legacy, hand-written
// tool handlers during incremental migration. The bridge tries the new
// validation/dispatch pipeline first and falls back to a legacy handler
// only when the tool name is not registered in the new ToolSet at all.
//
// This is a temporary seam: once every tool is migrated, ErrNotMigrated
// is never returned and the bridge reduces to the dispatcher.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/harun/toolgate/pkg/action"
	"github.com/harun/toolgate/pkg/dispatch"
)

// ErrNotMigrated signals that a tool has no entry in the new ToolSet.
// It is returned only for unregistered names, never to mask a genuine
// validation failure from the new pipeline.
var ErrNotMigrated = errors.New("tool not migrated to structured pipeline")

// LegacyHandler performs the old ad hoc validation and action construction
// for one tool, straight from the raw JSON payload. Legacy handlers keep
// their historical lenient behavior (unknown fields ignored, alternate
// field names accepted).
type LegacyHandler func(raw json.RawMessage) (action.Action, error)

// Bridge adapts between the structured pipeline and legacy handlers.
type Bridge struct {
	dispatcher *dispatch.Dispatcher
	mu         sync.RWMutex
	legacy     map[string]LegacyHandler
}

// New creates a Bridge over a dispatcher.
func New(dispatcher *dispatch.Dispatcher) *Bridge {
	return &Bridge{
		dispatcher: dispatcher,
		legacy:     make(map[string]LegacyHandler),
	}
}

// RegisterLegacy registers the legacy fallback for a not-yet-migrated tool.
func (b *Bridge) RegisterLegacy(name string, handler LegacyHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.legacy[name] = handler
	log.Info().Str("tool", name).Msg("Legacy tool handler registered")
}

// Pending returns the names of registered legacy handlers whose tools are
// still absent from the new ToolSet. A non-empty result means migration
// is incomplete.
func (b *Bridge) Pending() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := []string{}
	for name := range b.legacy {
		if _, _, ok := b.dispatcher.Set().Lookup(name); !ok {
			out = append(out, name)
		}
	}
	return out
}

// TryNew dispatches through the structured pipeline. It returns
// ErrNotMigrated only when the tool name is absent from the new ToolSet;
// every other outcome, including validation failures, comes from the new
// path unchanged.
func (b *Bridge) TryNew(name string, rawArguments map[string]interface{}) (action.Action, error) {
	if _, _, ok := b.dispatcher.Set().Lookup(name); !ok {
		return nil, ErrNotMigrated
	}
	return b.dispatcher.Dispatch(dispatch.ToolCall{Name: name, Arguments: rawArguments})
}

// Dispatch resolves a call through the new pipeline with legacy fallback.
// Names unknown to both paths yield *dispatch.UnknownToolError.
func (b *Bridge) Dispatch(call dispatch.ToolCall) (action.Action, error) {
	act, err := b.TryNew(call.Name, call.Arguments)
	if !errors.Is(err, ErrNotMigrated) {
		return act, err
	}

	b.mu.RLock()
	handler, ok := b.legacy[call.Name]
	b.mu.RUnlock()
	if !ok {
		return nil, &dispatch.UnknownToolError{Tool: call.Name, Set: b.dispatcher.Set().Name()}
	}

	raw, err := json.Marshal(call.Arguments)
	if err != nil {
		return nil, fmt.Errorf("failed to encode arguments for legacy tool %s: %w", call.Name, err)
	}

	log.Debug().Str("tool", call.Name).Msg("Falling back to legacy tool handler")
	return handler(raw)
}
