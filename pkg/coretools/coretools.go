// Package coretools declares the built-in tool catalog: shell, filesystem,
// search, and browser capabilities. Definitions here only describe and
// construct; execution belongs to external backends.
package coretools

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harun/toolgate/pkg/action"
	"github.com/harun/toolgate/pkg/tooldef"
	"github.com/harun/toolgate/pkg/toolset"
)

func number(v float64) *float64 { return &v }

// Definitions returns every built-in tool definition in stable order.
func Definitions() []tooldef.ToolDefinition {
	return []tooldef.ToolDefinition{
		execTool(),
		readFileTool(),
		writeFileTool(),
		editFileTool(),
		applyPatchTool(),
		findFilesTool(),
		grepTool(),
		webSearchTool(),
		browserNavigateTool(),
		browserClickTool(),
		browserTypeTool(),
	}
}

// BaseSet composes the full built-in catalog as the shared base set that
// agent profiles derive from.
func BaseSet() (*toolset.ToolSet, error) {
	return toolset.New("core", Definitions()...)
}

// Select returns the named built-in definitions in the given order.
func Select(names ...string) ([]tooldef.ToolDefinition, error) {
	byName := map[string]tooldef.ToolDefinition{}
	for _, def := range Definitions() {
		byName[def.Name] = def
	}
	out := make([]tooldef.ToolDefinition, 0, len(names))
	for _, name := range names {
		def, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown core tool: %s", name)
		}
		out = append(out, def)
	}
	return out, nil
}

func execTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "exec",
		Description: "Execute a shell command in the agent runtime.",
		Parameters: []tooldef.ToolParameter{
			{Name: "command", Type: "string", Description: "Command to execute", Required: true},
			{Name: "args", Type: "array", Description: "Command arguments", Required: false},
			{Name: "cwd", Type: "string", Description: "Working directory (relative to workspace)", Required: false},
			{Name: "timeout_seconds", Type: "number", Description: "Timeout in seconds (default 30)", Required: false, Minimum: number(1), Maximum: number(600)},
			{Name: "env", Type: "object", Description: "Environment variables", Required: false},
			{Name: "stdin", Type: "string", Description: "Standard input", Required: false},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			command, ok := params["command"].(string)
			if !ok {
				return nil, fmt.Errorf("command must be a string")
			}
			act := action.RunCommand{
				Command:    command,
				Args:       toStringSlice(params["args"]),
				WorkingDir: stringOr(params["cwd"], ""),
				Env:        toStringMap(params["env"]),
				Stdin:      stringOr(params["stdin"], ""),
				Timeout:    parseDurationSeconds(params["timeout_seconds"], 30*time.Second),
			}
			return act, nil
		},
	}
}

func readFileTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "read_file",
		Description: "Read a file from the workspace.",
		Parameters: []tooldef.ToolParameter{
			{Name: "path", Type: "string", Description: "Relative file path", Required: true},
			{Name: "max_bytes", Type: "number", Description: "Maximum bytes to read (default 200000)", Required: false, Minimum: number(1), Default: float64(200000)},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			path, ok := params["path"].(string)
			if !ok {
				return nil, fmt.Errorf("path must be a string")
			}
			return action.ReadFile{
				Path:     path,
				MaxBytes: int64(numberOr(params["max_bytes"], 200000)),
			}, nil
		},
	}
}

func writeFileTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "write_file",
		Description: "Write content to a file in the workspace.",
		Parameters: []tooldef.ToolParameter{
			{Name: "path", Type: "string", Description: "Relative file path", Required: true},
			{Name: "content", Type: "string", Description: "File content", Required: true, AllowEmpty: true},
			{Name: "append", Type: "boolean", Description: "Append to file (default false)", Required: false},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			path, ok := params["path"].(string)
			if !ok {
				return nil, fmt.Errorf("path must be a string")
			}
			content, ok := params["content"].(string)
			if !ok {
				return nil, fmt.Errorf("content must be a string")
			}
			return action.WriteFile{
				Path:    path,
				Content: content,
				Append:  boolOr(params["append"], false),
			}, nil
		},
	}
}

func editFileTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:          "edit_file",
		Description:   "View, create, or edit a workspace file.",
		Discriminator: "command",
		Parameters: []tooldef.ToolParameter{
			{Name: "path", Type: "string", Description: "Relative file path", Required: true},
		},
		Variants: []tooldef.ToolVariant{
			{
				When: "view",
				Parameters: []tooldef.ToolParameter{
					{Name: "start_line", Type: "integer", Description: "First line to show", Required: false, Minimum: number(1)},
					{Name: "end_line", Type: "integer", Description: "Last line to show", Required: false, Minimum: number(1)},
				},
			},
			{
				When: "create",
				Parameters: []tooldef.ToolParameter{
					{Name: "content", Type: "string", Description: "Content of the new file", Required: true, AllowEmpty: true},
				},
			},
			{
				When: "edit",
				Parameters: []tooldef.ToolParameter{
					{Name: "old_text", Type: "string", Description: "Exact text to replace", Required: true},
					{Name: "new_text", Type: "string", Description: "Replacement text", Required: true, AllowEmpty: true},
					{Name: "replace_all", Type: "boolean", Description: "Replace all occurrences (default false)", Required: false},
				},
			},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			path, ok := params["path"].(string)
			if !ok {
				return nil, fmt.Errorf("path must be a string")
			}
			command, _ := params["command"].(string)
			switch command {
			case "view":
				return action.ViewFile{
					Path:      path,
					StartLine: int(numberOr(params["start_line"], 0)),
					EndLine:   int(numberOr(params["end_line"], 0)),
				}, nil
			case "create":
				content, ok := params["content"].(string)
				if !ok {
					return nil, fmt.Errorf("content must be a string")
				}
				return action.CreateFile{Path: path, Content: content}, nil
			case "edit":
				oldText, ok := params["old_text"].(string)
				if !ok {
					return nil, fmt.Errorf("old_text must be a string")
				}
				newText, ok := params["new_text"].(string)
				if !ok {
					return nil, fmt.Errorf("new_text must be a string")
				}
				return action.EditFile{
					Path:       path,
					OldText:    oldText,
					NewText:    newText,
					ReplaceAll: boolOr(params["replace_all"], false),
				}, nil
			default:
				return nil, fmt.Errorf("unsupported command: %s", command)
			}
		},
	}
}

func applyPatchTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "apply_patch",
		Description: "Apply a unified diff patch within the workspace.",
		Parameters: []tooldef.ToolParameter{
			{Name: "patch", Type: "string", Description: "Unified diff patch", Required: true},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			patch, ok := params["patch"].(string)
			if !ok {
				return nil, fmt.Errorf("patch must be a string")
			}
			return action.ApplyPatch{Patch: patch}, nil
		},
	}
}

func findFilesTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "find_files",
		Description: "Find workspace files matching a glob pattern.",
		Parameters: []tooldef.ToolParameter{
			{Name: "pattern", Type: "string", Description: "Glob pattern", Required: true},
			{Name: "root", Type: "string", Description: "Directory to search from (default workspace root)", Required: false},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			pattern, ok := params["pattern"].(string)
			if !ok {
				return nil, fmt.Errorf("pattern must be a string")
			}
			return action.FindFiles{Pattern: pattern, Root: stringOr(params["root"], "")}, nil
		},
	}
}

func grepTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "grep",
		Description: "Search workspace file contents for a pattern.",
		Parameters: []tooldef.ToolParameter{
			{Name: "pattern", Type: "string", Description: "Regular expression to search for", Required: true},
			{Name: "path", Type: "string", Description: "File or directory to search (default workspace root)", Required: false},
			{Name: "case_insensitive", Type: "boolean", Description: "Ignore case (default false)", Required: false},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			pattern, ok := params["pattern"].(string)
			if !ok {
				return nil, fmt.Errorf("pattern must be a string")
			}
			return action.Grep{
				Pattern:         pattern,
				Path:            stringOr(params["path"], ""),
				CaseInsensitive: boolOr(params["case_insensitive"], false),
			}, nil
		},
	}
}

func webSearchTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "web_search",
		Description: "Run a web search and return result summaries.",
		Parameters: []tooldef.ToolParameter{
			{Name: "query", Type: "string", Description: "Search query", Required: true},
			{Name: "max_results", Type: "integer", Description: "Maximum results (default 10)", Required: false, Minimum: number(1), Maximum: number(50), Default: float64(10)},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			query, ok := params["query"].(string)
			if !ok {
				return nil, fmt.Errorf("query must be a string")
			}
			return action.WebSearch{
				Query:      query,
				MaxResults: int(numberOr(params["max_results"], 10)),
			}, nil
		},
	}
}

func browserNavigateTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "browser_navigate",
		Description: "Navigate the browser session to a URL.",
		Parameters: []tooldef.ToolParameter{
			{Name: "url", Type: "string", Description: "Destination URL", Required: true},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			url, ok := params["url"].(string)
			if !ok {
				return nil, fmt.Errorf("url must be a string")
			}
			return action.BrowserNavigate{URL: url}, nil
		},
	}
}

func browserClickTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "browser_click",
		Description: "Click an element in the current browser page.",
		Parameters: []tooldef.ToolParameter{
			{Name: "selector", Type: "string", Description: "CSS selector of the element", Required: true},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			selector, ok := params["selector"].(string)
			if !ok {
				return nil, fmt.Errorf("selector must be a string")
			}
			return action.BrowserClick{Selector: selector}, nil
		},
	}
}

func browserTypeTool() tooldef.ToolDefinition {
	return tooldef.ToolDefinition{
		Name:        "browser_type",
		Description: "Type text into an element in the current browser page.",
		Parameters: []tooldef.ToolParameter{
			{Name: "selector", Type: "string", Description: "CSS selector of the element", Required: true},
			{Name: "text", Type: "string", Description: "Text to type", Required: true, AllowEmpty: true},
			{Name: "submit", Type: "boolean", Description: "Press enter after typing (default false)", Required: false},
		},
		Construct: func(params map[string]interface{}) (action.Action, error) {
			selector, ok := params["selector"].(string)
			if !ok {
				return nil, fmt.Errorf("selector must be a string")
			}
			text, ok := params["text"].(string)
			if !ok {
				return nil, fmt.Errorf("text must be a string")
			}
			return action.BrowserType{
				Selector: selector,
				Text:     text,
				Submit:   boolOr(params["submit"], false),
			}, nil
		},
	}
}

func stringOr(value interface{}, fallback string) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fallback
}

func boolOr(value interface{}, fallback bool) bool {
	if b, ok := value.(bool); ok {
		return b
	}
	return fallback
}

func numberOr(value interface{}, fallback float64) float64 {
	if f, ok := value.(float64); ok {
		return f
	}
	return fallback
}

func toStringSlice(value interface{}) []string {
	raw, ok := value.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toStringMap(value interface{}) map[string]string {
	raw, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch typed := v.(type) {
		case string:
			out[k] = typed
		default:
			b, _ := json.Marshal(typed)
			out[k] = string(b)
		}
	}
	return out
}

func parseDurationSeconds(value interface{}, fallback time.Duration) time.Duration {
	if v, ok := value.(float64); ok && v > 0 {
		return time.Duration(v * float64(time.Second))
	}
	return fallback
}
