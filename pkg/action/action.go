package action

import "time"

// Kind identifies the concrete Action variant.
type Kind string

const (
	KindRunCommand      Kind = "run_command"
	KindReadFile        Kind = "read_file"
	KindViewFile        Kind = "view_file"
	KindCreateFile      Kind = "create_file"
	KindWriteFile       Kind = "write_file"
	KindEditFile        Kind = "edit_file"
	KindApplyPatch      Kind = "apply_patch"
	KindFindFiles       Kind = "find_files"
	KindGrep            Kind = "grep"
	KindWebSearch       Kind = "web_search"
	KindBrowserNavigate Kind = "browser_navigate"
	KindBrowserClick    Kind = "browser_click"
	KindBrowserType     Kind = "browser_type"
)

// Action is a fully validated, typed command ready to be handed to an
// execution backend. Constructing an Action never executes it.
type Action interface {
	ActionKind() Kind
}

// RunCommand executes a shell command in the agent runtime.
type RunCommand struct {
	Command    string            `json:"command"`
	Args       []string          `json:"args,omitempty"`
	WorkingDir string            `json:"working_dir,omitempty"`
	Env        map[string]string `json:"env,omitempty"`
	Stdin      string            `json:"stdin,omitempty"`
	Timeout    time.Duration     `json:"timeout,omitempty"`
}

// ReadFile reads a file from the workspace.
type ReadFile struct {
	Path     string `json:"path"`
	MaxBytes int64  `json:"max_bytes,omitempty"`
}

// ViewFile shows a line range of a workspace file.
type ViewFile struct {
	Path      string `json:"path"`
	StartLine int    `json:"start_line,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
}

// CreateFile creates a new workspace file with the given content.
type CreateFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// WriteFile writes or appends content to a workspace file.
type WriteFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Append  bool   `json:"append,omitempty"`
}

// EditFile replaces text in a workspace file.
type EditFile struct {
	Path       string `json:"path"`
	OldText    string `json:"old_text"`
	NewText    string `json:"new_text"`
	ReplaceAll bool   `json:"replace_all,omitempty"`
}

// ApplyPatch applies a unified diff patch within the workspace.
type ApplyPatch struct {
	Patch string `json:"patch"`
}

// FindFiles matches workspace files against a glob pattern.
type FindFiles struct {
	Pattern string `json:"pattern"`
	Root    string `json:"root,omitempty"`
}

// Grep searches workspace file contents for a pattern.
type Grep struct {
	Pattern         string `json:"pattern"`
	Path            string `json:"path,omitempty"`
	CaseInsensitive bool   `json:"case_insensitive,omitempty"`
}

// WebSearch runs a web search query.
type WebSearch struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results,omitempty"`
}

// BrowserNavigate navigates the browser session to a URL.
type BrowserNavigate struct {
	URL string `json:"url"`
}

// BrowserClick clicks an element in the current browser page.
type BrowserClick struct {
	Selector string `json:"selector"`
}

// BrowserType types text into an element in the current browser page.
type BrowserType struct {
	Selector string `json:"selector"`
	Text     string `json:"text"`
	Submit   bool   `json:"submit,omitempty"`
}

func (RunCommand) ActionKind() Kind      { return KindRunCommand }
func (ReadFile) ActionKind() Kind        { return KindReadFile }
func (ViewFile) ActionKind() Kind        { return KindViewFile }
func (CreateFile) ActionKind() Kind      { return KindCreateFile }
func (WriteFile) ActionKind() Kind       { return KindWriteFile }
func (EditFile) ActionKind() Kind        { return KindEditFile }
func (ApplyPatch) ActionKind() Kind      { return KindApplyPatch }
func (FindFiles) ActionKind() Kind       { return KindFindFiles }
func (Grep) ActionKind() Kind            { return KindGrep }
func (WebSearch) ActionKind() Kind       { return KindWebSearch }
func (BrowserNavigate) ActionKind() Kind { return KindBrowserNavigate }
func (BrowserClick) ActionKind() Kind    { return KindBrowserClick }
func (BrowserType) ActionKind() Kind     { return KindBrowserType }
