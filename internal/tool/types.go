package tool

// Type represents JSON Schema types.
type Type string

const (
	TypeString  Type = "string"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Schema represents a JSON Schema for tool parameters.
type Schema struct {
	Type        Type               `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Declaration declares a tool's function signature for the LLM.
type Declaration struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

// ToolDisplay is implemented by all display types returned from tools.
// Front ends use type switches to render each type appropriately.
type ToolDisplay interface {
	isToolDisplay()
}

// StringDisplay is for simple text output.
type StringDisplay string

func (StringDisplay) isToolDisplay() {}

// LinesDisplay is for line-oriented output such as numbered file views and trees.
type LinesDisplay []string

func (LinesDisplay) isToolDisplay() {}

// PatchDisplay is for the outcome of a patch application.
type PatchDisplay struct {
	ExitCode int
	Stdout   string
	Stderr   string
	DryRun   bool
}

func (PatchDisplay) isToolDisplay() {}

// Result is returned by a tool after a successful execution.
type Result interface {
	// LLMContent returns the text sent back to the model.
	LLMContent() string

	// Display returns the value a front end renders.
	Display() ToolDisplay
}
