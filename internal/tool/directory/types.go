package directory

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/myshkin/internal/tool"
)

// -- Show File Tree --

type ShowFileTreeRequest struct {
	Path     string `json:"path,omitempty"`
	MaxDepth *int   `json:"max_depth,omitempty"`
}

func (r *ShowFileTreeRequest) Validate() error {
	if r.MaxDepth != nil && *r.MaxDepth < 0 {
		return ErrInvalidDepth
	}
	return nil
}

func (r *ShowFileTreeRequest) String() string {
	if r.Path == "" {
		return "Tree of ."
	}
	return fmt.Sprintf("Tree of %s", r.Path)
}

// -- List Files --

type ListFilesRequest struct {
	Path      string `json:"path,omitempty"`
	Recursive *bool  `json:"recursive,omitempty"`
}

func (r *ListFilesRequest) String() string {
	path := r.Path
	if path == "" {
		path = "."
	}
	return fmt.Sprintf("List files in %s", path)
}

func (r *ListFilesRequest) recursive() bool {
	return r.Recursive == nil || *r.Recursive
}

// LinesResponse carries line-oriented tool output.
type LinesResponse struct {
	Lines []string
}

func (r *LinesResponse) LLMContent() string {
	return strings.Join(r.Lines, "\n")
}

func (r *LinesResponse) Display() tool.ToolDisplay {
	return tool.LinesDisplay(r.Lines)
}
