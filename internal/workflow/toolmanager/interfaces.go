package toolmanager

import (
	"context"

	"github.com/Cyclone1070/myshkin/internal/tool"
)

// toolImpl defines the interface for individual tools.
// Input structs should implement fmt.Stringer for display.
type toolImpl interface {
	// Name returns the tool's identifier.
	Name() string

	// Declaration returns the tool's schema for the LLM.
	Declaration() tool.Declaration

	// Input returns a pointer to a fresh input struct (e.g., &ReadFileRequest{}).
	Input() any

	// Execute runs the tool with the decoded input.
	Execute(ctx context.Context, input any) (tool.Result, error)
}

// validator is implemented by inputs that check their own arguments.
type validator interface {
	Validate() error
}
