package directory

import (
	"context"
	"fmt"
	"slices"

	"github.com/Cyclone1070/myshkin/internal/config"
	"github.com/Cyclone1070/myshkin/internal/tool"
)

// ShowFileTreeTool exposes TreeRenderer.Render.
type ShowFileTreeTool struct {
	renderer *TreeRenderer
	resolver pathResolver
	config   *config.Config
}

// NewShowFileTreeTool creates a new ShowFileTreeTool.
func NewShowFileTreeTool(renderer *TreeRenderer, resolver pathResolver, cfg *config.Config) *ShowFileTreeTool {
	if renderer == nil {
		panic("renderer is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &ShowFileTreeTool{renderer: renderer, resolver: resolver, config: cfg}
}

func (t *ShowFileTreeTool) Name() string {
	return "show_file_tree"
}

func (t *ShowFileTreeTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "show_file_tree",
		Description: "Display the directory structure as a tree, showing all files and directories (excluding build artifacts).",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path":      {Type: tool.TypeString, Description: "Directory to show (default: base directory)"},
				"max_depth": {Type: tool.TypeInteger, Description: fmt.Sprintf("Maximum depth; 0 shows only the root (default %d)", t.config.Tools.TreeMaxDepth)},
			},
		},
	}
}

func (t *ShowFileTreeTool) Input() any {
	return &ShowFileTreeRequest{}
}

func (t *ShowFileTreeTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*ShowFileTreeRequest)
	if !ok {
		return nil, fmt.Errorf("invalid input type: %T", input)
	}

	abs, err := t.resolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	depth := t.config.Tools.TreeMaxDepth
	if req.MaxDepth != nil {
		depth = *req.MaxDepth
	}

	return &LinesResponse{Lines: slices.Collect(t.renderer.Render(abs, depth))}, nil
}

// ListFilesTool exposes FileLister.List.
type ListFilesTool struct {
	lister   *FileLister
	resolver pathResolver
}

// NewListFilesTool creates a new ListFilesTool.
func NewListFilesTool(lister *FileLister, resolver pathResolver) *ListFilesTool {
	if lister == nil {
		panic("lister is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	return &ListFilesTool{lister: lister, resolver: resolver}
}

func (t *ListFilesTool) Name() string {
	return "list_files"
}

func (t *ListFilesTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "list_files",
		Description: "List files in a directory as paths relative to the base directory, optionally recursive.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path":      {Type: tool.TypeString, Description: "Directory to list (default: base directory)"},
				"recursive": {Type: tool.TypeBoolean, Description: "Descend into subdirectories (default true)"},
			},
		},
	}
}

func (t *ListFilesTool) Input() any {
	return &ListFilesRequest{}
}

func (t *ListFilesTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*ListFilesRequest)
	if !ok {
		return nil, fmt.Errorf("invalid input type: %T", input)
	}

	abs, err := t.resolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	res := t.lister.List(abs, req.recursive())
	return &LinesResponse{Lines: slices.Collect(res.Lines())}, nil
}
