package patch

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/myshkin/internal/tool"
)

type ApplyPatchRequest struct {
	Patch     string `json:"patch"`
	Directory string `json:"directory,omitempty"`
	Strip     *int   `json:"strip,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

func (r *ApplyPatchRequest) Validate() error {
	if r.Patch == "" {
		return ErrEmptyPatch
	}
	if r.Strip != nil && *r.Strip < 0 {
		return ErrInvalidStrip
	}
	return nil
}

func (r *ApplyPatchRequest) String() string {
	dir := r.Directory
	if dir == "" {
		dir = "."
	}
	if r.DryRun {
		return fmt.Sprintf("Check patch in %s", dir)
	}
	return fmt.Sprintf("Apply patch in %s", dir)
}

// strip defaults to 0: file names in the diff are used as written.
func (r *ApplyPatchRequest) strip() int {
	if r.Strip == nil {
		return 0
	}
	return *r.Strip
}

type ApplyPatchResponse struct {
	Result *Result
}

func (r *ApplyPatchResponse) LLMContent() string {
	return r.Result.Message()
}

func (r *ApplyPatchResponse) Display() tool.ToolDisplay {
	return tool.PatchDisplay{
		ExitCode: r.Result.ExitCode,
		Stdout:   r.Result.Stdout,
		Stderr:   r.Result.Stderr,
		DryRun:   r.Result.DryRun,
	}
}

// ApplyPatchTool exposes Applier.ApplyUnifiedDiff.
type ApplyPatchTool struct {
	applier *Applier
}

// NewApplyPatchTool creates a new ApplyPatchTool.
func NewApplyPatchTool(applier *Applier) *ApplyPatchTool {
	if applier == nil {
		panic("applier is required")
	}
	return &ApplyPatchTool{applier: applier}
}

func (t *ApplyPatchTool) Name() string {
	return "apply_patch"
}

func (t *ApplyPatchTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "apply_patch",
		Description: "Apply a unified diff to the working tree. A rejected patch is reported with the patch program's error output so it can be corrected and retried.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"patch":     {Type: tool.TypeString, Description: "Unified diff text"},
				"directory": {Type: tool.TypeString, Description: "Directory to apply in, relative to the base directory (default: base directory)"},
				"strip":     {Type: tool.TypeInteger, Description: "Leading path components to strip from file names (default 0; use 1 for a/ b/ prefixes)"},
				"dry_run":   {Type: tool.TypeBoolean, Description: "Only check whether the patch applies"},
			},
			Required: []string{"patch"},
		},
	}
}

func (t *ApplyPatchTool) Input() any {
	return &ApplyPatchRequest{}
}

func (t *ApplyPatchTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*ApplyPatchRequest)
	if !ok {
		return nil, fmt.Errorf("invalid input type: %T", input)
	}
	res, err := t.applier.ApplyUnifiedDiff(ctx, req.Directory, req.Patch, req.strip(), req.DryRun)
	if err != nil {
		return nil, err
	}
	return &ApplyPatchResponse{Result: res}, nil
}
