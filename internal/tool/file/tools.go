package file

import (
	"context"
	"fmt"

	"github.com/Cyclone1070/myshkin/internal/tool"
)

// ReadFileTool exposes Editor.Read.
type ReadFileTool struct {
	editor *Editor
}

// NewReadFileTool creates a new ReadFileTool.
func NewReadFileTool(editor *Editor) *ReadFileTool {
	if editor == nil {
		panic("editor is required")
	}
	return &ReadFileTool{editor: editor}
}

func (t *ReadFileTool) Name() string {
	return "read_file"
}

func (t *ReadFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "read_file",
		Description: "Read a file and return its content as numbered lines (\"N text\"). Use the numbers with insert_line and remove_lines.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {Type: tool.TypeString, Description: "Path to the file, relative to the base directory"},
			},
			Required: []string{"path"},
		},
	}
}

func (t *ReadFileTool) Input() any {
	return &ReadFileRequest{}
}

func (t *ReadFileTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*ReadFileRequest)
	if !ok {
		return nil, fmt.Errorf("invalid input type: %T", input)
	}
	res, err := t.editor.Read(req.Path)
	if err != nil {
		return nil, err
	}
	return &ReadFileResponse{Result: res}, nil
}

// InsertLineTool exposes Editor.InsertAt.
type InsertLineTool struct {
	editor *Editor
}

// NewInsertLineTool creates a new InsertLineTool.
func NewInsertLineTool(editor *Editor) *InsertLineTool {
	if editor == nil {
		panic("editor is required")
	}
	return &InsertLineTool{editor: editor}
}

func (t *InsertLineTool) Name() string {
	return "insert_line"
}

func (t *InsertLineTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "insert_line",
		Description: "Insert text as a new line into an existing file. line_number is the 0-based position: 0 prepends, the current line count appends. Returns the updated numbered view.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path":        {Type: tool.TypeString, Description: "Path to the file"},
				"text":        {Type: tool.TypeString, Description: "Text of the new line"},
				"line_number": {Type: tool.TypeInteger, Description: "Insert position, 0 to line count"},
			},
			Required: []string{"path", "text", "line_number"},
		},
	}
}

func (t *InsertLineTool) Input() any {
	return &InsertLineRequest{}
}

func (t *InsertLineTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*InsertLineRequest)
	if !ok {
		return nil, fmt.Errorf("invalid input type: %T", input)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	res, err := t.editor.InsertAt(req.Path, req.Text, *req.LineNumber)
	if err != nil {
		return nil, err
	}
	return &EditResponse{Result: res}, nil
}

// RemoveLinesTool exposes Editor.RemoveRange.
type RemoveLinesTool struct {
	editor *Editor
}

// NewRemoveLinesTool creates a new RemoveLinesTool.
func NewRemoveLinesTool(editor *Editor) *RemoveLinesTool {
	if editor == nil {
		panic("editor is required")
	}
	return &RemoveLinesTool{editor: editor}
}

func (t *RemoveLinesTool) Name() string {
	return "remove_lines"
}

func (t *RemoveLinesTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "remove_lines",
		Description: "Remove the inclusive 1-based line range start_line..end_line from an existing file. Returns the updated numbered view.",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path":       {Type: tool.TypeString, Description: "Path to the file"},
				"start_line": {Type: tool.TypeInteger, Description: "First line to remove (1-based)"},
				"end_line":   {Type: tool.TypeInteger, Description: "Last line to remove (inclusive)"},
			},
			Required: []string{"path", "start_line", "end_line"},
		},
	}
}

func (t *RemoveLinesTool) Input() any {
	return &RemoveLinesRequest{}
}

func (t *RemoveLinesTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*RemoveLinesRequest)
	if !ok {
		return nil, fmt.Errorf("invalid input type: %T", input)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	res, err := t.editor.RemoveRange(req.Path, *req.StartLine, *req.EndLine)
	if err != nil {
		return nil, err
	}
	return &EditResponse{Result: res}, nil
}

// SummarizeFileTool resolves a path and hands it to a Summarizer.
type SummarizeFileTool struct {
	summarizer Summarizer
	resolver   pathResolver
}

// NewSummarizeFileTool creates a new SummarizeFileTool.
func NewSummarizeFileTool(summarizer Summarizer, resolver pathResolver) *SummarizeFileTool {
	if summarizer == nil {
		panic("summarizer is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	return &SummarizeFileTool{summarizer: summarizer, resolver: resolver}
}

func (t *SummarizeFileTool) Name() string {
	return "summarize_file"
}

func (t *SummarizeFileTool) Declaration() tool.Declaration {
	return tool.Declaration{
		Name:        "summarize_file",
		Description: "Return a condensed outline of a source file (declarations without bodies).",
		Parameters: &tool.Schema{
			Type: tool.TypeObject,
			Properties: map[string]*tool.Schema{
				"path": {Type: tool.TypeString, Description: "Path to the source file"},
			},
			Required: []string{"path"},
		},
	}
}

func (t *SummarizeFileTool) Input() any {
	return &SummarizeFileRequest{}
}

func (t *SummarizeFileTool) Execute(ctx context.Context, input any) (tool.Result, error) {
	req, ok := input.(*SummarizeFileRequest)
	if !ok {
		return nil, fmt.Errorf("invalid input type: %T", input)
	}
	abs, err := t.resolver.Resolve(req.Path)
	if err != nil {
		return nil, err
	}
	summary, err := t.summarizer.Summarize(abs)
	if err != nil {
		return nil, err
	}
	return &SummarizeFileResponse{Summary: summary}, nil
}
