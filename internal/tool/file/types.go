package file

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/Cyclone1070/myshkin/internal/tool"
)

// -- Read File --

type ReadFileRequest struct {
	Path string `json:"path"`
}

func (r *ReadFileRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

func (r *ReadFileRequest) String() string {
	return fmt.Sprintf("Read %s", r.Path)
}

type ReadFileResponse struct {
	Result *ReadResult
}

func (r *ReadFileResponse) LLMContent() string {
	return r.Result.String()
}

func (r *ReadFileResponse) Display() tool.ToolDisplay {
	return tool.LinesDisplay(slices.Collect(r.Result.View()))
}

// -- Insert Line --

// InsertLineRequest positions are pointers so that an omitted line_number is
// rejected instead of prepending.
type InsertLineRequest struct {
	Path       string `json:"path"`
	Text       string `json:"text"`
	LineNumber *int   `json:"line_number"`
}

func (r *InsertLineRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	if r.LineNumber == nil {
		return fmt.Errorf("%w: line_number", ErrLineRequired)
	}
	return nil
}

func (r *InsertLineRequest) String() string {
	return fmt.Sprintf("Insert into %s at line %s", r.Path, lineString(r.LineNumber))
}

// -- Remove Lines --

type RemoveLinesRequest struct {
	Path      string `json:"path"`
	StartLine *int   `json:"start_line"`
	EndLine   *int   `json:"end_line"`
}

func (r *RemoveLinesRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	if r.StartLine == nil {
		return fmt.Errorf("%w: start_line", ErrLineRequired)
	}
	if r.EndLine == nil {
		return fmt.Errorf("%w: end_line", ErrLineRequired)
	}
	return nil
}

func (r *RemoveLinesRequest) String() string {
	return fmt.Sprintf("Remove lines %s-%s from %s", lineString(r.StartLine), lineString(r.EndLine), r.Path)
}

func lineString(n *int) string {
	if n == nil {
		return "?"
	}
	return strconv.Itoa(*n)
}

// EditResponse is returned by both line editing tools.
type EditResponse struct {
	Result *EditResult
}

func (r *EditResponse) LLMContent() string {
	if r.Result.LineCount == 0 {
		return "File is now empty."
	}
	return r.Result.String()
}

func (r *EditResponse) Display() tool.ToolDisplay {
	return tool.LinesDisplay(slices.Collect(r.Result.View()))
}

// -- Summarize File --

type SummarizeFileRequest struct {
	Path string `json:"path"`
}

func (r *SummarizeFileRequest) Validate() error {
	if r.Path == "" {
		return ErrPathRequired
	}
	return nil
}

func (r *SummarizeFileRequest) String() string {
	return fmt.Sprintf("Summarize %s", r.Path)
}

type SummarizeFileResponse struct {
	Summary string
}

func (r *SummarizeFileResponse) LLMContent() string {
	return r.Summary
}

func (r *SummarizeFileResponse) Display() tool.ToolDisplay {
	return tool.StringDisplay(r.Summary)
}
