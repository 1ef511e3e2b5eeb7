package file

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/Cyclone1070/myshkin/internal/tool/helper/content"
)

// ReadResult is the numbered view of a file.
// When the file does not exist Missing is set and Lines holds a single
// explanatory line instead of content.
type ReadResult struct {
	Path    string
	Lines   []string
	Missing bool
}

// View returns the numbered view, or the explanatory line for a missing file.
func (r *ReadResult) View() iter.Seq[string] {
	if r.Missing {
		return slices.Values(r.Lines)
	}
	return content.NumberedView(r.Lines)
}

func (r *ReadResult) String() string {
	return strings.Join(slices.Collect(r.View()), "\n")
}

// Read returns the numbered view of path. A missing file is reported as a
// "File not found" result line rather than an error.
func (e *Editor) Read(path string) (*ReadResult, error) {
	abs, lines, _, err := e.load(path)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			e.log.Debug().Str("path", path).Msg("read of missing file")
			return &ReadResult{
				Path:    path,
				Lines:   []string{fmt.Sprintf("File not found: %s", path)},
				Missing: true,
			}, nil
		}
		return nil, err
	}

	e.log.Debug().Str("path", abs).Int("line_count", len(lines)).Msg("read file")
	return &ReadResult{Path: abs, Lines: lines}, nil
}
