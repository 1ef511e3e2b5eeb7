package file

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"slices"
	"strings"

	"github.com/Cyclone1070/myshkin/internal/config"
	"github.com/Cyclone1070/myshkin/internal/tool/helper/content"
	"github.com/rs/zerolog"
)

// EditResult is the state of a file after an edit.
type EditResult struct {
	Path      string
	LineCount int
	Lines     []string
}

// View returns the 1-based numbered view of the edited file.
func (r *EditResult) View() iter.Seq[string] {
	return content.NumberedView(r.Lines)
}

func (r *EditResult) String() string {
	return strings.Join(slices.Collect(r.View()), "\n")
}

// Editor performs line-addressed edits on files inside the base directory.
// Edits are whole-file read-modify-write operations and are not coordinated
// across concurrent callers.
type Editor struct {
	fs       fileSystem
	resolver pathResolver
	config   *config.Config
	log      zerolog.Logger
}

// NewEditor creates a new Editor with injected dependencies.
func NewEditor(fs fileSystem, resolver pathResolver, cfg *config.Config, log zerolog.Logger) *Editor {
	if fs == nil {
		panic("fs is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &Editor{fs: fs, resolver: resolver, config: cfg, log: log}
}

// InsertAt inserts text as a new line at the 0-based position lineNumber.
// 0 prepends and the current line count appends. Text spanning several lines
// is inserted as that many lines.
func (e *Editor) InsertAt(path, text string, lineNumber int) (*EditResult, error) {
	abs, lines, perm, err := e.load(path)
	if err != nil {
		return nil, err
	}

	if lineNumber < 0 || lineNumber > len(lines) {
		return nil, &OutOfRangeError{Arg: "lineNumber", Value: lineNumber, Min: 0, Max: len(lines)}
	}

	inserted := content.SplitLines(text)
	if len(inserted) == 0 {
		inserted = []string{""}
	}
	lines = slices.Insert(lines, lineNumber, inserted...)

	if err := e.store(abs, lines, perm); err != nil {
		return nil, err
	}

	e.log.Debug().
		Str("path", abs).
		Int("line", lineNumber).
		Int("inserted", len(inserted)).
		Int("line_count", len(lines)).
		Msg("inserted lines")

	return &EditResult{Path: abs, LineCount: len(lines), Lines: lines}, nil
}

// RemoveRange removes the 1-based inclusive range [startLine, endLine].
func (e *Editor) RemoveRange(path string, startLine, endLine int) (*EditResult, error) {
	abs, lines, perm, err := e.load(path)
	if err != nil {
		return nil, err
	}

	if startLine < 1 || startLine > len(lines) {
		return nil, &OutOfRangeError{Arg: "startLine", Value: startLine, Min: 1, Max: len(lines)}
	}
	if endLine < startLine || endLine > len(lines) {
		return nil, &OutOfRangeError{Arg: "endLine", Value: endLine, Min: startLine, Max: len(lines)}
	}

	lines = slices.Delete(lines, startLine-1, endLine)

	if err := e.store(abs, lines, perm); err != nil {
		return nil, err
	}

	e.log.Debug().
		Str("path", abs).
		Int("start", startLine).
		Int("end", endLine).
		Int("line_count", len(lines)).
		Msg("removed lines")

	return &EditResult{Path: abs, LineCount: len(lines), Lines: lines}, nil
}

// load resolves path and reads it as lines, enforcing that it is an existing
// regular text file within the size limit.
func (e *Editor) load(path string) (string, []string, os.FileMode, error) {
	abs, err := e.resolver.Resolve(path)
	if err != nil {
		return "", nil, 0, err
	}

	info, err := e.fs.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, 0, &FileNotFoundError{Path: path}
		}
		return "", nil, 0, &StatError{Path: abs, Cause: err}
	}
	if info.IsDir() {
		return "", nil, 0, ErrIsDirectory
	}
	if info.Size() > e.config.Tools.MaxFileSize {
		return "", nil, 0, ErrFileTooLarge
	}

	data, err := e.fs.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, 0, &FileNotFoundError{Path: path}
		}
		return "", nil, 0, err
	}
	if content.IsBinaryContent(data) {
		return "", nil, 0, ErrBinaryFile
	}

	return abs, content.SplitLines(string(data)), info.Mode().Perm(), nil
}

func (e *Editor) store(abs string, lines []string, perm os.FileMode) error {
	data := content.JoinLines(lines, e.config.Tools.Newline)
	if err := e.fs.WriteFileAtomic(abs, []byte(data), perm); err != nil {
		return &WriteError{Path: abs, Cause: err}
	}
	return nil
}
