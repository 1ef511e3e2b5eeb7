package directory

import (
	"fmt"
	"iter"
	"path/filepath"
	"slices"

	"github.com/Cyclone1070/myshkin/internal/config"
	"github.com/rs/zerolog"
)

// FileLister lists files below a directory as base-relative paths.
type FileLister struct {
	fs     dirLister
	paths  relPather
	ignore ignoreMatcher
	config *config.Config
	log    zerolog.Logger
}

// NewFileLister creates a new FileLister with injected dependencies.
func NewFileLister(fs dirLister, paths relPather, ignore ignoreMatcher, cfg *config.Config, log zerolog.Logger) *FileLister {
	if fs == nil {
		panic("fs is required")
	}
	if paths == nil {
		panic("paths is required")
	}
	if ignore == nil {
		panic("ignore is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &FileLister{fs: fs, paths: paths, ignore: ignore, config: cfg, log: log}
}

// ListResult is the outcome of a listing.
type ListResult struct {
	Files     []string
	Truncated bool
	Missing   bool
	Dir       string
}

// Lines yields one base-relative path per file, followed by a note when the
// listing was truncated. A missing directory yields a single
// "Directory not found" line.
func (r *ListResult) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r.Missing {
			yield(fmt.Sprintf("Directory not found: %s", r.Dir))
			return
		}
		for _, f := range r.Files {
			if !yield(f) {
				return
			}
		}
		if r.Truncated {
			yield(fmt.Sprintf("... (truncated to %d files)", len(r.Files)))
		}
	}
}

// List collects the files in dir, which must already be resolved, sorted by
// path. Excluded build directories and ignored paths are skipped.
func (l *FileLister) List(dir string, recursive bool) *ListResult {
	info, err := l.fs.Stat(dir)
	if err != nil || !info.IsDir() {
		return &ListResult{Missing: true, Dir: dir}
	}

	var files []string
	l.collect(dir, recursive, &files)
	slices.Sort(files)

	result := &ListResult{Dir: dir, Files: files}
	if limit := l.config.Tools.MaxListFilesResults; len(files) > limit {
		result.Files = files[:limit]
		result.Truncated = true
	}

	l.log.Debug().
		Str("dir", dir).
		Bool("recursive", recursive).
		Int("count", len(result.Files)).
		Bool("truncated", result.Truncated).
		Msg("listed files")

	return result
}

func (l *FileLister) collect(dir string, recursive bool, files *[]string) {
	entries, err := l.fs.ListDir(dir)
	if err != nil {
		l.log.Warn().Err(err).Str("dir", dir).Msg("cannot list directory")
		return
	}

	for _, entry := range entries {
		abs := filepath.Join(dir, entry.Name())
		rel, err := l.paths.Rel(abs)
		if err != nil {
			l.log.Warn().Err(err).Str("path", abs).Msg("skipping path outside base directory")
			continue
		}
		if entry.IsDir() {
			if !recursive || isExcludedDir(entry.Name()) || l.ignore.ShouldIgnore(rel, true) {
				continue
			}
			l.collect(abs, recursive, files)
			continue
		}
		if l.ignore.ShouldIgnore(rel, false) {
			continue
		}
		*files = append(*files, rel)
	}
}
