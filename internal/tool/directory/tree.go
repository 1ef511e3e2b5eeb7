package directory

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// excludedDirs are build and tooling directories never descended into or shown.
// Matching is by exact, case-sensitive name at any depth.
var excludedDirs = map[string]struct{}{
	"bin":          {},
	"obj":          {},
	".git":         {},
	".vs":          {},
	"node_modules": {},
	".idea":        {},
	"dist":         {},
	"build":        {},
}

func isExcludedDir(name string) bool {
	_, ok := excludedDirs[name]
	return ok
}

const (
	branch     = "├── "
	lastBranch = "└── "
	pipe       = "│   "
	space      = "    "
)

// TreeRenderer renders a directory subtree as ASCII art.
type TreeRenderer struct {
	fs     dirLister
	paths  relPather
	ignore ignoreMatcher
	log    zerolog.Logger
}

// NewTreeRenderer creates a new TreeRenderer. Entries are matched against
// ignore by their base-relative path as reported by paths.
func NewTreeRenderer(fs dirLister, paths relPather, ignore ignoreMatcher, log zerolog.Logger) *TreeRenderer {
	if fs == nil {
		panic("fs is required")
	}
	if paths == nil {
		panic("paths is required")
	}
	if ignore == nil {
		panic("ignore is required")
	}
	return &TreeRenderer{fs: fs, paths: paths, ignore: ignore, log: log}
}

// Render yields the tree for root, which must already be resolved.
//
// The first line is root followed by "/". Entries follow depth-first with
// directories before files, each group sorted by name. Children of root are at
// depth 0 and nothing at depth maxDepth or deeper is listed. If root is not an
// existing directory the only line is "Directory not found: <root>".
//
// The sequence walks the filesystem each time it is ranged over.
func (r *TreeRenderer) Render(root string, maxDepth int) iter.Seq[string] {
	return func(yield func(string) bool) {
		info, err := r.fs.Stat(root)
		if err != nil || !info.IsDir() {
			yield(fmt.Sprintf("Directory not found: %s", root))
			return
		}

		r.log.Debug().Str("root", root).Int("max_depth", maxDepth).Msg("rendering tree")

		if !yield(root + "/") {
			return
		}
		r.walk(root, "", 0, maxDepth, yield)
	}
}

// walk yields the lines below dir and reports whether the consumer wants more.
func (r *TreeRenderer) walk(dir, prefix string, depth, maxDepth int, yield func(string) bool) bool {
	if depth >= maxDepth {
		return true
	}

	dirs, files := r.children(dir)
	entries := append(dirs, files...)

	for i, entry := range entries {
		last := i == len(entries)-1
		connector, childPrefix := branch, prefix+pipe
		if last {
			connector, childPrefix = lastBranch, prefix+space
		}

		if !yield(prefix + connector + entry.Name()) {
			return false
		}
		if entry.IsDir() {
			if !r.walk(filepath.Join(dir, entry.Name()), childPrefix, depth+1, maxDepth, yield) {
				return false
			}
		}
	}
	return true
}

// children returns the visible subdirectories and files of dir, each sorted by name.
// Symlinks are listed as files and never followed.
func (r *TreeRenderer) children(dir string) (dirs, files []os.FileInfo) {
	entries, err := r.fs.ListDir(dir)
	if err != nil {
		r.log.Warn().Err(err).Str("dir", dir).Msg("cannot list directory")
		return nil, nil
	}

	for _, entry := range entries {
		if entry.IsDir() {
			if isExcludedDir(entry.Name()) || r.ignored(dir, entry) {
				continue
			}
			dirs = append(dirs, entry)
			continue
		}
		if r.ignored(dir, entry) {
			continue
		}
		files = append(files, entry)
	}
	return dirs, files
}

func (r *TreeRenderer) ignored(dir string, entry os.FileInfo) bool {
	rel, err := r.paths.Rel(filepath.Join(dir, entry.Name()))
	if err != nil {
		return false
	}
	return r.ignore.ShouldIgnore(rel, entry.IsDir())
}
