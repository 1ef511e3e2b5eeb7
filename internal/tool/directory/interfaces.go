package directory

import "os"

// dirLister defines the filesystem operations needed to walk a directory.
type dirLister interface {
	Stat(path string) (os.FileInfo, error)
	ListDir(path string) ([]os.FileInfo, error)
}

// pathResolver defines base directory path resolution.
type pathResolver interface {
	Resolve(raw string) (string, error)
}

// relPather maps absolute paths to base-relative slash paths.
type relPather interface {
	Rel(raw string) (string, error)
}

// ignoreMatcher reports whether a base-relative path is excluded by .gitignore.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}
