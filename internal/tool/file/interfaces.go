package file

import "os"

// fileSystem defines the filesystem operations the editor needs.
type fileSystem interface {
	Stat(path string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
}

// pathResolver maps tool-supplied paths into the base directory.
type pathResolver interface {
	Resolve(raw string) (string, error)
}

// Summarizer produces a condensed outline of a source file.
type Summarizer interface {
	Summarize(path string) (string, error)
}
