package path

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// Resolver maps caller-supplied paths onto a fixed base directory and refuses
// anything that lands outside of it.
type Resolver struct {
	baseDir string
}

// NewResolver creates a new path resolver for the given base directory.
// baseDir must already be canonical; see CanonicaliseRoot.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{
		baseDir: baseDir,
	}
}

// BaseDir returns the sandbox root.
func (r *Resolver) BaseDir() string {
	return r.baseDir
}

// CanonicaliseRoot canonicalises a base directory by making it absolute and resolving symlinks.
// Returns an error if the path doesn't exist or isn't a directory.
func CanonicaliseRoot(root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", &BaseDirError{Root: root, Cause: err}
	}

	resolved, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", &BaseDirError{Root: absRoot, Cause: err}
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", &BaseDirError{Root: resolved, Cause: err}
	}
	if !info.IsDir() {
		return "", &BaseDirError{Root: resolved, Cause: fmt.Errorf("%w: %s", ErrNotADirectory, resolved)}
	}
	return resolved, nil
}

// Resolve turns raw into an absolute path inside the base directory.
//
// An empty raw path is the base directory itself. The containment check runs on
// the cleaned path before the filesystem is consulted, so a rejected path never
// causes I/O. Accepted paths are then walked with SecureJoin, which evaluates any
// symlinks as if the base directory were the filesystem root.
func (r *Resolver) Resolve(raw string) (string, error) {
	if r.baseDir == "" {
		return "", ErrBaseDirNotSet
	}
	if raw == "" {
		return r.baseDir, nil
	}

	abs, err := r.clean(raw)
	if err != nil {
		return "", err
	}
	if abs == r.baseDir {
		return abs, nil
	}

	rel, err := filepath.Rel(r.baseDir, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, raw)
	}

	resolved, err := securejoin.SecureJoin(r.baseDir, rel)
	if err != nil {
		return "", &SymlinkError{Path: abs, Cause: err}
	}
	return resolved, nil
}

// Rel returns raw relative to the base directory using forward slashes. The
// base directory itself is "". Containment is checked lexically and symlinks
// are not followed, so a link keeps its own name.
func (r *Resolver) Rel(raw string) (string, error) {
	if r.baseDir == "" {
		return "", ErrBaseDirNotSet
	}
	abs, err := r.clean(raw)
	if err != nil {
		return "", err
	}

	rel, err := filepath.Rel(r.baseDir, abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, raw)
	}

	if rel == "." {
		return "", nil
	}

	return filepath.ToSlash(rel), nil
}

// clean makes raw absolute and lexically normalised, then checks containment.
func (r *Resolver) clean(raw string) (string, error) {
	var abs string
	if filepath.IsAbs(raw) {
		abs = filepath.Clean(raw)
	} else {
		abs = filepath.Clean(filepath.Join(r.baseDir, raw))
	}

	if !r.contains(abs) {
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, raw)
	}
	return abs, nil
}

// contains reports whether abs is the base directory or nested under it.
// The byte after the prefix must be a separator so that /base2 is not inside /base.
func (r *Resolver) contains(abs string) bool {
	if abs == r.baseDir {
		return true
	}
	prefix := r.baseDir
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(abs, prefix)
}
