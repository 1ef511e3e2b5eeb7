package path

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	baseDir := "/workspace"
	resolver := NewResolver(baseDir)

	tests := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{
			name:     "empty path is the base directory",
			input:    "",
			expected: "/workspace",
		},
		{
			name:     "relative path within base",
			input:    "src/main.go",
			expected: "/workspace/src/main.go",
		},
		{
			name:     "absolute path within base",
			input:    "/workspace/src/main.go",
			expected: "/workspace/src/main.go",
		},
		{
			name:     "path with dots within base",
			input:    "src/../src/main.go",
			expected: "/workspace/src/main.go",
		},
		{
			name:     "dot is the base directory",
			input:    ".",
			expected: "/workspace",
		},
		{
			name:     "absolute base directory",
			input:    "/workspace",
			expected: "/workspace",
		},
		{
			name:  "escape attempt via parent dots",
			input: "../../../etc/passwd",
			err:   ErrAccessDenied,
		},
		{
			name:  "escape hidden behind a nested segment",
			input: "src/../../outside.txt",
			err:   ErrAccessDenied,
		},
		{
			name:  "parent of base",
			input: "..",
			err:   ErrAccessDenied,
		},
		{
			name:  "absolute path outside base",
			input: "/etc/passwd",
			err:   ErrAccessDenied,
		},
		{
			name:  "absolute path with traversal out of base",
			input: "/workspace/../etc/passwd",
			err:   ErrAccessDenied,
		},
		{
			name:  "sibling sharing the name prefix",
			input: "/workspace2/file.txt",
			err:   ErrAccessDenied,
		},
		{
			name:  "sibling sharing the name prefix via traversal",
			input: "../workspacefoo/bar",
			err:   ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, err := resolver.Resolve(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
			if abs != tt.expected {
				t.Errorf("expected abs %q, got %q", tt.expected, abs)
			}
		})
	}
}

func TestResolve_BaseDirNotSet(t *testing.T) {
	_, err := NewResolver("").Resolve("file.txt")
	assert.ErrorIs(t, err, ErrBaseDirNotSet)
}

func TestResolve_Idempotent(t *testing.T) {
	baseDir := canonicalTempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "pkg", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "pkg", "a.go"), []byte("package pkg\n"), 0o644))

	resolver := NewResolver(baseDir)

	for _, input := range []string{"", ".", "pkg", "pkg/a.go", "pkg/sub/../a.go", "missing/new.txt"} {
		t.Run(input, func(t *testing.T) {
			first, err := resolver.Resolve(input)
			require.NoError(t, err)
			second, err := resolver.Resolve(first)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestResolve_SymlinkEscapeIsScopedToBase(t *testing.T) {
	baseDir := canonicalTempDir(t)
	outside := canonicalTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("secret"), 0o644))
	if err := os.Symlink(outside, filepath.Join(baseDir, "escape")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	resolved, err := NewResolver(baseDir).Resolve("escape/secret.txt")

	require.NoError(t, err)
	assert.NotEqual(t, filepath.Join(outside, "secret.txt"), resolved)
	assert.True(t, strings.HasPrefix(resolved, baseDir+string(filepath.Separator)), "resolved %s must stay inside %s", resolved, baseDir)
}

func TestResolve_SymlinkInsideBaseFollowed(t *testing.T) {
	baseDir := canonicalTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "target.txt"), []byte("x"), 0o644))
	if err := os.Symlink("target.txt", filepath.Join(baseDir, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	resolved, err := NewResolver(baseDir).Resolve("link.txt")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(baseDir, "target.txt"), resolved)
}

func TestRel(t *testing.T) {
	resolver := NewResolver("/workspace")

	tests := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{name: "relative path within base", input: "src/main.go", expected: "src/main.go"},
		{name: "absolute path within base", input: "/workspace/src/main.go", expected: "src/main.go"},
		{name: "base directory", input: "/workspace", expected: ""},
		{name: "escape attempt", input: "/etc/passwd", err: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rel, err := resolver.Rel(tt.input)
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected error %v, got %v", tt.err, err)
			}
			if rel != tt.expected {
				t.Errorf("expected rel %q, got %q", tt.expected, rel)
			}
		})
	}
}

func TestRel_SymlinkKeepsOwnName(t *testing.T) {
	baseDir := canonicalTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "target.txt"), []byte("x"), 0o644))
	if err := os.Symlink("target.txt", filepath.Join(baseDir, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	rel, err := NewResolver(baseDir).Rel(filepath.Join(baseDir, "link.txt"))
	require.NoError(t, err)
	assert.Equal(t, "link.txt", rel)

	_, err = NewResolver("").Rel("a.txt")
	assert.ErrorIs(t, err, ErrBaseDirNotSet)
}

func TestCanonicaliseRoot(t *testing.T) {
	resolvedTmpDir := canonicalTempDir(t)

	t.Run("valid directory", func(t *testing.T) {
		got, err := CanonicaliseRoot(resolvedTmpDir)
		require.NoError(t, err)
		assert.Equal(t, resolvedTmpDir, got)
	})

	t.Run("non-existent path", func(t *testing.T) {
		_, err := CanonicaliseRoot(filepath.Join(resolvedTmpDir, "non-existent"))
		var rootErr *BaseDirError
		assert.ErrorAs(t, err, &rootErr)
	})

	t.Run("file instead of directory", func(t *testing.T) {
		tmpFile := filepath.Join(resolvedTmpDir, "file.txt")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0o644))
		_, err := CanonicaliseRoot(tmpFile)
		assert.ErrorIs(t, err, ErrNotADirectory)
	})
}

func canonicalTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}
