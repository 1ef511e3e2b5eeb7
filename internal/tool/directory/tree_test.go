package directory

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Cyclone1070/myshkin/internal/tool/service/fs"
	"github.com/Cyclone1070/myshkin/internal/tool/service/git"
	"github.com/Cyclone1070/myshkin/internal/tool/service/path"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates files (and their parent directories) under a fresh root.
// Names ending in "/" create empty directories.
func makeTree(t *testing.T, names ...string) string {
	t.Helper()
	root, err := path.CanonicaliseRoot(t.TempDir())
	require.NoError(t, err)
	for _, name := range names {
		p := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	return root
}

func newRenderer(root string) *TreeRenderer {
	return NewTreeRenderer(fs.NewOSFileSystem(), path.NewResolver(root), git.NoOpMatcher{}, zerolog.Nop())
}

func TestRender(t *testing.T) {
	root := makeTree(t,
		"z.txt",
		"README.md",
		"src/main.go",
		"src/build/out.o",
		"a/x.txt",
		"bin/app",
		"node_modules/pkg/index.js",
		".git/HEAD",
	)

	lines := slices.Collect(newRenderer(root).Render(root, 10))

	assert.Equal(t, []string{
		root + "/",
		"├── a",
		"│   └── x.txt",
		"├── src",
		"│   └── main.go",
		"├── README.md",
		"└── z.txt",
	}, lines)
}

func TestRender_NestedPrefixes(t *testing.T) {
	root := makeTree(t, "a/b/c.txt", "a/d.txt", "e.txt")

	lines := slices.Collect(newRenderer(root).Render(root, 10))

	assert.Equal(t, []string{
		root + "/",
		"├── a",
		"│   ├── b",
		"│   │   └── c.txt",
		"│   └── d.txt",
		"└── e.txt",
	}, lines)
}

func TestRender_LastDirectoryUsesBlankPrefix(t *testing.T) {
	root := makeTree(t, "only/inner/leaf.txt")

	lines := slices.Collect(newRenderer(root).Render(root, 10))

	assert.Equal(t, []string{
		root + "/",
		"└── only",
		"    └── inner",
		"        └── leaf.txt",
	}, lines)
}

func TestRender_ExclusionsAtEveryDepth(t *testing.T) {
	excluded := []string{"bin", "obj", ".git", ".vs", "node_modules", ".idea", "dist", "build"}
	var names []string
	for _, dir := range excluded {
		names = append(names, dir+"/f", "deep/er/"+dir+"/f")
	}
	names = append(names, "deep/er/kept.txt", "deep/Build/kept.txt")
	root := makeTree(t, names...)

	lines := slices.Collect(newRenderer(root).Render(root, 10))

	for _, line := range lines[1:] {
		for _, dir := range excluded {
			assert.NotContains(t, []string{"├── " + dir, "└── " + dir}, trimPrefix(line), "line %q", line)
		}
	}
	assert.Contains(t, lines, "    ├── Build", "exclusion is case-sensitive")
	assert.Contains(t, lines, "        └── kept.txt")
}

// trimPrefix strips the tree drawing prefix, leaving connector and name.
func trimPrefix(line string) string {
	for {
		if rest, ok := strings.CutPrefix(line, pipe); ok {
			line = rest
			continue
		}
		if rest, ok := strings.CutPrefix(line, space); ok {
			line = rest
			continue
		}
		return line
	}
}

func TestRender_MaxDepth(t *testing.T) {
	root := makeTree(t, "a/b/c.txt", "top.txt")
	r := newRenderer(root)

	assert.Equal(t, []string{root + "/"}, slices.Collect(r.Render(root, 0)))
	assert.Equal(t, []string{root + "/", "├── a", "└── top.txt"}, slices.Collect(r.Render(root, 1)))
	assert.Equal(t, []string{root + "/", "├── a", "│   └── b", "└── top.txt"}, slices.Collect(r.Render(root, 2)))
}

func TestRender_MissingRoot(t *testing.T) {
	root := makeTree(t, "file.txt")
	r := newRenderer(root)

	missing := filepath.Join(root, "nope")
	assert.Equal(t, []string{"Directory not found: " + missing}, slices.Collect(r.Render(missing, 10)))

	file := filepath.Join(root, "file.txt")
	assert.Equal(t, []string{"Directory not found: " + file}, slices.Collect(r.Render(file, 10)))
}

func TestRender_DeterministicAndRestartable(t *testing.T) {
	root := makeTree(t, "b/1", "a/2", "c", "d/e/f")
	seq := newRenderer(root).Render(root, 10)

	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestRender_StopsEarly(t *testing.T) {
	root := makeTree(t, "a/b/c/d.txt", "e.txt")

	var got []string
	for line := range newRenderer(root).Render(root, 10) {
		got = append(got, line)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []string{root + "/", "├── a", "│   └── b"}, got)
}

func TestRender_SymlinkedDirectoryIsNotFollowed(t *testing.T) {
	root := makeTree(t, "real/inside.txt")
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))

	lines := slices.Collect(newRenderer(root).Render(root, 10))

	assert.Equal(t, []string{
		root + "/",
		"├── real",
		"│   └── inside.txt",
		"└── link",
	}, lines)
}

func TestRender_Gitignore(t *testing.T) {
	root := makeTree(t, "keep.go", "debug.log", "tmp/cache.bin", "src/trace.log", "src/app.go")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\ntmp/\n"), 0o644))

	matcher, err := git.NewIgnoreMatcher(root, fs.NewOSFileSystem())
	require.NoError(t, err)
	r := NewTreeRenderer(fs.NewOSFileSystem(), path.NewResolver(root), matcher, zerolog.Nop())

	lines := slices.Collect(r.Render(root, 10))

	assert.Equal(t, []string{
		root + "/",
		"├── src",
		"│   └── app.go",
		"├── .gitignore",
		"└── keep.go",
	}, lines)
}

func TestNewTreeRenderer_NilDependenciesPanic(t *testing.T) {
	resolver := path.NewResolver("/")
	assert.Panics(t, func() { NewTreeRenderer(nil, resolver, git.NoOpMatcher{}, zerolog.Nop()) })
	assert.Panics(t, func() { NewTreeRenderer(fs.NewOSFileSystem(), nil, git.NoOpMatcher{}, zerolog.Nop()) })
	assert.Panics(t, func() { NewTreeRenderer(fs.NewOSFileSystem(), resolver, nil, zerolog.Nop()) })
}
