package directory

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/Cyclone1070/myshkin/internal/config"
	"github.com/Cyclone1070/myshkin/internal/tool"
	"github.com/Cyclone1070/myshkin/internal/tool/service/fs"
	"github.com/Cyclone1070/myshkin/internal/tool/service/git"
	"github.com/Cyclone1070/myshkin/internal/tool/service/path"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLister(root string, cfg *config.Config) *FileLister {
	return NewFileLister(fs.NewOSFileSystem(), path.NewResolver(root), git.NoOpMatcher{}, cfg, zerolog.Nop())
}

func TestList(t *testing.T) {
	root := makeTree(t, "a.txt", "a/b.txt", "a/c/d.txt", "bin/skip", "z.txt")
	l := newLister(root, config.DefaultConfig())

	t.Run("Recursive", func(t *testing.T) {
		res := l.List(root, true)
		assert.Equal(t, []string{"a.txt", "a/b.txt", "a/c/d.txt", "z.txt"}, res.Files)
		assert.False(t, res.Truncated)
	})

	t.Run("TopLevelOnly", func(t *testing.T) {
		res := l.List(root, false)
		assert.Equal(t, []string{"a.txt", "z.txt"}, res.Files)
	})

	t.Run("SubdirectoryPathsStayBaseRelative", func(t *testing.T) {
		res := l.List(filepath.Join(root, "a"), true)
		assert.Equal(t, []string{"a/b.txt", "a/c/d.txt"}, slices.Collect(res.Lines()))
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		missing := filepath.Join(root, "missing")
		res := l.List(missing, true)
		assert.True(t, res.Missing)
		assert.Equal(t, []string{"Directory not found: " + missing}, slices.Collect(res.Lines()))
	})
}

func TestList_Truncated(t *testing.T) {
	root := makeTree(t, "1", "2", "3", "4")
	cfg := config.DefaultConfig()
	cfg.Tools.MaxListFilesResults = 2

	res := newLister(root, cfg).List(root, true)

	assert.True(t, res.Truncated)
	assert.Equal(t, []string{"1", "2", "... (truncated to 2 files)"}, slices.Collect(res.Lines()))
}

func TestList_Gitignore(t *testing.T) {
	root := makeTree(t, "main.go", "out.log", "gen/x.go")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("*.log\ngen/\n"), 0o644))
	matcher, err := git.NewIgnoreMatcher(root, fs.NewOSFileSystem())
	require.NoError(t, err)

	l := NewFileLister(fs.NewOSFileSystem(), path.NewResolver(root), matcher, config.DefaultConfig(), zerolog.Nop())

	assert.Equal(t, []string{".gitignore", "main.go"}, l.List(root, true).Files)
}

func TestList_GitignoreMatchesSymlinkByOwnName(t *testing.T) {
	root := makeTree(t, "a.txt", "kept/b.txt")
	if err := os.Symlink("a.txt", filepath.Join(root, "alias.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink("b.txt", filepath.Join(root, "kept", "other.txt")))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("alias.txt\n"), 0o644))
	matcher, err := git.NewIgnoreMatcher(root, fs.NewOSFileSystem())
	require.NoError(t, err)

	l := NewFileLister(fs.NewOSFileSystem(), path.NewResolver(root), matcher, config.DefaultConfig(), zerolog.Nop())

	assert.Equal(t, []string{".gitignore", "a.txt", "kept/b.txt", "kept/other.txt"}, l.List(root, true).Files)
}

func TestNewFileLister_NilDependenciesPanic(t *testing.T) {
	resolver := path.NewResolver("/")
	cfg := config.DefaultConfig()
	assert.Panics(t, func() { NewFileLister(nil, resolver, git.NoOpMatcher{}, cfg, zerolog.Nop()) })
	assert.Panics(t, func() { NewFileLister(fs.NewOSFileSystem(), nil, git.NoOpMatcher{}, cfg, zerolog.Nop()) })
	assert.Panics(t, func() { NewFileLister(fs.NewOSFileSystem(), resolver, nil, cfg, zerolog.Nop()) })
	assert.Panics(t, func() { NewFileLister(fs.NewOSFileSystem(), resolver, git.NoOpMatcher{}, nil, zerolog.Nop()) })
}

func TestTools(t *testing.T) {
	root := makeTree(t, "src/main.go", "README.md")
	cfg := config.DefaultConfig()
	resolver := path.NewResolver(root)
	treeTool := NewShowFileTreeTool(newRenderer(root), resolver, cfg)
	listTool := NewListFilesTool(newLister(root, cfg), resolver)
	ctx := context.Background()

	t.Run("ShowFileTree", func(t *testing.T) {
		res, err := treeTool.Execute(ctx, &ShowFileTreeRequest{})
		require.NoError(t, err)
		assert.Equal(t, root+"/\n├── src\n│   └── main.go\n└── README.md", res.LLMContent())
		assert.IsType(t, tool.LinesDisplay{}, res.Display())
	})

	t.Run("ShowFileTreeDepth", func(t *testing.T) {
		depth := 1
		res, err := treeTool.Execute(ctx, &ShowFileTreeRequest{Path: "src", MaxDepth: &depth})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "src")+"/\n└── main.go", res.LLMContent())
	})

	t.Run("ShowFileTreeAccessDenied", func(t *testing.T) {
		_, err := treeTool.Execute(ctx, &ShowFileTreeRequest{Path: ".."})
		assert.ErrorIs(t, err, path.ErrAccessDenied)
	})

	t.Run("ListFiles", func(t *testing.T) {
		res, err := listTool.Execute(ctx, &ListFilesRequest{})
		require.NoError(t, err)
		assert.Equal(t, "README.md\nsrc/main.go", res.LLMContent())
	})

	t.Run("ListFilesNonRecursive", func(t *testing.T) {
		recursive := false
		res, err := listTool.Execute(ctx, &ListFilesRequest{Recursive: &recursive})
		require.NoError(t, err)
		assert.Equal(t, "README.md", res.LLMContent())
	})

	t.Run("ListFilesAccessDenied", func(t *testing.T) {
		_, err := listTool.Execute(ctx, &ListFilesRequest{Path: "/etc"})
		assert.ErrorIs(t, err, path.ErrAccessDenied)
	})

	t.Run("WrongInputType", func(t *testing.T) {
		_, err := treeTool.Execute(ctx, &ListFilesRequest{})
		assert.Error(t, err)
		_, err = listTool.Execute(ctx, &ShowFileTreeRequest{})
		assert.Error(t, err)
	})
}

func TestRequests(t *testing.T) {
	zero, negative := 0, -1
	assert.NoError(t, (&ShowFileTreeRequest{MaxDepth: &zero}).Validate())
	assert.ErrorIs(t, (&ShowFileTreeRequest{MaxDepth: &negative}).Validate(), ErrInvalidDepth)
	assert.NoError(t, (&ShowFileTreeRequest{}).Validate())
	assert.Equal(t, "Tree of .", (&ShowFileTreeRequest{}).String())
	assert.Equal(t, "List files in src", (&ListFilesRequest{Path: "src"}).String())
	assert.True(t, (&ListFilesRequest{}).recursive())
}
