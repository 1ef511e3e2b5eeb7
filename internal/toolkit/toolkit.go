// Package toolkit builds one set of file tools bound to a base directory.
package toolkit

import (
	"github.com/Cyclone1070/myshkin/internal/config"
	"github.com/Cyclone1070/myshkin/internal/tool/directory"
	"github.com/Cyclone1070/myshkin/internal/tool/file"
	"github.com/Cyclone1070/myshkin/internal/tool/patch"
	"github.com/Cyclone1070/myshkin/internal/tool/service/executor"
	"github.com/Cyclone1070/myshkin/internal/tool/service/fs"
	"github.com/Cyclone1070/myshkin/internal/tool/service/git"
	"github.com/Cyclone1070/myshkin/internal/tool/service/path"
	"github.com/Cyclone1070/myshkin/internal/workflow/toolmanager"
	"github.com/rs/zerolog"
)

// ignoreMatcher is satisfied by git.IgnoreMatcher and git.NoOpMatcher.
type ignoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// Toolkit holds the components of one toolkit instance. All of them share the
// same base directory, which never changes after New returns.
type Toolkit struct {
	Resolver *path.Resolver
	Editor   *file.Editor
	Applier  *patch.Applier
	Tree     *directory.TreeRenderer
	Lister   *directory.FileLister
	Tools    *toolmanager.ToolManager
}

// Option customises New.
type Option func(*options)

type options struct {
	summarizer file.Summarizer
}

// WithSummarizer registers the summarize_file tool backed by s.
func WithSummarizer(s file.Summarizer) Option {
	return func(o *options) {
		o.summarizer = s
	}
}

// New canonicalises baseDir and wires every component and tool to it.
func New(cfg *config.Config, baseDir string, log zerolog.Logger, opts ...Option) (*Toolkit, error) {
	if cfg == nil {
		panic("config is required")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	root, err := path.CanonicaliseRoot(baseDir)
	if err != nil {
		return nil, err
	}

	fileSystem := fs.NewOSFileSystem()
	resolver := path.NewResolver(root)

	var ignore ignoreMatcher = git.NoOpMatcher{}
	if cfg.Tools.TreeRespectGitignore {
		matcher, err := git.NewIgnoreMatcher(root, fileSystem)
		if err != nil {
			log.Warn().Err(err).Msg("gitignore disabled")
		} else {
			ignore = matcher
		}
	}

	runner := executor.NewOSCommandExecutor(cfg, log.With().Str("component", "executor").Logger())

	tk := &Toolkit{
		Resolver: resolver,
		Editor:   file.NewEditor(fileSystem, resolver, cfg, log.With().Str("component", "editor").Logger()),
		Applier:  patch.NewApplier(runner, resolver, cfg, log.With().Str("component", "patch").Logger()),
		Tree:     directory.NewTreeRenderer(fileSystem, resolver, ignore, log.With().Str("component", "tree").Logger()),
		Lister:   directory.NewFileLister(fileSystem, resolver, ignore, cfg, log.With().Str("component", "lister").Logger()),
	}

	tk.Tools = toolmanager.NewToolManager(log.With().Str("component", "tools").Logger(),
		file.NewReadFileTool(tk.Editor),
		file.NewInsertLineTool(tk.Editor),
		file.NewRemoveLinesTool(tk.Editor),
		patch.NewApplyPatchTool(tk.Applier),
		directory.NewShowFileTreeTool(tk.Tree, resolver, cfg),
		directory.NewListFilesTool(tk.Lister, resolver),
	)
	if o.summarizer != nil {
		tk.Tools.Register(file.NewSummarizeFileTool(o.summarizer, resolver))
	}

	log.Debug().Str("base_dir", resolver.BaseDir()).Strs("tools", tk.Tools.Names()).Msg("toolkit ready")
	return tk, nil
}
