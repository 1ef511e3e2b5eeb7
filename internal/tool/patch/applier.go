package patch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Cyclone1070/myshkin/internal/config"
	"github.com/Cyclone1070/myshkin/internal/tool/service/executor"
	"github.com/rs/zerolog"
)

// successMessage is the reply for a cleanly applied patch.
const successMessage = "Patch applied successfully."

// Result is the outcome of running the patch program.
// A non-zero ExitCode means the patch was rejected in whole or in part;
// Stderr and Stdout carry the program's explanation.
type Result struct {
	ExitCode  int
	Stdout    string
	Stderr    string
	DryRun    bool
	Truncated bool
}

// Succeeded reports whether the patch program exited cleanly.
func (r *Result) Succeeded() bool {
	return r.ExitCode == 0
}

// Message renders the result for the caller: a fixed success line, or the
// program's diagnostics.
func (r *Result) Message() string {
	if r.Succeeded() {
		if r.DryRun {
			return "Patch would apply cleanly."
		}
		return successMessage
	}
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(r.Stdout); msg != "" {
		return msg
	}
	return fmt.Sprintf("patch exited with status %d", r.ExitCode)
}

type commandRunner interface {
	Run(ctx context.Context, command []string, dir string, stdin string, timeout time.Duration) (*executor.Result, error)
}

type pathResolver interface {
	Resolve(raw string) (string, error)
}

// Applier feeds unified diffs to an external patch program.
type Applier struct {
	runner   commandRunner
	resolver pathResolver
	config   *config.Config
	log      zerolog.Logger
}

// NewApplier creates a new Applier with injected dependencies.
func NewApplier(runner commandRunner, resolver pathResolver, cfg *config.Config, log zerolog.Logger) *Applier {
	if runner == nil {
		panic("runner is required")
	}
	if resolver == nil {
		panic("resolver is required")
	}
	if cfg == nil {
		panic("config is required")
	}
	return &Applier{runner: runner, resolver: resolver, config: cfg, log: log}
}

// ApplyUnifiedDiff applies patchText inside workingDirectory ("" is the base
// directory) with the given strip level.
//
// A patch the program rejects is not an error: the returned Result carries the
// exit code and diagnostics. Errors are reserved for invalid arguments, paths
// outside the base directory, failure to start the program, timeouts and
// cancellation.
func (a *Applier) ApplyUnifiedDiff(ctx context.Context, workingDirectory, patchText string, strip int, dryRun bool) (*Result, error) {
	if strip < 0 {
		return nil, ErrInvalidStrip
	}
	if strings.TrimSpace(patchText) == "" {
		return nil, ErrEmptyPatch
	}

	dir, err := a.resolver.Resolve(workingDirectory)
	if err != nil {
		return nil, err
	}

	command := a.command(strip, dryRun)
	timeout := time.Duration(a.config.Tools.PatchTimeoutSeconds) * time.Second

	res, err := a.runner.Run(ctx, command, dir, patchText, timeout)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ExitCode:  res.ExitCode,
		Stdout:    res.Stdout,
		Stderr:    res.Stderr,
		DryRun:    dryRun,
		Truncated: res.Truncated,
	}

	event := a.log.Info()
	if !result.Succeeded() {
		event = a.log.Warn()
	}
	event.Str("dir", dir).
		Int("strip", strip).
		Bool("dry_run", dryRun).
		Int("exit_code", result.ExitCode).
		Msg("patch finished")

	return result, nil
}

func (a *Applier) command(strip int, dryRun bool) []string {
	command := []string{a.config.Tools.PatchCommand, fmt.Sprintf("-p%d", strip), "--forward", "--batch"}
	if dryRun {
		command = append(command, "--dry-run")
	}
	return command
}
