package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/Cyclone1070/myshkin/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Result represents the outcome of a command execution.
type Result struct {
	Stdout    string
	Stderr    string
	ExitCode  int
	Truncated bool
}

// OSCommandExecutor implements command execution using os/exec for real system commands.
type OSCommandExecutor struct {
	config *config.Config
	log    zerolog.Logger
}

// NewOSCommandExecutor creates a new OSCommandExecutor with injected config.
func NewOSCommandExecutor(cfg *config.Config, log zerolog.Logger) *OSCommandExecutor {
	if cfg == nil {
		panic("cfg is required")
	}
	return &OSCommandExecutor{config: cfg, log: log}
}

// Run starts command in dir, streams stdin into it and closes the
// input, and collects stdout and stderr.
//
// The stdin writer and both output drains run concurrently so a process that
// fills one pipe while we are still writing the other cannot deadlock. The
// process is only waited on after the drains have finished.
//
// A non-zero exit status is reported through Result.ExitCode with a nil error.
// When timeout elapses the process is interrupted, then killed after the
// configured grace period, and ErrTimeout is returned together with whatever
// output was captured. Cancelling ctx kills the process and returns ctx.Err().
func (f *OSCommandExecutor) Run(ctx context.Context, command []string, dir string, stdin string, timeout time.Duration) (*Result, error) {
	if len(command) == 0 {
		return nil, os.ErrInvalid
	}

	// We don't use CommandContext here because we want to handle graceful shutdown
	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir

	stdinPipe, err := cmd.StdinPipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}
	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	f.log.Debug().
		Str("cmd", shellescape.QuoteCommand(command)).
		Str("dir", dir).
		Int("stdin_bytes", len(stdin)).
		Msg("starting command")

	if err := cmd.Start(); err != nil {
		return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "start"}
	}

	maxBytes := int(f.config.Tools.MaxPatchOutputSize)
	stdoutCollector := newCollector(maxBytes, binarySampleSize)
	stderrCollector := newCollector(maxBytes, binarySampleSize)

	var pumps errgroup.Group
	pumps.Go(func() error {
		defer stdinPipe.Close()
		// The process may exit before consuming all input; the resulting
		// broken pipe is not an execution failure.
		if _, err := io.Copy(stdinPipe, strings.NewReader(stdin)); err != nil {
			f.log.Debug().Err(err).Str("cmd", command[0]).Msg("stdin closed early")
		}
		return nil
	})
	pumps.Go(func() error {
		_, err := io.Copy(stdoutCollector, stdoutPipe)
		return err
	})
	pumps.Go(func() error {
		_, err := io.Copy(stderrCollector, stderrPipe)
		return err
	})

	pumpsDone := make(chan error, 1)
	go func() {
		pumpsDone <- pumps.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var runErr error
	select {
	case err := <-pumpsDone:
		if err != nil {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			return nil, &CommandError{Cmd: command[0], Cause: err, Stage: "read output"}
		}
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-pumpsDone
		runErr = ctx.Err()
	case <-timer.C:
		// Try graceful shutdown
		_ = cmd.Process.Signal(os.Interrupt)
		grace := time.NewTimer(time.Duration(f.config.Tools.PatchGracefulShutdownMs) * time.Millisecond)
		select {
		case <-pumpsDone:
		case <-grace.C:
			_ = cmd.Process.Kill()
			<-pumpsDone
		}
		grace.Stop()
		runErr = ErrTimeout
	}

	waitErr := cmd.Wait()

	result := &Result{
		Stdout:    stdoutCollector.String(),
		Stderr:    stderrCollector.String(),
		ExitCode:  exitCode(waitErr),
		Truncated: stdoutCollector.Truncated() || stderrCollector.Truncated(),
	}

	if runErr != nil {
		result.ExitCode = -1
		f.log.Warn().Err(runErr).Str("cmd", command[0]).Msg("command did not finish")
		return result, runErr
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return result, &CommandError{Cmd: command[0], Cause: waitErr, Stage: "execution"}
	}

	f.log.Debug().Str("cmd", command[0]).Int("exit_code", result.ExitCode).Msg("command finished")
	return result, nil
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	type exitCoder interface {
		ExitCode() int
	}
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	return -1
}
