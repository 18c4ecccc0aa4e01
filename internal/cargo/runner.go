// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Build-tool command execution with timeout and failure classification

package cargo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// Runner executes build-tool invocations. It centralises timeout and
// failure policy so every subcommand (package, check, publish) gets uniform
// fatal-vs-recoverable treatment.
type Runner struct {
	tool   string
	logger *log.Logger
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a runner for the given build tool. Captured output from
// successful commands is relayed to stdout/stderr so interactive progress
// stays visible.
func NewRunner(tool string, logger *log.Logger, stdout, stderr io.Writer) *Runner {
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Runner{tool: tool, logger: logger, stdout: stdout, stderr: stderr}
}

// Execute runs argv within ctx. The argument vector must name the build tool
// as its first element; anything else is a precondition violation.
//
// A timeout is always fatal. A non-zero exit is offered to onFailure first;
// when the classifier signals handled the call returns nil. Otherwise the
// captured output is logged at error level and an error carrying the exit
// code is returned. On success the captured output is relayed to the
// runner's own streams.
func (r *Runner) Execute(ctx Context, argv []string, onFailure FailureClassifier) error {
	if len(argv) == 0 || argv[0] != r.tool {
		return fmt.Errorf("execute only accepts %s invocations, got %q", r.tool, strings.Join(argv, " "))
	}

	result, timedOut, err := r.runWithTimeout(ctx, argv)
	if err != nil {
		return err
	}
	if timedOut {
		r.logger.Error("command timed out",
			"package", ctx.Package,
			"timeout", ctx.Timeout,
			"command", strings.Join(argv, " "))
		return fmt.Errorf("%s command timed out for %q after %d seconds",
			r.tool, ctx.Package, int(ctx.Timeout.Seconds()))
	}

	if result.ExitCode == 0 {
		r.relay(result)
		return nil
	}

	if onFailure != nil && onFailure(ctx.Package, result) {
		return nil
	}

	joined := strings.Join(result.Argv, " ")
	r.logger.Error("command failed", "package", ctx.Package, "command", joined)
	if result.Stdout != "" {
		r.logger.Error("command stdout", "output", result.Stdout)
	}
	if result.Stderr != "" {
		r.logger.Error("command stderr", "output", result.Stderr)
	}
	return fmt.Errorf("%s command failed for %q: %s (exit code %d)",
		r.tool, ctx.Package, joined, result.ExitCode)
}

// runWithTimeout starts the process in its own process group, enforces the
// wall-clock bound, and captures both output streams.
func (r *Runner) runWithTimeout(ctx Context, argv []string) (Result, bool, error) {
	runCtx, cancel := context.WithTimeout(context.Background(), ctx.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = ctx.Dir
	cmd.Env = mergedEnv(ctx.Env)

	// Kill the whole process group on timeout so a hung tool cannot leave
	// orphaned children behind.
	setPlatformProcessGroup(cmd)
	cmd.Cancel = func() error {
		return killProcessGroup(cmd)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()

	result := Result{
		Argv:   argv,
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return result, true, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, false, nil
		}
		return result, false, fmt.Errorf("failed to run %s for %q: %w", argv[0], ctx.Package, err)
	}

	return result, false, nil
}

// relay writes the captured streams of a successful command to the runner's
// own stdout and stderr.
func (r *Runner) relay(result Result) {
	if result.Stdout != "" {
		fmt.Fprint(r.stdout, result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Fprint(r.stderr, result.Stderr)
	}
}

// mergedEnv returns the process environment with the context overrides
// appended. Later entries win, so overrides shadow inherited values.
func mergedEnv(overrides map[string]string) []string {
	env := os.Environ()
	for key, value := range overrides {
		env = append(env, key+"="+value)
	}
	return env
}
