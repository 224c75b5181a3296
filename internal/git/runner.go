// Package git provides helpers for inspecting the local repository: command
// execution, repository discovery, and working-tree change detection.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	ghcerrors "ghcommit.dev/ghcommit/internal/errors"
)

// DefaultCommandTimeout is the default timeout for external commands
const DefaultCommandTimeout = 1 * time.Minute

// CommandRunner handles execution of external commands in a working directory
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner creates a new CommandRunner
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// defaultRunner is the global runner used by the package-level functions
var defaultRunner = &CommandRunner{}

// SetWorkingDir sets the working directory for the default runner.
func SetWorkingDir(dir string) {
	defaultRunner.workingDir = dir
}

// RunGitCommand executes a git command using the default runner and returns
// the trimmed output. It uses context.Background() with the default timeout.
func RunGitCommand(args ...string) (string, error) {
	return defaultRunner.Run(context.Background(), "git", args...)
}

// RunGitCommandWithContext executes a git command with the given context
// using the default runner.
func RunGitCommandWithContext(ctx context.Context, args ...string) (string, error) {
	return defaultRunner.Run(ctx, "git", args...)
}

// RunGHCommandWithContext executes a gh (GitHub CLI) command with the given
// context using the default runner.
func RunGHCommandWithContext(ctx context.Context, args ...string) (string, error) {
	return defaultRunner.Run(ctx, "gh", args...)
}

// Run executes a command with the given context and returns the trimmed output
func (r *CommandRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// If no timeout/deadline is set in the context, add the default one
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultCommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		return "", ghcerrors.NewGitCommandError(name, args, stdout.String(), stderr.String(), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}
