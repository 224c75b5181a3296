// Package errors provides sentinel errors and custom error types for the ghcommit application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrNoFiles indicates that no files were supplied to commit
	ErrNoFiles = errors.New("no files to commit")

	// ErrFileNotFound indicates that a local file does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrRemoteNotFound indicates that a remote branch or commit does not exist
	ErrRemoteNotFound = errors.New("remote object not found")

	// ErrNonFastForward indicates that a ref update was rejected because it
	// was not a fast-forward
	ErrNonFastForward = errors.New("non-fast-forward ref update rejected")
)

// FileNotFoundError represents an error when a local file is missing
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file %s does not exist", e.Path)
}

// Is returns true if the target error is ErrFileNotFound
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// NewFileNotFoundError creates a new FileNotFoundError
func NewFileNotFoundError(path string) *FileNotFoundError {
	return &FileNotFoundError{Path: path}
}

// RemoteNotFoundError represents an error when a branch ref or commit id
// cannot be found on the remote
type RemoteNotFoundError struct {
	Kind string // "branch" or "commit"
	Name string
}

func (e *RemoteNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found on remote", e.Kind, e.Name)
}

// Is returns true if the target error is ErrRemoteNotFound
func (e *RemoteNotFoundError) Is(target error) bool {
	return target == ErrRemoteNotFound
}

// NewRemoteNotFoundError creates a new RemoteNotFoundError
func NewRemoteNotFoundError(kind, name string) *RemoteNotFoundError {
	return &RemoteNotFoundError{Kind: kind, Name: name}
}

// NonFastForwardError represents a rejected ref update, usually because
// someone else pushed to the branch while the commit was being assembled
type NonFastForwardError struct {
	Branch string
	SHA    string
}

func (e *NonFastForwardError) Error() string {
	return fmt.Sprintf("cannot fast-forward %s to %s: the branch moved since it was resolved", e.Branch, e.SHA)
}

// Is returns true if the target error is ErrNonFastForward
func (e *NonFastForwardError) Is(target error) bool {
	return target == ErrNonFastForward
}

// NewNonFastForwardError creates a new NonFastForwardError
func NewNonFastForwardError(branch, sha string) *NonFastForwardError {
	return &NonFastForwardError{Branch: branch, SHA: sha}
}

// APIError represents a failure from the GitHub API that is not one of the
// more specific conditions above (rate limiting, auth failure, bad payload)
type APIError struct {
	Step string // which remote operation failed
	Err  error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github api: %s: %v", e.Step, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewAPIError creates a new APIError
func NewAPIError(step string, err error) *APIError {
	return &APIError{Step: step, Err: err}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("%s command failed", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
