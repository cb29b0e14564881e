package fetcher

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

var (
	ErrCloneFailed    = errors.New("git clone failed")
	ErrFolderNotFound = errors.New("not found in the repository")
	ErrGitNotFound    = errors.New("git executable not found in PATH")
)

// GitError captures a failed git invocation.
type GitError struct {
	Args     []string
	ExitCode int
	Output   string
	TimedOut bool
	err      error
}

func (e *GitError) Error() string {
	if e.TimedOut {
		return "git command timed out"
	}
	if e.Output == "" {
		return fmt.Errorf("git command failed: %w", e.err).Error()
	}
	return fmt.Sprintf("git command failed: %s", strings.TrimSpace(e.Output))
}

func (e *GitError) Unwrap() error {
	return e.err
}

func newGitError(args []string, output []byte, err error, timedOut bool) *GitError {
	exitCode := -1

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	return &GitError{
		Args:     args,
		ExitCode: exitCode,
		Output:   string(output),
		TimedOut: timedOut,
		err:      err,
	}
}

// ExitCode returns the git exit code carried by err, or -1.
func ExitCode(err error) int {
	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return gitErr.ExitCode
	}
	return -1
}

// IsTimeout reports whether err came from a clone killed at its deadline.
func IsTimeout(err error) bool {
	var gitErr *GitError
	return errors.As(err, &gitErr) && gitErr.TimedOut
}

// CloneError wraps ErrCloneFailed with the configured timeout.
type CloneError struct {
	TimeoutSeconds int
	Err            error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("git clone timed out after %d seconds or failed", e.TimeoutSeconds)
}

func (e *CloneError) Unwrap() []error {
	return []error{ErrCloneFailed, e.Err}
}
