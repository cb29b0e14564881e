// Package fetcher shallow-clones a repository into a throwaway workspace.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"repo-flatten/helpers"
)

const (
	// DefaultBranch is the only branch ever cloned.
	DefaultBranch  = "main"
	DefaultTimeout = 5

	waitDelay = time.Second
)

// Cloner clones remote into dest.
type Cloner interface {
	Clone(ctx context.Context, remote, dest string) error
}

// Git runs the git executable with a wall-clock bound on each clone.
type Git struct {
	GitPath        string
	TimeoutSeconds int
	Logger         *slog.Logger
}

// NewGit looks up git on PATH. A missing binary is reported when Clone runs.
func NewGit(timeoutSeconds int, logger *slog.Logger) *Git {
	gitPath, _ := exec.LookPath("git")
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Git{
		GitPath:        gitPath,
		TimeoutSeconds: timeoutSeconds,
		Logger:         logger,
	}
}

func cloneArgs(remote, dest string) []string {
	return []string{
		"clone",
		"--depth", "1",
		"--single-branch",
		"--branch", DefaultBranch,
		remote,
		dest,
	}
}

// Clone runs a shallow single-branch clone. Timeout, non-zero exit and a
// missing git binary all surface as a *CloneError.
func (g *Git) Clone(ctx context.Context, remote, dest string) error {
	if g.GitPath == "" {
		return &CloneError{TimeoutSeconds: g.TimeoutSeconds, Err: ErrGitNotFound}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(g.TimeoutSeconds)*time.Second)
	defer cancel()

	args := cloneArgs(remote, dest)
	cmd := exec.CommandContext(ctx, g.GitPath, args...)
	cmd.WaitDelay = waitDelay
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	g.Logger.Debug("running git", "path", g.GitPath, "args", args, "timeout_seconds", g.TimeoutSeconds)

	start := time.Now()
	output, err := cmd.CombinedOutput()
	if err != nil {
		timedOut := errors.Is(ctx.Err(), context.DeadlineExceeded)
		gitErr := newGitError(args, output, err, timedOut)
		g.Logger.Debug("git clone failed",
			"exit_code", gitErr.ExitCode,
			"timed_out", timedOut,
			"elapsed", time.Since(start),
			"output", gitErr.Output,
		)
		return &CloneError{TimeoutSeconds: g.TimeoutSeconds, Err: gitErr}
	}

	g.Logger.Debug("git clone finished", "elapsed", time.Since(start))
	return nil
}

// Workspace is a temporary directory owned by a single run.
type Workspace struct {
	Dir string
}

// NewWorkspace creates a fresh temporary directory. Callers must defer Close.
func NewWorkspace() (*Workspace, error) {
	dir, err := os.MkdirTemp("", "repo-flatten-*")
	if err != nil {
		return nil, fmt.Errorf("error creating temporary workspace: %w", err)
	}
	return &Workspace{Dir: dir}, nil
}

// CloneDir is where the repository is checked out. git refuses a non-empty
// target, so the checkout goes into a child of the workspace.
func (w *Workspace) CloneDir() string {
	return filepath.Join(w.Dir, "repo")
}

// Resolve returns the absolute path of dir inside the checkout, or
// ErrFolderNotFound if it is not a directory there. A folder reached through
// a symlink pointing out of the checkout counts as not found.
func (w *Workspace) Resolve(dir string) (string, error) {
	root := w.CloneDir()
	target := filepath.Join(root, filepath.FromSlash(dir))

	notFound := fmt.Errorf("folder %s %w", dir, ErrFolderNotFound)
	if !helpers.IsWithin(root, target) || !w.Contains(target) {
		return "", notFound
	}

	info, err := os.Stat(target)
	if err != nil || !info.IsDir() {
		return "", notFound
	}
	return target, nil
}

// Contains reports whether path, with symlinks evaluated, lies inside the
// checkout. It is false for paths that do not exist.
func (w *Workspace) Contains(path string) bool {
	root, err := filepath.EvalSymlinks(w.CloneDir())
	if err != nil {
		return false
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	return helpers.IsWithin(root, resolved)
}

// Close removes the workspace. Calling it more than once is safe.
func (w *Workspace) Close() error {
	if w == nil || w.Dir == "" {
		return nil
	}
	err := os.RemoveAll(w.Dir)
	w.Dir = ""
	return err
}
