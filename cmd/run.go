package cmd

import (
	"context"
	"io"
	"log/slog"

	"repo-flatten/config"
	"repo-flatten/fetcher"
	"repo-flatten/helpers"
	"repo-flatten/model"
	"repo-flatten/pack"
)

// isTerminal decides whether the progress bar is drawn. Tests replace it.
var isTerminal = helpers.IsTerminal

type runner struct {
	cloner   fetcher.Cloner
	printer  *helpers.Printer
	progress io.Writer
	logger   *slog.Logger
}

// run parses rawURL, clones the repository into a workspace that is removed
// on return, and flattens the requested folder into cfg.OutputDir.
func (r *runner) run(ctx context.Context, rawURL string, cfg config.Config) (pack.Result, error) {
	components, err := helpers.ParseRepoURL(rawURL)
	if err != nil {
		return pack.Result{}, err
	}

	cloneURL := components.CloneURL()
	r.printer.Label("Cloning repository:", cloneURL)
	r.printer.Label("Target folder:", components.Dir)

	ws, err := fetcher.NewWorkspace()
	if err != nil {
		return pack.Result{}, err
	}
	defer func() {
		dir := ws.Dir
		if err := ws.Close(); err != nil {
			r.logger.Warn("failed to remove workspace", "dir", dir, "error", err)
		}
	}()
	r.logger.Debug("created workspace", "dir", ws.Dir)

	if err := r.cloner.Clone(ctx, cloneURL, ws.CloneDir()); err != nil {
		r.logger.Debug("clone failed",
			"exit_code", fetcher.ExitCode(err),
			"timed_out", fetcher.IsTimeout(err),
		)
		return pack.Result{}, err
	}

	target, err := ws.Resolve(components.Dir)
	if err != nil {
		return pack.Result{}, err
	}

	r.printer.Step("Processing files...")
	obs := &pack.Observer{
		Include: func(path string) bool {
			if ws.Contains(path) {
				return true
			}
			r.logger.Warn("skipping file that links outside the repository", "path", path)
			return false
		},
		File: func(entry model.FileEntry) {
			r.printer.Step("Processing: %s", entry.Name)
			r.logger.Debug("wrote record", "path", entry.Path, "size", entry.Size)
		},
	}
	if cfg.Progress && isTerminal(r.progress) {
		progress := pack.NewProgress(r.progress)
		defer progress.Finish()
		obs = progress.Observer(obs)
	}

	result, err := pack.WriteFile(cfg.OutputDir, components, target, obs)
	if err != nil {
		return pack.Result{}, err
	}

	r.printer.Success("Content has been saved to %s (%d files, %s)",
		result.Path, len(result.Files), helpers.FormatBytes(result.Bytes))
	return result, nil
}
