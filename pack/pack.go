// Package pack flattens the top-level files of a folder into one text file.
package pack

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"repo-flatten/helpers"
	"repo-flatten/model"
)

var (
	ErrNotText         = errors.New("stream did not contain valid UTF-8")
	ErrRead            = errors.New("error reading file")
	ErrWrite           = errors.New("error writing output")
	ErrCreateOutputDir = errors.New("error creating output directory")
)

// Observer is notified as records are written. All hooks are optional.
// Include, when set, decides whether a listed file becomes a record at all.
type Observer struct {
	Include func(path string) bool
	Start   func(total int)
	File    func(entry model.FileEntry)
}

func (o *Observer) include(path string) bool {
	return o == nil || o.Include == nil || o.Include(path)
}

func (o *Observer) start(total int) {
	if o != nil && o.Start != nil {
		o.Start(total)
	}
}

func (o *Observer) file(entry model.FileEntry) {
	if o != nil && o.File != nil {
		o.File(entry)
	}
}

// ListFiles returns the regular files directly inside srcDir, sorted by name.
// Symlinks are followed; directories and other special files are skipped.
func ListFiles(srcDir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, srcDir, err)
	}

	files := make([]os.DirEntry, 0, len(entries))
	for _, entry := range entries {
		info, err := os.Stat(filepath.Join(srcDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrRead, entry.Name(), err)
		}
		if info.Mode().IsRegular() {
			files = append(files, entry)
		}
	}
	return files, nil
}

// Flatten writes one record per file in srcDir to w:
//
//	File: <dir>/<name>
//	<content>
//	<blank line>
//
// It stops at the first file that cannot be read or is not UTF-8 text.
func Flatten(w io.Writer, srcDir, dir string, obs *Observer) ([]model.FileEntry, error) {
	listed, err := ListFiles(srcDir)
	if err != nil {
		return nil, err
	}
	files := listed[:0]
	for _, f := range listed {
		if obs.include(filepath.Join(srcDir, f.Name())) {
			files = append(files, f)
		}
	}
	obs.start(len(files))

	written := make([]model.FileEntry, 0, len(files))
	for _, f := range files {
		content, err := os.ReadFile(filepath.Join(srcDir, f.Name()))
		if err != nil {
			return written, fmt.Errorf("%w %s: %w", ErrRead, f.Name(), err)
		}
		if !utf8.Valid(content) {
			return written, fmt.Errorf("%w %s: %w", ErrRead, f.Name(), ErrNotText)
		}

		entry := model.FileEntry{
			Name: f.Name(),
			Path: dir + "/" + f.Name(),
			Size: int64(len(content)),
		}

		if _, err := fmt.Fprintf(w, "File: %s\n%s\n\n", entry.Path, content); err != nil {
			return written, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		written = append(written, entry)
		obs.file(entry)
	}
	return written, nil
}

// Result describes a finished output file.
type Result struct {
	Path  string
	Files []model.FileEntry
	Bytes int64
}

// WriteFile flattens srcDir into <outputDir>/<repo>_<dir>.txt. The records go
// to a temporary file that replaces the target only once all of them are
// written, so a failed run leaves any previous output untouched.
func WriteFile(outputDir string, components model.RepoURLComponents, srcDir string, obs *Observer) (Result, error) {
	if err := helpers.EnsureDir(outputDir); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
	}

	outputPath := filepath.Join(outputDir, helpers.OutputFileName(components.Repository, components.Dir))

	tmp, err := os.CreateTemp(outputDir, ".repo-flatten-*.tmp")
	if err != nil {
		return Result{}, fmt.Errorf("%w: creating %s: %w", ErrWrite, outputPath, err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	files, err := Flatten(bw, srcDir, components.Dir, obs)
	if err != nil {
		return Result{}, err
	}
	if err := bw.Flush(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := tmp.Close(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	committed = true

	var total int64
	for _, f := range files {
		total += f.Size
	}
	return Result{Path: outputPath, Files: files, Bytes: total}, nil
}
