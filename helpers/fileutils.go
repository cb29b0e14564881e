package helpers

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputFileName builds "<repo>_<dir with slashes as underscores>.txt".
func OutputFileName(repository, dir string) string {
	return fmt.Sprintf("%s_%s.txt", repository, strings.ReplaceAll(dir, "/", "_"))
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil && !os.IsExist(err) {
		return fmt.Errorf("error creating output folder %s: %w", dir, err)
	}
	return nil
}

// IsWithin reports whether target is base itself or lies below it.
func IsWithin(base, target string) bool {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
