package model

import (
	"fmt"
	"net/url"
)

// RepoURLComponents holds parsed GitHub URL components
type RepoURLComponents struct {
	Owner      string
	Repository string
	Ref        string
	Dir        string
}

// CloneURL returns the canonical https clone address for the repository.
// Owner and repository are decoded values, so they are escaped again here.
func (c RepoURLComponents) CloneURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", url.PathEscape(c.Owner), url.PathEscape(c.Repository))
}

// FileEntry describes one file written to the flattened output.
type FileEntry struct {
	Name string
	Path string
	Size int64
}
