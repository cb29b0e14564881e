package helpers

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"repo-flatten/model"
)

// minSegments is owner/repo/tree/ref plus at least one folder segment.
const minSegments = 5

var (
	ErrInvalidURL    = errors.New("invalid URL")
	ErrInvalidFormat = errors.New("invalid GitHub URL format")
)

// ParseRepoURL splits a GitHub folder URL such as
// https://github.com/owner/repo/tree/main/path/to/dir into its components.
// Segments 2 and 3 (tree and the branch name) are skipped; everything from
// segment 4 on is the folder path, kept as written apart from percent-decoding.
func ParseRepoURL(urlStr string) (urlComponents model.RepoURLComponents, err error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || !parsedURL.IsAbs() || parsedURL.Opaque != "" {
		err = fmt.Errorf("%w: %s", ErrInvalidURL, urlStr)
		return
	}

	segments, err := pathSegments(parsedURL)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrInvalidURL, urlStr)
		return
	}

	if len(segments) < minSegments {
		err = fmt.Errorf(
			"%w: %s\nExpected: https://github.com/owner/repo/tree/branch/path/to/dir",
			ErrInvalidFormat,
			urlStr,
		)
		return
	}

	urlComponents = model.RepoURLComponents{
		Owner:      segments[0],
		Repository: segments[1],
		Ref:        segments[3],
		Dir:        strings.Join(segments[4:], "/"),
	}
	return urlComponents, nil
}

// pathSegments splits the escaped path before decoding so an encoded slash
// stays inside its segment.
func pathSegments(u *url.URL) ([]string, error) {
	raw := strings.Split(strings.TrimPrefix(u.EscapedPath(), "/"), "/")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		decoded, err := url.PathUnescape(s)
		if err != nil {
			return nil, err
		}
		segments = append(segments, decoded)
	}
	return segments, nil
}
