package helpers_test

import (
	"strings"
	"testing"

	"repo-flatten/helpers"
	"repo-flatten/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expected    model.RepoURLComponents
		expectError error
	}{
		{
			name: "valid URL with simple path",
			url:  "https://github.com/owner/repo/tree/main/dir",
			expected: model.RepoURLComponents{
				Owner:      "owner",
				Repository: "repo",
				Ref:        "main",
				Dir:        "dir",
			},
		},
		{
			name: "nested folder",
			url:  "https://github.com/acme/widgets/tree/main/docs/guides",
			expected: model.RepoURLComponents{
				Owner:      "acme",
				Repository: "widgets",
				Ref:        "main",
				Dir:        "docs/guides",
			},
		},
		{
			name: "url with special characters",
			url:  "https://github.com/user/proj/tree/main/docs%20%26%20resources",
			expected: model.RepoURLComponents{
				Owner:      "user",
				Repository: "proj",
				Ref:        "main",
				Dir:        "docs & resources",
			},
		},
		{
			name: "segments 2 and 3 are not checked",
			url:  "https://github.com/owner/repo/blob/dev/file.txt",
			expected: model.RepoURLComponents{
				Owner:      "owner",
				Repository: "repo",
				Ref:        "dev",
				Dir:        "file.txt",
			},
		},
		{
			name: "trailing slash is kept and query dropped",
			url:  "https://github.com/owner/repo/tree/main/src/?tab=readme",
			expected: model.RepoURLComponents{
				Owner:      "owner",
				Repository: "repo",
				Ref:        "main",
				Dir:        "src/",
			},
		},
		{
			name: "repository with .git suffix kept verbatim",
			url:  "https://github.com/owner/repo.git/tree/main/dir",
			expected: model.RepoURLComponents{
				Owner:      "owner",
				Repository: "repo.git",
				Ref:        "main",
				Dir:        "dir",
			},
		},
		{
			name: "empty directory path",
			url:  "https://github.com/owner/repo/tree/main/",
			expected: model.RepoURLComponents{
				Owner:      "owner",
				Repository: "repo",
				Ref:        "main",
				Dir:        "",
			},
		},
		{
			name:        "too few segments",
			url:         "https://github.com/owner/repo/tree/main",
			expectError: helpers.ErrInvalidFormat,
		},
		{
			name:        "repository root",
			url:         "https://github.com/owner/repo",
			expectError: helpers.ErrInvalidFormat,
		},
		{
			name:        "not a url",
			url:         "invalid-url",
			expectError: helpers.ErrInvalidURL,
		},
		{
			name:        "opaque url",
			url:         "mailto:someone@example.com",
			expectError: helpers.ErrInvalidURL,
		},
		{
			name:        "bad escape",
			url:         "https://github.com/owner/repo/tree/main/%zz",
			expectError: helpers.ErrInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			components, err := helpers.ParseRepoURL(tt.url)

			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Equal(t, model.RepoURLComponents{}, components)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, components)
		})
	}
}

func TestParseRepoURLCloneURL(t *testing.T) {
	components, err := helpers.ParseRepoURL("https://github.com/acme/widgets/tree/main/docs/guides")
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/acme/widgets.git", components.CloneURL())
	assert.Equal(t, "docs/guides", components.Dir)
}

func TestParseRepoURLCloneURLVerbatim(t *testing.T) {
	tests := []struct {
		url      string
		cloneURL string
		dir      string
	}{
		{"https://github.com/acme/widgets.git/tree/main/docs", "https://github.com/acme/widgets.git.git", "docs"},
		{"https://github.com/acme/widgets/tree/main/docs/", "https://github.com/acme/widgets.git", "docs/"},
		{"https://github.com/acme/a%20b/tree/main/docs%20x", "https://github.com/acme/a%20b.git", "docs x"},
		{"https://github.com/ac%2Fme/widgets/tree/main/docs", "https://github.com/ac%2Fme/widgets.git", "docs"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			components, err := helpers.ParseRepoURL(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.cloneURL, components.CloneURL())
			assert.Equal(t, tt.dir, components.Dir)
		})
	}
}

func TestParseRepoInvalidURLMessage(t *testing.T) {
	_, err := helpers.ParseRepoURL("invalid-url")
	require.Error(t, err)
	assert.Equal(t, "invalid URL: invalid-url", err.Error())
}

// segment may be empty or a dot segment; none of its characters need escaping.
var segment = rapid.StringMatching(`[A-Za-z0-9_.-]{0,12}`)

func TestParseRepoURLProperties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		owner := segment.Draw(rt, "owner")
		repo := segment.Draw(rt, "repo")
		skipped := segment.Draw(rt, "skipped")
		ref := segment.Draw(rt, "ref")
		folder := rapid.SliceOfN(segment, 1, 6).Draw(rt, "folder")

		url := "https://github.com/" + strings.Join(append([]string{owner, repo, skipped, ref}, folder...), "/")
		components, err := helpers.ParseRepoURL(url)
		if err != nil {
			rt.Fatalf("parse %q: %v", url, err)
		}

		if got, want := components.CloneURL(), "https://github.com/"+owner+"/"+repo+".git"; got != want {
			rt.Fatalf("clone url = %q, want %q", got, want)
		}
		if got, want := components.Dir, strings.Join(folder, "/"); got != want {
			rt.Fatalf("dir = %q, want %q", got, want)
		}
	})
}

func TestParseRepoURLShortPathsFail(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOfN(segment, 0, 4).Draw(rt, "parts")
		url := "https://github.com/" + strings.Join(parts, "/")

		_, err := helpers.ParseRepoURL(url)
		if err == nil {
			rt.Fatalf("expected error for %q", url)
		}
	})
}
