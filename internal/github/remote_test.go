package github_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	githubpkg "ghcommit.dev/ghcommit/internal/github"
)

func TestParseGitHubRemoteURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected githubpkg.RepoInfo
	}{
		{
			name:     "https github.com",
			url:      "https://github.com/acme/widgets.git",
			expected: githubpkg.RepoInfo{Hostname: "github.com", Owner: "acme", Repo: "widgets"},
		},
		{
			name:     "ssh github.com",
			url:      "git@github.com:acme/widgets.git",
			expected: githubpkg.RepoInfo{Hostname: "github.com", Owner: "acme", Repo: "widgets"},
		},
		{
			name:     "https enterprise",
			url:      "https://github.acme-corp.com/platform/deploy",
			expected: githubpkg.RepoInfo{Hostname: "github.acme-corp.com", Owner: "platform", Repo: "deploy"},
		},
		{
			name:     "ssh enterprise",
			url:      "git@github.acme-corp.com:platform/deploy.git",
			expected: githubpkg.RepoInfo{Hostname: "github.acme-corp.com", Owner: "platform", Repo: "deploy"},
		},
		{
			name:     "ssh with slash separator",
			url:      "git@github.com/acme/widgets",
			expected: githubpkg.RepoInfo{Hostname: "github.com", Owner: "acme", Repo: "widgets"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := githubpkg.ParseGitHubRemoteURL(tt.url)
			require.NoError(t, err)
			require.Equal(t, tt.expected, *info)
		})
	}

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := githubpkg.ParseGitHubRemoteURL("not-a-remote")
		require.Error(t, err)
	})
}

func TestResolveDefaults(t *testing.T) {
	t.Run("uses the actions environment when present", func(t *testing.T) {
		t.Setenv("GITHUB_REPOSITORY", "acme/widgets")
		t.Setenv("GITHUB_REF_NAME", "release")
		t.Setenv("GITHUB_SERVER_URL", "https://github.acme-corp.com")

		defaults, err := githubpkg.ResolveDefaults(context.Background())
		require.NoError(t, err)
		require.Equal(t, "acme", defaults.Repo.Owner)
		require.Equal(t, "widgets", defaults.Repo.Repo)
		require.Equal(t, "github.acme-corp.com", defaults.Repo.Hostname)
		require.Equal(t, "release", defaults.Branch)
	})

	t.Run("defaults to github.com hostname", func(t *testing.T) {
		t.Setenv("GITHUB_REPOSITORY", "acme/widgets")
		t.Setenv("GITHUB_SERVER_URL", "")
		t.Setenv("GITHUB_REF_NAME", "")

		defaults, err := githubpkg.ResolveDefaults(context.Background())
		require.NoError(t, err)
		require.Equal(t, "github.com", defaults.Repo.Hostname)
		require.Empty(t, defaults.Branch)
	})

	t.Run("rejects malformed repository value", func(t *testing.T) {
		t.Setenv("GITHUB_REPOSITORY", "just-a-name")

		_, err := githubpkg.ResolveDefaults(context.Background())
		require.Error(t, err)
	})
}
