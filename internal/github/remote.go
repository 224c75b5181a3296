package github

import (
	"context"
	"fmt"
	"os"
	"strings"

	"ghcommit.dev/ghcommit/internal/git"
)

// RepoInfo contains parsed information from a git remote URL
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// Defaults holds the ambient repository coordinates and branch used when the
// caller did not specify them explicitly
type Defaults struct {
	Repo   *RepoInfo
	Branch string
}

// DefaultsResolver resolves ambient defaults. It is injected into the CLI so
// nothing below it reads global state directly.
type DefaultsResolver func(ctx context.Context) (*Defaults, error)

// ResolveDefaults is the standard resolver. It prefers the GitHub Actions
// environment (GITHUB_REPOSITORY, GITHUB_REF_NAME, GITHUB_SERVER_URL) and
// falls back to the origin remote of the enclosing repository.
func ResolveDefaults(ctx context.Context) (*Defaults, error) {
	if repoEnv := os.Getenv("GITHUB_REPOSITORY"); repoEnv != "" {
		parts := strings.SplitN(repoEnv, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid GITHUB_REPOSITORY value %q: must be owner/repo", repoEnv)
		}

		hostname := "github.com"
		if serverURL := os.Getenv("GITHUB_SERVER_URL"); serverURL != "" {
			hostname = strings.TrimPrefix(serverURL, "https://")
			hostname = strings.TrimPrefix(hostname, "http://")
			hostname = strings.TrimSuffix(hostname, "/")
		}

		return &Defaults{
			Repo: &RepoInfo{
				Hostname: hostname,
				Owner:    parts[0],
				Repo:     parts[1],
			},
			Branch: os.Getenv("GITHUB_REF_NAME"),
		}, nil
	}

	info, err := getRepoInfoWithHostname(ctx)
	if err != nil {
		return nil, err
	}

	return &Defaults{Repo: info}, nil
}

// ParseGitHubRemoteURL parses a git remote URL and extracts hostname, owner, and repo
// Supports both github.com and GitHub Enterprise URLs
// Examples:
//   - https://github.com/owner/repo.git
//   - git@github.com:owner/repo.git
//   - https://github.company.com/owner/repo.git
//   - git@github.company.com:owner/repo.git
func ParseGitHubRemoteURL(remoteURL string) (*RepoInfo, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	remoteURL = strings.TrimSuffix(remoteURL, ".git")

	var hostname, owner, repo string

	if strings.Contains(remoteURL, "@") {
		// SSH format: git@hostname:owner/repo or git@hostname/owner/repo
		parts := strings.SplitN(remoteURL, "@", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid SSH remote URL format")
		}

		hostAndPath := parts[1]

		// Handle both : and / separators after hostname
		var path string
		if strings.Contains(hostAndPath, ":") {
			// Format: git@hostname:owner/repo
			hostPathParts := strings.SplitN(hostAndPath, ":", 2)
			hostname = hostPathParts[0]
			path = hostPathParts[1]
		} else {
			// Format: git@hostname/owner/repo (less common)
			pathParts := strings.SplitN(hostAndPath, "/", 2)
			if len(pathParts) < 2 {
				return nil, fmt.Errorf("invalid SSH remote URL: missing path")
			}
			hostname = pathParts[0]
			path = pathParts[1]
		}

		pathParts := strings.Split(path, "/")
		if len(pathParts) < 2 {
			return nil, fmt.Errorf("invalid SSH remote URL: path must be owner/repo")
		}
		owner = pathParts[0]
		repo = pathParts[len(pathParts)-1]
	} else {
		// HTTPS format: https://hostname/owner/repo
		remoteURL = strings.TrimPrefix(remoteURL, "https://")
		remoteURL = strings.TrimPrefix(remoteURL, "http://")

		parts := strings.Split(remoteURL, "/")
		if len(parts) < 3 {
			return nil, fmt.Errorf("invalid HTTPS remote URL: must be protocol://hostname/owner/repo")
		}

		hostname = parts[0]
		owner = parts[len(parts)-2]
		repo = parts[len(parts)-1]
	}

	if hostname == "" || owner == "" || repo == "" {
		return nil, fmt.Errorf("failed to parse hostname, owner, or repo from remote URL")
	}

	return &RepoInfo{
		Hostname: hostname,
		Owner:    owner,
		Repo:     repo,
	}, nil
}

// getRepoInfoWithHostname gets repository hostname, owner, and name from git remote
func getRepoInfoWithHostname(ctx context.Context) (*RepoInfo, error) {
	remoteURL, err := git.RunGitCommandWithContext(ctx, "config", "--get", "remote.origin.url")
	if err != nil {
		return nil, fmt.Errorf("failed to get remote URL: %w", err)
	}

	return ParseGitHubRemoteURL(remoteURL)
}
