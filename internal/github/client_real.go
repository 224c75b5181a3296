package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"

	ghcerrors "ghcommit.dev/ghcommit/internal/errors"
)

// RealClient implements GitClient using the real GitHub API
type RealClient struct {
	client *github.Client
	owner  string
	repo   string
}

// NewRealClient creates a RealClient for the given repository, resolving the
// token from the environment or the gh CLI and configuring Enterprise URLs
// when the hostname is not github.com.
func NewRealClient(ctx context.Context, info *RepoInfo) (*RealClient, error) {
	token, err := getGitHubToken()
	if err != nil {
		return nil, fmt.Errorf("failed to get GitHub token: %w", err)
	}

	client, err := createGitHubClient(ctx, info.Hostname, token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	return &RealClient{
		client: client,
		owner:  info.Owner,
		repo:   info.Repo,
	}, nil
}

// NewRealClientFromGitHub wraps an already-configured go-github client. Used
// by tests to point the client at a mock server.
func NewRealClientFromGitHub(client *github.Client, owner, repo string) *RealClient {
	return &RealClient{client: client, owner: owner, repo: repo}
}

// GetOwnerRepo returns the repository owner and name
func (c *RealClient) GetOwnerRepo() (string, string) {
	return c.owner, c.repo
}

// GetRef returns the commit SHA at the tip of a branch
func (c *RealClient) GetRef(ctx context.Context, owner, repo, branch string) (string, error) {
	ref, resp, err := c.client.Git.GetRef(ctx, owner, repo, "heads/"+branch)
	if err != nil {
		if isNotFound(resp, err) {
			return "", ghcerrors.NewRemoteNotFoundError("branch", branch)
		}
		return "", ghcerrors.NewAPIError("get ref", err)
	}

	if ref.Object == nil || ref.Object.SHA == nil {
		return "", ghcerrors.NewAPIError("get ref", fmt.Errorf("ref for %s has no object SHA", branch))
	}

	return *ref.Object.SHA, nil
}

// GetCommit returns the tree SHA of a commit
func (c *RealClient) GetCommit(ctx context.Context, owner, repo, sha string) (string, error) {
	commit, resp, err := c.client.Git.GetCommit(ctx, owner, repo, sha)
	if err != nil {
		if isNotFound(resp, err) {
			return "", ghcerrors.NewRemoteNotFoundError("commit", sha)
		}
		return "", ghcerrors.NewAPIError("get commit", err)
	}

	if commit.Tree == nil || commit.Tree.SHA == nil {
		return "", ghcerrors.NewAPIError("get commit", fmt.Errorf("commit %s has no tree SHA", sha))
	}

	return *commit.Tree.SHA, nil
}

// CreateBlob uploads encoded content and returns the blob SHA
func (c *RealClient) CreateBlob(ctx context.Context, owner, repo, content, encoding string) (string, error) {
	blob, _, err := c.client.Git.CreateBlob(ctx, owner, repo, &github.Blob{
		Content:  github.String(content),
		Encoding: github.String(encoding),
	})
	if err != nil {
		return "", ghcerrors.NewAPIError("create blob", err)
	}

	if blob.SHA == nil {
		return "", ghcerrors.NewAPIError("create blob", errors.New("no SHA in blob response"))
	}

	return *blob.SHA, nil
}

// CreateTree creates a tree on top of baseTree and returns the new tree SHA
func (c *RealClient) CreateTree(ctx context.Context, owner, repo, baseTree string, entries []TreeEntry) (string, error) {
	treeEntries := make([]*github.TreeEntry, 0, len(entries))
	for _, entry := range entries {
		treeEntries = append(treeEntries, &github.TreeEntry{
			Path: github.String(entry.Path),
			Mode: github.String(entry.Mode),
			Type: github.String(entry.Type),
			SHA:  github.String(entry.SHA),
		})
	}

	tree, _, err := c.client.Git.CreateTree(ctx, owner, repo, baseTree, treeEntries)
	if err != nil {
		return "", ghcerrors.NewAPIError("create tree", err)
	}

	if tree.SHA == nil {
		return "", ghcerrors.NewAPIError("create tree", errors.New("no SHA in tree response"))
	}

	return *tree.SHA, nil
}

// CreateCommit creates a commit object and returns its SHA
func (c *RealClient) CreateCommit(ctx context.Context, owner, repo, message, tree string, parents []string) (string, error) {
	parentCommits := make([]*github.Commit, 0, len(parents))
	for _, parent := range parents {
		parentCommits = append(parentCommits, &github.Commit{SHA: github.String(parent)})
	}

	commit, _, err := c.client.Git.CreateCommit(ctx, owner, repo, &github.Commit{
		Message: github.String(message),
		Tree:    &github.Tree{SHA: github.String(tree)},
		Parents: parentCommits,
	}, nil)
	if err != nil {
		return "", ghcerrors.NewAPIError("create commit", err)
	}

	if commit.SHA == nil {
		return "", ghcerrors.NewAPIError("create commit", errors.New("no SHA in commit response"))
	}

	return *commit.SHA, nil
}

// UpdateRef moves a branch pointer to sha
func (c *RealClient) UpdateRef(ctx context.Context, owner, repo, branch, sha string, force bool) error {
	_, resp, err := c.client.Git.UpdateRef(ctx, owner, repo, &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: github.String(sha)},
	}, force)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			return ghcerrors.NewNonFastForwardError(branch, sha)
		}
		if isNotFound(resp, err) {
			return ghcerrors.NewRemoteNotFoundError("branch", branch)
		}
		return ghcerrors.NewAPIError("update ref", err)
	}

	return nil
}

// isNotFound reports whether an API error is an HTTP 404
func isNotFound(resp *github.Response, err error) bool {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return errResp.Response.StatusCode == http.StatusNotFound
	}

	return false
}
