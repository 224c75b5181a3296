package commit_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ghcommit.dev/ghcommit/internal/commit"
	ghcerrors "ghcommit.dev/ghcommit/internal/errors"
	"ghcommit.dev/ghcommit/internal/github"
)

// fakeClient is a recording GitClient with canned responses
type fakeClient struct {
	branchSHAs  map[string]string
	commitTrees map[string]string
	blobSHA     string
	treeSHA     string
	commitSHA   string
	refErr      error
	updateErr   error

	getRefCalls    int
	getCommitCalls []string
	createdBlobs   []createdBlob
	createdTrees   []createdTree
	createdCommits []createdCommit
	refUpdates     []refUpdate
}

type createdBlob struct {
	content  string
	encoding string
}

type createdTree struct {
	baseTree string
	entries  []github.TreeEntry
}

type createdCommit struct {
	message string
	tree    string
	parents []string
}

type refUpdate struct {
	branch string
	sha    string
	force  bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		branchSHAs:  map[string]string{"main": "base-sha"},
		commitTrees: map[string]string{"base-sha": "base-tree-sha"},
		blobSHA:     "blob-sha",
		treeSHA:     "new-tree-sha",
		commitSHA:   "commit-sha",
	}
}

func (c *fakeClient) GetRef(_ context.Context, _, _, branch string) (string, error) {
	c.getRefCalls++
	if c.refErr != nil {
		return "", c.refErr
	}
	sha, ok := c.branchSHAs[branch]
	if !ok {
		return "", ghcerrors.NewRemoteNotFoundError("branch", branch)
	}
	return sha, nil
}

func (c *fakeClient) GetCommit(_ context.Context, _, _, sha string) (string, error) {
	c.getCommitCalls = append(c.getCommitCalls, sha)
	tree, ok := c.commitTrees[sha]
	if !ok {
		return "", ghcerrors.NewRemoteNotFoundError("commit", sha)
	}
	return tree, nil
}

func (c *fakeClient) CreateBlob(_ context.Context, _, _, content, encoding string) (string, error) {
	c.createdBlobs = append(c.createdBlobs, createdBlob{content: content, encoding: encoding})
	return c.blobSHA, nil
}

func (c *fakeClient) CreateTree(_ context.Context, _, _, baseTree string, entries []github.TreeEntry) (string, error) {
	c.createdTrees = append(c.createdTrees, createdTree{baseTree: baseTree, entries: entries})
	return c.treeSHA, nil
}

func (c *fakeClient) CreateCommit(_ context.Context, _, _, message, tree string, parents []string) (string, error) {
	c.createdCommits = append(c.createdCommits, createdCommit{message: message, tree: tree, parents: parents})
	return c.commitSHA, nil
}

func (c *fakeClient) UpdateRef(_ context.Context, _, _, branch, sha string, force bool) error {
	if c.updateErr != nil {
		return c.updateErr
	}
	c.refUpdates = append(c.refUpdates, refUpdate{branch: branch, sha: sha, force: force})
	return nil
}

func (c *fakeClient) GetOwnerRepo() (string, string) {
	return "owner", "repo"
}

func (c *fakeClient) remoteCalls() int {
	return c.getRefCalls + len(c.getCommitCalls) + len(c.createdBlobs) +
		len(c.createdTrees) + len(c.createdCommits) + len(c.refUpdates)
}

// writeTestFile creates a file with exact permission bits
func writeTestFile(t *testing.T, dir, name string, content []byte, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0600))
	require.NoError(t, os.Chmod(path, perm))
	return path
}

func TestCommit(t *testing.T) {
	t.Run("commits two files end to end", func(t *testing.T) {
		dir := t.TempDir()
		file1 := writeTestFile(t, dir, "file1.txt", []byte("one"), 0o644)
		file2 := writeTestFile(t, dir, "file2.txt", []byte("two"), 0o644)

		client := newFakeClient()
		result, err := commit.Commit(context.Background(), client, commit.Options{
			Branch:  "main",
			Message: "update files",
			Files:   []string{file1, file2},
		})
		require.NoError(t, err)
		require.Equal(t, "commit-sha", result.CommitSHA)
		require.Equal(t, "new-tree-sha", result.TreeSHA)
		require.Equal(t, 2, result.FileCount)

		// One blob per file, base64-encoded
		require.Len(t, client.createdBlobs, 2)
		require.Equal(t, base64.StdEncoding.EncodeToString([]byte("one")), client.createdBlobs[0].content)
		require.Equal(t, "base64", client.createdBlobs[0].encoding)

		// One tree layered on the base tree with both paths
		require.Len(t, client.createdTrees, 1)
		tree := client.createdTrees[0]
		require.Equal(t, "base-tree-sha", tree.baseTree)
		require.Len(t, tree.entries, 2)
		paths := []string{tree.entries[0].Path, tree.entries[1].Path}
		require.ElementsMatch(t, []string{filepath.ToSlash(file1), filepath.ToSlash(file2)}, paths)

		// One commit with exactly one parent: the resolved branch tip
		require.Len(t, client.createdCommits, 1)
		created := client.createdCommits[0]
		require.Equal(t, "update files", created.message)
		require.Equal(t, "new-tree-sha", created.tree)
		require.Equal(t, []string{"base-sha"}, created.parents)

		// Ref moved without force
		require.Len(t, client.refUpdates, 1)
		require.Equal(t, refUpdate{branch: "main", sha: "commit-sha", force: false}, client.refUpdates[0])
	})

	t.Run("empty file list fails before any remote call", func(t *testing.T) {
		client := newFakeClient()
		_, err := commit.Commit(context.Background(), client, commit.Options{
			Branch:  "main",
			Message: "empty",
			Files:   nil,
		})
		require.ErrorIs(t, err, ghcerrors.ErrNoFiles)
		require.Zero(t, client.remoteCalls())
	})

	t.Run("missing local file fails before any remote call", func(t *testing.T) {
		dir := t.TempDir()
		existing := writeTestFile(t, dir, "exists.txt", []byte("ok"), 0o644)
		missing := filepath.Join(dir, "missing.txt")

		client := newFakeClient()

		// Repeated invocations fail identically
		for i := 0; i < 2; i++ {
			_, err := commit.Commit(context.Background(), client, commit.Options{
				Branch:  "main",
				Message: "nope",
				Files:   []string{existing, missing},
			})
			require.ErrorIs(t, err, ghcerrors.ErrFileNotFound)

			var notFound *ghcerrors.FileNotFoundError
			require.ErrorAs(t, err, &notFound)
			require.Equal(t, missing, notFound.Path)
			require.Zero(t, client.remoteCalls())
		}
	})

	t.Run("base sha skips the branch ref lookup", func(t *testing.T) {
		dir := t.TempDir()
		file1 := writeTestFile(t, dir, "file1.txt", []byte("one"), 0o644)
		file2 := writeTestFile(t, dir, "file2.txt", []byte("two"), 0o644)

		client := newFakeClient()
		client.commitTrees["provided-base-sha"] = "base-tree-sha"

		result, err := commit.Commit(context.Background(), client, commit.Options{
			Branch:  "main",
			Message: "pinned base",
			Files:   []string{file1, file2},
			BaseSHA: "provided-base-sha",
		})
		require.NoError(t, err)
		require.Equal(t, "commit-sha", result.CommitSHA)

		require.Zero(t, client.getRefCalls)
		require.Equal(t, []string{"provided-base-sha"}, client.getCommitCalls)
		require.Equal(t, []string{"provided-base-sha"}, client.createdCommits[0].parents)
	})

	t.Run("duplicate paths upload one blob each", func(t *testing.T) {
		dir := t.TempDir()
		file1 := writeTestFile(t, dir, "file1.txt", []byte("one"), 0o644)

		client := newFakeClient()
		result, err := commit.Commit(context.Background(), client, commit.Options{
			Branch:  "main",
			Message: "dupes",
			Files:   []string{file1, file1},
		})
		require.NoError(t, err)
		require.Equal(t, 1, result.FileCount)
		require.Len(t, client.createdBlobs, 1)
		require.Len(t, client.createdTrees[0].entries, 1)
	})

	t.Run("executable files get executable tree mode", func(t *testing.T) {
		dir := t.TempDir()
		regular := writeTestFile(t, dir, "plain.txt", []byte("text"), 0o644)
		script := writeTestFile(t, dir, "run.sh", []byte("#!/bin/sh\n"), 0o755)

		client := newFakeClient()
		_, err := commit.Commit(context.Background(), client, commit.Options{
			Branch:  "main",
			Message: "modes",
			Files:   []string{regular, script},
		})
		require.NoError(t, err)

		entries := client.createdTrees[0].entries
		modes := map[string]string{}
		for _, entry := range entries {
			modes[filepath.Base(entry.Path)] = entry.Mode
		}
		require.Equal(t, "100644", modes["plain.txt"])
		require.Equal(t, "100755", modes["run.sh"])
	})

	t.Run("unknown branch surfaces remote not found", func(t *testing.T) {
		dir := t.TempDir()
		file1 := writeTestFile(t, dir, "file1.txt", []byte("one"), 0o644)

		client := newFakeClient()
		_, err := commit.Commit(context.Background(), client, commit.Options{
			Branch:  "gone",
			Message: "msg",
			Files:   []string{file1},
		})
		require.ErrorIs(t, err, ghcerrors.ErrRemoteNotFound)
		require.Empty(t, client.createdBlobs)
	})

	t.Run("rejected ref update aborts with no result", func(t *testing.T) {
		dir := t.TempDir()
		file1 := writeTestFile(t, dir, "file1.txt", []byte("one"), 0o644)

		client := newFakeClient()
		client.updateErr = ghcerrors.NewNonFastForwardError("main", "commit-sha")

		result, err := commit.Commit(context.Background(), client, commit.Options{
			Branch:  "main",
			Message: "msg",
			Files:   []string{file1},
		})
		require.Nil(t, result)
		require.ErrorIs(t, err, ghcerrors.ErrNonFastForward)
		// The commit object was still created; only the ref move failed
		require.Len(t, client.createdCommits, 1)
		require.Empty(t, client.refUpdates)
	})
}
