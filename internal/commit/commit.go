package commit

import (
	"context"
	"fmt"

	ghcerrors "ghcommit.dev/ghcommit/internal/errors"
	"ghcommit.dev/ghcommit/internal/github"
)

// Commit creates a commit on the branch containing the given files and moves
// the branch to it. The flow is strictly sequential: resolve base, upload
// blobs, create tree, create commit, update ref. Any failure aborts the rest
// of the flow; blobs already uploaded are left behind, which is harmless
// because nothing references them.
func Commit(ctx context.Context, client github.GitClient, opts Options) (*Result, error) {
	if len(opts.Files) == 0 {
		return nil, ghcerrors.ErrNoFiles
	}

	owner, repo := opts.Owner, opts.Repo
	if owner == "" || repo == "" {
		owner, repo = client.GetOwnerRepo()
	}

	// Read everything from disk before touching the remote, so a missing
	// file cannot leave partial remote state behind.
	entries, err := readFiles(opts.Files)
	if err != nil {
		return nil, err
	}

	base, err := resolveBase(ctx, client, owner, repo, opts.Branch, opts.BaseSHA)
	if err != nil {
		return nil, err
	}

	treeSHA, err := buildTree(ctx, client, owner, repo, base.treeSHA, entries, opts.Progress)
	if err != nil {
		return nil, err
	}

	commitSHA, err := client.CreateCommit(ctx, owner, repo, opts.Message, treeSHA, []string{base.commitSHA})
	if err != nil {
		return nil, fmt.Errorf("failed to create commit: %w", err)
	}

	// Never force: if someone pushed to the branch since resolveBase, the
	// remote rejects this as a non-fast-forward instead of overwriting.
	if err := client.UpdateRef(ctx, owner, repo, opts.Branch, commitSHA, false); err != nil {
		return nil, err
	}

	return &Result{
		CommitSHA: commitSHA,
		TreeSHA:   treeSHA,
		FileCount: len(entries),
	}, nil
}
