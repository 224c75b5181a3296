package commit

import (
	"context"
	"fmt"

	"ghcommit.dev/ghcommit/internal/github"
)

// baseRef is the commit the new commit will be parented on, together with
// the tree the new tree will be layered on. Both must come from the same
// commit or the branch history would lose the concurrent update.
type baseRef struct {
	commitSHA string
	treeSHA   string
}

// resolveBase resolves the branch tip to a commit and tree. When baseSHA is
// supplied the branch ref is not consulted at all; only the commit lookup
// runs, with baseSHA as the parent.
func resolveBase(ctx context.Context, client github.GitClient, owner, repo, branch, baseSHA string) (*baseRef, error) {
	commitSHA := baseSHA
	if commitSHA == "" {
		sha, err := client.GetRef(ctx, owner, repo, branch)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve branch %s: %w", branch, err)
		}
		commitSHA = sha
	}

	treeSHA, err := client.GetCommit(ctx, owner, repo, commitSHA)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base commit %s: %w", commitSHA, err)
	}

	return &baseRef{commitSHA: commitSHA, treeSHA: treeSHA}, nil
}
