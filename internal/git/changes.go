package git

import (
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
)

// ChangedFiles returns the repo-relative paths of files that are new or
// modified in the working tree (staged or not), relative to HEAD. Deleted
// files are skipped: the commit flow can only upload file content, it has no
// way to express a deletion.
func ChangedFiles(repoRoot string) ([]string, error) {
	repo, err := gogit.PlainOpenWithOptions(repoRoot, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status: %w", err)
	}

	var paths []string
	for path, fileStatus := range status {
		if fileStatus.Staging == gogit.Deleted || fileStatus.Worktree == gogit.Deleted {
			continue
		}
		if fileStatus.Staging == gogit.Unmodified && fileStatus.Worktree == gogit.Unmodified {
			continue
		}
		paths = append(paths, path)
	}

	// Status iteration order is not stable
	sort.Strings(paths)

	return paths, nil
}
