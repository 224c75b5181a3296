package commit

import (
	"context"
	"fmt"
	"path/filepath"

	"ghcommit.dev/ghcommit/internal/github"
	"ghcommit.dev/ghcommit/internal/output"
)

// buildTree uploads one blob per file, sequentially and in input order, then
// creates a tree layering the new entries on top of baseTree. Paths not
// mentioned are inherited unchanged from the base tree by the remote merge.
func buildTree(ctx context.Context, client github.GitClient, owner, repo, baseTree string, entries []*fileEntry, progress output.UploadProgress) (string, error) {
	if progress == nil {
		progress = output.NopUploadProgress{}
	}

	items := make([]output.UploadItem, len(entries))
	for i, entry := range entries {
		items[i] = output.UploadItem{Path: entry.path, Status: output.StatusPending}
	}
	progress.Start(items)

	treeEntries := make([]github.TreeEntry, 0, len(entries))
	for i, entry := range entries {
		progress.UpdateItem(i, output.StatusUploading, "", nil)

		blob, err := writeBlob(ctx, client, owner, repo, entry)
		if err != nil {
			progress.UpdateItem(i, output.StatusError, "", err)
			progress.Complete()
			return "", err
		}

		progress.UpdateItem(i, output.StatusDone, blob.sha, nil)

		treeEntries = append(treeEntries, github.TreeEntry{
			Path: filepath.ToSlash(entry.path),
			Mode: blob.mode,
			Type: github.TreeTypeBlob,
			SHA:  blob.sha,
		})
	}
	progress.Complete()

	treeSHA, err := client.CreateTree(ctx, owner, repo, baseTree, treeEntries)
	if err != nil {
		return "", fmt.Errorf("failed to create tree on base %s: %w", baseTree, err)
	}

	return treeSHA, nil
}
