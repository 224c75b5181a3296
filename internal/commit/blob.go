package commit

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	ghcerrors "ghcommit.dev/ghcommit/internal/errors"
	"ghcommit.dev/ghcommit/internal/github"
)

// fileEntry is one local file read for upload. Content and mode are captured
// once, up front, so a file changing on disk mid-flow cannot split the commit.
type fileEntry struct {
	path    string
	mode    string
	content []byte
}

// blobRef is the result of uploading one file's content
type blobRef struct {
	sha  string
	mode string
}

// classifyMode maps local permission bits to a git tree mode. Any execute
// bit (0o111) makes the entry executable; everything else is a regular file.
func classifyMode(perm os.FileMode) string {
	if perm&0o111 != 0 {
		return github.ModeExecutable
	}
	return github.ModeFile
}

// readFileEntry reads one file's content and permission bits from disk
func readFileEntry(path string) (*fileEntry, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ghcerrors.NewFileNotFoundError(path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &fileEntry{
		path:    path,
		mode:    classifyMode(info.Mode().Perm()),
		content: content,
	}, nil
}

// readFiles reads every path from disk, preserving input order and dropping
// duplicate paths. Any missing file fails the whole invocation here, before
// a single remote call is made.
func readFiles(paths []string) ([]*fileEntry, error) {
	seen := make(map[string]bool, len(paths))
	entries := make([]*fileEntry, 0, len(paths))

	for _, path := range paths {
		if seen[path] {
			continue
		}
		seen[path] = true

		entry, err := readFileEntry(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// writeBlob uploads one file's content as a content-addressed blob. The API
// transport is textual, so content goes up base64-encoded.
func writeBlob(ctx context.Context, client github.GitClient, owner, repo string, entry *fileEntry) (*blobRef, error) {
	encoded := base64.StdEncoding.EncodeToString(entry.content)

	sha, err := client.CreateBlob(ctx, owner, repo, encoded, github.EncodingBase64)
	if err != nil {
		return nil, fmt.Errorf("failed to upload blob for %s: %w", entry.path, err)
	}

	return &blobRef{sha: sha, mode: entry.mode}, nil
}
