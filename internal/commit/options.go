// Package commit assembles a commit on a GitHub branch through the git data
// API: one blob per file, a tree layered on the branch's base tree, a commit
// with a single parent, and a fast-forward ref update. Because the commit
// objects are created server-side, GitHub signs them with its own key, which
// lets the result satisfy rulesets that require signed commits.
package commit

import (
	"ghcommit.dev/ghcommit/internal/output"
)

// Options configures a single commit invocation
type Options struct {
	// Owner is the repository owner. Falls back to the client's bound
	// repository when empty.
	Owner string
	// Repo is the repository name (without owner)
	Repo string
	// Branch is the branch to commit to
	Branch string
	// Message is the commit message
	Message string
	// Files are the paths to commit, relative to the repository root.
	// Must be non-empty.
	Files []string
	// BaseSHA optionally pins the parent commit. When set, the branch ref
	// is not consulted to resolve the base.
	BaseSHA string
	// Progress optionally reports per-file upload progress
	Progress output.UploadProgress
}

// Result describes the commit that was created
type Result struct {
	CommitSHA string
	TreeSHA   string
	FileCount int
}
