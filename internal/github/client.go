// Package github provides a client for the GitHub git data API: the blob,
// tree, commit, and ref operations used to assemble a commit remotely.
package github

import "context"

// Git tree modes for blob entries. These are the only modes this tool
// produces; symlinks and submodules are not supported.
const (
	ModeFile       = "100644"
	ModeExecutable = "100755"
)

// TreeTypeBlob is the entry type for file content in a git tree
const TreeTypeBlob = "blob"

// EncodingBase64 is the content encoding used for blob uploads
const EncodingBase64 = "base64"

// TreeEntry describes one path in a tree creation request
type TreeEntry struct {
	Path string
	Mode string
	Type string
	SHA  string
}

// GitClient is an interface for the git data API operations needed to build
// a commit remotely. Implementations map 1:1 onto the REST endpoints; the
// mock used in tests implements the same interface.
type GitClient interface {
	// GetRef returns the commit SHA a branch currently points at
	GetRef(ctx context.Context, owner, repo, branch string) (string, error)

	// GetCommit returns the tree SHA of a commit
	GetCommit(ctx context.Context, owner, repo, sha string) (string, error)

	// CreateBlob uploads encoded file content and returns the blob SHA
	CreateBlob(ctx context.Context, owner, repo, content, encoding string) (string, error)

	// CreateTree creates a tree layering entries on top of baseTree and
	// returns the new tree SHA
	CreateTree(ctx context.Context, owner, repo, baseTree string, entries []TreeEntry) (string, error)

	// CreateCommit creates a commit object and returns its SHA. The commit
	// is signed server-side with GitHub's key.
	CreateCommit(ctx context.Context, owner, repo, message, tree string, parents []string) (string, error)

	// UpdateRef moves a branch to sha. With force false the remote rejects
	// non-fast-forward updates.
	UpdateRef(ctx context.Context, owner, repo, branch, sha string, force bool) error

	// GetOwnerRepo returns the repository owner and name the client is bound to
	GetOwnerRepo() (owner, repo string)
}
