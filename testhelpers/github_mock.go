// Package testhelpers provides shared test utilities, including a mock
// GitHub server speaking the git data endpoints.
package testhelpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-github/v62/github"
)

// CreatedBlob records one blob creation request
type CreatedBlob struct {
	Content  string
	Encoding string
}

// CreatedTree records one tree creation request
type CreatedTree struct {
	BaseTree string
	Entries  []MockTreeEntry
}

// MockTreeEntry is one entry of a recorded tree creation request
type MockTreeEntry struct {
	Path string `json:"path"`
	Mode string `json:"mode"`
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

// CreatedCommit records one commit creation request
type CreatedCommit struct {
	Message string
	Tree    string
	Parents []string
}

// RefUpdate records one ref update request
type RefUpdate struct {
	Ref   string
	SHA   string
	Force bool
}

// MockGitHubServerConfig configures the behavior of a mock GitHub server and
// records the requests it received
type MockGitHubServerConfig struct {
	// Owner and Repo for the mock server
	Owner string
	Repo  string

	// BranchSHAs maps branch names to tip commit SHAs for ref lookups
	BranchSHAs map[string]string
	// CommitTrees maps commit SHAs to tree SHAs for commit lookups
	CommitTrees map[string]string

	// SHAs returned by the create endpoints
	BlobSHA   string
	TreeSHA   string
	CommitSHA string

	// RejectRefUpdate makes ref updates fail with HTTP 422, simulating a
	// non-fast-forward rejection
	RejectRefUpdate bool

	// Recorded requests
	CreatedBlobs   []CreatedBlob
	CreatedTrees   []CreatedTree
	CreatedCommits []CreatedCommit
	RefUpdates     []RefUpdate
	GetRefCalls    int
	GetCommitCalls []string
}

// NewMockGitHubServerConfig creates a new mock server config with defaults
func NewMockGitHubServerConfig() *MockGitHubServerConfig {
	return &MockGitHubServerConfig{
		Owner:       "owner",
		Repo:        "repo",
		BranchSHAs:  map[string]string{"main": "base-sha"},
		CommitTrees: map[string]string{"base-sha": "base-tree-sha"},
		BlobSHA:     "blob-sha",
		TreeSHA:     "new-tree-sha",
		CommitSHA:   "commit-sha",
	}
}

// NewMockGitHubServer creates an httptest server that mocks the GitHub git
// data endpoints used by the commit flow
func NewMockGitHubServer(t *testing.T, config *MockGitHubServerConfig) *httptest.Server {
	t.Helper()

	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	base := "/repos/" + config.Owner + "/" + config.Repo + "/git/"
	mux := http.NewServeMux()

	// GET /repos/{owner}/{repo}/git/ref/heads/{branch}
	mux.HandleFunc(base+"ref/", func(w http.ResponseWriter, r *http.Request) {
		config.GetRefCalls++

		ref := strings.TrimPrefix(r.URL.Path, base+"ref/")
		branch := strings.TrimPrefix(ref, "heads/")

		sha, ok := config.BranchSHAs[branch]
		if !ok {
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ref":    "refs/" + ref,
			"object": map[string]string{"sha": sha, "type": "commit"},
		})
	})

	// GET /repos/{owner}/{repo}/git/commits/{sha}
	// POST /repos/{owner}/{repo}/git/commits
	mux.HandleFunc(base+"commits", func(w http.ResponseWriter, r *http.Request) {
		handleCommits(w, r, base, config)
	})
	mux.HandleFunc(base+"commits/", func(w http.ResponseWriter, r *http.Request) {
		handleCommits(w, r, base, config)
	})

	// POST /repos/{owner}/{repo}/git/blobs
	mux.HandleFunc(base+"blobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var blob CreatedBlob
		var body struct {
			Content  string `json:"content"`
			Encoding string `json:"encoding"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		blob.Content = body.Content
		blob.Encoding = body.Encoding
		config.CreatedBlobs = append(config.CreatedBlobs, blob)

		writeJSON(w, http.StatusCreated, map[string]string{"sha": config.BlobSHA})
	})

	// POST /repos/{owner}/{repo}/git/trees
	mux.HandleFunc(base+"trees", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var body struct {
			BaseTree string          `json:"base_tree"`
			Tree     []MockTreeEntry `json:"tree"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		config.CreatedTrees = append(config.CreatedTrees, CreatedTree{
			BaseTree: body.BaseTree,
			Entries:  body.Tree,
		})

		writeJSON(w, http.StatusCreated, map[string]string{"sha": config.TreeSHA})
	})

	// PATCH /repos/{owner}/{repo}/git/refs/heads/{branch}
	mux.HandleFunc(base+"refs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		if config.RejectRefUpdate {
			http.Error(w, `{"message": "Update is not a fast forward"}`, http.StatusUnprocessableEntity)
			return
		}

		ref := strings.TrimPrefix(r.URL.Path, base+"refs/")

		var body struct {
			SHA   string `json:"sha"`
			Force bool   `json:"force"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		config.RefUpdates = append(config.RefUpdates, RefUpdate{
			Ref:   ref,
			SHA:   body.SHA,
			Force: body.Force,
		})

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ref":    "refs/" + ref,
			"object": map[string]string{"sha": body.SHA, "type": "commit"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func handleCommits(w http.ResponseWriter, r *http.Request, base string, config *MockGitHubServerConfig) {
	switch r.Method {
	case http.MethodGet:
		sha := strings.TrimPrefix(r.URL.Path, base+"commits/")
		config.GetCommitCalls = append(config.GetCommitCalls, sha)

		treeSHA, ok := config.CommitTrees[sha]
		if !ok {
			http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"sha":  sha,
			"tree": map[string]string{"sha": treeSHA},
		})

	case http.MethodPost:
		var body struct {
			Message string   `json:"message"`
			Tree    string   `json:"tree"`
			Parents []string `json:"parents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		config.CreatedCommits = append(config.CreatedCommits, CreatedCommit{
			Message: body.Message,
			Tree:    body.Tree,
			Parents: body.Parents,
		})

		writeJSON(w, http.StatusCreated, map[string]string{"sha": config.CommitSHA})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// NewMockGitHubClient creates a go-github client pointed at a mock server
// built from config, returning the client plus the owner and repo it serves
func NewMockGitHubClient(t *testing.T, config *MockGitHubServerConfig) (*github.Client, string, string) {
	t.Helper()

	if config == nil {
		config = NewMockGitHubServerConfig()
	}

	server := NewMockGitHubServer(t, config)

	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	if err != nil {
		t.Fatalf("failed to parse mock server URL: %v", err)
	}
	client.BaseURL = baseURL
	client.UploadURL = baseURL

	return client, config.Owner, config.Repo
}
