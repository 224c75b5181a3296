package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ghcommit.dev/ghcommit/internal/config"
)

func newRepoRoot(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))
	return dir
}

func TestRepoConfig(t *testing.T) {
	t.Run("missing config falls back to defaults", func(t *testing.T) {
		root := newRepoRoot(t)

		branch, err := config.GetBranch(root)
		require.NoError(t, err)
		require.Equal(t, "main", branch)

		remote, err := config.GetRemote(root)
		require.NoError(t, err)
		require.Equal(t, "origin", remote)
	})

	t.Run("saved config round-trips", func(t *testing.T) {
		root := newRepoRoot(t)

		branch := "develop"
		remote := "upstream"
		require.NoError(t, config.SaveRepoConfig(root, &config.RepoConfig{
			Branch: &branch,
			Remote: &remote,
		}))

		gotBranch, err := config.GetBranch(root)
		require.NoError(t, err)
		require.Equal(t, "develop", gotBranch)

		gotRemote, err := config.GetRemote(root)
		require.NoError(t, err)
		require.Equal(t, "upstream", gotRemote)
	})

	t.Run("corrupt config is an error", func(t *testing.T) {
		root := newRepoRoot(t)
		require.NoError(t, os.WriteFile(filepath.Join(root, ".git", ".ghcommit_config"), []byte("{not json"), 0644))

		_, err := config.GetRepoConfig(root)
		require.Error(t, err)
	})
}
