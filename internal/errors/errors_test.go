package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	ghcerrors "ghcommit.dev/ghcommit/internal/errors"
)

func TestSentinelMatching(t *testing.T) {
	t.Run("FileNotFoundError matches ErrFileNotFound", func(t *testing.T) {
		err := ghcerrors.NewFileNotFoundError("a.txt")
		require.ErrorIs(t, err, ghcerrors.ErrFileNotFound)
		require.Contains(t, err.Error(), "a.txt")
	})

	t.Run("RemoteNotFoundError matches ErrRemoteNotFound", func(t *testing.T) {
		err := ghcerrors.NewRemoteNotFoundError("branch", "main")
		require.ErrorIs(t, err, ghcerrors.ErrRemoteNotFound)
	})

	t.Run("NonFastForwardError matches ErrNonFastForward", func(t *testing.T) {
		err := ghcerrors.NewNonFastForwardError("main", "abc123")
		require.ErrorIs(t, err, ghcerrors.ErrNonFastForward)
	})

	t.Run("matching survives wrapping", func(t *testing.T) {
		wrapped := stderrors.Join(ghcerrors.NewFileNotFoundError("a.txt"))
		require.ErrorIs(t, wrapped, ghcerrors.ErrFileNotFound)
	})
}

func TestAPIError(t *testing.T) {
	cause := stderrors.New("rate limited")
	err := ghcerrors.NewAPIError("create blob", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "create blob")
	require.Contains(t, err.Error(), "rate limited")
}
