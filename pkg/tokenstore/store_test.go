package tokenstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nbmdigital/siteclient/pkg/tokenstore"
)

func TestMemory(t *testing.T) {
	t.Parallel()

	t.Run("empty store has no token", func(t *testing.T) {
		t.Parallel()

		s := tokenstore.NewMemory()
		_, ok := s.Token()
		require.False(t, ok)
	})

	t.Run("set and get token", func(t *testing.T) {
		t.Parallel()

		s := tokenstore.NewMemory()
		require.NoError(t, s.SetToken("tok123"))

		token, ok := s.Token()
		require.True(t, ok)
		require.Equal(t, "tok123", token)
	})

	t.Run("clear removes token and snapshot", func(t *testing.T) {
		t.Parallel()

		s := tokenstore.NewMemory()
		require.NoError(t, s.SetToken("tok123"))
		require.NoError(t, s.SetSnapshot([]byte(`{"id":"1"}`)))

		require.NoError(t, s.Clear())

		_, ok := s.Token()
		require.False(t, ok)
		_, ok = s.Snapshot()
		require.False(t, ok)
	})

	t.Run("snapshot is copied", func(t *testing.T) {
		t.Parallel()

		s := tokenstore.NewMemory()
		data := []byte(`{"id":"1"}`)
		require.NoError(t, s.SetSnapshot(data))
		data[0] = 'x'

		got, ok := s.Snapshot()
		require.True(t, ok)
		require.Equal(t, []byte(`{"id":"1"}`), got)
	})
}

func TestFile(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty directory", func(t *testing.T) {
		t.Parallel()

		_, err := tokenstore.NewFile("")
		require.Error(t, err)
	})

	t.Run("token survives reopening the store", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		s, err := tokenstore.NewFile(dir)
		require.NoError(t, err)
		require.NoError(t, s.SetToken("tok123"))

		reopened, err := tokenstore.NewFile(dir)
		require.NoError(t, err)

		token, ok := reopened.Token()
		require.True(t, ok)
		require.Equal(t, "tok123", token)
	})

	t.Run("clear removes both files and is idempotent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()

		s, err := tokenstore.NewFile(dir)
		require.NoError(t, err)
		require.NoError(t, s.SetToken("tok123"))
		require.NoError(t, s.SetSnapshot([]byte(`{"id":"1"}`)))

		require.NoError(t, s.Clear())
		require.NoError(t, s.Clear())

		_, ok := s.Token()
		require.False(t, ok)
		_, ok = s.Snapshot()
		require.False(t, ok)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Empty(t, entries)
	})

	t.Run("whitespace-only token file reads as absent", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "auth_token"), []byte("\n"), 0o600))

		s, err := tokenstore.NewFile(dir)
		require.NoError(t, err)

		_, ok := s.Token()
		require.False(t, ok)
	})

	t.Run("token file is not world readable", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s, err := tokenstore.NewFile(dir)
		require.NoError(t, err)
		require.NoError(t, s.SetToken("tok123"))

		info, err := os.Stat(filepath.Join(dir, "auth_token"))
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}
