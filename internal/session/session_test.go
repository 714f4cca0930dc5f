package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.yaml")

	s := &Session{Token: "abc", Username: "ada", Admin: true, EmployeeID: 4}
	require.NoError(t, Save(path, s))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
	assert.True(t, loaded.IsAuthenticated())

	require.NoError(t, Clear(path))
	require.NoError(t, Clear(path))

	loaded, err = Load(path)
	require.NoError(t, err)
	assert.False(t, loaded.IsAuthenticated())
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: [unterminated"), 0o600))

	_, err := Load(path)

	assert.Error(t, err)
}

func TestIsAuthenticated_Nil(t *testing.T) {
	var s *Session
	assert.False(t, s.IsAuthenticated())
}
