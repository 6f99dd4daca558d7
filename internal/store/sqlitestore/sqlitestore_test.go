package sqlitestore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shelf.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("books", []byte(`[1]`)))
	require.NoError(t, s.Set("books", []byte(`[2]`)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, ok, err := s.Get("books")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[2]`, string(v))

	_, ok, err = s.Get("defaults_sig")
	require.NoError(t, err)
	assert.False(t, ok)
}
