package defaults

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/shelf/internal/model"
)

func TestBuiltin(t *testing.T) {
	books := Builtin()
	require.Len(t, books, 4)
	assert.Equal(t, "The Hobbit", books[1].Title)
	assert.Equal(t, model.DefaultID("The Hobbit"), books[1].ID)
	for _, b := range books {
		assert.NoError(t, b.Validate())
	}

	books[0].Read = false
	assert.True(t, Builtin()[0].Read, "Builtin must hand out copies")
}

func TestSignatureTracksContent(t *testing.T) {
	a := Builtin()
	b := Builtin()
	assert.Equal(t, Signature(a), Signature(b))

	b[1].Pages++
	assert.NotEqual(t, Signature(a), Signature(b))
	assert.Len(t, Signature(a), 64)
}

func TestLoadFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	out, err := Marshal([]model.Book{{Title: "Dune", Author: "Herbert", Pages: 412}})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, out, 0o644))

	books, err := Resolve(path)
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, model.DefaultID("Dune"), books[0].ID)
}

func TestLoadFileRejectsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("books:\n  - title: Dune\n    pages: 0\n"), 0o644))

	_, err := LoadFile(path)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has("author"))
	assert.True(t, verr.Has("pages"))
}

func TestLoadFileRejectsEmptyList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, os.WriteFile(path, []byte("books: []\n"), 0o644))

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestResolveEmptyPathUsesBuiltin(t *testing.T) {
	books, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Builtin(), books)
}
