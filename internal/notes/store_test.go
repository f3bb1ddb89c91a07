package notes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/a24z-ai/a24z-memory/internal/errs"
	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoot(t *testing.T) (string, pathsafe.RepoRoot) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	root, err := pathsafe.DiscoverRoot(dir)
	require.NoError(t, err)
	return dir, root
}

func TestSave_RequiresAtLeastOneAnchor(t *testing.T) {
	dir, _ := testRoot(t)
	_, err := Save(SaveInput{DirectoryPath: dir, Note: "hello"})
	require.Error(t, err)
	verrs, ok := err.(*errs.ValidationErrors)
	require.True(t, ok)
	assert.True(t, verrs.Has(errs.KindMissingAnchors))
}

func TestSave_RoundTripsThroughGetByID(t *testing.T) {
	dir, _ := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0644))

	n, err := Save(SaveInput{
		DirectoryPath: dir,
		Note:          "remember this",
		Anchors:       []string{"a.ts"},
		Tags:          []string{"backend"},
		Type:          "pattern",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, []string{"a.ts"}, n.Anchors)

	root, err := pathsafe.ValidateRoot(dir)
	require.NoError(t, err)
	fetched, err := GetByID(root, n.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, n.Note, fetched.Note)
	assert.Equal(t, n.Tags, fetched.Tags)
}

func TestGetByID_MissUnknownIDReturnsNilNoError(t *testing.T) {
	dir, _ := testRoot(t)
	root, err := pathsafe.ValidateRoot(dir)
	require.NoError(t, err)
	n, err := GetByID(root, "note-0-missing")
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestDeleteByID_RemovesFileAndPrunesEmptyDirs(t *testing.T) {
	dir, _ := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0644))

	n, err := Save(SaveInput{DirectoryPath: dir, Note: "n", Anchors: []string{"a.ts"}})
	require.NoError(t, err)

	root, err := pathsafe.ValidateRoot(dir)
	require.NoError(t, err)

	ok, err := DeleteByID(root, n.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, statErr := os.Stat(filepath.Dir(store.Resolve(root).NoteFilePath(n.ID, n.Timestamp)))
	assert.True(t, os.IsNotExist(statErr), "emptied month directory should be pruned")

	fetched, err := GetByID(root, n.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched)

	ok, err = DeleteByID(root, n.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSave_ValidationCollectsEveryViolation(t *testing.T) {
	dir, _ := testRoot(t)
	_, err := Save(SaveInput{
		DirectoryPath: dir,
		Note:          "short",
		Anchors:       nil,
		Tags:          []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
	})
	require.Error(t, err)
	verrs := err.(*errs.ValidationErrors)
	assert.True(t, verrs.Has(errs.KindMissingAnchors))
	assert.True(t, verrs.Has(errs.KindTooManyTags))
}

func TestSave_WrittenNoteOmitsLegacyConfidence(t *testing.T) {
	dir, _ := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0644))

	n, err := Save(SaveInput{DirectoryPath: dir, Note: "n", Anchors: []string{"a.ts"}})
	require.NoError(t, err)

	root, err := pathsafe.ValidateRoot(dir)
	require.NoError(t, err)
	layout := store.Resolve(root)
	withPaths, err := readAllWithPaths(layout)
	require.NoError(t, err)

	var path string
	for _, nf := range withPaths {
		if nf.note.ID == n.ID {
			path = nf.path
		}
	}
	require.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "confidence")
}
