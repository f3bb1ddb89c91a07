package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAtomic_CreatesFileAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "a", "b", "note.json")

	require.NoError(t, WriteAtomic(target, []byte(`{"ok":true}`), 0644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))

	_, err = os.Stat(target + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should not survive a successful write")
}

func TestWriteAtomic_OverwritesPreviousContent(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "note.json")

	require.NoError(t, WriteAtomic(target, []byte(`{"v":1}`), 0644))
	require.NoError(t, WriteAtomic(target, []byte(`{"v":2}`), 0644))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(data))
}

func TestRemoveFile_MissingFileIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, RemoveFile(filepath.Join(dir, "missing.json")))
}

func TestPruneEmptyDirs_RemovesEmptyAncestorsOnly(t *testing.T) {
	dir := t.TempDir()
	leafDir := filepath.Join(dir, "notes", "2026", "07")
	require.NoError(t, os.MkdirAll(leafDir, 0755))
	siblingFile := filepath.Join(dir, "notes", "2026", "keep.txt")
	require.NoError(t, os.WriteFile(siblingFile, []byte("x"), 0644))

	PruneEmptyDirs(filepath.Join(leafDir, "note-1.json"), filepath.Join(dir, "notes"))

	_, err := os.Stat(leafDir)
	assert.True(t, os.IsNotExist(err), "empty leaf month dir should be pruned")

	_, err = os.Stat(filepath.Join(dir, "notes", "2026"))
	assert.NoError(t, err, "year dir with a sibling file must survive")
}

func TestWalkJSONFiles_MissingRootYieldsEmpty(t *testing.T) {
	dir := t.TempDir()
	files, err := WalkJSONFiles(filepath.Join(dir, "notes"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestWalkJSONFiles_FindsNestedFiles(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "2026", "07")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "note-1.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644))

	files, err := WalkJSONFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(nested, "note-1.json"), files[0])
}
