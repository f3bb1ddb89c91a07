package notes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/a24z-ai/a24z-memory/internal/config"
	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout(t *testing.T) (string, *store.Layout) {
	t.Helper()
	dir, root := testRoot(t)
	layout, err := store.EnsureInit(root)
	require.NoError(t, err)
	return dir, layout
}

func TestAllowedTags_EnforcementOffReturnsEmptySet(t *testing.T) {
	_, layout := testLayout(t)
	cfg := config.Default()
	allowed, err := AllowedTags(layout, cfg)
	require.NoError(t, err)
	assert.Empty(t, allowed)
}

func TestAllowedTags_ReflectsDeclaredDescriptionFiles(t *testing.T) {
	dir, layout := testLayout(t)
	root, err := pathsafe.ValidateRoot(dir)
	require.NoError(t, err)

	require.NoError(t, SaveTagDescription(root, "backend", "server-side code"))

	_, err = config.Update(layout, map[string]any{"tags": map[string]any{"enforceAllowedTags": true}})
	require.NoError(t, err)
	cfg, err := config.Load(layout)
	require.NoError(t, err)

	allowed, err := AllowedTags(layout, cfg)
	require.NoError(t, err)
	assert.True(t, allowed["backend"])
	assert.False(t, allowed["frontend"])
}

func TestDeleteTagDescription_SweepRemovesTagFromExistingNotes(t *testing.T) {
	dir, layout := testLayout(t)
	root, err := pathsafe.ValidateRoot(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0644))
	n, err := Save(SaveInput{DirectoryPath: dir, Note: "n", Anchors: []string{"a.ts"}, Tags: []string{"backend", "keep"}})
	require.NoError(t, err)

	require.NoError(t, SaveTagDescription(root, "backend", "server-side code"))
	require.NoError(t, DeleteTagDescription(root, "backend", true))

	fetched, err := GetByID(root, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, fetched.Tags)

	_, err = os.Stat(layout.TagFilePath("backend"))
	assert.True(t, os.IsNotExist(err))
}

func TestDeleteTagDescription_WithoutSweepLeavesNotesUntouched(t *testing.T) {
	dir, _ := testLayout(t)
	root, err := pathsafe.ValidateRoot(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0644))
	n, err := Save(SaveInput{DirectoryPath: dir, Note: "n", Anchors: []string{"a.ts"}, Tags: []string{"backend"}})
	require.NoError(t, err)

	require.NoError(t, SaveTagDescription(root, "backend", "server-side code"))
	require.NoError(t, DeleteTagDescription(root, "backend", false))

	fetched, err := GetByID(root, n.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"backend"}, fetched.Tags)
}

func TestDeleteTypeDescription_RemovesDescriptionFileOnly(t *testing.T) {
	dir, layout := testLayout(t)
	root, err := pathsafe.ValidateRoot(dir)
	require.NoError(t, err)

	require.NoError(t, SaveTypeDescription(root, "pattern", "a recurring design choice"))
	require.NoError(t, DeleteTypeDescription(root, "pattern"))

	_, err = os.Stat(layout.TypeFilePath("pattern"))
	assert.True(t, os.IsNotExist(err))
}
