package config

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

func testLayout(t *testing.T) *store.Layout {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	root, err := pathsafe.DiscoverRoot(dir)
	require.NoError(t, err)
	layout, err := store.EnsureInit(root)
	require.NoError(t, err)
	return layout
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	layout := testLayout(t)
	cfg, err := Load(layout)
	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.NoteMaxLength())
	assert.Equal(t, 10, cfg.MaxTagsPerNote())
	assert.Equal(t, 20, cfg.MaxAnchorsPerNote())
	assert.False(t, cfg.EnforceAllowedTags())
	assert.False(t, cfg.EnforceAllowedTypes())
	assert.True(t, cfg.BackupOnMigration())
}

func TestUpdate_MergesDeltaAndPreservesUnknownKeys(t *testing.T) {
	layout := testLayout(t)

	require.NoError(t, os.WriteFile(layout.ConfigPath(), []byte(`{
		"limits": {"noteMaxLength": 5000},
		"futureFeature": {"enabled": true}
	}`), 0644))

	updated, err := Update(layout, map[string]any{
		"limits": map[string]any{"maxTagsPerNote": 3},
	})
	require.NoError(t, err)

	assert.Equal(t, 5000, updated.NoteMaxLength(), "delta must not clobber sibling keys in the same group")
	assert.Equal(t, 3, updated.MaxTagsPerNote())

	reloaded, err := Load(layout)
	require.NoError(t, err)
	assert.Equal(t, 5000, reloaded.NoteMaxLength())
	assert.Equal(t, 3, reloaded.MaxTagsPerNote())
	assert.Equal(t, map[string]any{"enabled": true}, reloaded.Raw()["futureFeature"], "unknown top-level keys must round-trip")
}

func TestUpdate_PreservesProvidedVersion(t *testing.T) {
	layout := testLayout(t)
	updated, err := Update(layout, map[string]any{"version": "2.0.0"})
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", updated.Raw()["version"])
}

func TestUpdate_TogglesTagEnforcementFlag(t *testing.T) {
	layout := testLayout(t)
	cfg, err := Load(layout)
	require.NoError(t, err)
	assert.False(t, cfg.EnforceAllowedTags())

	enforced, err := Update(layout, map[string]any{"tags": map[string]any{"enforceAllowedTags": true}})
	require.NoError(t, err)
	assert.True(t, enforced.EnforceAllowedTags())
}

func TestRender_UsesOverlayTemplateWhenPresent(t *testing.T) {
	layout := testLayout(t)
	require.NoError(t, os.WriteFile(layout.ValidationMessagesCandidates()[0], []byte(`{
		"noteTooLong": "way too long: {{actual}}/{{limit}}"
	}`), 0644))

	overlay := LoadMessageOverlay(layout)
	require.NotNil(t, overlay)

	msg := Render(overlay, errs.KindNoteTooLong, map[string]any{"actual": 12000, "limit": 10000, "overBy": 2000, "percentage": 20})
	assert.Equal(t, "way too long: 12000/10000", msg)
}

func TestLoadMessageOverlay_MissingFileYieldsNil(t *testing.T) {
	layout := testLayout(t)
	assert.Nil(t, LoadMessageOverlay(layout))
}

func TestRender_FallsBackToDefaultTemplate(t *testing.T) {
	msg := Render(nil, errs.KindMissingAnchors, map[string]any{"actual": 0})
	assert.Equal(t, "at least one anchor is required", msg)
}
