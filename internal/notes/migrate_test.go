package notes

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaybeMigrateLegacy_MovesAggregateNotesIntoPerNoteFiles(t *testing.T) {
	_, layout := testLayout(t)

	legacy := []Note{
		{ID: "note-1-aaaaaaaa", Note: "first", Anchors: []string{"a.ts"}, Timestamp: 1000},
		{ID: "note-2-bbbbbbbb", Note: "second", Anchors: []string{"b.ts"}, Timestamp: 2000},
	}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(layout.LegacyAggregatePath(), data, 0644))

	require.NoError(t, maybeMigrateLegacy(layout))

	all, err := readAll(layout)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = os.Stat(layout.LegacyAggregatePath())
	assert.True(t, os.IsNotExist(err))
}

func TestMaybeMigrateLegacy_IsIdempotentOnceAggregateIsGone(t *testing.T) {
	_, layout := testLayout(t)
	require.NoError(t, maybeMigrateLegacy(layout))
	require.NoError(t, maybeMigrateLegacy(layout))

	all, err := readAll(layout)
	require.NoError(t, err)
	assert.Len(t, all, 0)
}

func TestMaybeMigrateLegacy_BacksUpWhenConfigured(t *testing.T) {
	_, layout := testLayout(t)

	legacy := []Note{{ID: "note-1-aaaaaaaa", Note: "first", Anchors: []string{"a.ts"}, Timestamp: 1000}}
	data, err := json.Marshal(legacy)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(layout.LegacyAggregatePath(), data, 0644))

	require.NoError(t, maybeMigrateLegacy(layout))

	entries, err := os.ReadDir(layout.DataDir())
	require.NoError(t, err)
	var sawBackup bool
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "repository-notes.json.") && strings.HasSuffix(e.Name(), ".bak") {
			sawBackup = true
		}
	}
	assert.True(t, sawBackup, "expected a .bak backup since backupOnMigration defaults to true")

	_, err = os.Stat(layout.LegacyAggregatePath())
	assert.True(t, os.IsNotExist(err), "aggregate file itself must be gone after migration, backed up or not")
}
