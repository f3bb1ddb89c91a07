package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/a24z-ai/a24z-memory/internal/notes"
	"github.com/a24z-ai/a24z-memory/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrphanedReferences_ViewCellFileMissingYieldsOneViolation(t *testing.T) {
	dir, root := testRoot(t)

	_, err := views.SaveWithValidation(views.SaveInput{
		DirectoryPath: dir,
		View: &views.View{
			Name: "Gone", Rows: 1, Cols: 1,
			Cells: map[string]views.Cell{"c1": {Files: []string{"src/gone.ts"}, Coordinates: [2]int{0, 0}}},
		},
	})
	require.NoError(t, err)

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	violations := checkOrphanedReferences(ctx, SeverityError)
	require.Len(t, violations, 1)
	assert.Equal(t, "orphaned-references", violations[0].RuleID)
	assert.Equal(t, SeverityError, violations[0].Severity)
	assert.Contains(t, violations[0].Message, "Gone")
	assert.Contains(t, violations[0].Message, "src/gone.ts")
}

func TestOrphanedReferences_MissingAnchorYieldsViolation(t *testing.T) {
	dir, root := testRoot(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0644))
	n, err := notes.Save(notes.SaveInput{DirectoryPath: dir, Note: "n", Anchors: []string{"a.ts"}})
	require.NoError(t, err)
	require.NoError(t, os.Remove(filepath.Join(dir, "a.ts")))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	violations := checkOrphanedReferences(ctx, SeverityError)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, n.ID)
}
