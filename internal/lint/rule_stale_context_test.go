package lint

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/a24z-ai/a24z-memory/internal/notes"
	"github.com/a24z-ai/a24z-memory/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHistory map[string]time.Time

func (f fakeHistory) LastModified(path string) (time.Time, bool) {
	t, ok := f[path]
	return t, ok
}

func TestCheckStaleContext_FlagsOverviewOlderThanReferencedFile(t *testing.T) {
	dir, root := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overview.md"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "a.ts"), []byte("x"), 0644))

	result, err := views.SaveWithValidation(views.SaveInput{
		DirectoryPath: dir,
		View: &views.View{
			Name: "Gap", Rows: 1, Cols: 1,
			OverviewPath: "overview.md",
			Cells:        map[string]views.Cell{"c1": {Files: []string{"src/a.ts"}, Coordinates: [2]int{0, 0}}},
		},
	})
	require.NoError(t, err)
	require.True(t, result.IsValid)

	loadedViews, err := views.List(root)
	require.NoError(t, err)

	overviewTime := time.Date(2026, 7, 26, 0, 0, 0, 0, time.UTC)
	fileTime := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)

	ctx := &Context{
		Root:    root,
		Views:   loadedViews,
		History: fakeHistory{"overview.md": overviewTime, "src/a.ts": fileTime},
	}

	violations := checkStaleContext(ctx, SeverityWarning)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "5 days")
}

func TestCheckStaleContext_DegradesSilentlyWithoutHistory(t *testing.T) {
	dir, root := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overview.md"), []byte("x"), 0644))

	_, err := views.SaveWithValidation(views.SaveInput{
		DirectoryPath: dir,
		View:          &views.View{Name: "NoHistory", Rows: 1, Cols: 1, OverviewPath: "overview.md"},
	})
	require.NoError(t, err)

	loadedViews, err := views.List(root)
	require.NoError(t, err)

	ctx := &Context{Root: root, Views: loadedViews, History: fakeHistory{}}
	assert.Empty(t, checkStaleContext(ctx, SeverityWarning))
}

func TestCheckStaleContext_NoteStaleAgainstFreshAnchor(t *testing.T) {
	dir, root := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), []byte("x"), 0644))

	n, err := notes.Save(notes.SaveInput{DirectoryPath: dir, Note: "n", Anchors: []string{"a.ts"}})
	require.NoError(t, err)

	noteFiles, err := notes.ReadAllWithPaths(root)
	require.NoError(t, err)

	var notePath string
	for _, nf := range noteFiles {
		if nf.Note.ID == n.ID {
			notePath = nf.Path
		}
	}
	require.NotEmpty(t, notePath)

	relNotePath, err := filepath.Rel(dir, notePath)
	require.NoError(t, err)
	relNotePath = filepath.ToSlash(relNotePath)

	noteTime := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	anchorTime := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

	ctx := &Context{
		Root:    root,
		Notes:   noteFiles,
		History: fakeHistory{relNotePath: noteTime, "a.ts": anchorTime},
	}

	violations := checkStaleContext(ctx, SeverityWarning)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, n.ID)
}

func TestFormatGap_UsesHoursUnderADay(t *testing.T) {
	assert.Equal(t, "12 hours", formatGap(12*time.Hour))
}

func TestFormatGap_UsesDaysAtOrOverADay(t *testing.T) {
	assert.Equal(t, "5 days", formatGap(5*24*time.Hour))
}
