package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentOrganization_AllowsDocsFolderAndStandardRootFiles(t *testing.T) {
	dir, root := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "guide.md"), []byte("x"), 0644))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	assert.Empty(t, checkDocumentOrganization(ctx, SeverityWarning))
}

func TestDocumentOrganization_FlagsStrayRootFile(t *testing.T) {
	dir, root := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "NOTES.md"), []byte("x"), 0644))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	violations := checkDocumentOrganization(ctx, SeverityWarning)
	require.Len(t, violations, 1)
	assert.Equal(t, "NOTES.md", violations[0].Path)
}

func TestDocumentOrganization_FlagsFileInUnlistedFolder(t *testing.T) {
	dir, root := testRoot(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scratch"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch", "idea.md"), []byte("x"), 0644))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	violations := checkDocumentOrganization(ctx, SeverityWarning)
	require.Len(t, violations, 1)
	assert.Equal(t, "scratch/idea.md", violations[0].Path)
}
