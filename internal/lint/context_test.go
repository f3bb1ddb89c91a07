package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
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

func TestBuildContext_FindsMarkdownFilesAndExcludesDataDir(t *testing.T) {
	dir, root := testRoot(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "guide.md"), []byte("x"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".a24z", "notes"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".a24z", "note-guidance.md"), []byte("x"), 0644))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"README.md", "docs/guide.md"}, ctx.MarkdownFiles)
}

func TestBuildContext_RespectsConfiguredIgnorePatterns(t *testing.T) {
	dir, root := testRoot(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "vendor", "pkg"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vendor", "pkg", "README.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kept.md"), []byte("x"), 0644))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"kept.md"}, ctx.MarkdownFiles)
}

func TestBuildContext_RespectsGitignore(t *testing.T) {
	dir, root := testRoot(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("generated/\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "generated"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "generated", "out.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "kept.md"), []byte("x"), 0644))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"kept.md"}, ctx.MarkdownFiles)
}
