package lint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CountsViolationsBySeverity(t *testing.T) {
	dir, root := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orphan.md"), []byte("x"), 0644))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	result := Run(ctx, RunOptions{})
	assert.Greater(t, result.ErrorCount+result.WarningCount+result.InfoCount, 0)
	assert.Equal(t, len(result.Violations), result.ErrorCount+result.WarningCount+result.InfoCount)
}

func TestRun_DisabledRulesAreSkipped(t *testing.T) {
	dir, root := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orphan.md"), []byte("x"), 0644))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	result := Run(ctx, RunOptions{DisabledRules: []string{"require-view-association", "document-organization"}})
	for _, v := range result.Violations {
		assert.NotEqual(t, "require-view-association", v.RuleID)
		assert.NotEqual(t, "document-organization", v.RuleID)
	}
}

func TestRun_EnabledRulesRestrictsToNamedSet(t *testing.T) {
	dir, root := testRoot(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orphan.md"), []byte("x"), 0644))

	ctx, err := BuildContext(root)
	require.NoError(t, err)

	result := Run(ctx, RunOptions{EnabledRules: []string{"orphaned-references"}})
	for _, v := range result.Violations {
		assert.Equal(t, "orphaned-references", v.RuleID)
	}
}
