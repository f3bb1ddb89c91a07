package cli

import (
	"fmt"
	"os"

	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
)

// resolveRoot discovers the repository root from the current working
// directory, the same starting point every subcommand needs before it
// can touch the store.
func resolveRoot() (pathsafe.RepoRoot, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return pathsafe.RepoRoot{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return pathsafe.DiscoverRoot(cwd)
}

func printFixableMark(fixable bool) string {
	if fixable {
		return " (fixable)"
	}
	return ""
}
