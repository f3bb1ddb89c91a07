package lint

import (
	"os"
	"path/filepath"

	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
)

func containsStr(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

// referencedByViews returns the set of repo-relative paths (cell files
// plus overview paths) any loaded view names.
func referencedByViews(ctx *Context) map[string]bool {
	refs := map[string]bool{}
	for _, v := range ctx.Views {
		if v.OverviewPath != "" {
			refs[v.OverviewPath] = true
		}
		for _, cell := range v.Cells {
			for _, f := range cell.Files {
				refs[f] = true
			}
		}
	}
	return refs
}

// anchoredByNotes returns the set of repo-relative anchors any loaded
// note names.
func anchoredByNotes(ctx *Context) map[string]bool {
	refs := map[string]bool{}
	for _, nf := range ctx.Notes {
		for _, a := range nf.Note.Anchors {
			refs[a] = true
		}
	}
	return refs
}

func fileExistsRel(root pathsafe.RepoRoot, rel string) bool {
	_, err := os.Stat(filepath.Join(root.Path(), filepath.FromSlash(rel)))
	return err == nil
}
