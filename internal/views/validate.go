package views

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
)

// Validate runs the Structural then Semantic phases of the save state
// machine and returns a ValidationResult. It never mutates the input;
// ValidatedView is a normalized copy. Structural failures leave IsValid
// false and the caller must not persist the result (Rejected); Semantic
// issues are carried as warnings alongside a Persisted result.
func Validate(root pathsafe.RepoRoot, in *View) *ValidationResult {
	v := *in
	v.Cells = make(map[string]Cell, len(in.Cells))
	for id, c := range in.Cells {
		v.Cells[id] = c
	}

	result := &ValidationResult{ValidatedView: &v, IsValid: true}

	// --- Structural phase ---

	if v.ID == "" {
		v.ID = DeriveSlug(v.Name)
	}
	if v.ID == "" {
		result.addError("emptyID", "view id cannot be empty")
	}

	if v.Rows <= 0 || v.Cols <= 0 {
		result.addError("invalidShape", fmt.Sprintf("rows and cols must be positive, got %dx%d", v.Rows, v.Cols))
	}

	seen := map[[2]int]string{}
	for cellID, cell := range v.Cells {
		row, col := cell.Coordinates[0], cell.Coordinates[1]
		if v.Rows > 0 && v.Cols > 0 && (row < 0 || row >= v.Rows || col < 0 || col >= v.Cols) {
			result.addError("cellOutOfRange", fmt.Sprintf("cell %q coordinates (%d,%d) are outside the %dx%d grid", cellID, row, col, v.Rows, v.Cols))
		}
		if owner, dup := seen[cell.Coordinates]; dup {
			result.addError("duplicateCoordinates", fmt.Sprintf("cells %q and %q both claim coordinates (%d,%d)", owner, cellID, row, col))
		} else {
			seen[cell.Coordinates] = cellID
		}
	}

	if v.OverviewPath != "" {
		rel, err := pathsafe.ToRepoRelative(root, v.OverviewPath)
		if err != nil {
			result.addError("overviewOutsideRoot", fmt.Sprintf("overview path %q resolves outside the repository", v.OverviewPath))
		} else {
			v.OverviewPath = rel
		}
	}

	for cellID, cell := range v.Cells {
		normalized := make([]string, 0, len(cell.Files))
		for _, f := range cell.Files {
			rel, err := pathsafe.ToRepoRelative(root, f)
			if err != nil {
				result.addError("fileOutsideRoot", fmt.Sprintf("cell %q references %q, which resolves outside the repository", cellID, f))
				continue
			}
			normalized = append(normalized, rel)
		}
		cell.Files = normalized
		v.Cells[cellID] = cell
	}

	if !result.IsValid {
		return result
	}

	// --- Semantic phase: non-fatal diagnostics only ---

	if v.OverviewPath != "" && !fileExists(root, v.OverviewPath) {
		result.addWarning("overviewMissing", fmt.Sprintf("overview file %q does not exist yet", v.OverviewPath))
	}
	for cellID, cell := range v.Cells {
		for _, f := range cell.Files {
			if !fileExists(root, f) {
				result.addWarning("fileMissing", fmt.Sprintf("cell %q references %q, which does not exist", cellID, f))
			}
		}
	}

	return result
}

func fileExists(root pathsafe.RepoRoot, rel string) bool {
	_, err := os.Stat(filepath.Join(root.Path(), filepath.FromSlash(rel)))
	return err == nil
}
