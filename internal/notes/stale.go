package notes

import (
	"os"
	"path/filepath"

	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/store"
)

// StaleNote pairs a persisted note with its anchors split by whether they
// still resolve to a file on disk.
type StaleNote struct {
	Note           *Note
	MissingAnchors []string
	ValidAnchors   []string
}

// CheckStale reports every note at least one of whose anchors no longer
// exists in the working tree. A note is only reported once, carrying the
// full subset of its anchors that went missing alongside the subset that
// still resolve.
func CheckStale(root pathsafe.RepoRoot) ([]StaleNote, error) {
	layout := store.Resolve(root)
	all, err := readAll(layout)
	if err != nil {
		return nil, err
	}

	var stale []StaleNote
	for _, n := range all {
		var missing, valid []string
		for _, anchor := range n.Anchors {
			if anchorExists(root, anchor) {
				valid = append(valid, anchor)
			} else {
				missing = append(missing, anchor)
			}
		}
		if len(missing) > 0 {
			stale = append(stale, StaleNote{Note: n, MissingAnchors: missing, ValidAnchors: valid})
		}
	}
	return stale, nil
}

func anchorExists(root pathsafe.RepoRoot, anchor string) bool {
	full := filepath.Join(root.Path(), filepath.FromSlash(anchor))
	_, err := os.Stat(full)
	return err == nil
}
