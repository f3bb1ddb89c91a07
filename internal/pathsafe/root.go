// Package pathsafe discovers repository roots and validates that
// caller-supplied paths stay lexically inside them. All containment
// checks operate on normalized path strings, never on a symlink-resolved
// filesystem view — resolving symlinks here would open a TOCTOU window if
// a symlink is swapped between check and use.
package pathsafe

import (
	"os"
	"path/filepath"

	"github.com/a24z-ai/a24z-memory/internal/errs"
)

// vcsMarkers are directory names that identify a version-control root.
var vcsMarkers = []string{".git", ".hg", ".jj"}

// manifestMarkers are project-manifest file names checked when no VCS
// marker is found, in priority order.
var manifestMarkers = []string{
	"go.mod",
	"package.json",
	"Cargo.toml",
	"pyproject.toml",
}

// RepoRoot is a validated, absolute repository root. The only way to
// obtain one is DiscoverRoot or ValidateRoot below, so downstream code
// that requires a RepoRoot cannot be handed an arbitrary, unvalidated
// string — the type itself is the proof of validation.
type RepoRoot struct {
	path string
}

// Path returns the absolute, cleaned filesystem path of the root.
func (r RepoRoot) Path() string {
	return r.path
}

func (r RepoRoot) String() string {
	return r.path
}

// DiscoverRoot walks parent directories of P looking first for a
// version-control marker, then for a recognized project-manifest file.
// P itself is checked first. Fails with *errs.NotARepository if neither
// is found before reaching the filesystem root.
func DiscoverRoot(p string) (RepoRoot, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return RepoRoot{}, &errs.NotARepository{Path: p}
	}
	abs = filepath.Clean(abs)

	dir := abs
	for {
		for _, marker := range vcsMarkers {
			if exists(filepath.Join(dir, marker)) {
				return RepoRoot{path: dir}, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	dir = abs
	for {
		for _, marker := range manifestMarkers {
			if exists(filepath.Join(dir, marker)) {
				return RepoRoot{path: dir}, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return RepoRoot{}, &errs.NotARepository{Path: p}
}

// ValidateRoot asserts that p is itself a discoverable repository root
// (rather than walking up from within it) and returns the validated,
// cleaned form. Used where a caller explicitly passes a directoryPath
// that is supposed to already be a valid, absolute repository root.
func ValidateRoot(p string) (RepoRoot, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return RepoRoot{}, &errs.NotARepository{Path: p}
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return RepoRoot{}, &errs.NotARepository{Path: p}
	}

	for _, marker := range vcsMarkers {
		if exists(filepath.Join(abs, marker)) {
			return RepoRoot{path: abs}, nil
		}
	}
	for _, marker := range manifestMarkers {
		if exists(filepath.Join(abs, marker)) {
			return RepoRoot{path: abs}, nil
		}
	}

	return RepoRoot{}, &errs.NotARepository{Path: p}
}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
