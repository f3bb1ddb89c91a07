package pathsafe

import (
	"path/filepath"
	"strings"

	"github.com/a24z-ai/a24z-memory/internal/errs"
)

// ToRepoRelative validates candidate (relative or absolute) against root
// and returns its repo-relative, forward-slash form. join(root, result)
// is guaranteed to lie inside root. Rejects an absolute path outside root
// and a relative path whose normalization traverses above root.
func ToRepoRelative(root RepoRoot, candidate string) (string, error) {
	var abs string
	if filepath.IsAbs(candidate) {
		abs = filepath.Clean(candidate)
	} else {
		abs = filepath.Clean(filepath.Join(root.Path(), candidate))
	}

	rel, err := filepath.Rel(root.Path(), abs)
	if err != nil || escapesRoot(rel) {
		return "", &errs.ValidationError{
			Kind: errs.KindAnchorOutsideRepo,
			Data: map[string]any{"anchor": candidate},
		}
	}

	return filepath.ToSlash(rel), nil
}

// NormalizeAnchor resolves an anchor into its repo-relative form:
//   - an absolute path inside root becomes its repo-relative form
//   - a path starting with "./" or "../" is resolved against originDir
//     (which may be a subdirectory of root), then reduced to repo-relative
//   - otherwise the input is assumed already repo-relative
//
// Any result that would resolve outside root fails with
// errs.KindAnchorOutsideRepo, carrying the original, unmodified anchor
// string in Data["anchor"].
func NormalizeAnchor(root RepoRoot, originDir string, anchor string) (string, error) {
	outside := func() (string, error) {
		return "", &errs.ValidationError{
			Kind: errs.KindAnchorOutsideRepo,
			Data: map[string]any{"anchor": anchor},
		}
	}

	var abs string
	switch {
	case filepath.IsAbs(anchor):
		abs = filepath.Clean(anchor)
	case strings.HasPrefix(anchor, "./") || strings.HasPrefix(anchor, "../"):
		base := originDir
		if base == "" {
			base = root.Path()
		}
		abs = filepath.Clean(filepath.Join(base, anchor))
	default:
		abs = filepath.Clean(filepath.Join(root.Path(), anchor))
	}

	rel, err := filepath.Rel(root.Path(), abs)
	if err != nil || escapesRoot(rel) {
		return outside()
	}

	return filepath.ToSlash(rel), nil
}

// escapesRoot reports whether a filepath.Rel result climbs above its base.
func escapesRoot(rel string) bool {
	if rel == ".." {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(rel, ".."+sep)
}
