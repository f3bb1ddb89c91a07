package lint

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/a24z-ai/a24z-memory/internal/config"
	"github.com/a24z-ai/a24z-memory/internal/notes"
	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/store"
	"github.com/a24z-ai/a24z-memory/internal/vcs"
	"github.com/a24z-ai/a24z-memory/internal/views"
)

// Context is the read-only snapshot every rule's Check runs against,
// built once per lint invocation.
type Context struct {
	Root          pathsafe.RepoRoot
	Views         []*views.View
	Notes         []notes.NoteFile
	MarkdownFiles []string // repo-relative, forward-slashed
	Config        *config.Config
	History       vcs.HistoryProvider
}

// BuildContext assembles a Context for root: loads every view and note,
// walks the working tree for markdown files (skipping the data
// directory and anything matched by config or .gitignore patterns), and
// picks a HistoryProvider (git-backed, or null if root isn't a git
// repository).
func BuildContext(root pathsafe.RepoRoot) (*Context, error) {
	layout := store.Resolve(root)

	cfg, err := config.Load(layout)
	if err != nil {
		return nil, err
	}

	loadedViews, err := views.List(root)
	if err != nil {
		return nil, err
	}

	loadedNotes, err := notes.ReadAllWithPaths(root)
	if err != nil {
		return nil, err
	}

	ignore := buildIgnoreMatcher(root, cfg)
	mdFiles, err := walkMarkdownFiles(root, ignore)
	if err != nil {
		return nil, err
	}

	return &Context{
		Root:          root,
		Views:         loadedViews,
		Notes:         loadedNotes,
		MarkdownFiles: mdFiles,
		Config:        cfg,
		History:       vcs.NewGitHistoryProvider(root.Path()),
	}, nil
}

// dataDirNames are excluded from the markdown walk regardless of ignore
// configuration, since they belong to the store, not the working tree.
var dataDirNames = map[string]bool{
	store.PrimaryDirName: true,
	store.LegacyDirName:  true,
}

func walkMarkdownFiles(root pathsafe.RepoRoot, ignore func(rel string) bool) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root.Path(), func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if dataDirNames[d.Name()] || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		rel, err := pathsafe.ToRepoRelative(root, path)
		if err != nil {
			return nil
		}
		if ignore(rel) {
			return nil
		}
		out = append(out, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// buildIgnoreMatcher combines config.IgnorePatterns with a best-effort
// read of the repository's top-level .gitignore. Matching supports plain
// glob segments plus a "dir/**" prefix form; this is not full gitignore
// semantics, just enough to keep generated/vendored trees out of the
// markdown sweep.
func buildIgnoreMatcher(root pathsafe.RepoRoot, cfg *config.Config) func(rel string) bool {
	patterns := append([]string{}, cfg.IgnorePatterns()...)

	if data, err := os.ReadFile(filepath.Join(root.Path(), ".gitignore")); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, line)
		}
	}

	return func(rel string) bool {
		for _, p := range patterns {
			if matchIgnorePattern(p, rel) {
				return true
			}
		}
		return false
	}
}

func matchIgnorePattern(pattern, rel string) bool {
	pattern = strings.TrimSuffix(pattern, "/")
	if strings.HasSuffix(pattern, "/**") {
		prefix := strings.TrimSuffix(pattern, "/**")
		return rel == prefix || strings.HasPrefix(rel, prefix+"/")
	}
	if ok, err := filepath.Match(pattern, rel); err == nil && ok {
		return true
	}
	// also try matching against just the base name, for patterns like
	// "*.generated.md" applied anywhere in the tree.
	if ok, err := filepath.Match(pattern, filepath.Base(rel)); err == nil && ok {
		return true
	}
	return strings.HasPrefix(rel, pattern+"/")
}
