package notes

import (
	"os"
	"strings"

	"github.com/a24z-ai/a24z-memory/internal/config"
	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/store"
)

// AllowedTags returns the set of explicitly-declared tag names (those
// with a tags/<name>.md description file) when tag enforcement is on, and
// an empty set when it is off. The validation pipeline treats an empty
// set as "any tag allowed".
func AllowedTags(layout *store.Layout, cfg *config.Config) (map[string]bool, error) {
	if !cfg.EnforceAllowedTags() {
		return map[string]bool{}, nil
	}
	return declaredNames(layout.TagsDir())
}

// AllowedTypes mirrors AllowedTags for the type namespace.
func AllowedTypes(layout *store.Layout, cfg *config.Config) (map[string]bool, error) {
	if !cfg.EnforceAllowedTypes() {
		return map[string]bool{}, nil
	}
	return declaredNames(layout.TypesDir())
}

func declaredNames(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := map[string]bool{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		out[strings.TrimSuffix(e.Name(), ".md")] = true
	}
	return out, nil
}

// SaveTagDescription writes (or overwrites) a tag's description file.
func SaveTagDescription(root pathsafe.RepoRoot, name, description string) error {
	layout := store.Resolve(root)
	return store.WriteAtomic(layout.TagFilePath(name), []byte(description), 0644)
}

// SaveTypeDescription writes (or overwrites) a type's description file.
func SaveTypeDescription(root pathsafe.RepoRoot, name, description string) error {
	layout := store.Resolve(root)
	return store.WriteAtomic(layout.TypeFilePath(name), []byte(description), 0644)
}

// DeleteTagDescription removes a tag's description file and, if sweep is
// true, rewrites every note that references the tag to drop it.
func DeleteTagDescription(root pathsafe.RepoRoot, name string, sweep bool) error {
	layout := store.Resolve(root)
	if err := store.RemoveFile(layout.TagFilePath(name)); err != nil {
		return err
	}
	if !sweep {
		return nil
	}
	return sweepTagFromNotes(layout, name)
}

// DeleteTypeDescription removes a type's description file. Types are
// single-valued per note, so there is no sweep analog: a note left
// referencing a deleted type simply falls outside the declared set next
// time enforcement is checked.
func DeleteTypeDescription(root pathsafe.RepoRoot, name string) error {
	layout := store.Resolve(root)
	return store.RemoveFile(layout.TypeFilePath(name))
}

func sweepTagFromNotes(layout *store.Layout, tag string) error {
	notesWithPaths, err := readAllWithPaths(layout)
	if err != nil {
		return err
	}
	for _, nf := range notesWithPaths {
		if !contains(nf.note.Tags, tag) {
			continue
		}
		nf.note.Tags = remove(nf.note.Tags, tag)
		if err := rewriteNoteAt(nf.path, nf.note); err != nil {
			return err
		}
	}
	return nil
}

func rewriteNoteAt(path string, n *Note) error {
	data, err := marshalNote(n)
	if err != nil {
		return err
	}
	return store.WriteAtomic(path, data, 0644)
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func remove(xs []string, x string) []string {
	out := xs[:0:0]
	for _, v := range xs {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}
