// Package store maps logical store entities (notes, views, tags, types,
// configuration) onto files under a repository's data directory and
// performs all filesystem I/O through a single atomic write-temp-then-
// rename primitive. The store exclusively owns everything under the data
// directory; it never writes to the rest of the working tree except the
// one exception carved out for view overview files (internal/views).
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/a24z-ai/a24z-memory/internal/errs"
	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
)

// PrimaryDirName is the current data-directory name. LegacyDirName is an
// older name some repositories still carry; when only the legacy
// directory exists, the store operates against it in read-through mode
// rather than forcing a rename.
const (
	PrimaryDirName = ".a24z"
	LegacyDirName  = ".alexandria"
)

// Layout resolves logical store entities to absolute filesystem paths
// rooted at one repository's data directory.
type Layout struct {
	root    pathsafe.RepoRoot
	dirName string
}

// Resolve picks the primary data directory, or the legacy one in
// read-through mode if only it exists.
func Resolve(root pathsafe.RepoRoot) *Layout {
	primary := filepath.Join(root.Path(), PrimaryDirName)
	legacy := filepath.Join(root.Path(), LegacyDirName)

	dirName := PrimaryDirName
	if !dirExists(primary) && dirExists(legacy) {
		dirName = LegacyDirName
	}

	return &Layout{root: root, dirName: dirName}
}

// Root returns the repository root this layout is rooted at.
func (l *Layout) Root() pathsafe.RepoRoot { return l.root }

// DataDir is the absolute path to the data directory in use (primary or
// legacy read-through).
func (l *Layout) DataDir() string {
	return filepath.Join(l.root.Path(), l.dirName)
}

// UsingLegacy reports whether this layout resolved to the legacy
// .alexandria directory rather than the primary .a24z one.
func (l *Layout) UsingLegacy() bool {
	return l.dirName == LegacyDirName
}

func (l *Layout) NotesDir() string { return filepath.Join(l.DataDir(), "notes") }
func (l *Layout) ViewsDir() string { return filepath.Join(l.DataDir(), "views") }
func (l *Layout) TagsDir() string  { return filepath.Join(l.DataDir(), "tags") }
func (l *Layout) TypesDir() string { return filepath.Join(l.DataDir(), "types") }

func (l *Layout) ConfigPath() string {
	return filepath.Join(l.DataDir(), "configuration.json")
}

func (l *Layout) NoteGuidancePath() string {
	return filepath.Join(l.DataDir(), "note-guidance.md")
}

// ValidationMessagesCandidates returns the paths checked for the
// validation-messages overlay, in lookup order. Loading is best-effort:
// the first that exists wins.
func (l *Layout) ValidationMessagesCandidates() []string {
	base := filepath.Join(l.DataDir(), "validation-messages")
	return []string{base + ".json", base + ".yaml", base + ".yml"}
}

// LegacyAggregatePath is the single-file note store some repositories
// still carry, migrated transparently on first read.
func (l *Layout) LegacyAggregatePath() string {
	return filepath.Join(l.DataDir(), "repository-notes.json")
}

// NoteFilePath returns notes/<YYYY>/<MM>/<id>.json using UTC calendar
// fields derived from createdAtMs.
func (l *Layout) NoteFilePath(id string, createdAtMs int64) string {
	t := time.UnixMilli(createdAtMs).UTC()
	return filepath.Join(l.NotesDir(), fmt.Sprintf("%04d", t.Year()), fmt.Sprintf("%02d", t.Month()), id+".json")
}

func (l *Layout) ViewFilePath(id string) string {
	return filepath.Join(l.ViewsDir(), id+".json")
}

func (l *Layout) TagFilePath(name string) string {
	return filepath.Join(l.TagsDir(), name+".md")
}

func (l *Layout) TypeFilePath(name string) string {
	return filepath.Join(l.TypesDir(), name+".md")
}

// EnsureInit creates the data directory and its fixed subdirectories. It
// never forces migration of a legacy directory; init always targets the
// primary name.
func EnsureInit(root pathsafe.RepoRoot) (*Layout, error) {
	dataDir := filepath.Join(root.Path(), PrimaryDirName)
	for _, sub := range []string{"notes", "views", "tags", "types"} {
		if err := os.MkdirAll(filepath.Join(dataDir, sub), 0755); err != nil {
			return nil, &errs.IoError{Category: errs.IoMkdir, Path: filepath.Join(dataDir, sub), Cause: err}
		}
	}
	return &Layout{root: root, dirName: PrimaryDirName}, nil
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
