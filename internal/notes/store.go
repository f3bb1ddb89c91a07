package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/a24z-ai/a24z-memory/internal/config"
	"github.com/a24z-ai/a24z-memory/internal/errs"
	"github.com/a24z-ai/a24z-memory/internal/obslog"
	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/store"
)

// Save validates, normalizes, and atomically persists a note. It
// requires at least one anchor and an already-validated repository root;
// NotARepository propagates from pathsafe.ValidateRoot unchanged.
func Save(input SaveInput) (*Note, error) {
	root, err := pathsafe.ValidateRoot(input.DirectoryPath)
	if err != nil {
		return nil, err
	}
	layout := store.Resolve(root)
	if err := maybeMigrateLegacy(layout); err != nil {
		obslog.MigrationFailed(layout.LegacyAggregatePath(), err)
	}

	cfg, err := config.Load(layout)
	if err != nil {
		return nil, err
	}

	originDir := input.OriginDir
	if originDir == "" {
		originDir = input.DirectoryPath
	}

	normalizedAnchors := make([]string, 0, len(input.Anchors))
	var anchorErrs []*errs.ValidationError
	for _, a := range input.Anchors {
		rel, err := pathsafe.NormalizeAnchor(root, originDir, a)
		if err != nil {
			if ve, ok := err.(*errs.ValidationError); ok {
				anchorErrs = append(anchorErrs, ve)
				continue
			}
			return nil, err
		}
		normalizedAnchors = append(normalizedAnchors, rel)
	}

	allowedTags, err := AllowedTags(layout, cfg)
	if err != nil {
		return nil, err
	}
	allowedTypes, err := AllowedTypes(layout, cfg)
	if err != nil {
		return nil, err
	}

	verrs := validate(cfg, input.Note, input.Tags, normalizedAnchors, len(input.Anchors), input.Type, allowedTags, allowedTypes)
	if len(anchorErrs) > 0 {
		if verrs == nil {
			verrs = &errs.ValidationErrors{}
		}
		verrs.Errors = append(verrs.Errors, anchorErrs...)
	}
	if verrs != nil {
		return nil, verrs
	}

	now := time.Now()
	reviewed := false
	if input.Reviewed != nil {
		reviewed = *input.Reviewed
	}
	metadata := input.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	n := &Note{
		ID:            generateID(now),
		Note:          input.Note,
		Anchors:       normalizedAnchors,
		Tags:          append([]string{}, input.Tags...),
		Type:          input.Type,
		Timestamp:     now.UnixMilli(),
		Reviewed:      reviewed,
		Metadata:      metadata,
		GuidanceToken: input.GuidanceToken,
	}

	if err := writeNote(layout, n); err != nil {
		return nil, err
	}

	return n, nil
}

func generateID(now time.Time) string {
	short := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("note-%d-%s", now.UnixMilli(), short)
}

func writeNote(layout *store.Layout, n *Note) error {
	data, err := marshalNote(n)
	if err != nil {
		return err
	}
	path := layout.NoteFilePath(n.ID, n.Timestamp)
	return store.WriteAtomic(path, data, 0644)
}

func marshalNote(n *Note) ([]byte, error) {
	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return nil, &errs.IoError{Category: errs.IoWrite, Path: n.ID, Cause: err}
	}
	return data, nil
}

// GetByID performs a linear scan over every persisted note; no index is
// maintained for id lookup.
func GetByID(root pathsafe.RepoRoot, id string) (*Note, error) {
	layout := store.Resolve(root)
	all, err := readAll(layout)
	if err != nil {
		return nil, err
	}
	for _, n := range all {
		if n.ID == id {
			return n, nil
		}
	}
	return nil, nil
}

// DeleteByID removes a note's backing file and prunes any now-empty
// month/year directories above it. Reports false when the note does not
// exist.
func DeleteByID(root pathsafe.RepoRoot, id string) (bool, error) {
	layout := store.Resolve(root)
	all, err := readAllWithPaths(layout)
	if err != nil {
		return false, err
	}
	for _, nf := range all {
		if nf.note.ID != id {
			continue
		}
		if err := store.RemoveFile(nf.path); err != nil {
			return false, err
		}
		store.PruneEmptyDirs(nf.path, layout.NotesDir())
		return true, nil
	}
	return false, nil
}

type noteFile struct {
	note *Note
	path string
}

// NoteFile pairs a note with the absolute path of its backing file, for
// callers (the lint engine's context builder) that need both.
type NoteFile struct {
	Note *Note
	Path string
}

// ReadAllWithPaths is the exported form of readAllWithPaths, for callers
// outside this package.
func ReadAllWithPaths(root pathsafe.RepoRoot) ([]NoteFile, error) {
	layout := store.Resolve(root)
	internal, err := readAllWithPaths(layout)
	if err != nil {
		return nil, err
	}
	out := make([]NoteFile, len(internal))
	for i, nf := range internal {
		out[i] = NoteFile{Note: nf.note, Path: nf.path}
	}
	return out, nil
}

// readAll walks every note file under notes/, skipping unparseable files
// with a logged warning rather than propagating a read error — one bad
// file must never brick the whole store.
func readAll(layout *store.Layout) ([]*Note, error) {
	withPaths, err := readAllWithPaths(layout)
	if err != nil {
		return nil, err
	}
	out := make([]*Note, 0, len(withPaths))
	for _, nf := range withPaths {
		out = append(out, nf.note)
	}
	return out, nil
}

func readAllWithPaths(layout *store.Layout) ([]noteFile, error) {
	if err := maybeMigrateLegacy(layout); err != nil {
		obslog.MigrationFailed(layout.LegacyAggregatePath(), err)
	}

	files, err := store.WalkJSONFiles(layout.NotesDir())
	if err != nil {
		return nil, err
	}

	out := make([]noteFile, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			obslog.ParseSkip("note", path, err)
			continue
		}
		var n Note
		if err := json.Unmarshal(data, &n); err != nil {
			obslog.ParseSkip("note", path, err)
			continue
		}
		out = append(out, noteFile{note: &n, path: path})
	}
	return out, nil
}
