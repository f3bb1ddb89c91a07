package views

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a24z-ai/a24z-memory/internal/errs"
	"github.com/a24z-ai/a24z-memory/internal/obslog"
	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/store"
)

// SaveInput is the caller-supplied shape for SaveWithValidation.
type SaveInput struct {
	DirectoryPath   string
	View            *View
	AsDefault       bool
	OverviewContent *string
	GenerationType  string
}

// SaveWithValidation runs the view through Validate and, when it stays
// structurally sound, persists it (and its default clone, if requested)
// atomically. It returns the validation outcome regardless of whether the
// write happened, so callers can inspect non-fatal issues on success.
func SaveWithValidation(input SaveInput) (*ValidationResult, error) {
	root, err := pathsafe.ValidateRoot(input.DirectoryPath)
	if err != nil {
		return nil, err
	}
	layout := store.Resolve(root)

	result := Validate(root, input.View)
	if !result.IsValid {
		return result, nil
	}

	v := result.ValidatedView
	v.Version = CurrentVersion
	v.Timestamp = time.Now().UTC().Format(time.RFC3339)
	if v.Metadata == nil {
		v.Metadata = map[string]any{}
	}
	if input.GenerationType != "" {
		v.Metadata["generationType"] = input.GenerationType
	} else if _, ok := v.Metadata["generationType"]; !ok {
		v.Metadata["generationType"] = GenerationUser
	}

	if v.OverviewPath != "" && input.OverviewContent != nil {
		if err := writeOverview(root, v.OverviewPath, *input.OverviewContent); err != nil {
			return nil, err
		}
	}

	if err := writeView(layout, v); err != nil {
		return nil, err
	}

	if input.AsDefault {
		clone := *v
		clone.ID = DefaultID
		if err := writeView(layout, &clone); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func writeView(layout *store.Layout, v *View) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &errs.IoError{Category: errs.IoWrite, Path: v.ID, Cause: err}
	}
	return store.WriteAtomic(layout.ViewFilePath(v.ID), data, 0644)
}

// writeOverview is the one write the store makes outside its own
// subtree: the overview markdown file a view nominates, created (with
// parent directories) inside the working tree.
func writeOverview(root pathsafe.RepoRoot, relPath, content string) error {
	abs := filepath.Join(root.Path(), filepath.FromSlash(relPath))
	return store.WriteAtomic(abs, []byte(content), 0644)
}

// Get loads one view by id. Returns nil, nil on a miss.
func Get(root pathsafe.RepoRoot, id string) (*View, error) {
	layout := store.Resolve(root)
	data, err := os.ReadFile(layout.ViewFilePath(id))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &errs.IoError{Category: errs.IoRead, Path: layout.ViewFilePath(id), Cause: err}
	}
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, &errs.IoError{Category: errs.IoRead, Path: layout.ViewFilePath(id), Cause: err}
	}
	return &v, nil
}

// List enumerates every persisted view, skipping unparseable files with a
// logged warning.
func List(root pathsafe.RepoRoot) ([]*View, error) {
	layout := store.Resolve(root)
	entries, err := os.ReadDir(layout.ViewsDir())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, &errs.IoError{Category: errs.IoRead, Path: layout.ViewsDir(), Cause: err}
	}

	out := make([]*View, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(layout.ViewsDir(), e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			obslog.ParseSkip("view", path, err)
			continue
		}
		var v View
		if err := json.Unmarshal(data, &v); err != nil {
			obslog.ParseSkip("view", path, err)
			continue
		}
		out = append(out, &v)
	}
	return out, nil
}

// Delete removes a view's backing file. Reports false when it did not
// exist.
func Delete(root pathsafe.RepoRoot, id string) (bool, error) {
	layout := store.Resolve(root)
	path := layout.ViewFilePath(id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return false, nil
	}
	if err := store.RemoveFile(path); err != nil {
		return false, err
	}
	return true, nil
}
