package store

import (
	"os"
	"path/filepath"

	"github.com/a24z-ai/a24z-memory/internal/errs"
	"github.com/a24z-ai/a24z-memory/internal/obslog"
)

// WriteAtomic writes data to target via write-temp-then-rename: a sibling
// "<target>.tmp" is created and flushed, then renamed onto target.
// Readers observe either the previous content or the fully-written new
// content — the rename is the linearization point, so a crash between the
// temp write and the rename leaves the previous value intact and never a
// half-written file.
func WriteAtomic(target string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &errs.IoError{Category: errs.IoMkdir, Path: dir, Cause: err}
	}

	tmp := target + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return &errs.IoError{Category: errs.IoWrite, Path: tmp, Cause: err}
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return &errs.IoError{Category: errs.IoWrite, Path: tmp, Cause: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return &errs.IoError{Category: errs.IoWrite, Path: tmp, Cause: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &errs.IoError{Category: errs.IoWrite, Path: tmp, Cause: err}
	}

	if err := os.Rename(tmp, target); err != nil {
		os.Remove(tmp)
		return &errs.IoError{Category: errs.IoRename, Path: target, Cause: err}
	}

	return nil
}

// RemoveFile deletes target unconditionally. A missing file is treated as
// already-removed, not an error, so repeated deletes are idempotent.
func RemoveFile(target string) error {
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return &errs.IoError{Category: errs.IoRemove, Path: target, Cause: err}
	}
	return nil
}

// PruneEmptyDirs starts at leaf's parent directory and walks upward
// removing empty directories, stopping at (and never removing) stopAt.
// It does not remove leaf itself.
func PruneEmptyDirs(leaf string, stopAt string) {
	dir := filepath.Dir(leaf)
	for dir != stopAt && len(dir) >= len(stopAt) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}

// WalkJSONFiles recursively lists every ".json" file under root. root not
// existing is not an error — it yields an empty list, since "all notes"
// before the first save is legitimately empty.
func WalkJSONFiles(root string) ([]string, error) {
	var files []string
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return files, nil
	}

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			obslog.ParseSkip("walk", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".json" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &errs.IoError{Category: errs.IoRead, Path: root, Cause: err}
	}
	return files, nil
}
