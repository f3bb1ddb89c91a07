package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/a24z-ai/a24z-memory/internal/config"
	"github.com/a24z-ai/a24z-memory/internal/errs"
	"github.com/a24z-ai/a24z-memory/internal/store"
)

// maybeMigrateLegacy transparently migrates a legacy repository-notes.json
// aggregate file into the per-note dated tree, the first time any note
// operation touches this repository. It is a no-op (and returns nil) when
// no aggregate file exists, which makes repeat invocations idempotent:
// after the first successful migration the aggregate is gone.
func maybeMigrateLegacy(layout *store.Layout) error {
	legacyPath := layout.LegacyAggregatePath()
	data, err := os.ReadFile(legacyPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return &errs.MigrationError{Path: legacyPath, Cause: err}
	}

	var legacyNotes []Note
	if err := json.Unmarshal(data, &legacyNotes); err != nil {
		return &errs.MigrationError{Path: legacyPath, Cause: err}
	}

	for _, n := range legacyNotes {
		note := n
		if err := writeNote(layout, &note); err != nil {
			return &errs.MigrationError{Path: legacyPath, Cause: err}
		}
	}

	cfg, err := config.Load(layout)
	if err != nil {
		return &errs.MigrationError{Path: legacyPath, Cause: err}
	}

	if cfg.BackupOnMigration() {
		backupPath := fmt.Sprintf("%s.%d.bak", legacyPath, time.Now().UnixMilli())
		if err := os.Rename(legacyPath, backupPath); err != nil {
			return &errs.MigrationError{Path: legacyPath, Cause: err}
		}
		return nil
	}

	if err := os.Remove(legacyPath); err != nil {
		return &errs.MigrationError{Path: legacyPath, Cause: err}
	}
	return nil
}
