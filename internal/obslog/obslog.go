// Package obslog provides the module's single structured logger. Nothing
// in internal/ or pkg/ constructs its own logrus instance; everything logs
// through Log so output stays consistent and callers can swap the output
// writer in tests.
package obslog

import (
	"github.com/sirupsen/logrus"
)

// Log is the package-level logger used across the store. It is the only
// logrus entry point in this module — per the no-globals design note,
// this is observability plumbing, not application state, so a package
// global is appropriate here (every stateful lookup still takes an
// explicit repo handle).
var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   false,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
}

// ParseSkip logs that a store file could not be parsed and was skipped
// during an aggregate read: parse errors on individual note/view files
// never propagate as errors.
func ParseSkip(kind, path string, cause error) {
	Log.WithFields(logrus.Fields{
		"kind": kind,
		"path": path,
	}).WithError(cause).Warn("skipping unparseable store file")
}

// MigrationFailed logs a non-fatal migration failure; the legacy aggregate
// file is left in place for the next attempt.
func MigrationFailed(path string, cause error) {
	Log.WithField("path", path).WithError(cause).Warn("legacy note migration failed, aggregate left in place")
}

// RuleDegraded logs that a lint rule silently produced no violations
// because the version-control history it needs was unavailable.
func RuleDegraded(ruleID string) {
	Log.WithField("rule", ruleID).Debug("rule degraded to no-op: version-control history unavailable")
}
