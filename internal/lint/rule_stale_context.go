package lint

import (
	"fmt"
	"time"

	"github.com/a24z-ai/a24z-memory/internal/obslog"
	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/vcs"
)

func staleContextRule() Rule {
	return Rule{
		ID:              "stale-context",
		Name:            "Stale Context",
		DefaultSeverity: SeverityWarning,
		Category:        "freshness",
		Description:     "A view's overview, or a note, should not be older than the code it describes.",
		Impact:          "Documentation that predates the code it covers is likely describing a superseded shape of the system.",
		Fixable:         false,
		Enabled:         true,
		Check:           checkStaleContext,
	}
}

// checkStaleContext needs version-control history to say anything at
// all; when History has nothing for a path it degrades silently rather
// than treating the gap as unknown-but-bad.
func checkStaleContext(ctx *Context, severity Severity) []Violation {
	if _, ok := ctx.History.(vcs.NullHistoryProvider); ok {
		obslog.RuleDegraded("stale-context")
		return nil
	}

	var violations []Violation

	for _, v := range ctx.Views {
		if v.OverviewPath == "" {
			continue
		}
		overviewTime, ok := ctx.History.LastModified(v.OverviewPath)
		if !ok {
			continue
		}

		var freshest time.Time
		var freshestFile string
		for _, cell := range v.Cells {
			for _, f := range cell.Files {
				t, ok := ctx.History.LastModified(f)
				if ok && t.After(freshest) {
					freshest = t
					freshestFile = f
				}
			}
		}
		if freshestFile == "" || !freshest.After(overviewTime) {
			continue
		}

		violations = append(violations, Violation{
			RuleID:   "stale-context",
			Severity: severity,
			Message:  fmt.Sprintf("view %q overview predates %s by %s", v.Name, freshestFile, formatGap(freshest.Sub(overviewTime))),
			Path:     v.OverviewPath,
		})
	}

	for _, nf := range ctx.Notes {
		relPath, err := pathsafe.ToRepoRelative(ctx.Root, nf.Path)
		if err != nil {
			continue
		}
		noteTime, ok := ctx.History.LastModified(relPath)
		if !ok {
			continue
		}

		var freshest time.Time
		var freshestAnchor string
		for _, a := range nf.Note.Anchors {
			t, ok := ctx.History.LastModified(a)
			if ok && t.After(freshest) {
				freshest = t
				freshestAnchor = a
			}
		}
		if freshestAnchor == "" || !freshest.After(noteTime) {
			continue
		}

		violations = append(violations, Violation{
			RuleID:   "stale-context",
			Severity: severity,
			Message:  fmt.Sprintf("note %s predates %s by %s", nf.Note.ID, freshestAnchor, formatGap(freshest.Sub(noteTime))),
			Path:     relPath,
		})
	}

	return violations
}

func formatGap(d time.Duration) string {
	if d < 24*time.Hour {
		hours := int(d.Hours())
		if hours < 1 {
			hours = 1
		}
		return fmt.Sprintf("%d hours", hours)
	}
	days := int(d.Hours() / 24)
	return fmt.Sprintf("%d days", days)
}
