package lint

import (
	"fmt"
	"path/filepath"
	"strings"
)

func documentOrganizationRule() Rule {
	return Rule{
		ID:              "document-organization",
		Name:            "Document Organization",
		DefaultSeverity: SeverityWarning,
		Category:        "organization",
		Description:     "Markdown files should live in an allowed documentation folder, the repository root (for standard names), or a configured exception directory.",
		Impact:          "Scattered markdown makes it harder for views and the association rule to find documentation.",
		Fixable:         false,
		Enabled:         true,
		Check:           checkDocumentOrganization,
	}
}

func checkDocumentOrganization(ctx *Context, severity Severity) []Violation {
	allowedFolders := ctx.Config.AllowedMarkdownFolders()
	allowedRoot := ctx.Config.AllowedRootFiles()
	exceptions := ctx.Config.ExceptionDirectories()

	var violations []Violation
	for _, rel := range ctx.MarkdownFiles {
		dir := filepath.Dir(rel)
		if dir == "." {
			if matchesAllowedRootFile(filepath.Base(rel), allowedRoot) {
				continue
			}
			violations = append(violations, Violation{
				RuleID:   "document-organization",
				Severity: severity,
				Message:  fmt.Sprintf("%s is in the repository root but is not one of the allowed root files", rel),
				Path:     rel,
			})
			continue
		}

		top := strings.SplitN(rel, "/", 2)[0]
		if containsStr(allowedFolders, top) || containsStr(exceptions, top) {
			continue
		}

		violations = append(violations, Violation{
			RuleID:   "document-organization",
			Severity: severity,
			Message:  fmt.Sprintf("%s is not in an allowed documentation folder (%s)", rel, strings.Join(allowedFolders, ", ")),
			Path:     rel,
		})
	}
	return violations
}

func matchesAllowedRootFile(base string, allowed []string) bool {
	lower := strings.ToLower(base)
	for _, a := range allowed {
		if strings.ToLower(a) == lower {
			return true
		}
		if strings.ToLower(strings.TrimSuffix(a, filepath.Ext(a))) == strings.TrimSuffix(lower, filepath.Ext(lower)) {
			return true
		}
	}
	return false
}
