package lint

import "fmt"

func requireViewAssociationRule() Rule {
	return Rule{
		ID:              "require-view-association",
		Name:            "Require View Association",
		DefaultSeverity: SeverityError,
		Category:        "organization",
		Description:     "Every markdown file must be referenced by a view (cell file or overview) or a note's anchors.",
		Impact:          "Undocumented-looking files make the store's coverage look thinner than it is, or hide genuinely unassociated documentation.",
		Fixable:         false,
		Enabled:         true,
		Check:           checkRequireViewAssociation,
	}
}

func checkRequireViewAssociation(ctx *Context, severity Severity) []Violation {
	viewRefs := referencedByViews(ctx)
	noteRefs := anchoredByNotes(ctx)

	var violations []Violation
	for _, rel := range ctx.MarkdownFiles {
		if viewRefs[rel] || noteRefs[rel] {
			continue
		}
		violations = append(violations, Violation{
			RuleID:   "require-view-association",
			Severity: severity,
			Message:  fmt.Sprintf("%s is not associated with any view or note", rel),
			Path:     rel,
		})
	}
	return violations
}
