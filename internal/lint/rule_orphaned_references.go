package lint

import "fmt"

func orphanedReferencesRule() Rule {
	return Rule{
		ID:              "orphaned-references",
		Name:            "Orphaned References",
		DefaultSeverity: SeverityError,
		Category:        "integrity",
		Description:     "Every file a view's cell lists, and every anchor a note carries, must exist in the working tree.",
		Impact:          "A reference to a deleted or renamed file silently stops pointing at anything useful.",
		Fixable:         false,
		Enabled:         true,
		Check:           checkOrphanedReferences,
	}
}

func checkOrphanedReferences(ctx *Context, severity Severity) []Violation {
	var violations []Violation

	for _, v := range ctx.Views {
		for _, cell := range v.Cells {
			for _, f := range cell.Files {
				if fileExistsRel(ctx.Root, f) {
					continue
				}
				violations = append(violations, Violation{
					RuleID:   "orphaned-references",
					Severity: severity,
					Message:  fmt.Sprintf("view %q references %s, which does not exist", v.Name, f),
					Path:     f,
				})
			}
		}
	}

	for _, nf := range ctx.Notes {
		for _, a := range nf.Note.Anchors {
			if fileExistsRel(ctx.Root, a) {
				continue
			}
			violations = append(violations, Violation{
				RuleID:   "orphaned-references",
				Severity: severity,
				Message:  fmt.Sprintf("note %s anchors %s, which does not exist", nf.Note.ID, a),
				Path:     a,
			})
		}
	}

	return violations
}
