package lint

// Registry returns the fixed set of built-in rules, in the order they
// run. This is a closed enumeration, not a plugin mechanism.
func Registry() []Rule {
	return []Rule{
		requireViewAssociationRule(),
		orphanedReferencesRule(),
		staleContextRule(),
		documentOrganizationRule(),
	}
}

// RunOptions are the per-call overrides allowed on top of a rule's own
// default enablement and severity.
type RunOptions struct {
	// EnabledRules, if non-empty, restricts the run to exactly these
	// rule ids (still subject to DisabledRules).
	EnabledRules []string
	// DisabledRules are skipped regardless of EnabledRules.
	DisabledRules []string
}

// LintResult aggregates every rule's violations plus the counts the CLI
// uses to decide an exit code.
type LintResult struct {
	Violations   []Violation
	ErrorCount   int
	WarningCount int
	InfoCount    int
	FixableCount int
}

// Run builds once over ctx, invoking every enabled rule and applying the
// per-call and configured severity overrides.
func Run(ctx *Context, opts RunOptions) LintResult {
	disabled := toSet(opts.DisabledRules)
	var only map[string]bool
	if len(opts.EnabledRules) > 0 {
		only = toSet(opts.EnabledRules)
	}

	var result LintResult
	for _, rule := range Registry() {
		if !rule.Enabled || disabled[rule.ID] {
			continue
		}
		if only != nil && !only[rule.ID] {
			continue
		}

		severity := rule.DefaultSeverity
		if override, ok := ctx.Config.SeverityOverride(rule.ID); ok {
			severity = Severity(override)
		}

		for _, v := range rule.Check(ctx, severity) {
			result.Violations = append(result.Violations, v)
			switch v.Severity {
			case SeverityError:
				result.ErrorCount++
			case SeverityWarning:
				result.WarningCount++
			case SeverityInfo:
				result.InfoCount++
			}
			if v.Fixable {
				result.FixableCount++
			}
		}
	}
	return result
}

func toSet(xs []string) map[string]bool {
	out := make(map[string]bool, len(xs))
	for _, x := range xs {
		out[x] = true
	}
	return out
}
