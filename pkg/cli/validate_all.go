package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/views"
)

var (
	validateAllErrorsOnly bool
	validateAllIssuesOnly bool
	validateAllViews      []string
)

var validateAllCmd = &cobra.Command{
	Use:   "validate-all",
	Short: "Validate every persisted view",
	Long: `Re-run validation against every persisted view (or a named subset via
--views) and report the issues found.

--errors-only restricts both the printed output and the exit-code
decision to critical issues, ignoring non-fatal warnings.
--issues-only suppresses the per-view "ok" line for views with nothing
to report.`,
	Args: cobra.NoArgs,
	RunE: runValidateAll,
}

func init() {
	validateAllCmd.Flags().BoolVar(&validateAllErrorsOnly, "errors-only", false, "only consider critical issues")
	validateAllCmd.Flags().BoolVar(&validateAllIssuesOnly, "issues-only", false, "only print views that have issues")
	validateAllCmd.Flags().StringSliceVar(&validateAllViews, "views", nil, "restrict validation to these view ids")
	rootCmd.AddCommand(validateAllCmd)
}

func runValidateAll(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	all, err := views.List(root)
	if err != nil {
		return err
	}

	if len(validateAllViews) > 0 {
		wanted := toSetCLI(validateAllViews)
		filtered := all[:0]
		for _, v := range all {
			if wanted[v.ID] {
				filtered = append(filtered, v)
			}
		}
		all = filtered
	}

	anyFailing := false
	anyIssues := false
	for _, v := range all {
		result := views.Validate(root, v)

		issues := result.Issues
		if validateAllErrorsOnly {
			issues = onlyErrors(issues)
		}
		if len(issues) > 0 {
			anyIssues = true
		}

		if len(issues) == 0 {
			if !validateAllIssuesOnly {
				fmt.Printf("✓ %s\n", v.ID)
			}
			continue
		}

		fmt.Printf("✗ %s\n", v.ID)
		for _, issue := range issues {
			marker := "⚠"
			if issue.Severity == views.SeverityError {
				marker = "✗"
				anyFailing = true
			}
			fmt.Printf("  %s [%s] %s\n", marker, issue.Code, issue.Message)
		}
	}

	if validateAllErrorsOnly {
		if anyFailing {
			return fmt.Errorf("validate-all found critical issues")
		}
		return nil
	}
	if anyIssues {
		return fmt.Errorf("validate-all found issues")
	}
	return nil
}

func onlyErrors(issues []views.Issue) []views.Issue {
	out := issues[:0:0]
	for _, i := range issues {
		if i.Severity == views.SeverityError {
			out = append(out, i)
		}
	}
	return out
}

func toSetCLI(xs []string) map[string]bool {
	out := make(map[string]bool, len(xs))
	for _, x := range xs {
		out[x] = true
	}
	return out
}
