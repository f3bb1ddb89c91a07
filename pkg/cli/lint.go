package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/lint"
)

var (
	lintErrorsOnly bool
	lintJSON       bool
	lintQuiet      bool
	lintEnable     []string
	lintDisable    []string
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Run the lint engine against the working tree",
	Long: `Build a lint context from the current repository's notes, views, and
markdown files, then run every enabled built-in rule.

Exit code is 1 if any violation is found, or only error-severity
violations when --errors-only is set.`,
	Args: cobra.NoArgs,
	RunE: runLint,
}

func init() {
	lintCmd.Flags().BoolVar(&lintErrorsOnly, "errors-only", false, "exit 1 only on error-severity violations")
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "emit the result as JSON")
	lintCmd.Flags().BoolVar(&lintQuiet, "quiet", false, "suppress per-violation output, print only the summary")
	lintCmd.Flags().StringSliceVar(&lintEnable, "enable", nil, "restrict the run to these rule ids")
	lintCmd.Flags().StringSliceVar(&lintDisable, "disable", nil, "skip these rule ids regardless of default enablement")
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	ctx, err := lint.BuildContext(root)
	if err != nil {
		return err
	}

	result := lint.Run(ctx, lint.RunOptions{EnabledRules: lintEnable, DisabledRules: lintDisable})

	if lintJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return exitStatusForLint(result)
	}

	if !lintQuiet {
		for _, v := range result.Violations {
			marker := "ℹ"
			switch v.Severity {
			case lint.SeverityError:
				marker = "✗"
			case lint.SeverityWarning:
				marker = "⚠"
			}
			loc := ""
			if v.Path != "" {
				loc = v.Path + ": "
			}
			fmt.Printf("%s [%s] %s%s%s\n", marker, v.RuleID, loc, v.Message, printFixableMark(v.Fixable))
		}
	}

	fmt.Printf("\n%d error(s), %d warning(s), %d info\n", result.ErrorCount, result.WarningCount, result.InfoCount)

	return exitStatusForLint(result)
}

func exitStatusForLint(result lint.LintResult) error {
	if lintErrorsOnly {
		if result.ErrorCount > 0 {
			return fmt.Errorf("lint found %d error(s)", result.ErrorCount)
		}
		return nil
	}
	if result.ErrorCount+result.WarningCount+result.InfoCount > 0 {
		return fmt.Errorf("lint found %d violation(s)", result.ErrorCount+result.WarningCount+result.InfoCount)
	}
	return nil
}
