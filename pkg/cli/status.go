package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/lint"
	"github.com/a24z-ai/a24z-memory/internal/notes"
	"github.com/a24z-ai/a24z-memory/internal/views"
)

// StatusSummary is a project-wide snapshot of the store: counts an
// operator or agent can check at a glance before diving into `lint` or
// `validate-all` for the detail.
type StatusSummary struct {
	DataDir      string `json:"dataDir"`
	NoteCount    int    `json:"noteCount"`
	ViewCount    int    `json:"viewCount"`
	StaleNotes   int    `json:"staleNotes"`
	LintErrors   int    `json:"lintErrors"`
	LintWarnings int    `json:"lintWarnings"`
	LintInfo     int    `json:"lintInfo"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a project-wide summary of the store",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().Bool("json", false, "output status as JSON")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	root, err := resolveRoot()
	if err != nil {
		return err
	}

	allNotes, err := notes.ReadAllWithPaths(root)
	if err != nil {
		return err
	}

	stale, err := notes.CheckStale(root)
	if err != nil {
		return err
	}

	allViews, err := views.List(root)
	if err != nil {
		return err
	}

	ctx, err := lint.BuildContext(root)
	if err != nil {
		return err
	}
	lintResult := lint.Run(ctx, lint.RunOptions{})

	summary := StatusSummary{
		DataDir:      ctx.Root.Path(),
		NoteCount:    len(allNotes),
		ViewCount:    len(allViews),
		StaleNotes:   len(stale),
		LintErrors:   lintResult.ErrorCount,
		LintWarnings: lintResult.WarningCount,
		LintInfo:     lintResult.InfoCount,
	}

	if jsonOutput {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println()
	fmt.Printf("📦 " + whiteBold + "Repository: " + reset + "%s\n", summary.DataDir)
	fmt.Println()
	fmt.Printf("📝 Notes: %d", summary.NoteCount)
	if summary.StaleNotes > 0 {
		fmt.Printf(" (%d stale)", summary.StaleNotes)
	}
	fmt.Println()
	fmt.Printf("🗺  Views: %d\n", summary.ViewCount)
	fmt.Printf("🔎 Lint: %d error(s), %d warning(s), %d info\n", summary.LintErrors, summary.LintWarnings, summary.LintInfo)
	fmt.Println()

	return nil
}
