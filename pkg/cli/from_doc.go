package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/views"
)

var (
	fromDocName        string
	fromDocDescription string
	fromDocDefault     bool
	fromDocInteractive bool
)

var fromDocCmd = &cobra.Command{
	Use:   "from-doc <md-file>",
	Short: "Create a view from a markdown document's structure",
	Long: `Derive a codebase view from a markdown document: every "## Heading"
becomes one row, and inline-code file references inside that section
populate the row's cell. The markdown file itself becomes the view's
overview.

With --interactive, the derived name and description are presented for
confirmation or editing before the view is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runFromDoc,
}

func init() {
	fromDocCmd.Flags().StringVar(&fromDocName, "name", "", "view name (defaults to the document's relative path)")
	fromDocCmd.Flags().StringVar(&fromDocDescription, "description", "", "view description")
	fromDocCmd.Flags().BoolVar(&fromDocDefault, "default", false, "also save as the repository's default view")
	fromDocCmd.Flags().BoolVar(&fromDocInteractive, "interactive", false, "confirm or edit name/description before saving")
	rootCmd.AddCommand(fromDocCmd)
}

func runFromDoc(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	mdPath := args[0]
	if !filepath.IsAbs(mdPath) {
		mdPath = filepath.Join(root.Path(), mdPath)
	}

	built, err := views.BuildFromMarkdown(root, mdPath, views.BuildFromMarkdownOptions{
		Name:        fromDocName,
		Description: fromDocDescription,
		AsDefault:   fromDocDefault,
	})
	if err != nil {
		return fmt.Errorf("failed to derive view from %s: %w", args[0], err)
	}

	if fromDocInteractive {
		if err := promptViewFields(built); err != nil {
			return err
		}
	}

	overview, err := os.ReadFile(mdPath)
	if err != nil {
		return err
	}
	overviewContent := string(overview)

	result, err := views.SaveWithValidation(views.SaveInput{
		DirectoryPath:   root.Path(),
		View:            built,
		AsDefault:       fromDocDefault,
		OverviewContent: &overviewContent,
		GenerationType:  views.GenerationMachine,
	})
	if err != nil {
		return err
	}

	printValidationResult(result)
	if !result.IsValid {
		return fmt.Errorf("view rejected: %d critical issue(s)", countCritical(result))
	}

	fmt.Printf("✓ Saved view %q (%dx%d, %d cell(s))\n", result.ValidatedView.ID, result.ValidatedView.Rows, result.ValidatedView.Cols, len(result.ValidatedView.Cells))
	return nil
}

// promptViewFields lets the operator confirm or override the derived
// name and description before the view is persisted, using readline the
// way an interactive CLI prompt reads a line at a time with history and
// line editing rather than a bare bufio.Scanner.
func promptViewFields(v *views.View) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: "",
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("failed to start interactive prompt: %w", err)
	}
	defer rl.Close()

	name, err := promptLine(rl, fmt.Sprintf("Name [%s]: ", v.Name))
	if err != nil {
		return err
	}
	if name != "" {
		v.Name = name
	}

	description, err := promptLine(rl, fmt.Sprintf("Description [%s]: ", v.Description))
	if err != nil {
		return err
	}
	if description != "" {
		v.Description = description
	}

	return nil
}

func promptLine(rl *readline.Instance, prompt string) (string, error) {
	rl.SetPrompt(prompt)
	line, err := rl.Readline()
	if err == readline.ErrInterrupt || err == io.EOF {
		return "", fmt.Errorf("interactive prompt cancelled")
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func countCritical(r *views.ValidationResult) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == views.SeverityError {
			n++
		}
	}
	return n
}

func printValidationResult(r *views.ValidationResult) {
	for _, issue := range r.Issues {
		marker := "⚠"
		if issue.Severity == views.SeverityError {
			marker = "✗"
		}
		fmt.Printf("  %s [%s] %s\n", marker, issue.Code, issue.Message)
	}
}
