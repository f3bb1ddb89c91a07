package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/errs"
	"github.com/a24z-ai/a24z-memory/internal/notes"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
}

func init() {
	rootCmd.AddCommand(noteCmd)
}

// --- note add ---

var (
	noteAddAnchors  []string
	noteAddTags     []string
	noteAddType     string
	noteAddReviewed bool
)

var noteAddCmd = &cobra.Command{
	Use:   "add <content>",
	Short: "Save a new note",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteAdd,
}

func init() {
	noteAddCmd.Flags().StringSliceVar(&noteAddAnchors, "anchor", nil, "repo-relative path this note is anchored to (repeatable)")
	noteAddCmd.Flags().StringSliceVar(&noteAddTags, "tag", nil, "tag to attach (repeatable)")
	noteAddCmd.Flags().StringVar(&noteAddType, "type", "", "note type")
	noteAddCmd.Flags().BoolVar(&noteAddReviewed, "reviewed", false, "mark the note reviewed on creation")
	noteCmd.AddCommand(noteAddCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	reviewed := noteAddReviewed
	n, err := notes.Save(notes.SaveInput{
		DirectoryPath: root.Path(),
		Note:          args[0],
		Anchors:       noteAddAnchors,
		Tags:          noteAddTags,
		Type:          noteAddType,
		Reviewed:      &reviewed,
	})
	if err != nil {
		return describeNoteError(err)
	}

	fmt.Printf("✓ Saved note %s\n", n.ID)
	return nil
}

// --- note get ---

var noteGetJSON bool

var noteGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a single note by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteGet,
}

func init() {
	noteGetCmd.Flags().BoolVar(&noteGetJSON, "json", false, "emit the note as JSON")
	noteCmd.AddCommand(noteGetCmd)
}

func runNoteGet(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	n, err := notes.GetByID(root, args[0])
	if err != nil {
		return err
	}
	if n == nil {
		return &errs.NotFound{Kind: "note", ID: args[0]}
	}

	if noteGetJSON {
		data, err := json.MarshalIndent(n, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printNote(n)
	return nil
}

// --- note list-for-path ---

var (
	noteListIncludeParents bool
	noteListLimit          int
	noteListJSON           bool
)

var noteListForPathCmd = &cobra.Command{
	Use:   "list-for-path <path>",
	Short: "List notes relevant to a repo-relative path",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteListForPath,
}

func init() {
	noteListForPathCmd.Flags().BoolVar(&noteListIncludeParents, "include-parents", false, "also include notes anchored elsewhere in the repository")
	noteListForPathCmd.Flags().IntVar(&noteListLimit, "limit", 0, "cap the number of notes returned (0 = unlimited)")
	noteListForPathCmd.Flags().BoolVar(&noteListJSON, "json", false, "emit the matches as JSON")
	noteCmd.AddCommand(noteListForPathCmd)
}

func runNoteListForPath(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	var matches []notes.Match
	if noteListLimit > 0 {
		matches, _, err = notes.GetForPathWithLimit(root, args[0], noteListIncludeParents, notes.LimitCount, noteListLimit)
	} else {
		matches, err = notes.GetForPath(root, args[0], noteListIncludeParents)
	}
	if err != nil {
		return err
	}

	if noteListJSON {
		data, err := json.MarshalIndent(matches, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(matches) == 0 {
		fmt.Println("No notes found for this path.")
		return nil
	}

	for _, m := range matches {
		parent := ""
		if m.IsParentDirectory {
			parent = " " + dim + "(parent match)" + reset
		}
		fmt.Printf("%s%s\n", m.Note.ID, parent)
		printNote(m.Note)
		fmt.Println()
	}
	return nil
}

// --- note rm ---

var noteRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteRm,
}

func init() {
	noteCmd.AddCommand(noteRmCmd)
}

func runNoteRm(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	deleted, err := notes.DeleteByID(root, args[0])
	if err != nil {
		return err
	}
	if !deleted {
		return &errs.NotFound{Kind: "note", ID: args[0]}
	}

	fmt.Printf("✓ Deleted note %s\n", args[0])
	return nil
}

// --- note review ---

var noteReviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Mark a note reviewed",
	Args:  cobra.ExactArgs(1),
	RunE:  runNoteReview,
}

func init() {
	noteCmd.AddCommand(noteReviewCmd)
}

func runNoteReview(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	existing, err := notes.GetByID(root, args[0])
	if err != nil {
		return err
	}
	if existing == nil {
		return &errs.NotFound{Kind: "note", ID: args[0]}
	}

	reviewed := true
	_, err = notes.Save(notes.SaveInput{
		DirectoryPath: root.Path(),
		Note:          existing.Note,
		Anchors:       existing.Anchors,
		Tags:          existing.Tags,
		Type:          existing.Type,
		Reviewed:      &reviewed,
		Metadata:      existing.Metadata,
		GuidanceToken: existing.GuidanceToken,
	})
	if err != nil {
		return describeNoteError(err)
	}

	if _, err := notes.DeleteByID(root, args[0]); err != nil {
		return err
	}

	fmt.Printf("✓ Marked %s reviewed\n", args[0])
	return nil
}

func printNote(n *notes.Note) {
	fmt.Printf("  %s\n", n.Note)
	if len(n.Anchors) > 0 {
		fmt.Printf("  anchors: %v\n", n.Anchors)
	}
	if len(n.Tags) > 0 {
		fmt.Printf("  tags: %v\n", n.Tags)
	}
	if n.Type != "" {
		fmt.Printf("  type: %s\n", n.Type)
	}
	fmt.Printf("  reviewed: %v\n", n.Reviewed)
}

func describeNoteError(err error) error {
	if verrs, ok := err.(*errs.ValidationErrors); ok {
		return fmt.Errorf("note rejected: %s", verrs.Error())
	}
	return err
}
