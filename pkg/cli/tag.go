package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/notes"
	"github.com/a24z-ai/a24z-memory/internal/store"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage the tag taxonomy",
}

func init() {
	rootCmd.AddCommand(tagCmd)
}

var tagAddCmd = &cobra.Command{
	Use:   "add <name> [description]",
	Short: "Declare a tag, optionally with a description",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTagAdd,
}

func init() {
	tagCmd.AddCommand(tagAddCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	description := ""
	if len(args) == 2 {
		description = args[1]
	}
	if err := notes.SaveTagDescription(root, args[0], description); err != nil {
		return err
	}
	fmt.Printf("✓ Declared tag %q\n", args[0])
	return nil
}

var tagRmSweep bool

var tagRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a tag from the taxonomy",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagRm,
}

func init() {
	tagRmCmd.Flags().BoolVar(&tagRmSweep, "sweep", false, "also strip this tag from every note that carries it")
	tagCmd.AddCommand(tagRmCmd)
}

func runTagRm(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	if err := notes.DeleteTagDescription(root, args[0], tagRmSweep); err != nil {
		return err
	}
	fmt.Printf("✓ Removed tag %q\n", args[0])
	return nil
}

var tagListCmd = &cobra.Command{
	Use:   "list",
	Short: "List declared tags",
	Args:  cobra.NoArgs,
	RunE:  runTagList,
}

func init() {
	tagCmd.AddCommand(tagListCmd)
}

func runTagList(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	layout := store.Resolve(root)
	names, err := declaredNamesIn(layout.TagsDir())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No tags declared.")
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

// declaredNamesIn lists the *.md description files in dir by their base
// name, the same declared-taxonomy shape notes.AllowedTags reads but
// exposed here regardless of whether enforcement is on.
func declaredNamesIn(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(out)
	return out, nil
}
