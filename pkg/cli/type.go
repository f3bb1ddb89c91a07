package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/notes"
	"github.com/a24z-ai/a24z-memory/internal/store"
)

var typeCmd = &cobra.Command{
	Use:   "type",
	Short: "Manage the type taxonomy",
}

func init() {
	rootCmd.AddCommand(typeCmd)
}

var typeAddCmd = &cobra.Command{
	Use:   "add <name> [description]",
	Short: "Declare a note type, optionally with a description",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runTypeAdd,
}

func init() {
	typeCmd.AddCommand(typeAddCmd)
}

func runTypeAdd(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	description := ""
	if len(args) == 2 {
		description = args[1]
	}
	if err := notes.SaveTypeDescription(root, args[0], description); err != nil {
		return err
	}
	fmt.Printf("✓ Declared type %q\n", args[0])
	return nil
}

var typeRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a type from the taxonomy",
	Args:  cobra.ExactArgs(1),
	RunE:  runTypeRm,
}

func init() {
	typeCmd.AddCommand(typeRmCmd)
}

func runTypeRm(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	if err := notes.DeleteTypeDescription(root, args[0]); err != nil {
		return err
	}
	fmt.Printf("✓ Removed type %q\n", args[0])
	return nil
}

var typeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List declared types",
	Args:  cobra.NoArgs,
	RunE:  runTypeList,
}

func init() {
	typeCmd.AddCommand(typeListCmd)
}

func runTypeList(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	layout := store.Resolve(root)
	names, err := declaredNamesIn(layout.TypesDir())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("No types declared. Built-in defaults:", notes.DefaultTypes)
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}
