package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/views"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Enumerate codebase views",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	all, err := views.List(root)
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No views found. Run `a24z from-doc <file.md>` to create one.")
		return nil
	}

	for _, v := range all {
		def := ""
		if v.ID == views.DefaultID {
			def = " " + dim + "(default)" + reset
		}
		fmt.Printf("%-24s %dx%d  %d cell(s)%s\n", v.ID, v.Rows, v.Cols, len(v.Cells), def)
		if v.Description != "" {
			fmt.Printf("  %s%s%s\n", dim, v.Description, reset)
		}
	}

	return nil
}
