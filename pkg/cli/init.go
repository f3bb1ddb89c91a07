package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/config"
	"github.com/a24z-ai/a24z-memory/internal/pathsafe"
	"github.com/a24z-ai/a24z-memory/internal/store"
	"github.com/a24z-ai/a24z-memory/internal/templates"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a repository's data directory",
	Long: `Initialize the .a24z data directory in the current repository.

Creates:
  - .a24z/notes, .a24z/views, .a24z/tags, .a24z/types
  - .a24z/configuration.json with built-in defaults

If only the legacy .alexandria directory exists, init leaves it
untouched and reports where it is. An existing .a24z directory gets any
missing subdirectories, and its configuration.json is rewritten with the
built-in defaults merged under the values already there.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	layout := store.Resolve(root)
	if layout.UsingLegacy() {
		fmt.Printf("✓ using existing legacy data directory at %s\n", layout.DataDir())
		return nil
	}

	if _, statErr := pathsafe.ValidateRoot(root.Path()); statErr != nil {
		return statErr
	}

	newLayout, err := store.EnsureInit(root)
	if err != nil {
		return err
	}

	cfg, err := config.Load(newLayout)
	if err != nil {
		return err
	}
	if err := config.Save(newLayout, cfg); err != nil {
		return err
	}

	fmt.Printf("✓ Created %s\n", newLayout.DataDir())
	fmt.Println("✓ Wrote configuration.json with built-in defaults")

	guidancePath := filepath.Join(newLayout.DataDir(), "note-guidance.md")
	if _, statErr := os.Stat(guidancePath); os.IsNotExist(statErr) {
		if err := os.WriteFile(guidancePath, []byte(templates.NoteGuidance), 0644); err != nil {
			return err
		}
		fmt.Println("✓ Wrote note-guidance.md")
	}

	fmt.Println("\nNext: `a24z note add` to record your first note, or `a24z from-doc <file.md>` to derive a view.")

	return nil
}
