package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/templates"
	"github.com/a24z-ai/a24z-memory/internal/vcs"
)

const (
	hookBeginMarker = "# a24z-hooks:begin"
	hookEndMarker   = "# a24z-hooks:end"
)

var hookBlock = templates.HookBlock

var (
	hooksInit   bool
	hooksAdd    bool
	hooksRemove bool
	hooksCheck  bool
)

var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage a pre-commit hook that runs validate-all and lint",
	Long: `Manage a version-control pre-commit hook that invokes
"a24z validate-all --errors-only" and "a24z lint --errors-only" before
every commit.

Exactly one of --init, --add, --remove, --check is expected per
invocation.`,
	Args: cobra.NoArgs,
	RunE: runHooks,
}

func init() {
	hooksCmd.Flags().BoolVar(&hooksInit, "init", false, "create the pre-commit hook, overwriting any existing one that lacks the a24z block")
	hooksCmd.Flags().BoolVar(&hooksAdd, "add", false, "append the hook block to an existing pre-commit hook")
	hooksCmd.Flags().BoolVar(&hooksRemove, "remove", false, "remove the hook block, leaving the rest of the file intact")
	hooksCmd.Flags().BoolVar(&hooksCheck, "check", false, "report whether the hook block is installed")
	rootCmd.AddCommand(hooksCmd)
}

func runHooks(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	if !vcs.IsRepo(root.Path()) {
		return fmt.Errorf("%s is not a git repository; hooks requires git", root.Path())
	}

	gitDir, err := vcs.GitDir(root.Path())
	if err != nil {
		return fmt.Errorf("failed to locate .git directory: %w", err)
	}
	hookPath := filepath.Join(gitDir, "hooks", "pre-commit")

	switch {
	case hooksInit:
		return installHook(hookPath, true)
	case hooksAdd:
		return installHook(hookPath, false)
	case hooksRemove:
		return removeHook(hookPath)
	case hooksCheck:
		return checkHook(hookPath)
	default:
		return fmt.Errorf("one of --init, --add, --remove, --check is required")
	}
}

func installHook(hookPath string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(hookPath), 0755); err != nil {
		return err
	}

	existing := ""
	if data, err := os.ReadFile(hookPath); err == nil {
		existing = string(data)
	}

	if strings.Contains(existing, hookBeginMarker) {
		fmt.Println("✓ hook block already installed")
		return nil
	}

	var content string
	if overwrite || existing == "" {
		content = "#!/bin/sh\n" + hookBlock
	} else {
		content = strings.TrimRight(existing, "\n") + "\n\n" + hookBlock
	}

	if err := os.WriteFile(hookPath, []byte(content), 0755); err != nil {
		return err
	}

	fmt.Printf("✓ installed pre-commit hook at %s\n", hookPath)
	return nil
}

func removeHook(hookPath string) error {
	data, err := os.ReadFile(hookPath)
	if os.IsNotExist(err) {
		fmt.Println("no pre-commit hook present")
		return nil
	}
	if err != nil {
		return err
	}

	content := string(data)
	start := strings.Index(content, hookBeginMarker)
	end := strings.Index(content, hookEndMarker)
	if start == -1 || end == -1 {
		fmt.Println("hook block not found; leaving the existing hook untouched")
		return nil
	}

	before := content[:start]
	after := content[end+len(hookEndMarker):]
	after = strings.TrimPrefix(after, "\n")
	remaining := strings.TrimRight(before, "\n") + after

	if strings.TrimSpace(strings.TrimPrefix(remaining, "#!/bin/sh")) == "" {
		if err := os.Remove(hookPath); err != nil {
			return err
		}
		fmt.Println("✓ removed pre-commit hook (file was otherwise empty)")
		return nil
	}

	if err := os.WriteFile(hookPath, []byte(remaining), 0755); err != nil {
		return err
	}
	fmt.Println("✓ removed hook block, left the rest of the hook intact")
	return nil
}

func checkHook(hookPath string) error {
	data, err := os.ReadFile(hookPath)
	if os.IsNotExist(err) {
		fmt.Println("✗ no pre-commit hook installed")
		return fmt.Errorf("hook not installed")
	}
	if err != nil {
		return err
	}

	if strings.Contains(string(data), hookBeginMarker) {
		fmt.Println("✓ hook block installed")
		return nil
	}

	fmt.Println("✗ pre-commit hook exists but does not contain the a24z hook block")
	return fmt.Errorf("hook block not installed")
}
