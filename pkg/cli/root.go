// package cli implements the a24z command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/a24z-ai/a24z-memory/internal/errs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ANSI color codes for consistent theming.
const (
	reset     = "\033[0m"
	dim       = "\033[38;5;245m"
	whiteBold = "\033[1;37m"
	gray      = "\033[38;5;240m"
	cyan      = "\033[38;5;39m"
	green     = "\033[38;5;82m"
	amber     = "\033[38;5;214m"
)

// banner returns the a24z ASCII art banner with a cyan-to-black gradient.
func banner() string {
	colors := []string{
		"\033[38;5;39m",  // bright cyan
		"\033[38;5;38m",  // cyan
		"\033[38;5;31m",  // teal
		"\033[38;5;24m",  // dark teal
		"\033[38;5;23m",  // darker teal
		"\033[38;5;238m", // near black
	}

	lines := []string{
		" █████╗ ██████╗ ██╗  ██╗███████╗",
		"██╔══██╗╚════██╗██║  ██║╚══███╔╝",
		"███████║ █████╔╝███████║  ███╔╝ ",
		"██╔══██║██╔═══╝ ╚════██║ ███╔╝  ",
		"██║  ██║███████╗     ██║███████╗",
		"╚═╝  ╚═╝╚══════╝     ╚═╝╚══════╝",
	}

	var result string
	for i, line := range lines {
		result += "                    " + colors[i] + line + reset + "\n"
	}
	result += "\n"
	result += "           " + dim + "Repository-embedded knowledge store" + reset + "\n"
	return result
}

// storeDiagram describes where a24z's data lives and how the pieces fit
// together, orienting the reader before the flag reference below it.
func storeDiagram() string {
	return whiteBold + "Data directory" + reset + dim + " (created by init, colocated per repo):" + reset + `
` + gray + `┌────────────────────┐` + reset + `
` + gray + `│ ` + amber + `.a24z/` + reset + gray + `             │  ← ` + reset + dim + `notes, views, tags, types, configuration.json` + reset + `
` + gray + `└────────────────────┘` + reset + `

` + whiteBold + `Working pieces:` + reset + `
` + gray + `┌───────┐    ┌───────┐    ┌──────┐    ┌──────────────────┐` + reset + `
` + gray + `│ ` + cyan + `Notes` + reset + gray + ` │    │ ` + green + `Views` + reset + gray + ` │ ─▶ │ ` + amber + `Lint` + reset + gray + ` │ ─▶ │ ` + whiteBold + `validate-all` + reset + gray + ` │` + reset + `
` + gray + `└───────┘    └───────┘    └──────┘    └──────────────────┘` + reset + `

  ` + cyan + `Notes` + reset + dim + `   — anchored knowledge: decisions, patterns, gotchas` + reset + `
  ` + green + `Views` + reset + dim + `   — grid-shaped maps from code regions to overview docs` + reset + `
  ` + amber + `Lint` + reset + dim + `    — checks documentation against the working tree` + reset
}

var rootCmd = &cobra.Command{
	Use:   "a24z",
	Short: "a24z is a repository-embedded knowledge store",
	Long: banner() + `
a24z captures durable engineering knowledge as notes anchored to
repository paths, groups it through codebase views, and lints
documentation against the working tree and version-control history.

` + storeDiagram(),
	Version: Version,
}

// Execute runs the root command, translating the closed error taxonomy
// into exit codes: validation/not-found failures exit 1, I/O failures
// exit 2. Every command returns a wrapped error from RunE rather than
// calling os.Exit mid-command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var ioErr *errs.IoError
		if errors.As(err, &ioErr) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// commandOrder defines the display order of commands in help.
var commandOrder = map[string]int{
	"init": 1,

	"note": 10,
	"tag":  11,
	"type": 12,

	"list":     20,
	"from-doc": 21,

	"validate-all": 30,
	"lint":         31,
	"status":       32,

	"hooks": 40,

	"completion": 90,
	"help":       91,
}

func init() {
	rootCmd.SetVersionTemplate("a24z version {{.Version}}\n")

	defaultHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		sortCommandsByOrder(cmd)
		defaultHelp(cmd, args)
	})

	defaultUsage := rootCmd.UsageFunc()
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		sortCommandsByOrder(cmd)
		return defaultUsage(cmd)
	})
}

func sortCommandsByOrder(cmd *cobra.Command) {
	sort.SliceStable(cmd.Commands(), func(i, j int) bool {
		iOrder, iOk := commandOrder[cmd.Commands()[i].Name()]
		jOrder, jOk := commandOrder[cmd.Commands()[j].Name()]
		if !iOk {
			iOrder = 50
		}
		if !jOk {
			jOrder = 50
		}
		return iOrder < jOrder
	})
}
