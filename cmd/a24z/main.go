// Command a24z is the command-line entrypoint for the repository-embedded
// knowledge store.
package main

import "github.com/a24z-ai/a24z-memory/pkg/cli"

func main() {
	cli.Execute()
}
