// Command apiserver starts the LeadScout API server directly, equivalent to
// "leadscout serve". Kept as a separate binary for container images that ship
// only the server.
package main

import (
	"fmt"
	"os"

	"github.com/turtacn/LeadScout/internal/interfaces/cli"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func init() {
	cli.Version = version
	cli.GitCommit = commit
	cli.BuildDate = buildDate
}

func main() {
	root := cli.NewRootCommand()
	root.SetArgs(append([]string{"serve"}, os.Args[1:]...))
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

//Personal.AI order the ending
