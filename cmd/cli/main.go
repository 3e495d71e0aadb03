package main

import (
	"fmt"
	"os"

	"github.com/de-tools/pulse-atlas/pkg/runtime/terminal"
	"github.com/de-tools/pulse-atlas/pkg/services/acts"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Runner: acts.NewDispatcher(acts.NewDefaultRegistry(), nil),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
