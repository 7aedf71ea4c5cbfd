package main

import (
	"fmt"
	"os"

	"github.com/carillon-io/carillon-core/commands/carillon"
)

func main() {
	cmd := carillon.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
