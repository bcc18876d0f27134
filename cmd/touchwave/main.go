// Package main starts the touchwave command.
package main

import (
	"fmt"
	"os"

	"github.com/frudas24/touchwave/internal/cli"
)

// main is the entrypoint for the touchwave command.
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
