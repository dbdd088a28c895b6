package main

import (
	"os"

	"github.com/pablasso/kts/internal/cli"
)

func main() {
	// Without arguments the root command opens the TUI.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
