package main

import (
	"os"

	"github.com/ledgermap-dev/ledgermap/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
