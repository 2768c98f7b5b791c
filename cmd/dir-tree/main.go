package main

import (
	"os"

	"github.com/bethropolis/dir-tree/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
