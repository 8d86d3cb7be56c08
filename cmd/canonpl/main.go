package main

import (
	"os"

	"github.com/canonpl-dev/canonpl/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
