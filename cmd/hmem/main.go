package main

import (
	"os"

	"github.com/sarchlab/hmem/cmd/hmem/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
