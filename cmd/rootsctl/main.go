package main

import (
	"os"

	"roots-catalog/cmd/rootsctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
