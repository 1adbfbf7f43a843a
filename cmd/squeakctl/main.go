package main

import (
	"os"

	"github.com/squeaknode/squeakweb/cmd/squeakctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
