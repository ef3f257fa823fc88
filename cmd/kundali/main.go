package main

import (
	"os"

	"github.com/yanqian/kundali/cmd/kundali/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
