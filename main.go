package main

import (
	"os"

	"github.com/adalundhe/atlas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
