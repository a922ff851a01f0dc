package main

import (
	"os"

	"github.com/leftmike/colfilter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
