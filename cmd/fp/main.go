package main

import (
	"os"

	"github.com/vkarev/family-points/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
