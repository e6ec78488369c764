package main

import (
	"os"

	"github.com/msto63/taxwise/cmd/taxwise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
