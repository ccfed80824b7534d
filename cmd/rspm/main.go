package main

import (
	"os"

	"github.com/msto63/rspm/cmd/rspm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
