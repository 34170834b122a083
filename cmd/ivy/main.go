package main

import (
	"os"

	"github.com/metaphox/ivy-lang/cmd/ivy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
