// Package main is the entry point for the meteortype CLI.
package main

import (
	"os"

	"github.com/tomz197/meteortype/cmd/meteortype/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
