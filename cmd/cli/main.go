// Package main is the entry point for the quote CLI.
package main

import (
	"os"

	"translation-quote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
