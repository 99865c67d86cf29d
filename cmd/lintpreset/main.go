// Package main provides the lintpreset command.
package main

import (
	"os"

	"github.com/leapstack-labs/lintpreset/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
