// Package main provides the paws command, a parser and toolset for cPaws.
package main

import (
	"os"

	"github.com/leapstack-labs/paws/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
