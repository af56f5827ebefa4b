package main

import (
	"os"

	"github.com/spacious-labs/wordfreq-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = ""

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
