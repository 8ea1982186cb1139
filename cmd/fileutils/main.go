package main

import (
	"os"

	"fileutils/internal/cli"
)

// Version information set by ldflags during build
var Version = "dev"

func main() {
	cli.Version = Version
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
