// Package main is the entry point for the logtree CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/runoshun/logtree/internal/app"
	"github.com/runoshun/logtree/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := cli.NewRootCommand(app.New, version)
	return cli.Execute(context.Background(), rootCmd, os.Args[1:])
}
