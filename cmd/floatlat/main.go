package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/roach88/floatlat/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := cli.NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		// Commands report their own errors; anything else comes from cobra
		// itself (unknown command, bad flags).
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return cli.ExitCommandError
		}
		return exitErr.Code
	}
	return cli.ExitSuccess
}
