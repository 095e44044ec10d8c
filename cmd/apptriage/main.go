package main

import (
	"os"

	"github.com/apptriage/apptriage/cmd/apptriage/internal/cmd"
	"github.com/apptriage/apptriage/cmd/apptriage/mcp"
	"github.com/apptriage/apptriage/cmd/apptriage/rules"
	"github.com/apptriage/apptriage/cmd/apptriage/scan"
)

func main() {
	os.Exit(cmd.Run(os.Args, os.Stdout, os.Stderr, []cmd.CommandBuilder{
		scan.Command,
		rules.Command,
		mcp.Command,
	}))
}
