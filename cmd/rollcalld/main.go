// Package main implements the Rollcall daemon (rollcalld).
// rollcalld serves the batch attendance endpoint used by rollcallctl.
package main

import (
	"os"

	"github.com/concave-dev/rollcall/cmd/rollcalld/commands"
)

func main() {
	commands.SetupCommands()

	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
