// Package main provides the entry point for the Rollcall CLI (rollcallctl).
//
// Commands are declared in the commands package and wired to their handlers
// here, together with global and per-command flags.
package main

import (
	"os"

	"github.com/concave-dev/rollcall/cmd/rollcallctl/commands"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/config"
	"github.com/concave-dev/rollcall/cmd/rollcallctl/handlers"
)

func init() {
	rootCmd := commands.RootCmd

	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()

	commands.SetupGlobalFlags(rootCmd, &config.Global.APIAddr, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Verbose, &config.Global.Output, config.DefaultAPIAddr)
	commands.SetupMarkFlags(commands.GetMarkCommand())
	commands.SetupHealthFlags(commands.GetHealthCommand(), &config.Health.Watch)

	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	commands.GetMarkCommand().RunE = handlers.HandleMark
	commands.GetHealthCommand().RunE = handlers.HandleHealth
}

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
