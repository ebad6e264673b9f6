// Package utils provides utility functions for the rollcallctl CLI.
package utils

import (
	"github.com/concave-dev/rollcall/cmd/rollcallctl/config"
	configDefaults "github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/logging"
)

// SetupLogging configures CLI logging behavior based on environment and config.
// DEBUG=true shows everything, --verbose shows logs at --log-level, otherwise
// only errors are printed so command output stays readable.
func SetupLogging() {
	env, err := configDefaults.ParseEnv()
	if err == nil && env.Debug {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
		return
	}

	if config.Global.Verbose {
		logging.RestoreOutput()
		logging.SetLevel(config.Global.LogLevel)
		return
	}

	logging.SetLevel(config.Global.LogLevel)
	logging.SuppressOutput()
}
