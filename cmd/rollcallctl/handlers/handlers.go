// Package handlers provides command handler functions for rollcallctl.
//
// - mark.go: attendance submission through the strategy selector
// - health.go: daemon health check
// - users.go: loading the users file for mark
//
// Handlers follow the cobra RunE signature, log through internal/logging and
// leave all formatting to the display package.
package handlers
