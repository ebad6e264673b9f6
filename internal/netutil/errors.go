// Package netutil provides network helpers shared by rollcalld and rollcallctl.
//
// This file implements network error classification using type checks rather
// than string matching, so behavior is consistent across operating systems.
package netutil

import (
	"errors"
	"net"
	"syscall"
)

// IsAddressInUseError checks if an error indicates "address already in use".
// Used when the daemon pre-binds its API listener.
func IsAddressInUseError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.EADDRINUSE)
	}
	return false
}

// IsConnectionRefusedError checks if an error indicates "connection refused".
//
// rollcallctl uses it to tell an operator that rollcalld is not running, as
// opposed to the daemon being reachable but failing.
func IsConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return false
}
