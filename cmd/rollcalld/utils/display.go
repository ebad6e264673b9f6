// Package utils contains utility functions for the Rollcall daemon.
package utils

import (
	"fmt"
)

// DisplayLogo prints the Rollcall ASCII logo with version information
func DisplayLogo(version string) {
	fmt.Println()
	fmt.Println(` ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░
 ░█▀▄░█▀█░█░░░█░░░█▀▀░█▀█░█░░░█░░░
 ░█▀▄░█░█░█░░░█░░░█░░░█▀█░█░░░█░░░
 ░▀░▀░▀▀▀░▀▀▀░▀▀▀░▀▀▀░▀░▀░▀▀▀░▀▀▀░
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░`)
	fmt.Printf("\n Rollcall v%s - Batch Attendance Daemon\n", version)
	fmt.Println(" Paced, bounded submissions to the attendance portal")
	fmt.Println()
}
