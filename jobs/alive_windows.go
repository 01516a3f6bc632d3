// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

//go:build windows

package jobs

import (
	"os"
)

// processAlive reports whether a process with the given PID exists.
// FindProcess opens a real handle on Windows, so an error means the
// process is gone.
func processAlive(pid int) bool {
	_, err := os.FindProcess(pid)
	return err == nil
}
