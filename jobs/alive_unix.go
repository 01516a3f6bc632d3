// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

//go:build !windows

package jobs

import (
	"os"
	"syscall"
)

// processAlive reports whether a process with the given PID exists.
// Signal 0 performs the permission and existence checks without
// delivering anything.
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
