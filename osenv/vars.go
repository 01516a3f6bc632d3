// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package osenv resolves the environment variables and directories
// used by the homelab console.
package osenv

import (
	"os"
	"path/filepath"
	"runtime"
)

const (
	// HomelabDataEnvKey overrides the directory holding config and
	// job records.
	HomelabDataEnvKey = "HOMELAB_DATA"

	// HomelabLoggingConfigEnvKey holds a loggo specification applied
	// at startup.
	HomelabLoggingConfigEnvKey = "HOMELAB_LOGGING_CONFIG"

	// HomelabGitHubTokenEnvKey overrides the stored GitHub token.
	HomelabGitHubTokenEnvKey = "HOMELAB_GITHUB_TOKEN"
)

// DataHome returns the directory where homelab stores its config file,
// job records and job logs. HOMELAB_DATA wins; otherwise the XDG data
// home is used.
func DataHome() string {
	if d := os.Getenv(HomelabDataEnvKey); d != "" {
		return d
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "homelab")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory rather than guessing
		// at platform conventions.
		return ".homelab"
	}
	if runtime.GOOS == "windows" {
		return filepath.Join(home, "AppData", "Local", "homelab")
	}
	return filepath.Join(home, ".local", "share", "homelab")
}

// JobsDir returns the directory holding serialized job records.
func JobsDir() string {
	return filepath.Join(DataHome(), "jobs")
}

// LogDir returns the directory holding per-job log files.
func LogDir() string {
	return filepath.Join(DataHome(), "logs")
}
