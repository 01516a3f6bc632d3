// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package cmd

import (
	"os"
	"runtime"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"

	"github.com/homelab/homelab/osenv"
	"github.com/homelab/homelab/version"
)

var logger = loggo.GetLogger("homelab.cmd")

// NewSuperCommand is like cmd.NewSuperCommand but
// it adds homelab-specific functionality:
// - The default logging configuration is taken from the environment;
// - The version is configured to the current homelab version;
// - The command emits a log message when a command runs.
func NewSuperCommand(p cmd.SuperCommandParams) *cmd.SuperCommand {
	p.Log = &cmd.Log{
		DefaultConfig: os.Getenv(osenv.HomelabLoggingConfigEnvKey),
	}
	p.Version = version.Current.String()
	p.NotifyRun = runNotifier
	return cmd.NewSuperCommand(p)
}

// Info returns an Info with the super command flags that every homelab
// command surfaces in its help output.
func Info(i *cmd.Info) *cmd.Info {
	info := *i
	info.ShowSuperFlags = []string{"debug", "quiet", "verbose", "show-log"}
	return &info
}

// NewSubSuperCommand should be used to create a SuperCommand
// that runs as a subcommand of some other SuperCommand.
func NewSubSuperCommand(p cmd.SuperCommandParams) *cmd.SuperCommand {
	p.NotifyRun = runNotifier
	return cmd.NewSuperCommand(p)
}

func runNotifier(name string) {
	logger.Infof("running %s [%s %s %s]", name, version.Current, runtime.Compiler, runtime.Version())
}
