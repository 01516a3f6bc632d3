// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config implements the config subcommands that initialize
// and edit the console configuration.
package config

import (
	"github.com/juju/cmd/v3"

	homelabcmd "github.com/homelab/homelab/cmd"
)

var configDoc = `
The console configuration names the project, environment, provider and
region every deployment uses. It lives in a small YAML file under the
data directory (HOMELAB_DATA overrides the location).
`

// NewConfigCommand returns the config super command.
func NewConfigCommand() cmd.Command {
	configCmd := homelabcmd.NewSubSuperCommand(cmd.SuperCommandParams{
		Name:        "config",
		UsagePrefix: "homelab",
		Purpose:     "Manage the console configuration.",
		Doc:         configDoc,
	})
	configCmd.Register(newInitCommand())
	configCmd.Register(newShowCommand())
	configCmd.Register(newSetCommand())
	return configCmd
}
