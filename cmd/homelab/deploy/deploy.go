// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package deploy implements the deploy subcommands, one per resource
// kind, plus the internal resume subcommand that runs the detached leg
// of a background deployment.
package deploy

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"

	homelabcmd "github.com/homelab/homelab/cmd"
)

var logger = loggo.GetLogger("homelab.cmd.deploy")

var deployDoc = `
deploy creates or updates one resource of the lab on the configured
provider. Resource names default to <project>-<environment>-<suffix>
and every resource lands in the lab's resource group, which is created
on first use.

With --background the deployment runs detached from the terminal as a
job; follow it with "homelab jobs watch".
`

// NewDeployCommand returns the deploy super command.
func NewDeployCommand() cmd.Command {
	deployCmd := homelabcmd.NewSubSuperCommand(cmd.SuperCommandParams{
		Name:        "deploy",
		UsagePrefix: "homelab",
		Purpose:     "Deploy a lab resource.",
		Doc:         deployDoc,
	})
	deployCmd.Register(newWebsiteCommand())
	deployCmd.Register(newSQLDatabaseCommand())
	deployCmd.Register(newCosmosDBCommand())
	deployCmd.Register(newIoTHubCommand())
	deployCmd.Register(newCognitiveCommand())
	deployCmd.Register(newDNSZoneCommand())
	deployCmd.Register(newVPNGatewayCommand())
	deployCmd.Register(newStorageAccountCommand())
	deployCmd.Register(newEventHubCommand())
	deployCmd.Register(newServiceBusCommand())
	deployCmd.Register(newResumeCommand())
	return deployCmd
}
