// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package deploy

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/resources"
)

type eventHubCommand struct {
	deployCommandBase

	namespace      string
	hub            string
	partitions     int
	retentionDays  int
	consumerGroups []string
}

var eventHubDoc = `
Deploys an event-hubs namespace with one hub in it, plus any consumer
groups given. The namespace's root connection string is printed once
when the deployment finishes.
`

const eventHubExamples = `
    homelab deploy event-hub
    homelab deploy event-hub --hub telemetry --partitions 4 --consumer-group dashboard
`

func newEventHubCommand() cmd.Command {
	return &eventHubCommand{deployCommandBase: newDeployBase()}
}

// Info implements cmd.Command.
func (c *eventHubCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "event-hub",
		Purpose:  "Deploy an event-hubs namespace and hub.",
		Doc:      eventHubDoc,
		Examples: eventHubExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *eventHubCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.namespace, "name", "", "Namespace name (default <project>-<env>-events)")
	f.StringVar(&c.hub, "hub", "telemetry", "Hub name within the namespace")
	f.IntVar(&c.partitions, "partitions", 0, "Partition count (1..32)")
	f.IntVar(&c.retentionDays, "retention-days", 0, "Message retention in days (1..7)")
	f.Var(cmd.NewAppendStringsValue(&c.consumerGroups), "consumer-group", "Consumer group to create; repeatable")
}

// Init implements cmd.Command.
func (c *eventHubCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *eventHubCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	spec := resources.EventHubSpec{
		NamespaceName:  pick(c.namespace, cfg.ResourceName("events")),
		HubName:        c.hub,
		PartitionCount: int64(c.partitions),
		RetentionDays:  int64(c.retentionDays),
		ConsumerGroups: c.consumerGroups,
	}
	return c.deploy(ctx, cfg, spec)
}
