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

type serviceBusCommand struct {
	deployCommandBase

	namespace string
	sku       string
	queues    []string
	topics    []string
}

var serviceBusDoc = `
Deploys a service-bus namespace with the given queues and topics.
Topics require the Standard SKU or better.
`

const serviceBusExamples = `
    homelab deploy service-bus --queue orders
    homelab deploy service-bus --sku Standard --queue orders --topic events
`

func newServiceBusCommand() cmd.Command {
	return &serviceBusCommand{deployCommandBase: newDeployBase()}
}

// Info implements cmd.Command.
func (c *serviceBusCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "service-bus",
		Purpose:  "Deploy a service-bus namespace.",
		Doc:      serviceBusDoc,
		Examples: serviceBusExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *serviceBusCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.namespace, "name", "", "Namespace name (default <project>-<env>-bus)")
	f.StringVar(&c.sku, "sku", "", "Namespace SKU (default Standard)")
	f.Var(cmd.NewAppendStringsValue(&c.queues), "queue", "Queue to create; repeatable")
	f.Var(cmd.NewAppendStringsValue(&c.topics), "topic", "Topic to create; repeatable")
}

// Init implements cmd.Command.
func (c *serviceBusCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *serviceBusCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	spec := resources.ServiceBusSpec{
		NamespaceName: pick(c.namespace, cfg.ResourceName("bus")),
		SKU:           c.sku,
		Queues:        c.queues,
		Topics:        c.topics,
	}
	return c.deploy(ctx, cfg, spec)
}
