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

type iotHubCommand struct {
	deployCommandBase

	hub        string
	sku        string
	units      int
	partitions int
}

var iotHubDoc = `
Deploys an IoT hub. The free F1 tier is used unless a SKU is given;
only one F1 hub is allowed per subscription.
`

const iotHubExamples = `
    homelab deploy iot-hub
    homelab deploy iot-hub --sku S1 --units 2 --partitions 4
`

func newIoTHubCommand() cmd.Command {
	return &iotHubCommand{deployCommandBase: newDeployBase()}
}

// Info implements cmd.Command.
func (c *iotHubCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "iot-hub",
		Purpose:  "Deploy an IoT hub.",
		Doc:      iotHubDoc,
		Examples: iotHubExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *iotHubCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.hub, "name", "", "Hub name (default <project>-<env>-iot)")
	f.StringVar(&c.sku, "sku", "", "Hub SKU (default F1)")
	f.IntVar(&c.units, "units", 0, "Number of SKU units")
	f.IntVar(&c.partitions, "partitions", 0, "Device-to-cloud partition count (2..32)")
}

// Init implements cmd.Command.
func (c *iotHubCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *iotHubCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	spec := resources.IoTHubSpec{
		HubName:        pick(c.hub, cfg.ResourceName("iot")),
		SKU:            c.sku,
		Units:          int64(c.units),
		PartitionCount: int32(c.partitions),
	}
	return c.deploy(ctx, cfg, spec)
}
