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

type cosmosDBCommand struct {
	deployCommandBase

	account      string
	database     string
	container    string
	partitionKey string
	serverless   bool
	throughput   int
}

var cosmosDBDoc = `
Deploys a Cosmos DB account with a SQL database, and optionally one
container in it. Serverless accounts bill per request and cannot carry
provisioned throughput.
`

const cosmosDBExamples = `
    homelab deploy cosmos-db --serverless
    homelab deploy cosmos-db --container orders --partition-key /customerId
`

func newCosmosDBCommand() cmd.Command {
	return &cosmosDBCommand{deployCommandBase: newDeployBase()}
}

// Info implements cmd.Command.
func (c *cosmosDBCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "cosmos-db",
		Purpose:  "Deploy a Cosmos DB account.",
		Doc:      cosmosDBDoc,
		Examples: cosmosDBExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *cosmosDBCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.account, "name", "", "Account name (default <project>-<env>-cosmos)")
	f.StringVar(&c.database, "database", "", "Database name (default <project>db)")
	f.StringVar(&c.container, "container", "", "Container to create in the database")
	f.StringVar(&c.partitionKey, "partition-key", "", "Container partition key path, e.g. /id")
	f.BoolVar(&c.serverless, "serverless", false, "Use consumption billing")
	f.IntVar(&c.throughput, "throughput", 0, "Provisioned RU/s for the database")
}

// Init implements cmd.Command.
func (c *cosmosDBCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *cosmosDBCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	partitionKey := c.partitionKey
	if c.container != "" && partitionKey == "" {
		partitionKey = "/id"
	}
	spec := resources.CosmosDBSpec{
		AccountName:   pick(c.account, cfg.ResourceName("cosmos")),
		DatabaseName:  pick(c.database, cfg.Project()+"db"),
		ContainerName: c.container,
		PartitionKey:  partitionKey,
		Serverless:    c.serverless,
		Throughput:    int32(c.throughput),
	}
	return c.deploy(ctx, cfg, spec)
}
