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

type sqlDatabaseCommand struct {
	deployCommandBase

	server        string
	database      string
	adminUser     string
	adminPassword string
	sku           string
	maxSizeGB     int
	noAzureAccess bool
}

var sqlDatabaseDoc = `
Deploys a SQL server with one database on it. The admin password is
taken from --admin-password or prompted for; it must be at least 12
characters. Unless --no-azure-access is given the server firewall is
opened to other resources of the lab.
`

const sqlDatabaseExamples = `
    homelab deploy sql-database
    homelab deploy sql-database --database shop --sku S0 --max-size-gb 10
`

func newSQLDatabaseCommand() cmd.Command {
	return &sqlDatabaseCommand{deployCommandBase: newDeployBase()}
}

// Info implements cmd.Command.
func (c *sqlDatabaseCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "sql-database",
		Purpose:  "Deploy a SQL server and database.",
		Doc:      sqlDatabaseDoc,
		Examples: sqlDatabaseExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *sqlDatabaseCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.server, "name", "", "Server name (default <project>-<env>-sql)")
	f.StringVar(&c.database, "database", "", "Database name (default <project>db)")
	f.StringVar(&c.adminUser, "admin-user", "labadmin", "Administrator login")
	f.StringVar(&c.adminPassword, "admin-password", "", "Administrator password (prompted if not given)")
	f.StringVar(&c.sku, "sku", "", "Database SKU (default Basic)")
	f.IntVar(&c.maxSizeGB, "max-size-gb", 0, "Maximum database size in GB")
	f.BoolVar(&c.noAzureAccess, "no-azure-access", false, "Do not open the firewall to other lab resources")
}

// Init implements cmd.Command.
func (c *sqlDatabaseCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *sqlDatabaseCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	password := c.adminPassword
	if password == "" {
		if password, err = promptLine(ctx, "admin password: "); err != nil {
			return errors.Trace(err)
		}
	}
	spec := resources.SQLDatabaseSpec{
		ServerName:         pick(c.server, cfg.ResourceName("sql")),
		DatabaseName:       pick(c.database, cfg.Project()+"db"),
		AdminUser:          c.adminUser,
		AdminPassword:      password,
		SKU:                c.sku,
		MaxSizeGB:          int32(c.maxSizeGB),
		AllowAzureServices: !c.noAzureAccess,
	}
	return c.deploy(ctx, cfg, spec)
}
