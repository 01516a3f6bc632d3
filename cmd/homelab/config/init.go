// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	homelabconfig "github.com/homelab/homelab/config"
)

type initCommand struct {
	cmd.CommandBase

	project        string
	environment    string
	provider       string
	region         string
	subscriptionID string
	force          bool

	configStore homelabconfig.Store
}

var initDoc = `
Creates the console configuration. The project name is required and
stems every resource name; everything else has a sensible default.
An existing configuration is only replaced with --force.
`

const initExamples = `
    homelab config init --project mylab
    homelab config init --project mylab --environment prod --region northeurope
`

func newInitCommand() cmd.Command {
	return &initCommand{configStore: homelabconfig.NewFileStore("")}
}

// Info implements cmd.Command.
func (c *initCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "init",
		Purpose:  "Create the console configuration.",
		Doc:      initDoc,
		Examples: initExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *initCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.project, "project", "", "Project name, the stem for all resource names")
	f.StringVar(&c.environment, "environment", homelabconfig.EnvDev, "Environment: dev, test or prod")
	f.StringVar(&c.provider, "provider", homelabconfig.DefaultProvider, "Cloud provider: azure, aws or gce")
	f.StringVar(&c.region, "region", homelabconfig.DefaultRegion, "Cloud region")
	f.StringVar(&c.subscriptionID, "subscription-id", "", "Azure subscription or GCP project ID")
	f.BoolVar(&c.force, "force", false, "Replace an existing configuration")
}

// Init implements cmd.Command.
func (c *initCommand) Init(args []string) error {
	if c.project == "" {
		return errors.New("must specify --project")
	}
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *initCommand) Run(ctx *cmd.Context) error {
	if _, err := c.configStore.Read(); err == nil && !c.force {
		return errors.AlreadyExistsf("configuration (use --force to replace it)")
	} else if err != nil && !errors.IsNotFound(err) {
		return errors.Trace(err)
	}
	attrs := map[string]interface{}{
		"project":     c.project,
		"environment": c.environment,
		"provider":    c.provider,
		"region":      c.region,
	}
	if c.subscriptionID != "" {
		attrs["subscription-id"] = c.subscriptionID
	}
	cfg, err := homelabconfig.New(homelabconfig.UseDefaults, attrs)
	if err != nil {
		return errors.Trace(err)
	}
	if err := c.configStore.Write(cfg); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("initialized project %q (%s on %s in %s)",
		cfg.Project(), cfg.Environment(), cfg.Provider(), cfg.Region())
	return nil
}
