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

type showCommand struct {
	cmd.CommandBase
	out cmd.Output

	configStore homelabconfig.Store
}

var showDoc = `
Prints the console configuration attributes.
`

func newShowCommand() cmd.Command {
	return &showCommand{configStore: homelabconfig.NewFileStore("")}
}

// Info implements cmd.Command.
func (c *showCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:    "show",
		Purpose: "Show the console configuration.",
		Doc:     showDoc,
	})
}

// SetFlags implements cmd.Command.
func (c *showCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, "yaml", map[string]cmd.Formatter{
		"yaml": cmd.FormatYaml,
		"json": cmd.FormatJson,
	})
}

// Init implements cmd.Command.
func (c *showCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *showCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.configStore.Read()
	if errors.IsNotFound(err) {
		return errors.Annotate(err, `console not initialized, run "homelab config init" first`)
	} else if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.out.Write(ctx, cfg.AllAttrs()))
}
