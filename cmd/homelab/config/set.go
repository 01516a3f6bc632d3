// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"

	homelabcmd "github.com/homelab/homelab/cmd"
	homelabconfig "github.com/homelab/homelab/config"
)

type setCommand struct {
	cmd.CommandBase

	attrs map[string]interface{}

	configStore homelabconfig.Store
}

var setDoc = `
Updates console configuration attributes, given as key=value pairs.
The new configuration is validated as a whole before it is written.
`

const setExamples = `
    homelab config set region=northeurope
    homelab config set environment=prod subscription-id=00000000-...
`

func newSetCommand() cmd.Command {
	return &setCommand{configStore: homelabconfig.NewFileStore("")}
}

// Info implements cmd.Command.
func (c *setCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "set",
		Args:     "<key>=<value> ...",
		Purpose:  "Update console configuration attributes.",
		Doc:      setDoc,
		Examples: setExamples,
	})
}

// Init implements cmd.Command.
func (c *setCommand) Init(args []string) error {
	if len(args) == 0 {
		return errors.New("must specify at least one key=value pair")
	}
	c.attrs = make(map[string]interface{})
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return errors.NotValidf("argument %q", arg)
		}
		c.attrs[key] = value
	}
	return nil
}

// Run implements cmd.Command.
func (c *setCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.configStore.Read()
	if errors.IsNotFound(err) {
		return errors.Annotate(err, `console not initialized, run "homelab config init" first`)
	} else if err != nil {
		return errors.Trace(err)
	}
	cfg, err = cfg.Apply(c.attrs)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.configStore.Write(cfg))
}
