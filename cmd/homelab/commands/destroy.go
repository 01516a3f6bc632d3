// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"bufio"
	"context"
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/resources"
)

type destroyCommand struct {
	cmd.CommandBase

	kind resources.Kind
	name string
	yes  bool

	configStore config.Store
	openEnviron func(*config.Config) (environs.Environ, error)
}

var destroyDoc = `
Removes one deployed resource. Destruction cannot be undone, so the
command asks for confirmation unless --yes is given.
`

const destroyExamples = `
    homelab destroy website mylab-dev-web
    homelab destroy sql-database mylab-dev-sql --yes
`

func newDestroyCommand() cmd.Command {
	return &destroyCommand{
		configStore: config.NewFileStore(""),
		openEnviron: environs.Open,
	}
}

// Info implements cmd.Command.
func (c *destroyCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "destroy",
		Args:     "<kind> <name>",
		Purpose:  "Remove a deployed resource.",
		Doc:      destroyDoc,
		Examples: destroyExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *destroyCommand) SetFlags(f *gnuflag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation")
}

// Init implements cmd.Command.
func (c *destroyCommand) Init(args []string) error {
	if len(args) < 2 {
		return errors.New("must specify the resource kind and name")
	}
	kind, err := resources.ParseKind(args[0])
	if err != nil {
		return errors.Trace(err)
	}
	c.kind = kind
	c.name = args[1]
	return cmd.CheckEmpty(args[2:])
}

// Run implements cmd.Command.
func (c *destroyCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.configStore.Read()
	if errors.IsNotFound(err) {
		return errors.Annotate(err, `console not initialized, run "homelab config init" first`)
	} else if err != nil {
		return errors.Trace(err)
	}
	if !c.yes {
		ctx.Infof("WARNING: this will remove %s %q from %q", c.kind, c.name, cfg.ResourceGroup())
		answer, err := readConfirmation(ctx)
		if err != nil {
			return errors.Trace(err)
		}
		if answer != "y" && answer != "yes" {
			ctx.Infof("destruction aborted")
			return nil
		}
	}
	env, err := c.openEnviron(cfg)
	if err != nil {
		return errors.Trace(err)
	}
	stdctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := env.Destroy(stdctx, c.kind, c.name); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("removed %s %q", c.kind, c.name)
	return nil
}

func readConfirmation(ctx *cmd.Context) (string, error) {
	if _, err := ctx.Stdout.Write([]byte("continue? (y/N) ")); err != nil {
		return "", errors.Trace(err)
	}
	line, err := bufio.NewReader(ctx.Stdin).ReadString('\n')
	if err != nil {
		return "", errors.Annotate(err, "reading input")
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}
