// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package commands

import (
	"context"
	"io"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/cmd/output"
	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/resources"
)

type statusCommand struct {
	cmd.CommandBase
	out cmd.Output

	configStore config.Store
	openEnviron func(*config.Config) (environs.Environ, error)
}

var statusDoc = `
Lists the deployed resources of the lab's resource group, as reported
by the provider.
`

const statusExamples = `
    homelab status
    homelab status --format yaml
`

func newStatusCommand() cmd.Command {
	return &statusCommand{
		configStore: config.NewFileStore(""),
		openEnviron: environs.Open,
	}
}

// Info implements cmd.Command.
func (c *statusCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "status",
		Purpose:  "List the lab's deployed resources.",
		Doc:      statusDoc,
		Examples: statusExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *statusCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"tabular": formatStatusTabular,
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
	})
}

// Init implements cmd.Command.
func (c *statusCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *statusCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.configStore.Read()
	if errors.IsNotFound(err) {
		return errors.Annotate(err, `console not initialized, run "homelab config init" first`)
	} else if err != nil {
		return errors.Trace(err)
	}
	env, err := c.openEnviron(cfg)
	if err != nil {
		return errors.Trace(err)
	}
	stdctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	summaries, err := env.Resources(stdctx)
	if errors.IsNotFound(err) {
		ctx.Infof("nothing deployed yet in %q", cfg.ResourceGroup())
		return nil
	} else if err != nil {
		return errors.Trace(err)
	}
	if len(summaries) == 0 {
		ctx.Infof("nothing deployed yet in %q", cfg.ResourceGroup())
		return nil
	}
	return errors.Trace(c.out.Write(ctx, summaries))
}

// formatStatusTabular writes a tabular summary of deployed resources.
func formatStatusTabular(writer io.Writer, value interface{}) error {
	summaries, ok := value.([]resources.Summary)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", summaries, value)
	}
	tw := output.TabWriter(writer)
	w := output.Wrapper{TabWriter: tw}
	w.Println("Kind", "Name", "Status", "Location")
	for _, s := range summaries {
		w.Print(s.Kind, s.Name)
		switch s.Status {
		case "Failed", "Canceled":
			w.PrintColor(output.ErrorHighlight, s.Status)
		case "Succeeded", "Running", "Online":
			w.PrintColor(output.GoodHighlight, s.Status)
		default:
			w.PrintColor(output.InfoHighlight, s.Status)
		}
		w.Println(s.Location)
	}
	return errors.Trace(tw.Flush())
}
