// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package job

import (
	"io"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/cmd/output"
	"github.com/homelab/homelab/jobs"
)

type listCommand struct {
	cmd.CommandBase
	out cmd.Output

	all bool

	jobDir string
	clock  clock.Clock
}

var listDoc = `
Lists deployment jobs, most recent first. By default only jobs that
are pending or running are shown; --all includes finished and
interrupted ones.
`

const listExamples = `
    homelab jobs list
    homelab jobs list --all --format yaml
`

func newListCommand() cmd.Command {
	return &listCommand{clock: clock.WallClock}
}

// Info implements cmd.Command.
func (c *listCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "list",
		Purpose:  "List deployment jobs.",
		Doc:      listDoc,
		Examples: listExamples,
		Aliases:  []string{"ls"},
	})
}

// SetFlags implements cmd.Command.
func (c *listCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"tabular": c.formatTabular,
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
	})
	f.BoolVar(&c.all, "all", false, "Include finished jobs")
}

// Init implements cmd.Command.
func (c *listCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *listCommand) Run(ctx *cmd.Context) error {
	store := jobs.NewStore(c.jobDir, c.clock)
	recs, err := store.List()
	if err != nil {
		return errors.Trace(err)
	}
	var shown []jobs.Record
	for _, rec := range recs {
		state := rec.EffectiveState()
		if !c.all && (state.Terminal() || state == jobs.StateInterrupted) {
			continue
		}
		rec.State = state
		shown = append(shown, rec)
	}
	if len(shown) == 0 {
		ctx.Infof("no jobs to display")
		return nil
	}
	return errors.Trace(c.out.Write(ctx, shown))
}

// formatTabular writes a tabular view of job records.
func (c *listCommand) formatTabular(writer io.Writer, value interface{}) error {
	recs, ok := value.([]jobs.Record)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", recs, value)
	}
	now := c.clock.Now()
	tw := output.TabWriter(writer)
	w := output.Wrapper{TabWriter: tw}
	w.Println("ID", "Kind", "Resource", "State", "Elapsed")
	for _, rec := range recs {
		w.Print(rec.ID, rec.Kind, rec.ResourceName)
		w.PrintColor(stateHighlights[rec.State], rec.State)
		w.Println(elapsed(rec, now))
	}
	return errors.Trace(tw.Flush())
}
