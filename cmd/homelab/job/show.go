// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package job

import (
	"io"
	"os"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/jobs"
)

type showCommand struct {
	cmd.CommandBase
	out cmd.Output

	jobID   string
	showLog bool

	jobDir string
	clock  clock.Clock
}

var showDoc = `
Shows one job record, including the deployment result of a succeeded
job. With --log the job's log file is written to stdout instead.
`

const showExamples = `
    homelab jobs show 1fae3a7c
    homelab jobs show 1fae3a7c --log
`

func newShowCommand() cmd.Command {
	return &showCommand{clock: clock.WallClock}
}

// Info implements cmd.Command.
func (c *showCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "show",
		Args:     "<job-id>",
		Purpose:  "Show a deployment job.",
		Doc:      showDoc,
		Examples: showExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *showCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, "yaml", map[string]cmd.Formatter{
		"yaml": cmd.FormatYaml,
		"json": cmd.FormatJson,
	})
	f.BoolVar(&c.showLog, "log", false, "Write the job's log file to stdout")
}

// Init implements cmd.Command.
func (c *showCommand) Init(args []string) error {
	if len(args) < 1 {
		return errors.New("must specify a job ID")
	}
	c.jobID = args[0]
	return cmd.CheckEmpty(args[1:])
}

// Run implements cmd.Command.
func (c *showCommand) Run(ctx *cmd.Context) error {
	store := jobs.NewStore(c.jobDir, c.clock)
	rec, err := store.Get(c.jobID)
	if err != nil {
		return errors.Trace(err)
	}
	if c.showLog {
		if rec.LogFile == "" {
			return errors.NotFoundf("log for job %q", c.jobID)
		}
		f, err := os.Open(rec.LogFile)
		if os.IsNotExist(err) {
			return errors.NotFoundf("log for job %q", c.jobID)
		} else if err != nil {
			return errors.Trace(err)
		}
		defer f.Close()
		_, err = io.Copy(ctx.Stdout, f)
		return errors.Trace(err)
	}
	rec.State = rec.EffectiveState()
	return errors.Trace(c.out.Write(ctx, rec))
}
