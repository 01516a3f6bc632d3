// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package job

import (
	"time"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"
	"github.com/juju/worker/v4"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/cmd/output"
	"github.com/homelab/homelab/jobs"
)

type watchCommand struct {
	cmd.CommandBase

	interval time.Duration
	forever  bool

	jobDir string
	clock  clock.Clock
}

var watchDoc = `
Follows the deployment jobs live, printing a fresh snapshot whenever a
job changes state. The command returns once no job is pending or
running; --forever keeps watching for new jobs instead.
`

const watchExamples = `
    homelab jobs watch
    homelab jobs watch --interval 10s --forever
`

func newWatchCommand() cmd.Command {
	return &watchCommand{clock: clock.WallClock}
}

// Info implements cmd.Command.
func (c *watchCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "watch",
		Purpose:  "Follow deployment jobs until they finish.",
		Doc:      watchDoc,
		Examples: watchExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *watchCommand) SetFlags(f *gnuflag.FlagSet) {
	f.DurationVar(&c.interval, "interval", 2*time.Second, "Polling interval when file notifications are unavailable")
	f.BoolVar(&c.forever, "forever", false, "Keep watching after all jobs have finished")
}

// Init implements cmd.Command.
func (c *watchCommand) Init(args []string) error {
	if c.interval <= 0 {
		return errors.NotValidf("interval %v", c.interval)
	}
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *watchCommand) Run(ctx *cmd.Context) error {
	store := jobs.NewStore(c.jobDir, c.clock)
	monitor, err := jobs.NewMonitor(jobs.MonitorConfig{
		Store:    store,
		Clock:    c.clock,
		Interval: c.interval,
	})
	if err != nil {
		return errors.Trace(err)
	}
	defer func() { _ = worker.Stop(monitor) }()

	dead := make(chan error, 1)
	go func() { dead <- monitor.Wait() }()
	for {
		select {
		case err := <-dead:
			return errors.Trace(err)
		case recs := <-monitor.Changes():
			if err := c.printSnapshot(ctx, recs); err != nil {
				return errors.Trace(err)
			}
			if !c.forever && !anyActive(recs) {
				ctx.Infof("all jobs finished")
				return nil
			}
		}
	}
}

func anyActive(recs []jobs.Record) bool {
	for _, rec := range recs {
		if rec.State == jobs.StatePending || rec.State == jobs.StateRunning {
			return true
		}
	}
	return false
}

func (c *watchCommand) printSnapshot(ctx *cmd.Context, recs []jobs.Record) error {
	if len(recs) == 0 {
		ctx.Infof("no jobs yet")
		return nil
	}
	now := c.clock.Now()
	tw := output.TabWriter(ctx.Stdout)
	w := output.Wrapper{TabWriter: tw}
	w.Println("ID", "Kind", "Resource", "State", "Elapsed")
	for _, rec := range recs {
		w.Print(rec.ID, rec.Kind, rec.ResourceName)
		w.PrintColor(stateHighlights[rec.State], rec.State)
		w.Println(elapsed(rec, now))
	}
	if err := tw.Flush(); err != nil {
		return errors.Trace(err)
	}
	_, err := ctx.Stdout.Write([]byte("\n"))
	return errors.Trace(err)
}
