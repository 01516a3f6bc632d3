// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package job

import (
	"bufio"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/jobs"
)

type cleanupCommand struct {
	cmd.CommandBase

	age time.Duration
	yes bool

	jobDir string
	clock  clock.Clock
}

var cleanupDoc = `
Removes finished and interrupted job records older than the given age,
along with their log files. Pending and running jobs are never
removed.
`

const cleanupExamples = `
    homelab jobs cleanup
    homelab jobs cleanup --age 24h --yes
`

func newCleanupCommand() cmd.Command {
	return &cleanupCommand{clock: clock.WallClock}
}

// Info implements cmd.Command.
func (c *cleanupCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "cleanup",
		Purpose:  "Remove old job records.",
		Doc:      cleanupDoc,
		Examples: cleanupExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *cleanupCommand) SetFlags(f *gnuflag.FlagSet) {
	f.DurationVar(&c.age, "age", 7*24*time.Hour, "Remove records finished longer ago than this")
	f.BoolVar(&c.yes, "yes", false, "Do not ask for confirmation")
}

// Init implements cmd.Command.
func (c *cleanupCommand) Init(args []string) error {
	if c.age < 0 {
		return errors.NotValidf("age %v", c.age)
	}
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *cleanupCommand) Run(ctx *cmd.Context) error {
	if !c.yes {
		if _, err := ctx.Stdout.Write([]byte("remove old job records? (y/N) ")); err != nil {
			return errors.Trace(err)
		}
		line, err := bufio.NewReader(ctx.Stdin).ReadString('\n')
		if err != nil {
			return errors.Annotate(err, "reading input")
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
		default:
			ctx.Infof("cleanup aborted")
			return nil
		}
	}
	store := jobs.NewStore(c.jobDir, c.clock)
	removed, err := store.Prune(c.age)
	if err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("removed %d job record(s)", len(removed))
	return nil
}
