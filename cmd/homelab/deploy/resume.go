// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package deploy

import (
	"context"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/jobs"
	"github.com/homelab/homelab/resources"
)

// resumeCommand runs the detached leg of a background deployment. It
// is spawned by "deploy <kind> --background" and not meant to be run
// by hand; the job record carries the spec to deploy.
type resumeCommand struct {
	cmd.CommandBase

	jobID string

	configStore config.Store
	jobDir      string
	clock       clock.Clock
	openEnviron func(*config.Config) (environs.Environ, error)
}

var resumeDoc = `
Runs a spawned background deployment to completion. The job record
identified by --job-id carries the resource spec; progress and outcome
are written back to the record and the job's log file.
`

func newResumeCommand() cmd.Command {
	return &resumeCommand{
		configStore: config.NewFileStore(""),
		clock:       clock.WallClock,
		openEnviron: environs.Open,
	}
}

// Info implements cmd.Command.
func (c *resumeCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:    "resume",
		Purpose: "Run a spawned background deployment (internal).",
		Doc:     resumeDoc,
	})
}

// SetFlags implements cmd.Command.
func (c *resumeCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.jobID, "job-id", "", "ID of the job record to run")
}

// Init implements cmd.Command.
func (c *resumeCommand) Init(args []string) error {
	if c.jobID == "" {
		return errors.New("must specify --job-id")
	}
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *resumeCommand) Run(ctx *cmd.Context) error {
	store := jobs.NewStore(c.jobDir, c.clock)
	tracker, err := jobs.AdoptTracker(store, c.clock, c.jobID)
	if err != nil {
		return errors.Trace(err)
	}
	// Everything after adoption runs inside the tracker so that any
	// failure, including a bad record, lands in the job outcome.
	stdctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err = tracker.Run(stdctx, func(stdctx context.Context) (*resources.Result, error) {
		rec := tracker.Record()
		kind, err := resources.ParseKind(rec.Kind)
		if err != nil {
			return nil, errors.Trace(err)
		}
		spec, err := resources.DecodeSpec(kind, rec.Spec)
		if err != nil {
			return nil, errors.Annotatef(err, "job %s spec", rec.ID)
		}
		if err := spec.Validate(); err != nil {
			return nil, errors.Trace(err)
		}
		cfg, err := c.configStore.Read()
		if err != nil {
			return nil, errors.Trace(err)
		}
		env, err := c.openEnviron(cfg)
		if err != nil {
			return nil, errors.Trace(err)
		}
		logger.Infof("resuming job %s: %s %q", rec.ID, rec.Kind, rec.ResourceName)
		if err := env.PrepareGroup(stdctx); err != nil {
			return nil, errors.Trace(err)
		}
		return env.Deploy(stdctx, spec)
	})
	return errors.Trace(err)
}
