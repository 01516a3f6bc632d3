// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package job implements the jobs subcommands for inspecting,
// watching and cleaning up deployment job records.
package job

import (
	"time"

	"github.com/juju/ansiterm"
	"github.com/juju/cmd/v3"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/cmd/output"
	"github.com/homelab/homelab/jobs"
)

var jobsDoc = `
Deployments started with --background run detached from the terminal
as jobs. The jobs commands list them, show their outcome and logs,
follow them live, and prune finished records.
`

// NewJobsCommand returns the jobs super command.
func NewJobsCommand() cmd.Command {
	jobsCmd := homelabcmd.NewSubSuperCommand(cmd.SuperCommandParams{
		Name:        "jobs",
		UsagePrefix: "homelab",
		Purpose:     "Inspect background deployment jobs.",
		Doc:         jobsDoc,
	})
	jobsCmd.Register(newListCommand())
	jobsCmd.Register(newShowCommand())
	jobsCmd.Register(newWatchCommand())
	jobsCmd.Register(newCleanupCommand())
	return jobsCmd
}

// stateHighlights maps job states onto their display colors.
var stateHighlights = map[jobs.State]*ansiterm.Context{
	jobs.StatePending:     output.WarningHighlight,
	jobs.StateRunning:     output.InfoHighlight,
	jobs.StateSucceeded:   output.GoodHighlight,
	jobs.StateFailed:      output.ErrorHighlight,
	jobs.StateInterrupted: output.ErrorHighlight,
}

// elapsed renders how long a job has been, or was, running.
func elapsed(rec jobs.Record, now time.Time) string {
	if rec.Started.IsZero() {
		return "-"
	}
	end := rec.Finished
	if end.IsZero() {
		end = now
	}
	return end.Sub(rec.Started).Round(time.Second).String()
}
