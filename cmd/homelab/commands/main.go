// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package commands assembles the homelab command line.
package commands

import (
	"fmt"
	"os"

	"github.com/juju/cmd/v3"
	"github.com/juju/loggo"

	homelabcmd "github.com/homelab/homelab/cmd"
	configcmd "github.com/homelab/homelab/cmd/homelab/config"
	"github.com/homelab/homelab/cmd/homelab/deploy"
	jobcmd "github.com/homelab/homelab/cmd/homelab/job"
	repocmd "github.com/homelab/homelab/cmd/homelab/repo"
	_ "github.com/homelab/homelab/provider/all"
)

var logger = loggo.GetLogger("homelab.cmd.homelab")

var homelabDoc = `
homelab provisions and tears down personal lab infrastructure on a
public cloud. Resources are named after the configured project and
environment, grouped under a single resource group, and deployed in the
foreground or as detached background jobs.

Start with

    homelab config init --project mylab
    homelab deploy website

See https://github.com/homelab/homelab for documentation.
`

// Main registers subcommands for the homelab executable and hands over
// control to cmd.Main.
func Main(args []string) {
	ctx, err := cmd.DefaultContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	hcmd := NewHomelabCommand(ctx)
	os.Exit(cmd.Main(hcmd, ctx, args[1:]))
}

// NewHomelabCommand returns the fully assembled root command.
func NewHomelabCommand(ctx *cmd.Context) cmd.Command {
	hcmd := homelabcmd.NewSuperCommand(cmd.SuperCommandParams{
		Name: "homelab",
		Doc:  homelabDoc,
	})
	registerCommands(hcmd)
	return hcmd
}

// commandRegistry is the subset of *cmd.SuperCommand the registration
// needs; tests register into a recorder.
type commandRegistry interface {
	Register(cmd.Command)
}

func registerCommands(r commandRegistry) {
	r.Register(deploy.NewDeployCommand())
	r.Register(newDestroyCommand())
	r.Register(newStatusCommand())
	r.Register(jobcmd.NewJobsCommand())
	r.Register(repocmd.NewRepoCommand())
	r.Register(configcmd.NewConfigCommand())
}
