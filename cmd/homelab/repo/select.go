// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package repo

import (
	"context"
	"fmt"
	"strconv"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/repository"
)

type selectCommand struct {
	cmd.CommandBase

	tokenStore  repository.TokenStore
	configStore config.Store
	newClient   func(repository.TokenStore) (*repository.Client, error)
}

var selectDoc = `
Walks through picking the repository and branch that new website
deployments are wired to. The selection is written into the console
configuration as the repository and repository-branch attributes.
`

func newSelectCommand() cmd.Command {
	return &selectCommand{
		tokenStore:  repository.NewFileTokenStore(""),
		configStore: config.NewFileStore(""),
		newClient:   newGitHubClient,
	}
}

// Info implements cmd.Command.
func (c *selectCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:    "select",
		Purpose: "Pick the repository and branch for website deployments.",
		Doc:     selectDoc,
	})
}

// Init implements cmd.Command.
func (c *selectCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *selectCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.configStore.Read()
	if errors.IsNotFound(err) {
		return errors.Annotate(err, `console not initialized, run "homelab config init" first`)
	} else if err != nil {
		return errors.Trace(err)
	}
	client, err := c.newClient(c.tokenStore)
	if err != nil {
		return errors.Trace(err)
	}
	stdctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := client.Repositories(stdctx)
	if err != nil {
		return errors.Trace(err)
	}
	if len(repos) == 0 {
		return errors.NotFoundf("repositories for this token")
	}
	for i, repo := range repos {
		fmt.Fprintf(ctx.Stdout, "%3d  %s\n", i+1, repo.FullName)
	}
	repo, err := chooseIndex(ctx, "repository", len(repos))
	if err != nil {
		return errors.Trace(err)
	}
	selected := repos[repo]

	branches, err := client.Branches(stdctx, selected.FullName)
	if err != nil {
		return errors.Trace(err)
	}
	branchName := selected.DefaultBranch
	if len(branches) > 1 {
		for i, b := range branches {
			fmt.Fprintf(ctx.Stdout, "%3d  %s\n", i+1, b.Name)
		}
		prompt := fmt.Sprintf("branch [%s]", branchName)
		choice, err := promptLine(ctx, prompt+": ")
		if err != nil {
			return errors.Trace(err)
		}
		if choice != "" {
			i, err := strconv.Atoi(choice)
			if err != nil || i < 1 || i > len(branches) {
				return errors.NotValidf("choice %q", choice)
			}
			branchName = branches[i-1].Name
		}
	}

	cfg, err = cfg.Apply(map[string]interface{}{
		"repository":        selected.FullName,
		"repository-branch": branchName,
	})
	if err != nil {
		return errors.Trace(err)
	}
	if err := c.configStore.Write(cfg); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("selected %s@%s", selected.FullName, branchName)
	return nil
}

// chooseIndex prompts for a 1-based choice and returns it 0-based.
func chooseIndex(ctx *cmd.Context, what string, n int) (int, error) {
	choice, err := promptLine(ctx, what+": ")
	if err != nil {
		return 0, errors.Trace(err)
	}
	i, err := strconv.Atoi(choice)
	if err != nil || i < 1 || i > n {
		return 0, errors.NotValidf("choice %q", choice)
	}
	return i - 1, nil
}
