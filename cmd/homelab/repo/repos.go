// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package repo

import (
	"context"
	"io"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/cmd/output"
	"github.com/homelab/homelab/repository"
)

type reposCommand struct {
	cmd.CommandBase
	out cmd.Output

	tokenStore repository.TokenStore
	newClient  func(repository.TokenStore) (*repository.Client, error)
}

var reposDoc = `
Lists the repositories the stored token can reach, most recently
updated first.
`

func newReposCommand() cmd.Command {
	return &reposCommand{
		tokenStore: repository.NewFileTokenStore(""),
		newClient:  newGitHubClient,
	}
}

// Info implements cmd.Command.
func (c *reposCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:    "repos",
		Purpose: "List reachable GitHub repositories.",
		Doc:     reposDoc,
	})
}

// SetFlags implements cmd.Command.
func (c *reposCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"tabular": formatReposTabular,
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
	})
}

// Init implements cmd.Command.
func (c *reposCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *reposCommand) Run(ctx *cmd.Context) error {
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
		ctx.Infof("no repositories found")
		return nil
	}
	return errors.Trace(c.out.Write(ctx, repos))
}

// formatReposTabular writes a tabular view of repositories.
func formatReposTabular(writer io.Writer, value interface{}) error {
	repos, ok := value.([]repository.Repository)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", repos, value)
	}
	tw := output.TabWriter(writer)
	w := output.Wrapper{TabWriter: tw}
	w.Println("Repository", "Default branch", "Visibility", "Updated")
	for _, repo := range repos {
		visibility := "public"
		if repo.Private {
			visibility = "private"
		}
		w.Println(repo.FullName, repo.DefaultBranch, visibility, repo.UpdatedAt.Format("2006-01-02"))
	}
	return errors.Trace(tw.Flush())
}
