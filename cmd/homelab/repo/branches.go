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
	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/repository"
)

type branchesCommand struct {
	cmd.CommandBase
	out cmd.Output

	repoName string

	tokenStore  repository.TokenStore
	configStore config.Store
	newClient   func(repository.TokenStore) (*repository.Client, error)
}

var branchesDoc = `
Lists the branches of a repository given as owner/name. Without an
argument the currently selected repository is used.
`

const branchesExamples = `
    homelab repo branches
    homelab repo branches me/blog
`

func newBranchesCommand() cmd.Command {
	return &branchesCommand{
		tokenStore:  repository.NewFileTokenStore(""),
		configStore: config.NewFileStore(""),
		newClient:   newGitHubClient,
	}
}

// Info implements cmd.Command.
func (c *branchesCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "branches",
		Args:     "[<owner>/<name>]",
		Purpose:  "List the branches of a repository.",
		Doc:      branchesDoc,
		Examples: branchesExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *branchesCommand) SetFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, "tabular", map[string]cmd.Formatter{
		"tabular": formatBranchesTabular,
		"yaml":    cmd.FormatYaml,
		"json":    cmd.FormatJson,
	})
}

// Init implements cmd.Command.
func (c *branchesCommand) Init(args []string) error {
	if len(args) > 0 {
		c.repoName = args[0]
		args = args[1:]
	}
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *branchesCommand) Run(ctx *cmd.Context) error {
	repoName := c.repoName
	if repoName == "" {
		cfg, err := c.configStore.Read()
		if err != nil {
			return errors.Annotate(err, "no repository given and none selected")
		}
		if repoName, _ = cfg.Repository(); repoName == "" {
			return errors.New(`no repository given and none selected, run "homelab repo select"`)
		}
	}
	client, err := c.newClient(c.tokenStore)
	if err != nil {
		return errors.Trace(err)
	}
	stdctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	branches, err := client.Branches(stdctx, repoName)
	if err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(c.out.Write(ctx, branches))
}

// formatBranchesTabular writes a tabular view of branches.
func formatBranchesTabular(writer io.Writer, value interface{}) error {
	branches, ok := value.([]repository.Branch)
	if !ok {
		return errors.Errorf("expected value of type %T, got %T", branches, value)
	}
	tw := output.TabWriter(writer)
	w := output.Wrapper{TabWriter: tw}
	w.Println("Branch", "Protected")
	for _, b := range branches {
		w.Println(b.Name, b.Protected)
	}
	return errors.Trace(tw.Flush())
}
