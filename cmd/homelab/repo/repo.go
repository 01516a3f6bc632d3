// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package repo implements the repo subcommands that connect the
// console to GitHub: token login, repository and branch listing, and
// the interactive selection wizard.
package repo

import (
	"bufio"
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/repository"
)

var repoDoc = `
Website deployments can be wired to a GitHub repository for continuous
deployment. The repo commands manage the GitHub token and pick the
repository and branch that new websites deploy from.
`

// NewRepoCommand returns the repo super command.
func NewRepoCommand() cmd.Command {
	repoCmd := homelabcmd.NewSubSuperCommand(cmd.SuperCommandParams{
		Name:        "repo",
		UsagePrefix: "homelab",
		Purpose:     "Manage the GitHub repository selection.",
		Doc:         repoDoc,
	})
	repoCmd.Register(newLoginCommand())
	repoCmd.Register(newReposCommand())
	repoCmd.Register(newBranchesCommand())
	repoCmd.Register(newSelectCommand())
	return repoCmd
}

// newGitHubClient builds a client from the stored token.
func newGitHubClient(store repository.TokenStore) (*repository.Client, error) {
	token, err := store.Token()
	if errors.IsNotFound(err) {
		return nil, errors.Annotate(err, `not logged in, run "homelab repo login" first`)
	} else if err != nil {
		return nil, errors.Trace(err)
	}
	return repository.NewClient(repository.Config{Token: token}), nil
}

// promptLine writes prompt and reads one line from the context's
// stdin.
func promptLine(ctx *cmd.Context, prompt string) (string, error) {
	if _, err := ctx.Stdout.Write([]byte(prompt)); err != nil {
		return "", errors.Trace(err)
	}
	line, err := bufio.NewReader(ctx.Stdin).ReadString('\n')
	if err != nil {
		return "", errors.Annotate(err, "reading input")
	}
	return strings.TrimSpace(line), nil
}
