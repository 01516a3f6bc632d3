// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package repo

import (
	"context"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/repository"
)

type loginCommand struct {
	cmd.CommandBase

	token string

	tokenStore repository.TokenStore
	newClient  func(token string) *repository.Client
}

var loginDoc = `
Stores a GitHub personal access token after validating it against the
API. The token needs the repo scope to list private repositories. The
HOMELAB_GITHUB_TOKEN environment variable overrides the stored token.
`

const loginExamples = `
    homelab repo login
    homelab repo login --token ghp_xxxx
`

func newLoginCommand() cmd.Command {
	return &loginCommand{
		tokenStore: repository.NewFileTokenStore(""),
		newClient: func(token string) *repository.Client {
			return repository.NewClient(repository.Config{Token: token})
		},
	}
}

// Info implements cmd.Command.
func (c *loginCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "login",
		Purpose:  "Store and validate a GitHub token.",
		Doc:      loginDoc,
		Examples: loginExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *loginCommand) SetFlags(f *gnuflag.FlagSet) {
	f.StringVar(&c.token, "token", "", "Personal access token (prompted if not given)")
}

// Init implements cmd.Command.
func (c *loginCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *loginCommand) Run(ctx *cmd.Context) error {
	token := c.token
	if token == "" {
		var err error
		if token, err = promptLine(ctx, "GitHub token: "); err != nil {
			return errors.Trace(err)
		}
	}
	if token == "" {
		return errors.NotValidf("empty token")
	}
	stdctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	user, err := c.newClient(token).ValidateToken(stdctx)
	if err != nil {
		return errors.Annotate(err, "validating token")
	}
	if err := c.tokenStore.SetToken(token); err != nil {
		return errors.Trace(err)
	}
	ctx.Infof("logged in as %s", user.Login)
	return nil
}
