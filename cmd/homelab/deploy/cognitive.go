// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package deploy

import (
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/resources"
)

type cognitiveCommand struct {
	deployCommandBase

	account string
	apiKind string
	sku     string
}

var cognitiveDoc = `
Deploys a cognitive-services account for the given API kind, for
example TextAnalytics, ComputerVision, SpeechServices or OpenAI. The
account key and endpoint are printed once when the deployment
finishes.
`

const cognitiveExamples = `
    homelab deploy cognitive TextAnalytics
    homelab deploy cognitive SpeechServices --sku S0
`

func newCognitiveCommand() cmd.Command {
	return &cognitiveCommand{deployCommandBase: newDeployBase()}
}

// Info implements cmd.Command.
func (c *cognitiveCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "cognitive",
		Args:     "<api-kind>",
		Purpose:  "Deploy a cognitive-services account.",
		Doc:      cognitiveDoc,
		Examples: cognitiveExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *cognitiveCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.account, "name", "", "Account name (default <project>-<env>-cog)")
	f.StringVar(&c.sku, "sku", "", "Account SKU (default S0)")
}

// Init implements cmd.Command.
func (c *cognitiveCommand) Init(args []string) error {
	if len(args) < 1 {
		return errors.New("must specify the API kind, e.g. TextAnalytics")
	}
	c.apiKind = args[0]
	return cmd.CheckEmpty(args[1:])
}

// Run implements cmd.Command.
func (c *cognitiveCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	spec := resources.CognitiveServicesSpec{
		AccountName: pick(c.account, cfg.ResourceName("cog")),
		APIKind:     c.apiKind,
		SKU:         c.sku,
	}
	return c.deploy(ctx, cfg, spec)
}
