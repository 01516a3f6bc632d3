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

type websiteCommand struct {
	deployCommandBase

	name       string
	runtime    string
	sku        string
	repository string
	branch     string
	static     bool
}

var websiteDoc = `
Deploys a website. By default an app-service site is created on a
small plan; --static deploys a static site backed by storage instead.

If the console has a GitHub repository selected (see "homelab repo
select") the site is wired to it for continuous deployment; --repository
and --branch override the selection for this site only.
`

const websiteExamples = `
    homelab deploy website
    homelab deploy website --runtime "NODE|20-lts" --sku B1
    homelab deploy website --static --repository me/blog --branch main
`

func newWebsiteCommand() cmd.Command {
	c := &websiteCommand{deployCommandBase: newDeployBase()}
	return c
}

// Info implements cmd.Command.
func (c *websiteCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "website",
		Purpose:  "Deploy a website.",
		Doc:      websiteDoc,
		Examples: websiteExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *websiteCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.name, "name", "", "Site name (default <project>-<env>-web)")
	f.StringVar(&c.runtime, "runtime", "", "Application stack, e.g. NODE|20-lts")
	f.StringVar(&c.sku, "sku", "", "App-service plan SKU (default B1)")
	f.StringVar(&c.repository, "repository", "", "Source repository as owner/name")
	f.StringVar(&c.branch, "branch", "", "Source branch (requires --repository)")
	f.BoolVar(&c.static, "static", false, "Deploy a static site instead of an app service")
}

// Init implements cmd.Command.
func (c *websiteCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *websiteCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	spec := resources.WebsiteSpec{
		SiteName:   pick(c.name, cfg.ResourceName("web")),
		Runtime:    c.runtime,
		SKU:        c.sku,
		Repository: c.repository,
		Branch:     c.branch,
		Static:     c.static,
	}
	if spec.Repository == "" {
		spec.Repository, spec.Branch = cfg.Repository()
	}
	return c.deploy(ctx, cfg, spec)
}
