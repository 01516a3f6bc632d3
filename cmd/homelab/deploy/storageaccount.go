// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package deploy

import (
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/resources"
)

type storageAccountCommand struct {
	deployCommandBase

	account       string
	sku           string
	accessTier    string
	staticWebsite bool
	indexDocument string
	containers    []string
}

var storageAccountDoc = `
Deploys a storage account, optionally with blob containers and the
static-website endpoint enabled. Account names allow only lowercase
letters and digits, so the default name is the project and environment
with the separators stripped.
`

const storageAccountExamples = `
    homelab deploy storage-account
    homelab deploy storage-account --container assets --container backups
    homelab deploy storage-account --static-website --index-document index.html
`

func newStorageAccountCommand() cmd.Command {
	return &storageAccountCommand{deployCommandBase: newDeployBase()}
}

// Info implements cmd.Command.
func (c *storageAccountCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "storage-account",
		Purpose:  "Deploy a storage account.",
		Doc:      storageAccountDoc,
		Examples: storageAccountExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *storageAccountCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.account, "name", "", "Account name (default derived from project and environment)")
	f.StringVar(&c.sku, "sku", "", "Account SKU (default Standard_LRS)")
	f.StringVar(&c.accessTier, "access-tier", "", "Blob access tier, Hot or Cool")
	f.BoolVar(&c.staticWebsite, "static-website", false, "Enable the static-website endpoint")
	f.StringVar(&c.indexDocument, "index-document", "", "Index document for the static website (default index.html)")
	f.Var(cmd.NewAppendStringsValue(&c.containers), "container", "Blob container to create; repeatable")
}

// Init implements cmd.Command.
func (c *storageAccountCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// defaultAccountName strips the characters storage accounts reject
// from the canonical resource name.
func defaultAccountName(cfg *config.Config) string {
	name := strings.ReplaceAll(cfg.ResourceName("store"), "-", "")
	if len(name) > 24 {
		name = name[:24]
	}
	return name
}

// Run implements cmd.Command.
func (c *storageAccountCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	indexDocument := c.indexDocument
	if c.staticWebsite && indexDocument == "" {
		indexDocument = "index.html"
	}
	spec := resources.StorageAccountSpec{
		AccountName:   pick(c.account, defaultAccountName(cfg)),
		SKU:           c.sku,
		AccessTier:    c.accessTier,
		StaticWebsite: c.staticWebsite,
		IndexDocument: indexDocument,
		Containers:    c.containers,
	}
	return c.deploy(ctx, cfg, spec)
}
