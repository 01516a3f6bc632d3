// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package azure implements the Azure provider. Every resource kind the
// console knows about deploys natively through the Azure resource
// manager SDKs; nothing shells out to the az CLI.
package azure

import (
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/homelab/homelab/environs"
)

// Logger for the Azure provider.
var logger = loggo.GetLogger("homelab.provider.azure")

// ProviderConfig contains the configuration for the Azure provider.
type ProviderConfig struct {
	// NewCredential returns the token credential used by all
	// resource manager clients.
	NewCredential func() (azcore.TokenCredential, error)

	// NewClients builds the per-service clients for a subscription.
	NewClients func(subscriptionID string, cred azcore.TokenCredential) (*Clients, error)

	// RetryClock is used when retrying API calls.
	RetryClock clock.Clock
}

// Validate validates the Azure provider configuration.
func (cfg ProviderConfig) Validate() error {
	if cfg.NewCredential == nil {
		return errors.NotValidf("nil NewCredential")
	}
	if cfg.NewClients == nil {
		return errors.NotValidf("nil NewClients")
	}
	if cfg.RetryClock == nil {
		return errors.NotValidf("nil RetryClock")
	}
	return nil
}

type azureProvider struct {
	config ProviderConfig
}

// NewProvider returns a new environs.Provider for Azure.
func NewProvider(config ProviderConfig) (environs.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Annotate(err, "validating provider configuration")
	}
	return &azureProvider{config: config}, nil
}

// ValidateCloud is part of the environs.Provider interface.
func (prov *azureProvider) ValidateCloud(cloud environs.CloudSpec) error {
	if cloud.SubscriptionID == "" {
		return errors.NotValidf("missing subscription-id")
	}
	if cloud.Region == "" {
		return errors.NotValidf("missing region")
	}
	return nil
}

// Open is part of the environs.Provider interface.
func (prov *azureProvider) Open(args environs.OpenParams) (environs.Environ, error) {
	logger.Debugf("opening lab %q", args.Config.Project())
	cred, err := prov.config.NewCredential()
	if err != nil {
		return nil, errors.Annotate(err, "obtaining credential")
	}
	clients, err := prov.config.NewClients(args.Cloud.SubscriptionID, cred)
	if err != nil {
		return nil, errors.Annotate(err, "creating clients")
	}
	return newEnviron(args, clients, prov.config.RetryClock), nil
}

// defaultCredential builds a chained credential covering environment
// variables, managed identity and az CLI login, in that order.
func defaultCredential() (azcore.TokenCredential, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return cred, nil
}
