// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

func (env *azureEnviron) deployCognitive(ctx context.Context, spec resources.CognitiveServicesSpec) (*resources.Result, error) {
	group := env.group()
	sku := spec.SKU
	if sku == "" {
		sku = "S0"
	}
	account, err := env.clients.Cognitive.CreateAccount(ctx, group, spec.AccountName, armcognitiveservices.Account{
		Location: to.Ptr(env.cloud.Region),
		Kind:     to.Ptr(spec.APIKind),
		SKU:      &armcognitiveservices.SKU{Name: to.Ptr(sku)},
		Properties: &armcognitiveservices.AccountProperties{
			// A custom subdomain is required for token auth and for
			// most newer service kinds.
			CustomSubDomainName: to.Ptr(spec.AccountName),
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating account")
	}

	keys, err := env.clients.Cognitive.ListAccountKeys(ctx, group, spec.AccountName)
	if err != nil {
		return nil, errors.Annotate(err, "listing account keys")
	}

	result := &resources.Result{
		Endpoints: map[string]string{},
		Keys:      map[string]string{},
		Attributes: map[string]string{
			"service": spec.APIKind,
			"sku":     sku,
		},
	}
	if account.Properties != nil && account.Properties.Endpoint != nil {
		result.Endpoints["api"] = *account.Properties.Endpoint
	}
	if keys.Key1 != nil {
		result.Keys["key1"] = *keys.Key1
	}
	return result, nil
}
