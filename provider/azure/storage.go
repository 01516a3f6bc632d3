// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

const defaultStorageSKU = "Standard_LRS"

func (env *azureEnviron) deployStorageAccount(ctx context.Context, spec resources.StorageAccountSpec) (*resources.Result, error) {
	group := env.group()
	sku := spec.SKU
	if sku == "" {
		sku = defaultStorageSKU
	}
	params := armstorage.AccountCreateParameters{
		Location: to.Ptr(env.cloud.Region),
		Kind:     to.Ptr(armstorage.KindStorageV2),
		SKU:      &armstorage.SKU{Name: to.Ptr(armstorage.SKUName(sku))},
		Properties: &armstorage.AccountPropertiesCreateParameters{
			AllowBlobPublicAccess: to.Ptr(spec.StaticWebsite),
			MinimumTLSVersion:     to.Ptr(armstorage.MinimumTLSVersionTLS12),
		},
	}
	if spec.AccessTier != "" {
		params.Properties.AccessTier = to.Ptr(armstorage.AccessTier(spec.AccessTier))
	}
	account, err := env.clients.Storage.CreateAccount(ctx, group, spec.AccountName, params)
	if err != nil {
		return nil, errors.Annotate(err, "creating account")
	}

	for _, container := range spec.Containers {
		if err := env.clients.Storage.CreateContainer(ctx, group, spec.AccountName, container); err != nil {
			return nil, errors.Annotatef(err, "creating container %q", container)
		}
	}

	keys, err := env.clients.Storage.ListAccountKeys(ctx, group, spec.AccountName)
	if err != nil {
		return nil, errors.Annotate(err, "listing account keys")
	}
	var primaryKey string
	if len(keys) > 0 && keys[0].Value != nil {
		primaryKey = *keys[0].Value
	}

	if spec.StaticWebsite {
		if primaryKey == "" {
			return nil, errors.New("no account key available to enable static website")
		}
		if err := env.clients.Storage.EnableStaticWebsite(ctx, spec.AccountName, primaryKey, spec.IndexDocument); err != nil {
			return nil, errors.Annotate(err, "enabling static website")
		}
	}

	result := &resources.Result{
		Endpoints:  map[string]string{},
		Keys:       map[string]string{},
		Attributes: map[string]string{"sku": sku},
	}
	if account.Properties != nil && account.Properties.PrimaryEndpoints != nil {
		endpoints := account.Properties.PrimaryEndpoints
		if endpoints.Blob != nil {
			result.Endpoints["blob"] = *endpoints.Blob
		}
		if spec.StaticWebsite && endpoints.Web != nil {
			result.Endpoints["web"] = *endpoints.Web
		}
	}
	if primaryKey != "" {
		result.Keys["account-key"] = primaryKey
		result.Keys["connection-string"] = fmt.Sprintf(
			"DefaultEndpointsProtocol=https;AccountName=%s;AccountKey=%s;EndpointSuffix=core.windows.net",
			spec.AccountName, primaryKey,
		)
	}
	return result, nil
}
