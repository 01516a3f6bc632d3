// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cosmos/armcosmos/v2"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

// deployCosmosDB creates the account, then the SQL database, then the
// container. The steps are sequential and there is no rollback on a
// later failure; each annotation identifies the failed stage so a
// re-run can resume (account creation is idempotent).
func (env *azureEnviron) deployCosmosDB(ctx context.Context, spec resources.CosmosDBSpec) (*resources.Result, error) {
	group := env.group()
	params := armcosmos.DatabaseAccountCreateUpdateParameters{
		Location: to.Ptr(env.cloud.Region),
		Kind:     to.Ptr(armcosmos.DatabaseAccountKindGlobalDocumentDB),
		Properties: &armcosmos.DatabaseAccountCreateUpdateProperties{
			DatabaseAccountOfferType: to.Ptr("Standard"),
			Locations: []*armcosmos.Location{{
				LocationName: to.Ptr(env.cloud.Region),
			}},
		},
	}
	if spec.Serverless {
		params.Properties.Capabilities = []*armcosmos.Capability{{
			Name: to.Ptr("EnableServerless"),
		}}
	}
	account, err := env.clients.Cosmos.CreateAccount(ctx, group, spec.AccountName, params)
	if err != nil {
		return nil, errors.Annotate(err, "creating account")
	}

	dbParams := armcosmos.SQLDatabaseCreateUpdateParameters{
		Properties: &armcosmos.SQLDatabaseCreateUpdateProperties{
			Resource: &armcosmos.SQLDatabaseResource{ID: to.Ptr(spec.DatabaseName)},
			Options:  &armcosmos.CreateUpdateOptions{},
		},
	}
	if !spec.Serverless && spec.Throughput > 0 {
		dbParams.Properties.Options.Throughput = to.Ptr(spec.Throughput)
	}
	if err := env.clients.Cosmos.CreateSQLDatabase(ctx, group, spec.AccountName, spec.DatabaseName, dbParams); err != nil {
		return nil, errors.Annotate(err, "creating database")
	}

	if spec.ContainerName != "" {
		containerParams := armcosmos.SQLContainerCreateUpdateParameters{
			Properties: &armcosmos.SQLContainerCreateUpdateProperties{
				Resource: &armcosmos.SQLContainerResource{
					ID: to.Ptr(spec.ContainerName),
					PartitionKey: &armcosmos.ContainerPartitionKey{
						Paths: []*string{to.Ptr(spec.PartitionKey)},
						Kind:  to.Ptr(armcosmos.PartitionKindHash),
					},
				},
				Options: &armcosmos.CreateUpdateOptions{},
			},
		}
		if err := env.clients.Cosmos.CreateSQLContainer(ctx, group, spec.AccountName, spec.DatabaseName, spec.ContainerName, containerParams); err != nil {
			return nil, errors.Annotate(err, "creating container")
		}
	}

	keys, err := env.clients.Cosmos.ListAccountKeys(ctx, group, spec.AccountName)
	if err != nil {
		return nil, errors.Annotate(err, "listing account keys")
	}

	result := &resources.Result{
		Endpoints: map[string]string{},
		Keys:      map[string]string{},
		Attributes: map[string]string{
			"database": spec.DatabaseName,
		},
	}
	if spec.ContainerName != "" {
		result.Attributes["container"] = spec.ContainerName
	}
	if account.Properties != nil && account.Properties.DocumentEndpoint != nil {
		result.Endpoints["account"] = *account.Properties.DocumentEndpoint
	}
	if keys.PrimaryMasterKey != nil {
		result.Keys["primary-key"] = *keys.PrimaryMasterKey
	}
	return result, nil
}
