// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/eventhub/armeventhub"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

// rootRuleName is the authorization rule every namespace is born with.
const rootRuleName = "RootManageSharedAccessKey"

func (env *azureEnviron) deployEventHub(ctx context.Context, spec resources.EventHubSpec) (*resources.Result, error) {
	group := env.group()
	ns, err := env.clients.EventHub.CreateNamespace(ctx, group, spec.NamespaceName, armeventhub.EHNamespace{
		Location: to.Ptr(env.cloud.Region),
		SKU: &armeventhub.SKU{
			Name: to.Ptr(armeventhub.SKUNameStandard),
			Tier: to.Ptr(armeventhub.SKUTierStandard),
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating namespace")
	}

	partitions := spec.PartitionCount
	if partitions == 0 {
		partitions = 2
	}
	retention := spec.RetentionDays
	if retention == 0 {
		retention = 1
	}
	hub := armeventhub.Eventhub{
		Properties: &armeventhub.Properties{
			PartitionCount:         to.Ptr(partitions),
			MessageRetentionInDays: to.Ptr(retention),
		},
	}
	if err := env.clients.EventHub.CreateHub(ctx, group, spec.NamespaceName, spec.HubName, hub); err != nil {
		return nil, errors.Annotate(err, "creating hub")
	}

	for _, cg := range spec.ConsumerGroups {
		if err := env.clients.EventHub.CreateConsumerGroup(ctx, group, spec.NamespaceName, spec.HubName, cg); err != nil {
			return nil, errors.Annotatef(err, "creating consumer group %q", cg)
		}
	}

	keys, err := env.clients.EventHub.ListNamespaceKeys(ctx, group, spec.NamespaceName, rootRuleName)
	if err != nil {
		return nil, errors.Annotate(err, "listing namespace keys")
	}

	result := &resources.Result{
		Endpoints: map[string]string{},
		Keys:      map[string]string{},
		Attributes: map[string]string{
			"hub": spec.HubName,
		},
	}
	if ns.Properties != nil && ns.Properties.ServiceBusEndpoint != nil {
		result.Endpoints["namespace"] = *ns.Properties.ServiceBusEndpoint
	}
	if keys.PrimaryConnectionString != nil {
		result.Keys["connection-string"] = *keys.PrimaryConnectionString
	}
	return result, nil
}
