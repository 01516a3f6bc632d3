// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/servicebus/armservicebus"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

func (env *azureEnviron) deployServiceBus(ctx context.Context, spec resources.ServiceBusSpec) (*resources.Result, error) {
	group := env.group()
	sku := spec.SKU
	if sku == "" {
		sku = "Standard"
	}
	ns, err := env.clients.ServiceBus.CreateNamespace(ctx, group, spec.NamespaceName, armservicebus.SBNamespace{
		Location: to.Ptr(env.cloud.Region),
		SKU: &armservicebus.SBSKU{
			Name: to.Ptr(armservicebus.SKUName(sku)),
			Tier: to.Ptr(armservicebus.SKUTier(sku)),
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating namespace")
	}

	for _, queue := range spec.Queues {
		if err := env.clients.ServiceBus.CreateQueue(ctx, group, spec.NamespaceName, queue); err != nil {
			return nil, errors.Annotatef(err, "creating queue %q", queue)
		}
	}
	for _, topic := range spec.Topics {
		if err := env.clients.ServiceBus.CreateTopic(ctx, group, spec.NamespaceName, topic); err != nil {
			return nil, errors.Annotatef(err, "creating topic %q", topic)
		}
	}

	keys, err := env.clients.ServiceBus.ListNamespaceKeys(ctx, group, spec.NamespaceName, rootRuleName)
	if err != nil {
		return nil, errors.Annotate(err, "listing namespace keys")
	}

	result := &resources.Result{
		Endpoints: map[string]string{},
		Keys:      map[string]string{},
		Attributes: map[string]string{
			"sku":    sku,
			"queues": fmt.Sprint(len(spec.Queues)),
			"topics": fmt.Sprint(len(spec.Topics)),
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
