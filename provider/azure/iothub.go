// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/iothub/armiothub"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

const iotHubOwnerKey = "iothubowner"

func (env *azureEnviron) deployIoTHub(ctx context.Context, spec resources.IoTHubSpec) (*resources.Result, error) {
	group := env.group()
	sku := spec.SKU
	if sku == "" {
		// F1 is the free tier, one per subscription.
		sku = "F1"
	}
	units := spec.Units
	if units == 0 {
		units = 1
	}
	desc := armiothub.Description{
		Location: to.Ptr(env.cloud.Region),
		SKU: &armiothub.SKUInfo{
			Name:     to.Ptr(armiothub.IotHubSKU(sku)),
			Capacity: to.Ptr(units),
		},
	}
	if spec.PartitionCount > 0 {
		desc.Properties = &armiothub.Properties{
			EventHubEndpoints: map[string]*armiothub.EventHubProperties{
				"events": {PartitionCount: to.Ptr(spec.PartitionCount)},
			},
		}
	}
	hub, err := env.clients.IoTHub.CreateHub(ctx, group, spec.HubName, desc)
	if err != nil {
		return nil, errors.Annotate(err, "creating hub")
	}

	keys, err := env.clients.IoTHub.GetHubKeys(ctx, group, spec.HubName, iotHubOwnerKey)
	if err != nil {
		return nil, errors.Annotate(err, "fetching hub keys")
	}

	result := &resources.Result{
		Endpoints:  map[string]string{},
		Keys:       map[string]string{},
		Attributes: map[string]string{"sku": sku},
	}
	if hub.Properties != nil && hub.Properties.HostName != nil {
		hostname := *hub.Properties.HostName
		result.Endpoints["hub"] = hostname
		if keys.PrimaryKey != nil {
			result.Keys["connection-string"] = fmt.Sprintf(
				"HostName=%s;SharedAccessKeyName=%s;SharedAccessKey=%s",
				hostname, iotHubOwnerKey, *keys.PrimaryKey,
			)
		}
	}
	if keys.PrimaryKey != nil {
		result.Keys["primary-key"] = *keys.PrimaryKey
	}
	return result, nil
}
