// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

const defaultGatewaySKU = "VpnGw1"

// deployVPNGateway builds the virtual network with its gateway subnet,
// a public IP, and finally the gateway itself. Gateway creation is the
// slowest operation the console performs (30-45 minutes on Azure), so
// it is the main customer of background jobs.
func (env *azureEnviron) deployVPNGateway(ctx context.Context, spec resources.VPNGatewaySpec) (*resources.Result, error) {
	group := env.group()
	vnetName := spec.GatewayName + "-vnet"
	vnet, err := env.clients.Network.CreateVirtualNetwork(ctx, group, vnetName, armnetwork.VirtualNetwork{
		Location: to.Ptr(env.cloud.Region),
		Properties: &armnetwork.VirtualNetworkPropertiesFormat{
			AddressSpace: &armnetwork.AddressSpace{
				AddressPrefixes: []*string{to.Ptr(spec.AddressSpace)},
			},
			Subnets: []*armnetwork.Subnet{{
				// The subnet name is mandated by the platform.
				Name: to.Ptr("GatewaySubnet"),
				Properties: &armnetwork.SubnetPropertiesFormat{
					AddressPrefix: to.Ptr(spec.GatewaySubnet),
				},
			}},
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating virtual network")
	}
	var subnetID *string
	for _, subnet := range vnet.Properties.Subnets {
		if subnet.Name != nil && *subnet.Name == "GatewaySubnet" {
			subnetID = subnet.ID
		}
	}
	if subnetID == nil {
		return nil, errors.New("virtual network has no gateway subnet")
	}

	ipName := spec.GatewayName + "-ip"
	ip, err := env.clients.Network.CreatePublicIP(ctx, group, ipName, armnetwork.PublicIPAddress{
		Location: to.Ptr(env.cloud.Region),
		SKU: &armnetwork.PublicIPAddressSKU{
			Name: to.Ptr(armnetwork.PublicIPAddressSKUNameStandard),
		},
		Properties: &armnetwork.PublicIPAddressPropertiesFormat{
			PublicIPAllocationMethod: to.Ptr(armnetwork.IPAllocationMethodStatic),
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating public IP")
	}

	sku := spec.SKU
	if sku == "" {
		sku = defaultGatewaySKU
	}
	gwProps := &armnetwork.VirtualNetworkGatewayPropertiesFormat{
		GatewayType: to.Ptr(armnetwork.VirtualNetworkGatewayTypeVPN),
		VPNType:     to.Ptr(armnetwork.VPNTypeRouteBased),
		SKU: &armnetwork.VirtualNetworkGatewaySKU{
			Name: to.Ptr(armnetwork.VirtualNetworkGatewaySKUName(sku)),
			Tier: to.Ptr(armnetwork.VirtualNetworkGatewaySKUTier(sku)),
		},
		IPConfigurations: []*armnetwork.VirtualNetworkGatewayIPConfiguration{{
			Name: to.Ptr("default"),
			Properties: &armnetwork.VirtualNetworkGatewayIPConfigurationPropertiesFormat{
				Subnet:          &armnetwork.SubResource{ID: subnetID},
				PublicIPAddress: &armnetwork.SubResource{ID: ip.ID},
			},
		}},
	}
	if spec.ClientAddressPool != "" {
		gwProps.VPNClientConfiguration = &armnetwork.VPNClientConfiguration{
			VPNClientAddressPool: &armnetwork.AddressSpace{
				AddressPrefixes: []*string{to.Ptr(spec.ClientAddressPool)},
			},
			VPNClientRootCertificates: []*armnetwork.VPNClientRootCertificate{{
				Name: to.Ptr("homelab-root"),
				Properties: &armnetwork.VPNClientRootCertificatePropertiesFormat{
					PublicCertData: to.Ptr(spec.RootCertData),
				},
			}},
		}
	}
	_, err = env.clients.Network.CreateGateway(ctx, group, spec.GatewayName, armnetwork.VirtualNetworkGateway{
		Location:   to.Ptr(env.cloud.Region),
		Properties: gwProps,
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating gateway")
	}

	result := &resources.Result{
		Endpoints: map[string]string{},
		Attributes: map[string]string{
			"virtual-network": vnetName,
			"sku":             sku,
		},
	}
	if ip.Properties != nil && ip.Properties.IPAddress != nil {
		result.Endpoints["gateway"] = *ip.Properties.IPAddress
	}
	return result, nil
}
