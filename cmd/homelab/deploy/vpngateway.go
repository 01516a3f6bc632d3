// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package deploy

import (
	"os"
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/resources"
)

type vpnGatewayCommand struct {
	deployCommandBase

	gateway      string
	addressSpace string
	subnet       string
	clientPool   string
	sku          string
	rootCertFile string
}

var vpnGatewayDoc = `
Deploys a virtual network with a gateway subnet and a point-to-site
VPN gateway in it. Gateway provisioning takes the cloud a long time,
often over half an hour; consider --background.

To hand out client addresses, pass --client-pool together with
--root-cert-file pointing at the base64 public data of the client root
certificate.
`

const vpnGatewayExamples = `
    homelab deploy vpn-gateway --background
    homelab deploy vpn-gateway --client-pool 172.16.0.0/24 --root-cert-file root.cer
`

func newVPNGatewayCommand() cmd.Command {
	return &vpnGatewayCommand{deployCommandBase: newDeployBase()}
}

// Info implements cmd.Command.
func (c *vpnGatewayCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "vpn-gateway",
		Purpose:  "Deploy a point-to-site VPN gateway.",
		Doc:      vpnGatewayDoc,
		Examples: vpnGatewayExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *vpnGatewayCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.StringVar(&c.gateway, "name", "", "Gateway name (default <project>-<env>-vpn)")
	f.StringVar(&c.addressSpace, "address-space", "10.10.0.0/16", "Virtual network CIDR")
	f.StringVar(&c.subnet, "gateway-subnet", "10.10.255.0/27", "Gateway subnet CIDR")
	f.StringVar(&c.clientPool, "client-pool", "", "CIDR handed to VPN clients")
	f.StringVar(&c.sku, "sku", "", "Gateway SKU (default VpnGw1)")
	f.StringVar(&c.rootCertFile, "root-cert-file", "", "File with the client root certificate public data")
}

// Init implements cmd.Command.
func (c *vpnGatewayCommand) Init(args []string) error {
	return cmd.CheckEmpty(args)
}

// Run implements cmd.Command.
func (c *vpnGatewayCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	var rootCert string
	if c.rootCertFile != "" {
		data, err := os.ReadFile(ctx.AbsPath(c.rootCertFile))
		if err != nil {
			return errors.Annotate(err, "reading root certificate")
		}
		rootCert = strings.TrimSpace(string(data))
	}
	spec := resources.VPNGatewaySpec{
		GatewayName:       pick(c.gateway, cfg.ResourceName("vpn")),
		AddressSpace:      c.addressSpace,
		GatewaySubnet:     c.subnet,
		ClientAddressPool: c.clientPool,
		SKU:               c.sku,
		RootCertData:      rootCert,
	}
	return c.deploy(ctx, cfg, spec)
}
