// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package deploy

import (
	"strings"

	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	homelabcmd "github.com/homelab/homelab/cmd"
	"github.com/homelab/homelab/resources"
)

type dnsZoneCommand struct {
	deployCommandBase

	zone    string
	records []string
	ttl     int
}

var dnsZoneDoc = `
Deploys a DNS zone and its record sets. Records are given as
name:TYPE:value[,value...] where TYPE is A, AAAA, CNAME or TXT and
"@" names the zone apex. The zone's name servers are printed when the
deployment finishes; point your registrar at them.
`

const dnsZoneExamples = `
    homelab deploy dns-zone example.com
    homelab deploy dns-zone example.com --record @:A:203.0.113.10 --record www:CNAME:example.com
`

func newDNSZoneCommand() cmd.Command {
	return &dnsZoneCommand{deployCommandBase: newDeployBase()}
}

// Info implements cmd.Command.
func (c *dnsZoneCommand) Info() *cmd.Info {
	return homelabcmd.Info(&cmd.Info{
		Name:     "dns-zone",
		Args:     "<zone-name>",
		Purpose:  "Deploy a DNS zone.",
		Doc:      dnsZoneDoc,
		Examples: dnsZoneExamples,
	})
}

// SetFlags implements cmd.Command.
func (c *dnsZoneCommand) SetFlags(f *gnuflag.FlagSet) {
	c.setFlags(f)
	f.Var(cmd.NewAppendStringsValue(&c.records), "record", "Record set as name:TYPE:value[,value...]; repeatable")
	f.IntVar(&c.ttl, "ttl", 3600, "TTL in seconds for all record sets")
}

// Init implements cmd.Command.
func (c *dnsZoneCommand) Init(args []string) error {
	if len(args) < 1 {
		return errors.New("must specify the zone name, e.g. example.com")
	}
	c.zone = args[0]
	return cmd.CheckEmpty(args[1:])
}

// parseRecord turns "name:TYPE:value[,value...]" into a record spec.
func parseRecord(s string, ttl int) (resources.RecordSpec, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) != 3 {
		return resources.RecordSpec{}, errors.NotValidf("record %q", s)
	}
	return resources.RecordSpec{
		Name:   parts[0],
		Type:   strings.ToUpper(parts[1]),
		Values: strings.Split(parts[2], ","),
		TTL:    int64(ttl),
	}, nil
}

// Run implements cmd.Command.
func (c *dnsZoneCommand) Run(ctx *cmd.Context) error {
	cfg, err := c.readConfig()
	if err != nil {
		return errors.Trace(err)
	}
	spec := resources.DNSZoneSpec{ZoneName: c.zone}
	for _, raw := range c.records {
		rec, err := parseRecord(raw, c.ttl)
		if err != nil {
			return errors.Trace(err)
		}
		spec.Records = append(spec.Records, rec)
	}
	return c.deploy(ctx, cfg, spec)
}
