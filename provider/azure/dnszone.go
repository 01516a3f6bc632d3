// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

const defaultRecordTTL = 3600

func (env *azureEnviron) deployDNSZone(ctx context.Context, spec resources.DNSZoneSpec) (*resources.Result, error) {
	group := env.group()
	zone, err := env.clients.DNS.CreateZone(ctx, group, spec.ZoneName, armdns.Zone{
		// DNS zones are global resources.
		Location: to.Ptr("global"),
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating zone")
	}

	for _, rec := range spec.Records {
		set, recordType := recordSet(rec)
		if err := env.clients.DNS.CreateRecordSet(ctx, group, spec.ZoneName, rec.Name, recordType, set); err != nil {
			return nil, errors.Annotatef(err, "creating %s record %q", rec.Type, rec.Name)
		}
	}

	result := &resources.Result{
		Attributes: map[string]string{
			"records": fmt.Sprint(len(spec.Records)),
		},
	}
	if zone.Properties != nil && len(zone.Properties.NameServers) > 0 {
		var servers []string
		for _, ns := range zone.Properties.NameServers {
			if ns != nil {
				servers = append(servers, *ns)
			}
		}
		result.Attributes["name-servers"] = strings.Join(servers, " ")
	}
	return result, nil
}

func recordSet(rec resources.RecordSpec) (armdns.RecordSet, armdns.RecordType) {
	ttl := rec.TTL
	if ttl == 0 {
		ttl = defaultRecordTTL
	}
	props := &armdns.RecordSetProperties{TTL: to.Ptr(ttl)}
	var recordType armdns.RecordType
	switch rec.Type {
	case "A":
		recordType = armdns.RecordTypeA
		for _, v := range rec.Values {
			props.ARecords = append(props.ARecords, &armdns.ARecord{IPv4Address: to.Ptr(v)})
		}
	case "AAAA":
		recordType = armdns.RecordTypeAAAA
		for _, v := range rec.Values {
			props.AaaaRecords = append(props.AaaaRecords, &armdns.AaaaRecord{IPv6Address: to.Ptr(v)})
		}
	case "CNAME":
		recordType = armdns.RecordTypeCNAME
		props.CnameRecord = &armdns.CnameRecord{Cname: to.Ptr(rec.Values[0])}
	case "TXT":
		recordType = armdns.RecordTypeTXT
		for _, v := range rec.Values {
			props.TxtRecords = append(props.TxtRecords, &armdns.TxtRecord{Value: []*string{to.Ptr(v)}})
		}
	}
	return armdns.RecordSet{Properties: props}, recordType
}
