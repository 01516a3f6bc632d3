// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package resources defines the deployable resource kinds and the
// typed deployment specs and results exchanged with providers.
package resources

import (
	"github.com/juju/collections/set"
	"github.com/juju/errors"
)

// Kind identifies a deployable resource kind.
type Kind string

const (
	KindWebsite           Kind = "website"
	KindSQLDatabase       Kind = "sql-database"
	KindCosmosDB          Kind = "cosmos-db"
	KindIoTHub            Kind = "iot-hub"
	KindCognitiveServices Kind = "cognitive"
	KindDNSZone           Kind = "dns-zone"
	KindVPNGateway        Kind = "vpn-gateway"
	KindStorageAccount    Kind = "storage-account"
	KindEventHub          Kind = "event-hub"
	KindServiceBus        Kind = "service-bus"
)

var allKinds = set.NewStrings(
	string(KindWebsite),
	string(KindSQLDatabase),
	string(KindCosmosDB),
	string(KindIoTHub),
	string(KindCognitiveServices),
	string(KindDNSZone),
	string(KindVPNGateway),
	string(KindStorageAccount),
	string(KindEventHub),
	string(KindServiceBus),
)

// ParseKind returns the Kind named by s.
func ParseKind(s string) (Kind, error) {
	if !allKinds.Contains(s) {
		return "", errors.NotValidf("resource kind %q", s)
	}
	return Kind(s), nil
}

// Kinds returns all resource kinds in sorted order.
func Kinds() []Kind {
	var kinds []Kind
	for _, s := range allKinds.SortedValues() {
		kinds = append(kinds, Kind(s))
	}
	return kinds
}
