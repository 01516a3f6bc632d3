// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package resources

import (
	"strings"

	"github.com/juju/errors"
)

// Spec describes one deployable resource. Implementations are plain
// structs built by the deploy commands from flags and config.
type Spec interface {
	// Kind returns the resource kind deployed by this spec.
	Kind() Kind

	// Name returns the resource's name, unique per kind within a lab.
	Name() string

	// Validate returns an error if the spec cannot be deployed.
	Validate() error
}

// WebsiteSpec deploys a web application, optionally wired to a GitHub
// repository for continuous deployment.
type WebsiteSpec struct {
	SiteName string
	// Runtime is the application stack, e.g. "NODE|20-lts" or "go".
	Runtime string
	SKU     string
	// Repository is "owner/name" of the source repository; Branch
	// selects the deployed branch. Both may be empty for an empty
	// site shell.
	Repository string
	Branch     string
	// Static requests a static site (storage/CDN backed) rather than
	// an app-service plan.
	Static bool
}

func (s WebsiteSpec) Kind() Kind   { return KindWebsite }
func (s WebsiteSpec) Name() string { return s.SiteName }

func (s WebsiteSpec) Validate() error {
	if s.SiteName == "" {
		return errors.NotValidf("empty site name")
	}
	if s.Repository != "" && !strings.Contains(s.Repository, "/") {
		return errors.NotValidf("repository %q without owner", s.Repository)
	}
	if s.Repository == "" && s.Branch != "" {
		return errors.NotValidf("branch without repository")
	}
	return nil
}

// SQLDatabaseSpec deploys a SQL server and a database on it.
type SQLDatabaseSpec struct {
	ServerName    string
	DatabaseName  string
	AdminUser     string
	AdminPassword string
	SKU           string
	MaxSizeGB     int32
	// AllowAzureServices opens the server firewall to other
	// resources of the lab.
	AllowAzureServices bool
}

func (s SQLDatabaseSpec) Kind() Kind   { return KindSQLDatabase }
func (s SQLDatabaseSpec) Name() string { return s.ServerName }

func (s SQLDatabaseSpec) Validate() error {
	if s.ServerName == "" {
		return errors.NotValidf("empty server name")
	}
	if s.DatabaseName == "" {
		return errors.NotValidf("empty database name")
	}
	if s.AdminUser == "" || s.AdminPassword == "" {
		return errors.NotValidf("missing admin credentials")
	}
	if len(s.AdminPassword) < 12 {
		return errors.NotValidf("admin password shorter than 12 characters")
	}
	return nil
}

// CosmosDBSpec deploys a Cosmos DB account with one SQL database and
// container.
type CosmosDBSpec struct {
	AccountName   string
	DatabaseName  string
	ContainerName string
	PartitionKey  string
	// Serverless selects consumption billing instead of provisioned
	// throughput.
	Serverless bool
	Throughput int32
}

func (s CosmosDBSpec) Kind() Kind   { return KindCosmosDB }
func (s CosmosDBSpec) Name() string { return s.AccountName }

func (s CosmosDBSpec) Validate() error {
	if s.AccountName == "" {
		return errors.NotValidf("empty account name")
	}
	if s.DatabaseName == "" {
		return errors.NotValidf("empty database name")
	}
	if s.ContainerName != "" && s.PartitionKey == "" {
		return errors.NotValidf("container without partition key")
	}
	if !strings.HasPrefix(s.PartitionKey, "/") && s.PartitionKey != "" {
		return errors.NotValidf("partition key %q without leading slash", s.PartitionKey)
	}
	if s.Serverless && s.Throughput != 0 {
		return errors.NotValidf("throughput on a serverless account")
	}
	return nil
}

// IoTHubSpec deploys an IoT hub.
type IoTHubSpec struct {
	HubName        string
	SKU            string
	Units          int64
	PartitionCount int32
}

func (s IoTHubSpec) Kind() Kind   { return KindIoTHub }
func (s IoTHubSpec) Name() string { return s.HubName }

func (s IoTHubSpec) Validate() error {
	if s.HubName == "" {
		return errors.NotValidf("empty hub name")
	}
	if s.PartitionCount != 0 && (s.PartitionCount < 2 || s.PartitionCount > 32) {
		return errors.NotValidf("partition count %d outside 2..32", s.PartitionCount)
	}
	return nil
}

// CognitiveServicesSpec deploys a cognitive-services account.
type CognitiveServicesSpec struct {
	AccountName string
	// APIKind selects the service, e.g. "TextAnalytics", "OpenAI",
	// "SpeechServices".
	APIKind string
	SKU     string
}

func (s CognitiveServicesSpec) Kind() Kind   { return KindCognitiveServices }
func (s CognitiveServicesSpec) Name() string { return s.AccountName }

func (s CognitiveServicesSpec) Validate() error {
	if s.AccountName == "" {
		return errors.NotValidf("empty account name")
	}
	if s.APIKind == "" {
		return errors.NotValidf("empty service kind")
	}
	return nil
}

// RecordSpec is a single record set within a DNS zone.
type RecordSpec struct {
	// Name is the record set name relative to the zone ("@" for the
	// apex).
	Name string
	// Type is the record type: A, AAAA, CNAME or TXT.
	Type string
	// Values holds the record data, one entry per record.
	Values []string
	TTL    int64
}

// Validate returns an error if the record set is malformed.
func (r RecordSpec) Validate() error {
	if r.Name == "" {
		return errors.NotValidf("empty record name")
	}
	switch r.Type {
	case "A", "AAAA", "CNAME", "TXT":
	default:
		return errors.NotValidf("record type %q", r.Type)
	}
	if len(r.Values) == 0 {
		return errors.NotValidf("record %q without values", r.Name)
	}
	if r.Type == "CNAME" && len(r.Values) > 1 {
		return errors.NotValidf("CNAME record %q with multiple values", r.Name)
	}
	return nil
}

// DNSZoneSpec deploys a DNS zone and its record sets.
type DNSZoneSpec struct {
	ZoneName string
	Records  []RecordSpec
}

func (s DNSZoneSpec) Kind() Kind   { return KindDNSZone }
func (s DNSZoneSpec) Name() string { return s.ZoneName }

func (s DNSZoneSpec) Validate() error {
	if !strings.Contains(s.ZoneName, ".") {
		return errors.NotValidf("zone name %q", s.ZoneName)
	}
	for _, r := range s.Records {
		if err := r.Validate(); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

// VPNGatewaySpec deploys a virtual network with a gateway subnet and a
// point-to-site VPN gateway.
type VPNGatewaySpec struct {
	GatewayName string
	// AddressSpace is the virtual network CIDR, e.g. "10.10.0.0/16".
	AddressSpace string
	// GatewaySubnet is the CIDR carved out for the gateway.
	GatewaySubnet string
	// ClientAddressPool is the CIDR handed to VPN clients.
	ClientAddressPool string
	SKU               string
	// RootCertData is the base64 public data of the client root
	// certificate.
	RootCertData string
}

func (s VPNGatewaySpec) Kind() Kind   { return KindVPNGateway }
func (s VPNGatewaySpec) Name() string { return s.GatewayName }

func (s VPNGatewaySpec) Validate() error {
	if s.GatewayName == "" {
		return errors.NotValidf("empty gateway name")
	}
	if s.AddressSpace == "" || s.GatewaySubnet == "" {
		return errors.NotValidf("missing address space")
	}
	if s.ClientAddressPool != "" && s.RootCertData == "" {
		return errors.NotValidf("client pool without a root certificate")
	}
	return nil
}

// StorageAccountSpec deploys a storage account.
type StorageAccountSpec struct {
	AccountName string
	SKU         string
	AccessTier  string
	// StaticWebsite enables the static-website endpoint with the
	// given index document.
	StaticWebsite bool
	IndexDocument string
	Containers    []string
}

func (s StorageAccountSpec) Kind() Kind   { return KindStorageAccount }
func (s StorageAccountSpec) Name() string { return s.AccountName }

func (s StorageAccountSpec) Validate() error {
	name := s.AccountName
	if len(name) < 3 || len(name) > 24 {
		return errors.NotValidf("account name %q length", name)
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return errors.NotValidf("account name %q", name)
		}
	}
	if s.StaticWebsite && s.IndexDocument == "" {
		return errors.NotValidf("static website without index document")
	}
	return nil
}

// EventHubSpec deploys an event-hubs namespace and a hub in it.
type EventHubSpec struct {
	NamespaceName  string
	HubName        string
	PartitionCount int64
	RetentionDays  int64
	ConsumerGroups []string
}

func (s EventHubSpec) Kind() Kind   { return KindEventHub }
func (s EventHubSpec) Name() string { return s.NamespaceName }

func (s EventHubSpec) Validate() error {
	if s.NamespaceName == "" || s.HubName == "" {
		return errors.NotValidf("missing namespace or hub name")
	}
	if s.PartitionCount != 0 && (s.PartitionCount < 1 || s.PartitionCount > 32) {
		return errors.NotValidf("partition count %d outside 1..32", s.PartitionCount)
	}
	if s.RetentionDays < 0 || s.RetentionDays > 7 {
		return errors.NotValidf("retention %d days outside 0..7", s.RetentionDays)
	}
	return nil
}

// ServiceBusSpec deploys a service-bus namespace with queues and
// topics.
type ServiceBusSpec struct {
	NamespaceName string
	SKU           string
	Queues        []string
	Topics        []string
}

func (s ServiceBusSpec) Kind() Kind   { return KindServiceBus }
func (s ServiceBusSpec) Name() string { return s.NamespaceName }

func (s ServiceBusSpec) Validate() error {
	if s.NamespaceName == "" {
		return errors.NotValidf("empty namespace name")
	}
	for _, q := range s.Queues {
		if q == "" {
			return errors.NotValidf("empty queue name")
		}
	}
	for _, t := range s.Topics {
		if t == "" {
			return errors.NotValidf("empty topic name")
		}
	}
	return nil
}
