// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cognitiveservices/armcognitiveservices"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/cosmos/armcosmos/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/dns/armdns"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/eventhub/armeventhub"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/iothub/armiothub"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/servicebus/armservicebus"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/sql/armsql"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/service"
	"github.com/juju/errors"
)

// The environ talks to Azure through these narrow interfaces rather
// than the SDK clients directly, so tests can substitute fakes. Each
// method hides the SDK's begin/poll split behind a blocking call.

// GroupsClient manages resource groups.
type GroupsClient interface {
	CreateOrUpdateGroup(ctx context.Context, name string, group armresources.ResourceGroup) error
	ListByGroup(ctx context.Context, group string) ([]*armresources.GenericResourceExpanded, error)
}

// WebsitesClient manages app-service plans, web apps and static sites.
type WebsitesClient interface {
	CreatePlan(ctx context.Context, group, name string, plan armappservice.Plan) (armappservice.Plan, error)
	CreateSite(ctx context.Context, group, name string, site armappservice.Site) (armappservice.Site, error)
	DeleteSite(ctx context.Context, group, name string) error
	CreateStaticSite(ctx context.Context, group, name string, site armappservice.StaticSiteARMResource) (armappservice.StaticSiteARMResource, error)
	DeleteStaticSite(ctx context.Context, group, name string) error
}

// SQLClient manages SQL servers, databases and firewall rules.
type SQLClient interface {
	CreateServer(ctx context.Context, group, name string, server armsql.Server) (armsql.Server, error)
	CreateDatabase(ctx context.Context, group, server, name string, db armsql.Database) (armsql.Database, error)
	CreateFirewallRule(ctx context.Context, group, server, name string, rule armsql.FirewallRule) error
	DeleteServer(ctx context.Context, group, name string) error
}

// CosmosClient manages Cosmos DB accounts and their SQL resources.
type CosmosClient interface {
	CreateAccount(ctx context.Context, group, name string, params armcosmos.DatabaseAccountCreateUpdateParameters) (armcosmos.DatabaseAccountGetResults, error)
	CreateSQLDatabase(ctx context.Context, group, account, name string, params armcosmos.SQLDatabaseCreateUpdateParameters) error
	CreateSQLContainer(ctx context.Context, group, account, database, name string, params armcosmos.SQLContainerCreateUpdateParameters) error
	ListAccountKeys(ctx context.Context, group, name string) (armcosmos.DatabaseAccountListKeysResult, error)
	DeleteAccount(ctx context.Context, group, name string) error
}

// IoTHubClient manages IoT hubs.
type IoTHubClient interface {
	CreateHub(ctx context.Context, group, name string, desc armiothub.Description) (armiothub.Description, error)
	GetHubKeys(ctx context.Context, group, name, keyName string) (armiothub.SharedAccessSignatureAuthorizationRule, error)
	DeleteHub(ctx context.Context, group, name string) error
}

// CognitiveClient manages cognitive-services accounts.
type CognitiveClient interface {
	CreateAccount(ctx context.Context, group, name string, account armcognitiveservices.Account) (armcognitiveservices.Account, error)
	ListAccountKeys(ctx context.Context, group, name string) (armcognitiveservices.APIKeys, error)
	DeleteAccount(ctx context.Context, group, name string) error
}

// DNSClient manages DNS zones and record sets.
type DNSClient interface {
	CreateZone(ctx context.Context, group, name string, zone armdns.Zone) (armdns.Zone, error)
	CreateRecordSet(ctx context.Context, group, zone, name string, recordType armdns.RecordType, set armdns.RecordSet) error
	DeleteZone(ctx context.Context, group, name string) error
}

// NetworkClient manages virtual networks and VPN gateways.
type NetworkClient interface {
	CreateVirtualNetwork(ctx context.Context, group, name string, vnet armnetwork.VirtualNetwork) (armnetwork.VirtualNetwork, error)
	CreatePublicIP(ctx context.Context, group, name string, ip armnetwork.PublicIPAddress) (armnetwork.PublicIPAddress, error)
	CreateGateway(ctx context.Context, group, name string, gw armnetwork.VirtualNetworkGateway) (armnetwork.VirtualNetworkGateway, error)
	DeleteGateway(ctx context.Context, group, name string) error
}

// StorageClient manages storage accounts and their containers.
type StorageClient interface {
	CreateAccount(ctx context.Context, group, name string, params armstorage.AccountCreateParameters) (armstorage.Account, error)
	ListAccountKeys(ctx context.Context, group, name string) ([]*armstorage.AccountKey, error)
	CreateContainer(ctx context.Context, group, account, name string) error
	EnableStaticWebsite(ctx context.Context, account, key, indexDocument string) error
	DeleteAccount(ctx context.Context, group, name string) error
}

// EventHubClient manages event-hub namespaces and hubs.
type EventHubClient interface {
	CreateNamespace(ctx context.Context, group, name string, ns armeventhub.EHNamespace) (armeventhub.EHNamespace, error)
	CreateHub(ctx context.Context, group, namespace, name string, hub armeventhub.Eventhub) error
	CreateConsumerGroup(ctx context.Context, group, namespace, hub, name string) error
	ListNamespaceKeys(ctx context.Context, group, namespace, ruleName string) (armeventhub.AccessKeys, error)
	DeleteNamespace(ctx context.Context, group, name string) error
}

// ServiceBusClient manages service-bus namespaces, queues and topics.
type ServiceBusClient interface {
	CreateNamespace(ctx context.Context, group, name string, ns armservicebus.SBNamespace) (armservicebus.SBNamespace, error)
	CreateQueue(ctx context.Context, group, namespace, name string) error
	CreateTopic(ctx context.Context, group, namespace, name string) error
	ListNamespaceKeys(ctx context.Context, group, namespace, ruleName string) (armservicebus.AccessKeys, error)
	DeleteNamespace(ctx context.Context, group, name string) error
}

// Clients bundles the per-service clients an environ needs.
type Clients struct {
	Groups     GroupsClient
	Websites   WebsitesClient
	SQL        SQLClient
	Cosmos     CosmosClient
	IoTHub     IoTHubClient
	Cognitive  CognitiveClient
	DNS        DNSClient
	Network    NetworkClient
	Storage    StorageClient
	EventHub   EventHubClient
	ServiceBus ServiceBusClient
}

// NewClients builds SDK-backed clients for the subscription.
func NewClients(subscriptionID string, cred azcore.TokenCredential) (*Clients, error) {
	groups, err := armresources.NewResourceGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	generic, err := armresources.NewClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	plans, err := armappservice.NewPlansClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	webApps, err := armappservice.NewWebAppsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	staticSites, err := armappservice.NewStaticSitesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	sqlServers, err := armsql.NewServersClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	sqlDatabases, err := armsql.NewDatabasesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	sqlFirewall, err := armsql.NewFirewallRulesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	cosmosAccounts, err := armcosmos.NewDatabaseAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	cosmosSQL, err := armcosmos.NewSQLResourcesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	iotHubs, err := armiothub.NewResourceClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	cognitive, err := armcognitiveservices.NewAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	dnsZones, err := armdns.NewZonesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	dnsRecords, err := armdns.NewRecordSetsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	vnets, err := armnetwork.NewVirtualNetworksClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	publicIPs, err := armnetwork.NewPublicIPAddressesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	gateways, err := armnetwork.NewVirtualNetworkGatewaysClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	storageAccounts, err := armstorage.NewAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	blobContainers, err := armstorage.NewBlobContainersClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	ehNamespaces, err := armeventhub.NewNamespacesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	eventHubs, err := armeventhub.NewEventHubsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	consumerGroups, err := armeventhub.NewConsumerGroupsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	sbNamespaces, err := armservicebus.NewNamespacesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	sbQueues, err := armservicebus.NewQueuesClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	sbTopics, err := armservicebus.NewTopicsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &Clients{
		Groups:     &groupsClient{groups: groups, resources: generic},
		Websites:   &websitesClient{plans: plans, webApps: webApps, staticSites: staticSites},
		SQL:        &sqlClient{servers: sqlServers, databases: sqlDatabases, firewall: sqlFirewall},
		Cosmos:     &cosmosClient{accounts: cosmosAccounts, sql: cosmosSQL},
		IoTHub:     &iotHubClient{hubs: iotHubs},
		Cognitive:  &cognitiveClient{accounts: cognitive},
		DNS:        &dnsClient{zones: dnsZones, records: dnsRecords},
		Network:    &networkClient{vnets: vnets, publicIPs: publicIPs, gateways: gateways},
		Storage:    &storageClient{accounts: storageAccounts, containers: blobContainers},
		EventHub:   &eventHubClient{namespaces: ehNamespaces, hubs: eventHubs, consumerGroups: consumerGroups},
		ServiceBus: &serviceBusClient{namespaces: sbNamespaces, queues: sbQueues, topics: sbTopics},
	}, nil
}

type groupsClient struct {
	groups    *armresources.ResourceGroupsClient
	resources *armresources.Client
}

func (c *groupsClient) CreateOrUpdateGroup(ctx context.Context, name string, group armresources.ResourceGroup) error {
	_, err := c.groups.CreateOrUpdate(ctx, name, group, nil)
	return errors.Trace(err)
}

func (c *groupsClient) ListByGroup(ctx context.Context, group string) ([]*armresources.GenericResourceExpanded, error) {
	var all []*armresources.GenericResourceExpanded
	pager := c.resources.NewListByResourceGroupPager(group, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, errors.Trace(err)
		}
		all = append(all, page.Value...)
	}
	return all, nil
}

type websitesClient struct {
	plans       *armappservice.PlansClient
	webApps     *armappservice.WebAppsClient
	staticSites *armappservice.StaticSitesClient
}

func (c *websitesClient) CreatePlan(ctx context.Context, group, name string, plan armappservice.Plan) (armappservice.Plan, error) {
	poller, err := c.plans.BeginCreateOrUpdate(ctx, group, name, plan, nil)
	if err != nil {
		return armappservice.Plan{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armappservice.Plan{}, errors.Trace(err)
	}
	return resp.Plan, nil
}

func (c *websitesClient) CreateSite(ctx context.Context, group, name string, site armappservice.Site) (armappservice.Site, error) {
	poller, err := c.webApps.BeginCreateOrUpdate(ctx, group, name, site, nil)
	if err != nil {
		return armappservice.Site{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armappservice.Site{}, errors.Trace(err)
	}
	return resp.Site, nil
}

func (c *websitesClient) DeleteSite(ctx context.Context, group, name string) error {
	_, err := c.webApps.Delete(ctx, group, name, nil)
	return errors.Trace(err)
}

func (c *websitesClient) CreateStaticSite(ctx context.Context, group, name string, site armappservice.StaticSiteARMResource) (armappservice.StaticSiteARMResource, error) {
	poller, err := c.staticSites.BeginCreateOrUpdateStaticSite(ctx, group, name, site, nil)
	if err != nil {
		return armappservice.StaticSiteARMResource{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armappservice.StaticSiteARMResource{}, errors.Trace(err)
	}
	return resp.StaticSiteARMResource, nil
}

func (c *websitesClient) DeleteStaticSite(ctx context.Context, group, name string) error {
	poller, err := c.staticSites.BeginDeleteStaticSite(ctx, group, name, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

type sqlClient struct {
	servers   *armsql.ServersClient
	databases *armsql.DatabasesClient
	firewall  *armsql.FirewallRulesClient
}

func (c *sqlClient) CreateServer(ctx context.Context, group, name string, server armsql.Server) (armsql.Server, error) {
	poller, err := c.servers.BeginCreateOrUpdate(ctx, group, name, server, nil)
	if err != nil {
		return armsql.Server{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armsql.Server{}, errors.Trace(err)
	}
	return resp.Server, nil
}

func (c *sqlClient) CreateDatabase(ctx context.Context, group, server, name string, db armsql.Database) (armsql.Database, error) {
	poller, err := c.databases.BeginCreateOrUpdate(ctx, group, server, name, db, nil)
	if err != nil {
		return armsql.Database{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armsql.Database{}, errors.Trace(err)
	}
	return resp.Database, nil
}

func (c *sqlClient) CreateFirewallRule(ctx context.Context, group, server, name string, rule armsql.FirewallRule) error {
	_, err := c.firewall.CreateOrUpdate(ctx, group, server, name, rule, nil)
	return errors.Trace(err)
}

func (c *sqlClient) DeleteServer(ctx context.Context, group, name string) error {
	poller, err := c.servers.BeginDelete(ctx, group, name, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

type cosmosClient struct {
	accounts *armcosmos.DatabaseAccountsClient
	sql      *armcosmos.SQLResourcesClient
}

func (c *cosmosClient) CreateAccount(ctx context.Context, group, name string, params armcosmos.DatabaseAccountCreateUpdateParameters) (armcosmos.DatabaseAccountGetResults, error) {
	poller, err := c.accounts.BeginCreateOrUpdate(ctx, group, name, params, nil)
	if err != nil {
		return armcosmos.DatabaseAccountGetResults{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armcosmos.DatabaseAccountGetResults{}, errors.Trace(err)
	}
	return resp.DatabaseAccountGetResults, nil
}

func (c *cosmosClient) CreateSQLDatabase(ctx context.Context, group, account, name string, params armcosmos.SQLDatabaseCreateUpdateParameters) error {
	poller, err := c.sql.BeginCreateUpdateSQLDatabase(ctx, group, account, name, params, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

func (c *cosmosClient) CreateSQLContainer(ctx context.Context, group, account, database, name string, params armcosmos.SQLContainerCreateUpdateParameters) error {
	poller, err := c.sql.BeginCreateUpdateSQLContainer(ctx, group, account, database, name, params, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

func (c *cosmosClient) ListAccountKeys(ctx context.Context, group, name string) (armcosmos.DatabaseAccountListKeysResult, error) {
	resp, err := c.accounts.ListKeys(ctx, group, name, nil)
	if err != nil {
		return armcosmos.DatabaseAccountListKeysResult{}, errors.Trace(err)
	}
	return resp.DatabaseAccountListKeysResult, nil
}

func (c *cosmosClient) DeleteAccount(ctx context.Context, group, name string) error {
	poller, err := c.accounts.BeginDelete(ctx, group, name, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

type iotHubClient struct {
	hubs *armiothub.ResourceClient
}

func (c *iotHubClient) CreateHub(ctx context.Context, group, name string, desc armiothub.Description) (armiothub.Description, error) {
	poller, err := c.hubs.BeginCreateOrUpdate(ctx, group, name, desc, nil)
	if err != nil {
		return armiothub.Description{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armiothub.Description{}, errors.Trace(err)
	}
	return resp.Description, nil
}

func (c *iotHubClient) GetHubKeys(ctx context.Context, group, name, keyName string) (armiothub.SharedAccessSignatureAuthorizationRule, error) {
	resp, err := c.hubs.GetKeysForKeyName(ctx, group, name, keyName, nil)
	if err != nil {
		return armiothub.SharedAccessSignatureAuthorizationRule{}, errors.Trace(err)
	}
	return resp.SharedAccessSignatureAuthorizationRule, nil
}

func (c *iotHubClient) DeleteHub(ctx context.Context, group, name string) error {
	poller, err := c.hubs.BeginDelete(ctx, group, name, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

type cognitiveClient struct {
	accounts *armcognitiveservices.AccountsClient
}

func (c *cognitiveClient) CreateAccount(ctx context.Context, group, name string, account armcognitiveservices.Account) (armcognitiveservices.Account, error) {
	poller, err := c.accounts.BeginCreate(ctx, group, name, account, nil)
	if err != nil {
		return armcognitiveservices.Account{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armcognitiveservices.Account{}, errors.Trace(err)
	}
	return resp.Account, nil
}

func (c *cognitiveClient) ListAccountKeys(ctx context.Context, group, name string) (armcognitiveservices.APIKeys, error) {
	resp, err := c.accounts.ListKeys(ctx, group, name, nil)
	if err != nil {
		return armcognitiveservices.APIKeys{}, errors.Trace(err)
	}
	return resp.APIKeys, nil
}

func (c *cognitiveClient) DeleteAccount(ctx context.Context, group, name string) error {
	poller, err := c.accounts.BeginDelete(ctx, group, name, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

type dnsClient struct {
	zones   *armdns.ZonesClient
	records *armdns.RecordSetsClient
}

func (c *dnsClient) CreateZone(ctx context.Context, group, name string, zone armdns.Zone) (armdns.Zone, error) {
	resp, err := c.zones.CreateOrUpdate(ctx, group, name, zone, nil)
	if err != nil {
		return armdns.Zone{}, errors.Trace(err)
	}
	return resp.Zone, nil
}

func (c *dnsClient) CreateRecordSet(ctx context.Context, group, zone, name string, recordType armdns.RecordType, set armdns.RecordSet) error {
	_, err := c.records.CreateOrUpdate(ctx, group, zone, name, recordType, set, nil)
	return errors.Trace(err)
}

func (c *dnsClient) DeleteZone(ctx context.Context, group, name string) error {
	poller, err := c.zones.BeginDelete(ctx, group, name, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

type networkClient struct {
	vnets     *armnetwork.VirtualNetworksClient
	publicIPs *armnetwork.PublicIPAddressesClient
	gateways  *armnetwork.VirtualNetworkGatewaysClient
}

func (c *networkClient) CreateVirtualNetwork(ctx context.Context, group, name string, vnet armnetwork.VirtualNetwork) (armnetwork.VirtualNetwork, error) {
	poller, err := c.vnets.BeginCreateOrUpdate(ctx, group, name, vnet, nil)
	if err != nil {
		return armnetwork.VirtualNetwork{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.VirtualNetwork{}, errors.Trace(err)
	}
	return resp.VirtualNetwork, nil
}

func (c *networkClient) CreatePublicIP(ctx context.Context, group, name string, ip armnetwork.PublicIPAddress) (armnetwork.PublicIPAddress, error) {
	poller, err := c.publicIPs.BeginCreateOrUpdate(ctx, group, name, ip, nil)
	if err != nil {
		return armnetwork.PublicIPAddress{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.PublicIPAddress{}, errors.Trace(err)
	}
	return resp.PublicIPAddress, nil
}

func (c *networkClient) CreateGateway(ctx context.Context, group, name string, gw armnetwork.VirtualNetworkGateway) (armnetwork.VirtualNetworkGateway, error) {
	poller, err := c.gateways.BeginCreateOrUpdate(ctx, group, name, gw, nil)
	if err != nil {
		return armnetwork.VirtualNetworkGateway{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armnetwork.VirtualNetworkGateway{}, errors.Trace(err)
	}
	return resp.VirtualNetworkGateway, nil
}

func (c *networkClient) DeleteGateway(ctx context.Context, group, name string) error {
	poller, err := c.gateways.BeginDelete(ctx, group, name, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

type storageClient struct {
	accounts   *armstorage.AccountsClient
	containers *armstorage.BlobContainersClient
}

func (c *storageClient) CreateAccount(ctx context.Context, group, name string, params armstorage.AccountCreateParameters) (armstorage.Account, error) {
	poller, err := c.accounts.BeginCreate(ctx, group, name, params, nil)
	if err != nil {
		return armstorage.Account{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armstorage.Account{}, errors.Trace(err)
	}
	return resp.Account, nil
}

func (c *storageClient) ListAccountKeys(ctx context.Context, group, name string) ([]*armstorage.AccountKey, error) {
	resp, err := c.accounts.ListKeys(ctx, group, name, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return resp.Keys, nil
}

func (c *storageClient) CreateContainer(ctx context.Context, group, account, name string) error {
	_, err := c.containers.Create(ctx, group, account, name, armstorage.BlobContainer{}, nil)
	return errors.Trace(err)
}

// EnableStaticWebsite flips the static-website flag on the blob
// service. This is a data-plane operation, so it authenticates with
// the account key rather than the management credential.
func (c *storageClient) EnableStaticWebsite(ctx context.Context, account, key, indexDocument string) error {
	cred, err := azblob.NewSharedKeyCredential(account, key)
	if err != nil {
		return errors.Trace(err)
	}
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", account)
	client, err := service.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return errors.Trace(err)
	}
	enabled := true
	_, err = client.SetProperties(ctx, &service.SetPropertiesOptions{
		StaticWebsite: &service.StaticWebsite{
			Enabled:       &enabled,
			IndexDocument: &indexDocument,
		},
	})
	return errors.Trace(err)
}

func (c *storageClient) DeleteAccount(ctx context.Context, group, name string) error {
	_, err := c.accounts.Delete(ctx, group, name, nil)
	return errors.Trace(err)
}

type eventHubClient struct {
	namespaces     *armeventhub.NamespacesClient
	hubs           *armeventhub.EventHubsClient
	consumerGroups *armeventhub.ConsumerGroupsClient
}

func (c *eventHubClient) CreateNamespace(ctx context.Context, group, name string, ns armeventhub.EHNamespace) (armeventhub.EHNamespace, error) {
	poller, err := c.namespaces.BeginCreateOrUpdate(ctx, group, name, ns, nil)
	if err != nil {
		return armeventhub.EHNamespace{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armeventhub.EHNamespace{}, errors.Trace(err)
	}
	return resp.EHNamespace, nil
}

func (c *eventHubClient) CreateHub(ctx context.Context, group, namespace, name string, hub armeventhub.Eventhub) error {
	_, err := c.hubs.CreateOrUpdate(ctx, group, namespace, name, hub, nil)
	return errors.Trace(err)
}

func (c *eventHubClient) CreateConsumerGroup(ctx context.Context, group, namespace, hub, name string) error {
	_, err := c.consumerGroups.CreateOrUpdate(ctx, group, namespace, hub, name, armeventhub.ConsumerGroup{}, nil)
	return errors.Trace(err)
}

func (c *eventHubClient) ListNamespaceKeys(ctx context.Context, group, namespace, ruleName string) (armeventhub.AccessKeys, error) {
	resp, err := c.namespaces.ListKeys(ctx, group, namespace, ruleName, nil)
	if err != nil {
		return armeventhub.AccessKeys{}, errors.Trace(err)
	}
	return resp.AccessKeys, nil
}

func (c *eventHubClient) DeleteNamespace(ctx context.Context, group, name string) error {
	poller, err := c.namespaces.BeginDelete(ctx, group, name, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}

type serviceBusClient struct {
	namespaces *armservicebus.NamespacesClient
	queues     *armservicebus.QueuesClient
	topics     *armservicebus.TopicsClient
}

func (c *serviceBusClient) CreateNamespace(ctx context.Context, group, name string, ns armservicebus.SBNamespace) (armservicebus.SBNamespace, error) {
	poller, err := c.namespaces.BeginCreateOrUpdate(ctx, group, name, ns, nil)
	if err != nil {
		return armservicebus.SBNamespace{}, errors.Trace(err)
	}
	resp, err := poller.PollUntilDone(ctx, nil)
	if err != nil {
		return armservicebus.SBNamespace{}, errors.Trace(err)
	}
	return resp.SBNamespace, nil
}

func (c *serviceBusClient) CreateQueue(ctx context.Context, group, namespace, name string) error {
	_, err := c.queues.CreateOrUpdate(ctx, group, namespace, name, armservicebus.SBQueue{}, nil)
	return errors.Trace(err)
}

func (c *serviceBusClient) CreateTopic(ctx context.Context, group, namespace, name string) error {
	_, err := c.topics.CreateOrUpdate(ctx, group, namespace, name, armservicebus.SBTopic{}, nil)
	return errors.Trace(err)
}

func (c *serviceBusClient) ListNamespaceKeys(ctx context.Context, group, namespace, ruleName string) (armservicebus.AccessKeys, error) {
	resp, err := c.namespaces.ListKeys(ctx, group, namespace, ruleName, nil)
	if err != nil {
		return armservicebus.AccessKeys{}, errors.Trace(err)
	}
	return resp.AccessKeys, nil
}

func (c *serviceBusClient) DeleteNamespace(ctx context.Context, group, name string) error {
	poller, err := c.namespaces.BeginDelete(ctx, group, name, nil)
	if err != nil {
		return errors.Trace(err)
	}
	_, err = poller.PollUntilDone(ctx, nil)
	return errors.Trace(err)
}
