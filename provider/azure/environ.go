// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/retry"

	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/resources"
)

type azureEnviron struct {
	cloud      environs.CloudSpec
	cfg        *config.Config
	clients    *Clients
	retryClock clock.Clock
}

func newEnviron(args environs.OpenParams, clients *Clients, retryClock clock.Clock) *azureEnviron {
	return &azureEnviron{
		cloud:      args.Cloud,
		cfg:        args.Config,
		clients:    clients,
		retryClock: retryClock,
	}
}

// group returns the lab's resource group name.
func (env *azureEnviron) group() string {
	return env.cfg.ResourceGroup()
}

// PrepareGroup is part of the environs.Environ interface. Resource
// group creation right after a fresh role assignment can fail with a
// transient authorization error, so it is retried briefly.
func (env *azureEnviron) PrepareGroup(ctx context.Context) error {
	group := env.group()
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			return env.clients.Groups.CreateOrUpdateGroup(ctx, group, armresources.ResourceGroup{
				Location: to.Ptr(env.cloud.Region),
				Tags: map[string]*string{
					"project":     to.Ptr(env.cfg.Project()),
					"environment": to.Ptr(env.cfg.Environment()),
					"managed-by":  to.Ptr("homelab"),
				},
			})
		},
		IsFatalError: func(err error) bool {
			return !isTransient(err)
		},
		NotifyFunc: func(err error, attempt int) {
			logger.Debugf("resource group %q attempt %d: %v", group, attempt, err)
		},
		Attempts: 4,
		Delay:    2 * time.Second,
		Clock:    env.retryClock,
	})
	if err != nil {
		return errors.Annotatef(err, "ensuring resource group %q", group)
	}
	logger.Infof("resource group %q ready in %s", group, env.cloud.Region)
	return nil
}

// isTransient reports whether an Azure error is worth retrying. The
// SDK already retries HTTP-level failures, so this only has to catch
// the eventual-consistency cases that surface as hard errors.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "AuthorizationFailed") ||
		strings.Contains(msg, "RetryableError") ||
		strings.Contains(msg, "Canceled")
}

// Deploy is part of the environs.Environ interface.
func (env *azureEnviron) Deploy(ctx context.Context, spec resources.Spec) (*resources.Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	start := env.retryClock.Now()
	logger.Infof("deploying %s %q", spec.Kind(), spec.Name())

	var (
		result *resources.Result
		err    error
	)
	switch spec := spec.(type) {
	case resources.WebsiteSpec:
		result, err = env.deployWebsite(ctx, spec)
	case resources.SQLDatabaseSpec:
		result, err = env.deploySQLDatabase(ctx, spec)
	case resources.CosmosDBSpec:
		result, err = env.deployCosmosDB(ctx, spec)
	case resources.IoTHubSpec:
		result, err = env.deployIoTHub(ctx, spec)
	case resources.CognitiveServicesSpec:
		result, err = env.deployCognitive(ctx, spec)
	case resources.DNSZoneSpec:
		result, err = env.deployDNSZone(ctx, spec)
	case resources.VPNGatewaySpec:
		result, err = env.deployVPNGateway(ctx, spec)
	case resources.StorageAccountSpec:
		result, err = env.deployStorageAccount(ctx, spec)
	case resources.EventHubSpec:
		result, err = env.deployEventHub(ctx, spec)
	case resources.ServiceBusSpec:
		result, err = env.deployServiceBus(ctx, spec)
	default:
		return nil, errors.NotSupportedf("resource kind %q on azure", spec.Kind())
	}
	if err != nil {
		return nil, errors.Annotatef(err, "deploying %s %q", spec.Kind(), spec.Name())
	}
	result.Kind = spec.Kind()
	result.Name = spec.Name()
	result.Provider = "azure"
	result.Region = env.cloud.Region
	result.Group = env.group()
	result.Elapsed = env.retryClock.Now().Sub(start)
	logger.Infof("deployed %s %q in %s", spec.Kind(), spec.Name(), result.Elapsed)
	return result, nil
}

// Destroy is part of the environs.Environ interface.
func (env *azureEnviron) Destroy(ctx context.Context, kind resources.Kind, name string) error {
	group := env.group()
	logger.Infof("destroying %s %q", kind, name)
	var err error
	switch kind {
	case resources.KindWebsite:
		// Try both shapes: name may be an app-service site or a
		// static site.
		err = env.clients.Websites.DeleteSite(ctx, group, name)
		if err != nil {
			if serr := env.clients.Websites.DeleteStaticSite(ctx, group, name); serr == nil {
				err = nil
			}
		}
	case resources.KindSQLDatabase:
		err = env.clients.SQL.DeleteServer(ctx, group, name)
	case resources.KindCosmosDB:
		err = env.clients.Cosmos.DeleteAccount(ctx, group, name)
	case resources.KindIoTHub:
		err = env.clients.IoTHub.DeleteHub(ctx, group, name)
	case resources.KindCognitiveServices:
		err = env.clients.Cognitive.DeleteAccount(ctx, group, name)
	case resources.KindDNSZone:
		err = env.clients.DNS.DeleteZone(ctx, group, name)
	case resources.KindVPNGateway:
		err = env.clients.Network.DeleteGateway(ctx, group, name)
	case resources.KindStorageAccount:
		err = env.clients.Storage.DeleteAccount(ctx, group, name)
	case resources.KindEventHub:
		err = env.clients.EventHub.DeleteNamespace(ctx, group, name)
	case resources.KindServiceBus:
		err = env.clients.ServiceBus.DeleteNamespace(ctx, group, name)
	default:
		return errors.NotSupportedf("resource kind %q on azure", kind)
	}
	if err != nil {
		if isNotFound(err) {
			return errors.NotFoundf("%s %q", kind, name)
		}
		return errors.Annotatef(err, "destroying %s %q", kind, name)
	}
	return nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "ResourceNotFound") ||
		strings.Contains(msg, "NotFound") ||
		strings.Contains(msg, "404")
}

// azureTypeKinds maps resource manager types to console kinds.
var azureTypeKinds = map[string]resources.Kind{
	"microsoft.web/sites":                        resources.KindWebsite,
	"microsoft.web/staticsites":                  resources.KindWebsite,
	"microsoft.sql/servers":                      resources.KindSQLDatabase,
	"microsoft.documentdb/databaseaccounts":      resources.KindCosmosDB,
	"microsoft.devices/iothubs":                  resources.KindIoTHub,
	"microsoft.cognitiveservices/accounts":       resources.KindCognitiveServices,
	"microsoft.network/dnszones":                 resources.KindDNSZone,
	"microsoft.network/virtualnetworkgateways":   resources.KindVPNGateway,
	"microsoft.storage/storageaccounts":          resources.KindStorageAccount,
	"microsoft.eventhub/namespaces":              resources.KindEventHub,
	"microsoft.servicebus/namespaces":            resources.KindServiceBus,
}

// Resources is part of the environs.Environ interface. Supporting
// resources like app-service plans and virtual networks are filtered
// out; the listing answers "what did I deploy", not "what exists".
func (env *azureEnviron) Resources(ctx context.Context) ([]resources.Summary, error) {
	all, err := env.clients.Groups.ListByGroup(ctx, env.group())
	if err != nil {
		if isNotFound(err) {
			// No group yet means an empty lab.
			return nil, nil
		}
		return nil, errors.Annotate(err, "listing resources")
	}
	var summaries []resources.Summary
	for _, res := range all {
		if res.Type == nil || res.Name == nil {
			continue
		}
		kind, ok := azureTypeKinds[strings.ToLower(*res.Type)]
		if !ok {
			continue
		}
		s := resources.Summary{
			Kind:   kind,
			Name:   *res.Name,
			Status: "deployed",
		}
		if res.Location != nil {
			s.Location = *res.Location
		}
		if res.ProvisioningState != nil {
			s.Status = strings.ToLower(*res.ProvisioningState)
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
