// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure_test

import (
	"context"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/eventhub/armeventhub"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armresources"
	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/provider/azure"
	"github.com/homelab/homelab/resources"
)

const longWait = 10 * time.Second

type environSuite struct {
	testing.IsolationSuite

	stub     *testing.Stub
	clock    *testclock.Clock
	groups   *fakeGroups
	websites *fakeWebsites
	eventhub *fakeEventHub
	clients  *azure.Clients
	cfg      *config.Config
}

var _ = gc.Suite(&environSuite{})

func (s *environSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.stub = &testing.Stub{}
	s.clock = testclock.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.groups = &fakeGroups{stub: s.stub}
	s.websites = &fakeWebsites{
		stub: s.stub,
		plan: armappservice.Plan{ID: to.Ptr("/plans/mylab-dev-web-plan")},
		site: armappservice.Site{Properties: &armappservice.SiteProperties{
			DefaultHostName: to.Ptr("mylab-dev-web.azurewebsites.net"),
		}},
		staticSite: armappservice.StaticSiteARMResource{Properties: &armappservice.StaticSite{
			DefaultHostname: to.Ptr("gentle-hill-0a1b2c3d.azurestaticapps.net"),
		}},
	}
	s.eventhub = &fakeEventHub{
		stub: s.stub,
		namespace: armeventhub.EHNamespace{Properties: &armeventhub.EHNamespaceProperties{
			ServiceBusEndpoint: to.Ptr("https://mylab-dev-events.servicebus.windows.net:443/"),
		}},
		keys: armeventhub.AccessKeys{
			PrimaryConnectionString: to.Ptr("Endpoint=sb://mylab-dev-events.servicebus.windows.net/;SharedAccessKeyName=RootManageSharedAccessKey;SharedAccessKey=sekrit"),
		},
	}
	s.clients = &azure.Clients{
		Groups:   s.groups,
		Websites: s.websites,
		EventHub: s.eventhub,
	}
	cfg, err := config.New(config.UseDefaults, map[string]interface{}{
		"project":         "mylab",
		"subscription-id": "sub-1",
	})
	c.Assert(err, jc.ErrorIsNil)
	s.cfg = cfg
}

func (s *environSuite) provider(c *gc.C) environs.Provider {
	prov, err := azure.NewProvider(azure.ProviderConfig{
		NewCredential: func() (azcore.TokenCredential, error) {
			return fakeCredential{}, nil
		},
		NewClients: func(subscriptionID string, cred azcore.TokenCredential) (*azure.Clients, error) {
			c.Check(subscriptionID, gc.Equals, "sub-1")
			return s.clients, nil
		},
		RetryClock: s.clock,
	})
	c.Assert(err, jc.ErrorIsNil)
	return prov
}

func (s *environSuite) open(c *gc.C) environs.Environ {
	env, err := s.provider(c).Open(environs.OpenParams{
		Cloud: environs.CloudSpec{
			Name:           "azure",
			Region:         "westeurope",
			SubscriptionID: "sub-1",
		},
		Config: s.cfg,
	})
	c.Assert(err, jc.ErrorIsNil)
	return env
}

func (s *environSuite) TestValidateCloud(c *gc.C) {
	prov := s.provider(c)
	err := prov.ValidateCloud(environs.CloudSpec{Region: "westeurope"})
	c.Assert(err, gc.ErrorMatches, "missing subscription-id not valid")
	err = prov.ValidateCloud(environs.CloudSpec{SubscriptionID: "sub-1"})
	c.Assert(err, gc.ErrorMatches, "missing region not valid")
	err = prov.ValidateCloud(environs.CloudSpec{Region: "westeurope", SubscriptionID: "sub-1"})
	c.Assert(err, jc.ErrorIsNil)
}

func (s *environSuite) TestOpenCredentialError(c *gc.C) {
	prov, err := azure.NewProvider(azure.ProviderConfig{
		NewCredential: func() (azcore.TokenCredential, error) {
			return nil, errors.New("no az login")
		},
		NewClients: func(string, azcore.TokenCredential) (*azure.Clients, error) {
			return s.clients, nil
		},
		RetryClock: s.clock,
	})
	c.Assert(err, jc.ErrorIsNil)
	_, err = prov.Open(environs.OpenParams{Config: s.cfg})
	c.Assert(err, gc.ErrorMatches, "obtaining credential: no az login")
}

func (s *environSuite) TestPrepareGroup(c *gc.C) {
	env := s.open(c)
	err := env.PrepareGroup(context.Background())
	c.Assert(err, jc.ErrorIsNil)

	s.stub.CheckCallNames(c, "CreateOrUpdateGroup")
	call := s.stub.Calls()[0]
	c.Check(call.Args[0], gc.Equals, "mylab-dev-rg")
	group := call.Args[1].(armresources.ResourceGroup)
	c.Assert(group.Location, gc.NotNil)
	c.Check(*group.Location, gc.Equals, "westeurope")
	c.Check(*group.Tags["project"], gc.Equals, "mylab")
	c.Check(*group.Tags["environment"], gc.Equals, "dev")
	c.Check(*group.Tags["managed-by"], gc.Equals, "homelab")
}

func (s *environSuite) TestPrepareGroupRetriesTransient(c *gc.C) {
	s.stub.SetErrors(
		errors.New("AuthorizationFailed: role assignment not yet visible"),
		errors.New("AuthorizationFailed: role assignment not yet visible"),
		nil,
	)
	env := s.open(c)

	done := make(chan error)
	go func() {
		done <- env.PrepareGroup(context.Background())
	}()
	// Each failed attempt parks one waiter on the retry delay.
	c.Assert(s.clock.WaitAdvance(2*time.Second, longWait, 1), jc.ErrorIsNil)
	c.Assert(s.clock.WaitAdvance(2*time.Second, longWait, 1), jc.ErrorIsNil)

	select {
	case err := <-done:
		c.Assert(err, jc.ErrorIsNil)
	case <-time.After(longWait):
		c.Fatalf("timed out waiting for PrepareGroup")
	}
	s.stub.CheckCallNames(c, "CreateOrUpdateGroup", "CreateOrUpdateGroup", "CreateOrUpdateGroup")
}

func (s *environSuite) TestPrepareGroupFatalError(c *gc.C) {
	s.stub.SetErrors(errors.New("InvalidResourceGroup: bad name"))
	env := s.open(c)
	err := env.PrepareGroup(context.Background())
	c.Assert(err, gc.ErrorMatches, `ensuring resource group "mylab-dev-rg": InvalidResourceGroup: bad name`)
	s.stub.CheckCallNames(c, "CreateOrUpdateGroup")
}

func (s *environSuite) TestDeployAppServiceWebsite(c *gc.C) {
	env := s.open(c)
	result, err := env.Deploy(context.Background(), resources.WebsiteSpec{
		SiteName: "mylab-dev-web",
		Runtime:  "NODE|20-lts",
	})
	c.Assert(err, jc.ErrorIsNil)

	c.Check(result.Kind, gc.Equals, resources.KindWebsite)
	c.Check(result.Name, gc.Equals, "mylab-dev-web")
	c.Check(result.Provider, gc.Equals, "azure")
	c.Check(result.Region, gc.Equals, "westeurope")
	c.Check(result.Group, gc.Equals, "mylab-dev-rg")
	c.Check(result.Endpoints["site"], gc.Equals, "https://mylab-dev-web.azurewebsites.net")
	c.Check(result.Attributes["mode"], gc.Equals, "appservice")
	c.Check(result.Attributes["plan"], gc.Equals, "mylab-dev-web-plan")

	s.stub.CheckCallNames(c, "CreatePlan", "CreateSite")
	plan := s.stub.Calls()[0]
	c.Check(plan.Args[1], gc.Equals, "mylab-dev-web-plan")
	c.Check(*plan.Args[2].(armappservice.Plan).SKU.Name, gc.Equals, "B1")
	site := s.stub.Calls()[1].Args[2].(armappservice.Site)
	c.Check(*site.Properties.ServerFarmID, gc.Equals, "/plans/mylab-dev-web-plan")
	c.Check(*site.Properties.SiteConfig.LinuxFxVersion, gc.Equals, "NODE|20-lts")
}

func (s *environSuite) TestDeployStaticWebsite(c *gc.C) {
	env := s.open(c)
	result, err := env.Deploy(context.Background(), resources.WebsiteSpec{
		SiteName:   "mylab-dev-web",
		Repository: "hacker/blog",
	})
	c.Assert(err, jc.ErrorIsNil)

	c.Check(result.Endpoints["site"], gc.Equals, "https://gentle-hill-0a1b2c3d.azurestaticapps.net")
	c.Check(result.Attributes["mode"], gc.Equals, "static")
	c.Check(result.Attributes["repository"], gc.Equals, "hacker/blog")

	s.stub.CheckCallNames(c, "CreateStaticSite")
	site := s.stub.Calls()[0].Args[2].(armappservice.StaticSiteARMResource)
	c.Check(*site.Properties.RepositoryURL, gc.Equals, "https://github.com/hacker/blog")
	c.Check(*site.Properties.Branch, gc.Equals, "main")
}

func (s *environSuite) TestDeployInvalidSpec(c *gc.C) {
	env := s.open(c)
	_, err := env.Deploy(context.Background(), resources.WebsiteSpec{})
	c.Assert(err, gc.ErrorMatches, "empty site name not valid")
	s.stub.CheckCallNames(c)
}

func (s *environSuite) TestDeployEventHub(c *gc.C) {
	env := s.open(c)
	result, err := env.Deploy(context.Background(), resources.EventHubSpec{
		NamespaceName:  "mylab-dev-events",
		HubName:        "telemetry",
		ConsumerGroups: []string{"analytics"},
	})
	c.Assert(err, jc.ErrorIsNil)

	c.Check(result.Kind, gc.Equals, resources.KindEventHub)
	c.Check(result.Endpoints["namespace"], gc.Equals, "https://mylab-dev-events.servicebus.windows.net:443/")
	c.Check(result.Keys["connection-string"], gc.Matches, "Endpoint=sb://.*")
	c.Check(result.Attributes["hub"], gc.Equals, "telemetry")

	s.stub.CheckCallNames(c, "CreateNamespace", "CreateHub", "CreateConsumerGroup", "ListNamespaceKeys")
	hub := s.stub.Calls()[1].Args[3].(armeventhub.Eventhub)
	c.Check(*hub.Properties.PartitionCount, gc.Equals, int64(2))
	c.Check(*hub.Properties.MessageRetentionInDays, gc.Equals, int64(1))
	c.Check(s.stub.Calls()[2].Args[3], gc.Equals, "analytics")
	c.Check(s.stub.Calls()[3].Args[2], gc.Equals, "RootManageSharedAccessKey")
}

func (s *environSuite) TestDeployEventHubNamespaceError(c *gc.C) {
	s.stub.SetErrors(errors.New("quota exhausted"))
	env := s.open(c)
	_, err := env.Deploy(context.Background(), resources.EventHubSpec{
		NamespaceName: "mylab-dev-events",
		HubName:       "telemetry",
	})
	c.Assert(err, gc.ErrorMatches, `deploying event-hub "mylab-dev-events": creating namespace: quota exhausted`)
}

func (s *environSuite) TestDestroyWebsite(c *gc.C) {
	env := s.open(c)
	err := env.Destroy(context.Background(), resources.KindWebsite, "mylab-dev-web")
	c.Assert(err, jc.ErrorIsNil)
	s.stub.CheckCalls(c, []testing.StubCall{
		{FuncName: "DeleteSite", Args: []interface{}{"mylab-dev-rg", "mylab-dev-web"}},
	})
}

func (s *environSuite) TestDestroyWebsiteStaticFallback(c *gc.C) {
	s.stub.SetErrors(errors.New("ResourceNotFound: no such site"), nil)
	env := s.open(c)
	err := env.Destroy(context.Background(), resources.KindWebsite, "mylab-dev-web")
	c.Assert(err, jc.ErrorIsNil)
	s.stub.CheckCallNames(c, "DeleteSite", "DeleteStaticSite")
}

func (s *environSuite) TestDestroyNotFound(c *gc.C) {
	s.stub.SetErrors(
		errors.New("ResourceNotFound: no such site"),
		errors.New("ResourceNotFound: no such static site"),
	)
	env := s.open(c)
	err := env.Destroy(context.Background(), resources.KindWebsite, "gone")
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
	c.Assert(err, gc.ErrorMatches, `website "gone" not found`)
}

func (s *environSuite) TestDestroyUnsupportedKind(c *gc.C) {
	env := s.open(c)
	err := env.Destroy(context.Background(), resources.Kind("volcano"), "v")
	c.Assert(err, jc.Satisfies, errors.IsNotSupported)
}

func (s *environSuite) TestResources(c *gc.C) {
	s.groups.resources = []*armresources.GenericResourceExpanded{{
		Type:              to.Ptr("Microsoft.Web/sites"),
		Name:              to.Ptr("mylab-dev-web"),
		Location:          to.Ptr("westeurope"),
		ProvisioningState: to.Ptr("Succeeded"),
	}, {
		// Supporting resources are not listed.
		Type: to.Ptr("Microsoft.Web/serverfarms"),
		Name: to.Ptr("mylab-dev-web-plan"),
	}, {
		Type: to.Ptr("Microsoft.Storage/storageAccounts"),
		Name: to.Ptr("mylabdevstore"),
	}, {
		Name: to.Ptr("no-type"),
	}}

	env := s.open(c)
	summaries, err := env.Resources(context.Background())
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(summaries, jc.DeepEquals, []resources.Summary{{
		Kind:     resources.KindWebsite,
		Name:     "mylab-dev-web",
		Status:   "succeeded",
		Location: "westeurope",
	}, {
		Kind:   resources.KindStorageAccount,
		Name:   "mylabdevstore",
		Status: "deployed",
	}})
}

func (s *environSuite) TestResourcesNoGroup(c *gc.C) {
	s.stub.SetErrors(errors.New("ResourceGroupNotFound: mylab-dev-rg"))
	env := s.open(c)
	summaries, err := env.Resources(context.Background())
	c.Assert(err, jc.ErrorIsNil)
	c.Check(summaries, gc.HasLen, 0)
}

type fakeCredential struct{}

func (fakeCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "faketoken"}, nil
}

type fakeGroups struct {
	stub      *testing.Stub
	resources []*armresources.GenericResourceExpanded
}

func (f *fakeGroups) CreateOrUpdateGroup(ctx context.Context, name string, group armresources.ResourceGroup) error {
	f.stub.AddCall("CreateOrUpdateGroup", name, group)
	return f.stub.NextErr()
}

func (f *fakeGroups) ListByGroup(ctx context.Context, group string) ([]*armresources.GenericResourceExpanded, error) {
	f.stub.AddCall("ListByGroup", group)
	if err := f.stub.NextErr(); err != nil {
		return nil, err
	}
	return f.resources, nil
}

type fakeWebsites struct {
	stub       *testing.Stub
	plan       armappservice.Plan
	site       armappservice.Site
	staticSite armappservice.StaticSiteARMResource
}

func (f *fakeWebsites) CreatePlan(ctx context.Context, group, name string, plan armappservice.Plan) (armappservice.Plan, error) {
	f.stub.AddCall("CreatePlan", group, name, plan)
	return f.plan, f.stub.NextErr()
}

func (f *fakeWebsites) CreateSite(ctx context.Context, group, name string, site armappservice.Site) (armappservice.Site, error) {
	f.stub.AddCall("CreateSite", group, name, site)
	return f.site, f.stub.NextErr()
}

func (f *fakeWebsites) DeleteSite(ctx context.Context, group, name string) error {
	f.stub.AddCall("DeleteSite", group, name)
	return f.stub.NextErr()
}

func (f *fakeWebsites) CreateStaticSite(ctx context.Context, group, name string, site armappservice.StaticSiteARMResource) (armappservice.StaticSiteARMResource, error) {
	f.stub.AddCall("CreateStaticSite", group, name, site)
	return f.staticSite, f.stub.NextErr()
}

func (f *fakeWebsites) DeleteStaticSite(ctx context.Context, group, name string) error {
	f.stub.AddCall("DeleteStaticSite", group, name)
	return f.stub.NextErr()
}

type fakeEventHub struct {
	stub      *testing.Stub
	namespace armeventhub.EHNamespace
	keys      armeventhub.AccessKeys
}

func (f *fakeEventHub) CreateNamespace(ctx context.Context, group, name string, ns armeventhub.EHNamespace) (armeventhub.EHNamespace, error) {
	f.stub.AddCall("CreateNamespace", group, name, ns)
	return f.namespace, f.stub.NextErr()
}

func (f *fakeEventHub) CreateHub(ctx context.Context, group, namespace, name string, hub armeventhub.Eventhub) error {
	f.stub.AddCall("CreateHub", group, namespace, name, hub)
	return f.stub.NextErr()
}

func (f *fakeEventHub) CreateConsumerGroup(ctx context.Context, group, namespace, hub, name string) error {
	f.stub.AddCall("CreateConsumerGroup", group, namespace, hub, name)
	return f.stub.NextErr()
}

func (f *fakeEventHub) ListNamespaceKeys(ctx context.Context, group, namespace, ruleName string) (armeventhub.AccessKeys, error) {
	f.stub.AddCall("ListNamespaceKeys", group, namespace, ruleName)
	return f.keys, f.stub.NextErr()
}

func (f *fakeEventHub) DeleteNamespace(ctx context.Context, group, name string) error {
	f.stub.AddCall("DeleteNamespace", group, name)
	return f.stub.NextErr()
}
