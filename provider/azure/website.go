// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/appservice/armappservice/v2"
	"github.com/juju/errors"

	"github.com/homelab/homelab/resources"
)

const (
	defaultPlanSKU   = "B1"
	defaultStaticSKU = "Free"
)

// deployWebsite creates either a static web app (when the spec names a
// source repository or asks for a static site) or an app-service plan
// with a web app on it.
func (env *azureEnviron) deployWebsite(ctx context.Context, spec resources.WebsiteSpec) (*resources.Result, error) {
	if spec.Static || spec.Repository != "" {
		return env.deployStaticSite(ctx, spec)
	}
	return env.deployAppService(ctx, spec)
}

func (env *azureEnviron) deployStaticSite(ctx context.Context, spec resources.WebsiteSpec) (*resources.Result, error) {
	sku := spec.SKU
	if sku == "" {
		sku = defaultStaticSKU
	}
	site := armappservice.StaticSiteARMResource{
		Location: to.Ptr(env.cloud.Region),
		SKU: &armappservice.SKUDescription{
			Name: to.Ptr(sku),
			Tier: to.Ptr(sku),
		},
		Properties: &armappservice.StaticSite{},
	}
	if spec.Repository != "" {
		branch := spec.Branch
		if branch == "" {
			branch = "main"
		}
		site.Properties.RepositoryURL = to.Ptr("https://github.com/" + spec.Repository)
		site.Properties.Branch = to.Ptr(branch)
	}
	created, err := env.clients.Websites.CreateStaticSite(ctx, env.group(), spec.SiteName, site)
	if err != nil {
		return nil, errors.Annotate(err, "creating static site")
	}
	result := &resources.Result{
		Endpoints:  map[string]string{},
		Attributes: map[string]string{"mode": "static"},
	}
	if created.Properties != nil && created.Properties.DefaultHostname != nil {
		result.Endpoints["site"] = "https://" + *created.Properties.DefaultHostname
	}
	if spec.Repository != "" {
		result.Attributes["repository"] = spec.Repository
	}
	return result, nil
}

func (env *azureEnviron) deployAppService(ctx context.Context, spec resources.WebsiteSpec) (*resources.Result, error) {
	group := env.group()
	planName := spec.SiteName + "-plan"
	sku := spec.SKU
	if sku == "" {
		sku = defaultPlanSKU
	}
	plan, err := env.clients.Websites.CreatePlan(ctx, group, planName, armappservice.Plan{
		Location: to.Ptr(env.cloud.Region),
		SKU: &armappservice.SKUDescription{
			Name: to.Ptr(sku),
		},
		Properties: &armappservice.PlanProperties{
			// Linux plans must be marked reserved.
			Reserved: to.Ptr(true),
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "creating app service plan")
	}

	site := armappservice.Site{
		Location: to.Ptr(env.cloud.Region),
		Properties: &armappservice.SiteProperties{
			ServerFarmID: plan.ID,
			HTTPSOnly:    to.Ptr(true),
		},
	}
	if spec.Runtime != "" {
		site.Properties.SiteConfig = &armappservice.SiteConfig{
			LinuxFxVersion: to.Ptr(spec.Runtime),
		}
	}
	created, err := env.clients.Websites.CreateSite(ctx, group, spec.SiteName, site)
	if err != nil {
		return nil, errors.Annotate(err, "creating web app")
	}
	result := &resources.Result{
		Endpoints: map[string]string{},
		Attributes: map[string]string{
			"mode": "appservice",
			"plan": planName,
		},
	}
	if created.Properties != nil && created.Properties.DefaultHostName != nil {
		result.Endpoints["site"] = fmt.Sprintf("https://%s", *created.Properties.DefaultHostName)
	}
	return result, nil
}
