// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package gce implements a minimal Google Cloud provider. Only static
// website buckets are supported.
package gce

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"google.golang.org/api/googleapi"
	storage "google.golang.org/api/storage/v1"

	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/resources"
)

var logger = loggo.GetLogger("homelab.provider.gce")

// BucketService is the slice of the Cloud Storage API the environ
// uses.
type BucketService interface {
	Insert(ctx context.Context, project string, bucket *storage.Bucket) (*storage.Bucket, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, project string) ([]*storage.Bucket, error)
}

// ProviderConfig contains the configuration for the GCE provider.
type ProviderConfig struct {
	NewBucketService func(ctx context.Context) (BucketService, error)
}

// Validate validates the provider configuration.
func (cfg ProviderConfig) Validate() error {
	if cfg.NewBucketService == nil {
		return errors.NotValidf("nil NewBucketService")
	}
	return nil
}

type gceProvider struct {
	config ProviderConfig
}

// NewProvider returns a new environs.Provider for Google Cloud.
func NewProvider(config ProviderConfig) (environs.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Annotate(err, "validating provider configuration")
	}
	return &gceProvider{config: config}, nil
}

// ValidateCloud is part of the environs.Provider interface.
func (prov *gceProvider) ValidateCloud(cloud environs.CloudSpec) error {
	if cloud.SubscriptionID == "" {
		// The subscription-id attribute doubles as the GCP project ID.
		return errors.NotValidf("missing project (set subscription-id)")
	}
	return nil
}

// Open is part of the environs.Provider interface.
func (prov *gceProvider) Open(args environs.OpenParams) (environs.Environ, error) {
	logger.Debugf("opening lab %q", args.Config.Project())
	return &gceEnviron{
		cloud:            args.Cloud,
		cfg:              args.Config,
		newBucketService: prov.config.NewBucketService,
	}, nil
}

type gceEnviron struct {
	cloud            environs.CloudSpec
	cfg              *config.Config
	newBucketService func(ctx context.Context) (BucketService, error)
}

// PrepareGroup is part of the environs.Environ interface. Like AWS,
// grouping is by name prefix.
func (env *gceEnviron) PrepareGroup(ctx context.Context) error {
	return nil
}

func (env *gceEnviron) bucketPrefix() string {
	return fmt.Sprintf("%s-%s-", env.cfg.Project(), env.cfg.Environment())
}

// Deploy is part of the environs.Environ interface.
func (env *gceEnviron) Deploy(ctx context.Context, spec resources.Spec) (*resources.Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	website, ok := spec.(resources.WebsiteSpec)
	if !ok {
		return nil, errors.NotSupportedf("resource kind %q on gce", spec.Kind())
	}
	svc, err := env.newBucketService(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	name := env.bucketPrefix() + website.SiteName
	_, err = svc.Insert(ctx, env.cloud.SubscriptionID, &storage.Bucket{
		Name:     name,
		Location: env.cloud.Region,
		Website: &storage.BucketWebsite{
			MainPageSuffix: "index.html",
			NotFoundPage:   "404.html",
		},
	})
	if err != nil && !hasStatusCode(err, http.StatusConflict) {
		return nil, errors.Annotatef(err, "creating bucket %q", name)
	}
	logger.Infof("deployed website bucket %q", name)
	return &resources.Result{
		Kind:     website.Kind(),
		Name:     website.SiteName,
		Provider: "gce",
		Region:   env.cloud.Region,
		Endpoints: map[string]string{
			"site": fmt.Sprintf("https://storage.googleapis.com/%s/index.html", name),
		},
		Attributes: map[string]string{"bucket": name},
	}, nil
}

// Destroy is part of the environs.Environ interface.
func (env *gceEnviron) Destroy(ctx context.Context, kind resources.Kind, name string) error {
	if kind != resources.KindWebsite {
		return errors.NotSupportedf("resource kind %q on gce", kind)
	}
	svc, err := env.newBucketService(ctx)
	if err != nil {
		return errors.Trace(err)
	}
	bucket := env.bucketPrefix() + name
	if err := svc.Delete(ctx, bucket); err != nil {
		if hasStatusCode(err, http.StatusNotFound) {
			return errors.NotFoundf("website %q", name)
		}
		return errors.Annotatef(err, "deleting bucket %q", bucket)
	}
	return nil
}

// hasStatusCode reports whether the error is a Cloud Storage API error
// with the given HTTP status.
func hasStatusCode(err error, code int) bool {
	var apiErr *googleapi.Error
	return stderrors.As(err, &apiErr) && apiErr.Code == code
}

// Resources is part of the environs.Environ interface.
func (env *gceEnviron) Resources(ctx context.Context) ([]resources.Summary, error) {
	svc, err := env.newBucketService(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}
	buckets, err := svc.List(ctx, env.cloud.SubscriptionID)
	if err != nil {
		return nil, errors.Annotate(err, "listing buckets")
	}
	prefix := env.bucketPrefix()
	var summaries []resources.Summary
	for _, b := range buckets {
		if !strings.HasPrefix(b.Name, prefix) {
			continue
		}
		summaries = append(summaries, resources.Summary{
			Kind:     resources.KindWebsite,
			Name:     strings.TrimPrefix(b.Name, prefix),
			Status:   "deployed",
			Location: b.Location,
		})
	}
	return summaries, nil
}

// defaultBucketService uses application default credentials.
func defaultBucketService(ctx context.Context) (BucketService, error) {
	svc, err := storage.NewService(ctx)
	if err != nil {
		return nil, errors.Annotate(err, "creating storage service")
	}
	return &bucketService{buckets: svc.Buckets}, nil
}

type bucketService struct {
	buckets *storage.BucketsService
}

func (s *bucketService) Insert(ctx context.Context, project string, bucket *storage.Bucket) (*storage.Bucket, error) {
	return s.buckets.Insert(project, bucket).Context(ctx).Do()
}

func (s *bucketService) Delete(ctx context.Context, name string) error {
	return s.buckets.Delete(name).Context(ctx).Do()
}

func (s *bucketService) List(ctx context.Context, project string) ([]*storage.Bucket, error) {
	resp, err := s.buckets.List(project).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}
