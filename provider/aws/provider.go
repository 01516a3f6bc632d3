// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package aws implements a minimal AWS provider. Only static website
// buckets are supported; the remaining resource kinds report
// NotSupported until someone needs them.
package aws

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/homelab/homelab/environs"
)

var logger = loggo.GetLogger("homelab.provider.aws")

// S3API is the slice of the S3 client the environ uses.
type S3API interface {
	CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutBucketWebsite(ctx context.Context, params *s3.PutBucketWebsiteInput, optFns ...func(*s3.Options)) (*s3.PutBucketWebsiteOutput, error)
	DeleteBucket(ctx context.Context, params *s3.DeleteBucketInput, optFns ...func(*s3.Options)) (*s3.DeleteBucketOutput, error)
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
}

// ProviderConfig contains the configuration for the AWS provider.
type ProviderConfig struct {
	// NewS3Client builds the S3 client for a region.
	NewS3Client func(ctx context.Context, region string) (S3API, error)
}

// Validate validates the provider configuration.
func (cfg ProviderConfig) Validate() error {
	if cfg.NewS3Client == nil {
		return errors.NotValidf("nil NewS3Client")
	}
	return nil
}

type awsProvider struct {
	config ProviderConfig
}

// NewProvider returns a new environs.Provider for AWS.
func NewProvider(config ProviderConfig) (environs.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Annotate(err, "validating provider configuration")
	}
	return &awsProvider{config: config}, nil
}

// ValidateCloud is part of the environs.Provider interface.
func (prov *awsProvider) ValidateCloud(cloud environs.CloudSpec) error {
	if cloud.Region == "" {
		return errors.NotValidf("missing region")
	}
	return nil
}

// Open is part of the environs.Provider interface.
func (prov *awsProvider) Open(args environs.OpenParams) (environs.Environ, error) {
	logger.Debugf("opening lab %q", args.Config.Project())
	return &awsEnviron{
		cloud:       args.Cloud,
		cfg:         args.Config,
		newS3Client: prov.config.NewS3Client,
	}, nil
}

// defaultS3Client resolves credentials from the standard AWS chain
// (environment, shared config, instance metadata).
func defaultS3Client(ctx context.Context, region string) (S3API, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, errors.Annotate(err, "loading AWS config")
	}
	return s3.NewFromConfig(cfg), nil
}
