// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package aws

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/juju/errors"

	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/resources"
)

type awsEnviron struct {
	cloud       environs.CloudSpec
	cfg         *config.Config
	newS3Client func(ctx context.Context, region string) (S3API, error)
}

// PrepareGroup is part of the environs.Environ interface. AWS has no
// resource-group construct; the lab prefix on bucket names stands in
// for it.
func (env *awsEnviron) PrepareGroup(ctx context.Context) error {
	return nil
}

// bucketPrefix namespaces every bucket the lab creates.
func (env *awsEnviron) bucketPrefix() string {
	return fmt.Sprintf("%s-%s-", env.cfg.Project(), env.cfg.Environment())
}

// Deploy is part of the environs.Environ interface.
func (env *awsEnviron) Deploy(ctx context.Context, spec resources.Spec) (*resources.Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	website, ok := spec.(resources.WebsiteSpec)
	if !ok {
		return nil, errors.NotSupportedf("resource kind %q on aws", spec.Kind())
	}
	client, err := env.newS3Client(ctx, env.cloud.Region)
	if err != nil {
		return nil, errors.Trace(err)
	}

	bucket := env.bucketPrefix() + website.SiteName
	input := &s3.CreateBucketInput{Bucket: awssdk.String(bucket)}
	if env.cloud.Region != "us-east-1" {
		// us-east-1 rejects an explicit location constraint.
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(env.cloud.Region),
		}
	}
	if _, err := client.CreateBucket(ctx, input); err != nil {
		if !isBucketExists(err) {
			return nil, errors.Annotatef(err, "creating bucket %q", bucket)
		}
	}
	_, err = client.PutBucketWebsite(ctx, &s3.PutBucketWebsiteInput{
		Bucket: awssdk.String(bucket),
		WebsiteConfiguration: &s3types.WebsiteConfiguration{
			IndexDocument: &s3types.IndexDocument{Suffix: awssdk.String("index.html")},
			ErrorDocument: &s3types.ErrorDocument{Key: awssdk.String("error.html")},
		},
	})
	if err != nil {
		return nil, errors.Annotate(err, "configuring bucket website")
	}

	logger.Infof("deployed website bucket %q", bucket)
	return &resources.Result{
		Kind:     website.Kind(),
		Name:     website.SiteName,
		Provider: "aws",
		Region:   env.cloud.Region,
		Endpoints: map[string]string{
			"site": fmt.Sprintf("http://%s.s3-website-%s.amazonaws.com", bucket, env.cloud.Region),
		},
		Attributes: map[string]string{"bucket": bucket},
	}, nil
}

func isBucketExists(err error) bool {
	return hasErrorCode(err, "BucketAlreadyOwnedByYou", "BucketAlreadyExists")
}

// hasErrorCode reports whether the error carries one of the given S3
// API error codes.
func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !stderrors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}

// Destroy is part of the environs.Environ interface.
func (env *awsEnviron) Destroy(ctx context.Context, kind resources.Kind, name string) error {
	if kind != resources.KindWebsite {
		return errors.NotSupportedf("resource kind %q on aws", kind)
	}
	client, err := env.newS3Client(ctx, env.cloud.Region)
	if err != nil {
		return errors.Trace(err)
	}
	bucket := env.bucketPrefix() + name
	if _, err := client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: awssdk.String(bucket)}); err != nil {
		if hasErrorCode(err, "NoSuchBucket") {
			return errors.NotFoundf("website %q", name)
		}
		return errors.Annotatef(err, "deleting bucket %q", bucket)
	}
	return nil
}

// Resources is part of the environs.Environ interface.
func (env *awsEnviron) Resources(ctx context.Context) ([]resources.Summary, error) {
	client, err := env.newS3Client(ctx, env.cloud.Region)
	if err != nil {
		return nil, errors.Trace(err)
	}
	out, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.Annotate(err, "listing buckets")
	}
	prefix := env.bucketPrefix()
	var summaries []resources.Summary
	for _, b := range out.Buckets {
		if b.Name == nil || !strings.HasPrefix(*b.Name, prefix) {
			continue
		}
		summaries = append(summaries, resources.Summary{
			Kind:     resources.KindWebsite,
			Name:     strings.TrimPrefix(*b.Name, prefix),
			Status:   "deployed",
			Location: env.cloud.Region,
		})
	}
	return summaries, nil
}
