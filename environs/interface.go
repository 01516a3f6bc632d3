// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package environs defines the provider abstraction behind which the
// cloud-specific deployment code lives, and the global registry the
// providers register themselves with.
package environs

import (
	"context"

	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/resources"
)

// CloudSpec identifies the cloud an environ talks to.
type CloudSpec struct {
	// Name is the provider name, e.g. "azure".
	Name string

	// Region is the cloud region resources are placed in.
	Region string

	// SubscriptionID is the Azure subscription or GCP project ID;
	// empty elsewhere.
	SubscriptionID string
}

// OpenParams contains the parameters for opening an environ.
type OpenParams struct {
	Cloud  CloudSpec
	Config *config.Config
}

// A Provider represents a cloud that the console can deploy to.
type Provider interface {
	// ValidateCloud returns an error if the cloud spec is not
	// complete enough for this provider.
	ValidateCloud(CloudSpec) error

	// Open opens the environ. It does not verify credentials; the
	// first deployment call does that.
	Open(OpenParams) (Environ, error)
}

// An Environ is an open connection to one lab on one cloud.
//
// Deployments are idempotent to the extent the underlying cloud APIs
// are: deploying a spec whose resource already exists updates it in
// place rather than failing.
type Environ interface {
	// PrepareGroup ensures the lab's resource group (or equivalent)
	// exists in the configured region.
	PrepareGroup(ctx context.Context) error

	// Deploy creates or updates the resource described by spec and
	// returns a summary of endpoints and keys.
	Deploy(ctx context.Context, spec resources.Spec) (*resources.Result, error)

	// Destroy removes the named resource of the given kind. It
	// returns a NotFound error if no such resource exists and a
	// NotSupported error if the provider cannot deploy that kind.
	Destroy(ctx context.Context, kind resources.Kind, name string) error

	// Resources lists the lab's deployed resources.
	Resources(ctx context.Context) ([]resources.Summary, error)
}
