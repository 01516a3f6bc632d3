// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package dummy provides an in-memory provider for testing commands
// without touching a cloud.
package dummy

import (
	"context"
	"sync"

	"github.com/juju/errors"

	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/resources"
)

// Provider is an environs.Provider whose deployments only mutate an
// in-memory table. The zero value is usable.
type Provider struct {
	mu sync.Mutex
	// Deployed records every spec deployed through any environ opened
	// from this provider, in order.
	Deployed []resources.Spec
	// Err, when set, is returned from every deployment.
	Err error
}

// Reset clears recorded deployments.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Deployed = nil
	p.Err = nil
}

// ValidateCloud is part of the environs.Provider interface.
func (p *Provider) ValidateCloud(cloud environs.CloudSpec) error {
	return nil
}

// Open is part of the environs.Provider interface.
func (p *Provider) Open(args environs.OpenParams) (environs.Environ, error) {
	return &dummyEnviron{provider: p, cfg: args.Config, cloud: args.Cloud}, nil
}

type dummyEnviron struct {
	provider *Provider
	cfg      *config.Config
	cloud    environs.CloudSpec
}

// PrepareGroup is part of the environs.Environ interface.
func (e *dummyEnviron) PrepareGroup(ctx context.Context) error {
	return nil
}

// Deploy is part of the environs.Environ interface.
func (e *dummyEnviron) Deploy(ctx context.Context, spec resources.Spec) (*resources.Result, error) {
	if err := spec.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	e.provider.mu.Lock()
	defer e.provider.mu.Unlock()
	if e.provider.Err != nil {
		return nil, e.provider.Err
	}
	e.provider.Deployed = append(e.provider.Deployed, spec)
	return &resources.Result{
		Kind:     spec.Kind(),
		Name:     spec.Name(),
		Provider: "dummy",
		Region:   e.cloud.Region,
		Group:    e.cfg.ResourceGroup(),
		Endpoints: map[string]string{
			"site": "https://" + spec.Name() + ".dummy.invalid",
		},
	}, nil
}

// Destroy is part of the environs.Environ interface.
func (e *dummyEnviron) Destroy(ctx context.Context, kind resources.Kind, name string) error {
	e.provider.mu.Lock()
	defer e.provider.mu.Unlock()
	for i, spec := range e.provider.Deployed {
		if spec.Kind() == kind && spec.Name() == name {
			e.provider.Deployed = append(e.provider.Deployed[:i], e.provider.Deployed[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundf("%s %q", kind, name)
}

// Resources is part of the environs.Environ interface.
func (e *dummyEnviron) Resources(ctx context.Context) ([]resources.Summary, error) {
	e.provider.mu.Lock()
	defer e.provider.mu.Unlock()
	var summaries []resources.Summary
	for _, spec := range e.provider.Deployed {
		summaries = append(summaries, resources.Summary{
			Kind:   spec.Kind(),
			Name:   spec.Name(),
			Status: "deployed",
		})
	}
	return summaries, nil
}
