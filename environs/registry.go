// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package environs

import (
	"fmt"
	"sort"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("homelab.environs")

// ProviderRegistry provides methods for registering and obtaining
// providers by name.
type ProviderRegistry interface {
	// RegisterProvider registers a provider with the given name and
	// zero or more aliases. It fails if any name is already taken.
	RegisterProvider(p Provider, name string, aliases ...string) error

	// RegisteredProviders returns the registered provider names.
	RegisteredProviders() []string

	// Provider returns the provider with the specified name.
	Provider(name string) (Provider, error)
}

// GlobalProviderRegistry returns the global provider registry.
func GlobalProviderRegistry() ProviderRegistry {
	return globalProviders
}

type globalProviderRegistry struct {
	providers map[string]Provider
	aliases   map[string]string
}

var globalProviders = &globalProviderRegistry{
	providers: map[string]Provider{},
	aliases:   map[string]string{},
}

func (r *globalProviderRegistry) RegisterProvider(p Provider, name string, aliases ...string) error {
	if r.providers[name] != nil || r.aliases[name] != "" {
		return errors.Errorf("duplicate provider name %q", name)
	}
	r.providers[name] = p
	for _, alias := range aliases {
		if r.providers[alias] != nil || r.aliases[alias] != "" {
			return errors.Errorf("duplicate provider alias %q", alias)
		}
		r.aliases[alias] = name
	}
	logger.Tracef("registered provider %q", name)
	return nil
}

func (r *globalProviderRegistry) RegisteredProviders() []string {
	var p []string
	for k := range r.providers {
		p = append(p, k)
	}
	sort.Strings(p)
	return p
}

func (r *globalProviderRegistry) Provider(name string) (Provider, error) {
	if alias, ok := r.aliases[name]; ok {
		name = alias
	}
	p, ok := r.providers[name]
	if !ok {
		return nil, errors.NotFoundf("provider %q", name)
	}
	return p, nil
}

// RegisterProvider registers a new provider. It panics if the name or
// any alias is registered more than once, as registration runs from
// package init functions.
func RegisterProvider(name string, p Provider, aliases ...string) {
	if err := GlobalProviderRegistry().RegisterProvider(p, name, aliases...); err != nil {
		panic(fmt.Errorf("homelab: %v", err))
	}
}

// RegisteredProviders enumerates all registered provider names.
func RegisteredProviders() []string {
	return GlobalProviderRegistry().RegisteredProviders()
}

// GetProvider returns the previously registered provider with the
// given name.
func GetProvider(name string) (Provider, error) {
	return GlobalProviderRegistry().Provider(name)
}
