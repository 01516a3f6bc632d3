// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package resources

import (
	"time"
)

// Result summarises a completed deployment. It is what the console
// prints and what a job record carries once a background deployment
// finishes.
type Result struct {
	Kind     Kind   `yaml:"kind" json:"kind"`
	Name     string `yaml:"name" json:"name"`
	Provider string `yaml:"provider" json:"provider"`
	Region   string `yaml:"region" json:"region"`
	// Group is the resource group (or equivalent) the resource
	// belongs to.
	Group string `yaml:"group,omitempty" json:"group,omitempty"`
	// Endpoints maps endpoint names to URLs or hostnames, e.g.
	// "site" -> "https://mylab-dev-web.azurewebsites.net".
	Endpoints map[string]string `yaml:"endpoints,omitempty" json:"endpoints,omitempty"`
	// Keys holds access keys and connection strings. They are
	// printed once and never persisted to job records.
	Keys map[string]string `yaml:"keys,omitempty" json:"keys,omitempty"`
	// Attributes holds any further provider-specific details.
	Attributes map[string]string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	Elapsed    time.Duration     `yaml:"elapsed" json:"elapsed"`
}

// Redacted returns a copy of the result with all keys removed, for
// writing into job records and logs.
func (r *Result) Redacted() *Result {
	c := *r
	c.Keys = nil
	return &c
}

// Summary is one row in a resource listing.
type Summary struct {
	Kind     Kind   `yaml:"kind" json:"kind"`
	Name     string `yaml:"name" json:"name"`
	Status   string `yaml:"status" json:"status"`
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
}
