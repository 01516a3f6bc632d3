// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package config holds the console configuration: which provider to
// target, where to put resources, and how deployed resources are named.
package config

import (
	"fmt"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/schema"
)

var logger = loggo.GetLogger("homelab.config")

// Environment names accepted by the console. The environment is folded
// into every resource-group and resource name so parallel dev/test/prod
// labs never collide.
const (
	EnvDev  = "dev"
	EnvTest = "test"
	EnvProd = "prod"
)

const (
	// DefaultProvider is used when no provider attribute is set.
	DefaultProvider = "azure"

	// DefaultRegion is used when no region attribute is set.
	DefaultRegion = "westeurope"
)

// Config holds an immutable console configuration.
type Config struct {
	m map[string]interface{}
}

// Defaulting is a value that specifies whether a configuration
// creator should fill in defaults for unset attributes.
type Defaulting bool

const (
	UseDefaults Defaulting = true
	NoDefaults  Defaulting = false
)

// New returns a new configuration. The "project" key is required; all
// other attributes may be defaulted.
func New(withDefaults Defaulting, attrs map[string]interface{}) (*Config, error) {
	checker := noDefaultsChecker
	if withDefaults {
		checker = withDefaultsChecker
	}
	m, err := checker.Coerce(attrs, nil)
	if err != nil {
		return nil, errors.Trace(err)
	}
	c := &Config{m: m.(map[string]interface{})}
	if err := c.validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return c, nil
}

func (c *Config) validate() error {
	switch env := c.Environment(); env {
	case EnvDev, EnvTest, EnvProd:
	default:
		return errors.NotValidf("environment %q", env)
	}
	project := c.Project()
	if project == "" {
		return errors.NotValidf("empty project name")
	}
	if strings.ToLower(project) != project {
		// Azure resource names reject upper case in enough places
		// (storage accounts, DNS) that we refuse it up front.
		return errors.NotValidf("project name %q with upper case", project)
	}
	return nil
}

// Project returns the project name, the stem for all resource names.
func (c *Config) Project() string {
	return c.m["project"].(string)
}

// Environment returns the environment name (dev, test or prod).
func (c *Config) Environment() string {
	return c.m["environment"].(string)
}

// Provider returns the name of the provider to deploy with.
func (c *Config) Provider() string {
	return c.m["provider"].(string)
}

// Region returns the cloud region resources are created in.
func (c *Config) Region() string {
	return c.m["region"].(string)
}

// ResourceGroup returns the name of the resource group (or its
// equivalent grouping construct) holding the lab's resources.
func (c *Config) ResourceGroup() string {
	return fmt.Sprintf("%s-%s-rg", c.Project(), c.Environment())
}

// ResourceName derives the canonical name for a resource of the lab
// from a short suffix, e.g. ResourceName("sql") -> "mylab-dev-sql".
func (c *Config) ResourceName(suffix string) string {
	return fmt.Sprintf("%s-%s-%s", c.Project(), c.Environment(), suffix)
}

// SubscriptionID returns the Azure subscription ID, which may be empty
// for non-Azure providers.
func (c *Config) SubscriptionID() string {
	v, _ := c.m["subscription-id"].(string)
	return v
}

// Repository returns the selected GitHub repository ("owner/name") and
// branch for website deployments, either of which may be empty.
func (c *Config) Repository() (repo, branch string) {
	repo, _ = c.m["repository"].(string)
	branch, _ = c.m["repository-branch"].(string)
	return repo, branch
}

// AllAttrs returns a copy of the underlying attributes.
func (c *Config) AllAttrs() map[string]interface{} {
	m := make(map[string]interface{}, len(c.m))
	for k, v := range c.m {
		m[k] = v
	}
	return m
}

// Apply returns a new Config with the given attributes applied over
// this one. The receiver is unchanged.
func (c *Config) Apply(attrs map[string]interface{}) (*Config, error) {
	m := c.AllAttrs()
	for k, v := range attrs {
		if _, ok := fields[k]; !ok {
			return nil, errors.NotValidf("unknown attribute %q", k)
		}
		m[k] = v
	}
	return New(NoDefaults, m)
}

var fields = schema.Fields{
	"project":           schema.String(),
	"environment":       schema.String(),
	"provider":          schema.String(),
	"region":            schema.String(),
	"subscription-id":   schema.String(),
	"repository":        schema.String(),
	"repository-branch": schema.String(),
}

// alwaysOptional holds attributes that may be unspecified even after
// defaults have been filled out.
var alwaysOptional = schema.Defaults{
	"subscription-id":   schema.Omit,
	"repository":        schema.Omit,
	"repository-branch": schema.Omit,
}

var defaults = func() schema.Defaults {
	d := schema.Defaults{
		"environment": EnvDev,
		"provider":    DefaultProvider,
		"region":      DefaultRegion,
	}
	for attr, val := range alwaysOptional {
		d[attr] = val
	}
	return d
}()

var (
	withDefaultsChecker = schema.FieldMap(fields, defaults)
	noDefaultsChecker   = schema.FieldMap(fields, alwaysOptional)
)
