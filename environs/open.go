// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package environs

import (
	"github.com/juju/errors"

	"github.com/homelab/homelab/config"
)

// Open opens the environ named by the configuration. It is the single
// entry point the commands use.
func Open(cfg *config.Config) (Environ, error) {
	p, err := GetProvider(cfg.Provider())
	if err != nil {
		return nil, errors.Trace(err)
	}
	cloud := CloudSpec{
		Name:           cfg.Provider(),
		Region:         cfg.Region(),
		SubscriptionID: cfg.SubscriptionID(),
	}
	if err := p.ValidateCloud(cloud); err != nil {
		return nil, errors.Annotate(err, "validating cloud spec")
	}
	logger.Debugf("opening environ %q in %s", cloud.Name, cloud.Region)
	env, err := p.Open(OpenParams{Cloud: cloud, Config: cfg})
	if err != nil {
		return nil, errors.Annotatef(err, "opening environ %q", cloud.Name)
	}
	return env, nil
}
