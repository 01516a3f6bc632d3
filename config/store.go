// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/mutex/v2"
	"github.com/juju/utils/v4"
	"gopkg.in/yaml.v2"

	"github.com/homelab/homelab/osenv"
)

// A second should be enough to read or write the config file, but some
// disks are slow when under load, so give it a reasonable margin.
var lockTimeout = 5 * time.Second

// Store reads and writes console configuration.
type Store interface {
	// Read returns the stored configuration, or a NotFound error if
	// the console has not been initialized.
	Read() (*Config, error)

	// Write replaces the stored configuration.
	Write(*Config) error
}

// NewFileStore returns a Store persisting to path. If path is empty the
// default data home location is used.
func NewFileStore(path string) Store {
	if path == "" {
		path = filepath.Join(osenv.DataHome(), "config.yaml")
	}
	return &fileStore{path: path}
}

type fileStore struct {
	path string
}

func (s *fileStore) acquireLock() (mutex.Releaser, error) {
	spec := mutex.Spec{
		Name:    "homelab-config",
		Clock:   clock.WallClock,
		Delay:   20 * time.Millisecond,
		Timeout: lockTimeout,
	}
	releaser, err := mutex.Acquire(spec)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return releaser, nil
}

// Read implements Store.
func (s *fileStore) Read() (*Config, error) {
	releaser, err := s.acquireLock()
	if err != nil {
		return nil, errors.Annotate(err, "cannot read config")
	}
	defer releaser.Release()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, errors.NotFoundf("config file %q", s.path)
	} else if err != nil {
		return nil, errors.Trace(err)
	}
	var attrs map[string]interface{}
	if err := yaml.Unmarshal(data, &attrs); err != nil {
		return nil, errors.Annotatef(err, "cannot parse %q", s.path)
	}
	cfg, err := New(UseDefaults, attrs)
	if err != nil {
		return nil, errors.Annotatef(err, "invalid config in %q", s.path)
	}
	return cfg, nil
}

// Write implements Store.
func (s *fileStore) Write(cfg *Config) error {
	releaser, err := s.acquireLock()
	if err != nil {
		return errors.Annotate(err, "cannot write config")
	}
	defer releaser.Release()

	data, err := yaml.Marshal(cfg.AllAttrs())
	if err != nil {
		return errors.Trace(err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.Trace(err)
	}
	if err := utils.AtomicWriteFile(s.path, data, 0600); err != nil {
		return errors.Trace(err)
	}
	logger.Debugf("wrote config to %s", s.path)
	return nil
}
