// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"github.com/juju/errors"
)

// MemStore is an in-memory Store for tests.
type MemStore struct {
	Config *Config
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Read implements Store.
func (s *MemStore) Read() (*Config, error) {
	if s.Config == nil {
		return nil, errors.NotFoundf("config")
	}
	return s.Config, nil
}

// Write implements Store.
func (s *MemStore) Write(cfg *Config) error {
	s.Config = cfg
	return nil
}
