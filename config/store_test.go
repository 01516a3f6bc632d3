// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package config_test

import (
	"path/filepath"

	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/homelab/homelab/config"
)

type storeSuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&storeSuite{})

func (s *storeSuite) TestReadMissing(c *gc.C) {
	store := config.NewFileStore(filepath.Join(c.MkDir(), "config.yaml"))
	_, err := store.Read()
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
}

func (s *storeSuite) TestRoundTrip(c *gc.C) {
	store := config.NewFileStore(filepath.Join(c.MkDir(), "config.yaml"))
	cfg, err := config.New(config.UseDefaults, map[string]interface{}{
		"project":         "mylab",
		"subscription-id": "sub-123",
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(store.Write(cfg), jc.ErrorIsNil)

	got, err := store.Read()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(got.AllAttrs(), jc.DeepEquals, cfg.AllAttrs())
}

func (s *storeSuite) TestWriteReplaces(c *gc.C) {
	store := config.NewFileStore(filepath.Join(c.MkDir(), "config.yaml"))
	cfg, err := config.New(config.UseDefaults, map[string]interface{}{
		"project": "mylab",
	})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(store.Write(cfg), jc.ErrorIsNil)

	cfg2, err := cfg.Apply(map[string]interface{}{"region": "eastus"})
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(store.Write(cfg2), jc.ErrorIsNil)

	got, err := store.Read()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(got.Region(), gc.Equals, "eastus")
}
