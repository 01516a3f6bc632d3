// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package environs_test

import (
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/provider/dummy"
)

type registrySuite struct {
	testing.IsolationSuite
}

var _ = gc.Suite(&registrySuite{})

func (s *registrySuite) TestRegisterAndLookup(c *gc.C) {
	p := &dummy.Provider{}
	err := environs.GlobalProviderRegistry().RegisterProvider(p, "test-lookup", "tl")
	c.Assert(err, jc.ErrorIsNil)

	got, err := environs.GetProvider("test-lookup")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(got, gc.Equals, p)

	// Aliases resolve to the same provider.
	got, err = environs.GetProvider("tl")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(got, gc.Equals, p)
}

func (s *registrySuite) TestDuplicateName(c *gc.C) {
	p := &dummy.Provider{}
	err := environs.GlobalProviderRegistry().RegisterProvider(p, "test-dup")
	c.Assert(err, jc.ErrorIsNil)
	err = environs.GlobalProviderRegistry().RegisterProvider(p, "test-dup")
	c.Assert(err, gc.ErrorMatches, `duplicate provider name "test-dup"`)
}

func (s *registrySuite) TestUnknownProvider(c *gc.C) {
	_, err := environs.GetProvider("vax")
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
}

func (s *registrySuite) TestOpen(c *gc.C) {
	p := &dummy.Provider{}
	err := environs.GlobalProviderRegistry().RegisterProvider(p, "test-open")
	c.Assert(err, jc.ErrorIsNil)

	cfg, err := config.New(config.UseDefaults, map[string]interface{}{
		"project":  "mylab",
		"provider": "test-open",
	})
	c.Assert(err, jc.ErrorIsNil)
	env, err := environs.Open(cfg)
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(env, gc.NotNil)
}
