// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

import (
	"path/filepath"

	"github.com/juju/cmd/v3/cmdtesting"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	homelabconfig "github.com/homelab/homelab/config"
)

type configSuite struct {
	testing.IsolationSuite

	configStore homelabconfig.Store
}

var _ = gc.Suite(&configSuite{})

func (s *configSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.configStore = homelabconfig.NewFileStore(filepath.Join(c.MkDir(), "config.yaml"))
}

func (s *configSuite) TestInit(c *gc.C) {
	com := &initCommand{configStore: s.configStore}
	ctx, err := cmdtesting.RunCommand(c, com, "--project", "mylab", "--subscription-id", "sub-1")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stderr(ctx), jc.Contains, `initialized project "mylab" (dev on azure in westeurope)`)

	cfg, err := s.configStore.Read()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cfg.Project(), gc.Equals, "mylab")
	c.Check(cfg.Provider(), gc.Equals, "azure")
	c.Check(cfg.SubscriptionID(), gc.Equals, "sub-1")
}

func (s *configSuite) TestInitRequiresProject(c *gc.C) {
	com := &initCommand{configStore: s.configStore}
	_, err := cmdtesting.RunCommand(c, com)
	c.Assert(err, gc.ErrorMatches, "must specify --project")
}

func (s *configSuite) TestInitRefusesToReplace(c *gc.C) {
	com := &initCommand{configStore: s.configStore}
	_, err := cmdtesting.RunCommand(c, com, "--project", "mylab")
	c.Assert(err, jc.ErrorIsNil)

	com = &initCommand{configStore: s.configStore}
	_, err = cmdtesting.RunCommand(c, com, "--project", "other")
	c.Assert(err, jc.Satisfies, errors.IsAlreadyExists)

	com = &initCommand{configStore: s.configStore}
	_, err = cmdtesting.RunCommand(c, com, "--project", "other", "--force")
	c.Assert(err, jc.ErrorIsNil)
	cfg, err := s.configStore.Read()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cfg.Project(), gc.Equals, "other")
}

func (s *configSuite) TestInitValidates(c *gc.C) {
	com := &initCommand{configStore: s.configStore}
	_, err := cmdtesting.RunCommand(c, com, "--project", "MyLab")
	c.Assert(err, gc.ErrorMatches, `project name "MyLab" with upper case not valid`)
}

func (s *configSuite) TestShow(c *gc.C) {
	com := &initCommand{configStore: s.configStore}
	_, err := cmdtesting.RunCommand(c, com, "--project", "mylab")
	c.Assert(err, jc.ErrorIsNil)

	show := &showCommand{configStore: s.configStore}
	ctx, err := cmdtesting.RunCommand(c, show)
	c.Assert(err, jc.ErrorIsNil)
	stdout := cmdtesting.Stdout(ctx)
	c.Check(stdout, jc.Contains, "project: mylab")
	c.Check(stdout, jc.Contains, "region: westeurope")
}

func (s *configSuite) TestShowNotInitialized(c *gc.C) {
	show := &showCommand{configStore: s.configStore}
	_, err := cmdtesting.RunCommand(c, show)
	c.Assert(err, gc.ErrorMatches, `console not initialized, run "homelab config init" first.*`)
}

func (s *configSuite) TestSet(c *gc.C) {
	com := &initCommand{configStore: s.configStore}
	_, err := cmdtesting.RunCommand(c, com, "--project", "mylab")
	c.Assert(err, jc.ErrorIsNil)

	set := &setCommand{configStore: s.configStore}
	_, err = cmdtesting.RunCommand(c, set, "region=northeurope", "environment=prod")
	c.Assert(err, jc.ErrorIsNil)

	cfg, err := s.configStore.Read()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cfg.Region(), gc.Equals, "northeurope")
	c.Check(cfg.Environment(), gc.Equals, "prod")
}

func (s *configSuite) TestSetInit(c *gc.C) {
	set := &setCommand{configStore: s.configStore}
	err := cmdtesting.InitCommand(set, nil)
	c.Assert(err, gc.ErrorMatches, "must specify at least one key=value pair")
	err = cmdtesting.InitCommand(set, []string{"nonsense"})
	c.Assert(err, gc.ErrorMatches, `argument "nonsense" not valid`)
}

func (s *configSuite) TestSetUnknownAttribute(c *gc.C) {
	com := &initCommand{configStore: s.configStore}
	_, err := cmdtesting.RunCommand(c, com, "--project", "mylab")
	c.Assert(err, jc.ErrorIsNil)

	set := &setCommand{configStore: s.configStore}
	_, err = cmdtesting.RunCommand(c, set, "colour=orange")
	c.Assert(err, gc.ErrorMatches, `unknown attribute "colour" not valid`)
}
