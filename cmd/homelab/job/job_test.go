// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package job

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/cmd/v3/cmdtesting"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/homelab/homelab/jobs"
	"github.com/homelab/homelab/resources"
)

type jobSuite struct {
	testing.IsolationSuite

	clock  *testclock.Clock
	jobDir string
	store  *jobs.Store
}

var _ = gc.Suite(&jobSuite{})

func (s *jobSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.clock = testclock.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.jobDir = c.MkDir()
	s.store = jobs.NewStore(s.jobDir, s.clock)
}

func (s *jobSuite) writeRecord(c *gc.C, rec jobs.Record) {
	c.Assert(s.store.Write(rec), jc.ErrorIsNil)
}

func (s *jobSuite) TestListActiveOnly(c *gc.C) {
	s.writeRecord(c, jobs.Record{
		ID:           "done0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		State:        jobs.StateSucceeded,
		Started:      s.clock.Now().Add(-time.Hour),
		Finished:     s.clock.Now().Add(-50 * time.Minute),
	})
	s.writeRecord(c, jobs.Record{
		ID:           "live0001",
		Kind:         "iot-hub",
		ResourceName: "mylab-dev-iot",
		State:        jobs.StateRunning,
		PID:          os.Getpid(),
		Started:      s.clock.Now(),
	})

	com := &listCommand{jobDir: s.jobDir, clock: s.clock}
	ctx, err := cmdtesting.RunCommand(c, com)
	c.Assert(err, jc.ErrorIsNil)
	stdout := cmdtesting.Stdout(ctx)
	c.Check(stdout, jc.Contains, "live0001")
	c.Check(stdout, gc.Not(jc.Contains), "done0001")
}

func (s *jobSuite) TestListAll(c *gc.C) {
	s.writeRecord(c, jobs.Record{
		ID:           "done0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		State:        jobs.StateSucceeded,
		Started:      s.clock.Now().Add(-time.Hour),
		Finished:     s.clock.Now().Add(-50 * time.Minute),
	})

	com := &listCommand{jobDir: s.jobDir, clock: s.clock}
	ctx, err := cmdtesting.RunCommand(c, com, "--all")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), jc.Contains, "done0001")
}

func (s *jobSuite) TestListReportsInterrupted(c *gc.C) {
	// A running record whose process is gone shows as interrupted.
	s.writeRecord(c, jobs.Record{
		ID:           "gone0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		State:        jobs.StateRunning,
		PID:          1 << 30,
		Started:      s.clock.Now(),
	})

	com := &listCommand{jobDir: s.jobDir, clock: s.clock}
	ctx, err := cmdtesting.RunCommand(c, com, "--all", "--format", "yaml")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), jc.Contains, "state: interrupted")
}

func (s *jobSuite) TestListEmpty(c *gc.C) {
	com := &listCommand{jobDir: s.jobDir, clock: s.clock}
	ctx, err := cmdtesting.RunCommand(c, com)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stderr(ctx), jc.Contains, "no jobs to display")
}

func (s *jobSuite) TestShow(c *gc.C) {
	s.writeRecord(c, jobs.Record{
		ID:           "aaaa0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		Provider:     "azure",
		State:        jobs.StateSucceeded,
		Started:      s.clock.Now(),
		Finished:     s.clock.Now().Add(time.Minute),
	})

	com := &showCommand{jobDir: s.jobDir, clock: s.clock}
	ctx, err := cmdtesting.RunCommand(c, com, "aaaa0001")
	c.Assert(err, jc.ErrorIsNil)
	stdout := cmdtesting.Stdout(ctx)
	c.Check(stdout, jc.Contains, "id: aaaa0001")
	c.Check(stdout, jc.Contains, "state: succeeded")
}

func (s *jobSuite) TestShowJSONNestedSpec(c *gc.C) {
	// A dns-zone spec nests maps inside the record; the JSON formatter
	// must cope after a round trip through the YAML store.
	spec, err := resources.EncodeSpec(resources.DNSZoneSpec{
		ZoneName: "example.com",
		Records: []resources.RecordSpec{{
			Name:   "@",
			Type:   "A",
			Values: []string{"203.0.113.10"},
			TTL:    3600,
		}},
	})
	c.Assert(err, jc.ErrorIsNil)
	s.writeRecord(c, jobs.Record{
		ID:           "aaaa0001",
		Kind:         "dns-zone",
		ResourceName: "example.com",
		Provider:     "azure",
		State:        jobs.StatePending,
		Started:      s.clock.Now(),
		Spec:         spec,
	})

	com := &showCommand{jobDir: s.jobDir, clock: s.clock}
	ctx, err := cmdtesting.RunCommand(c, com, "aaaa0001", "--format", "json")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), jc.Contains, `"zonename":"example.com"`)
}

func (s *jobSuite) TestShowMissing(c *gc.C) {
	com := &showCommand{jobDir: s.jobDir, clock: s.clock}
	_, err := cmdtesting.RunCommand(c, com, "nope")
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
}

func (s *jobSuite) TestShowLog(c *gc.C) {
	logFile := filepath.Join(c.MkDir(), "aaaa0001.log")
	c.Assert(os.WriteFile(logFile, []byte("deploying website\n"), 0600), jc.ErrorIsNil)
	s.writeRecord(c, jobs.Record{
		ID:           "aaaa0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		State:        jobs.StateRunning,
		PID:          os.Getpid(),
		Started:      s.clock.Now(),
		LogFile:      logFile,
	})

	com := &showCommand{jobDir: s.jobDir, clock: s.clock}
	ctx, err := cmdtesting.RunCommand(c, com, "aaaa0001", "--log")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), gc.Equals, "deploying website\n")
}

func (s *jobSuite) TestShowLogMissing(c *gc.C) {
	s.writeRecord(c, jobs.Record{
		ID:           "aaaa0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		State:        jobs.StateRunning,
		PID:          os.Getpid(),
		Started:      s.clock.Now(),
	})

	com := &showCommand{jobDir: s.jobDir, clock: s.clock}
	_, err := cmdtesting.RunCommand(c, com, "aaaa0001", "--log")
	c.Assert(err, gc.ErrorMatches, `log for job "aaaa0001" not found`)
}

func (s *jobSuite) TestWatchReturnsWhenIdle(c *gc.C) {
	// With no pending or running jobs the first snapshot already
	// satisfies the watch, so the command returns immediately.
	s.writeRecord(c, jobs.Record{
		ID:           "done0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		State:        jobs.StateSucceeded,
		Started:      s.clock.Now().Add(-time.Hour),
		Finished:     s.clock.Now().Add(-50 * time.Minute),
	})

	com := &watchCommand{jobDir: s.jobDir, clock: s.clock}
	ctx, err := cmdtesting.RunCommand(c, com)
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stdout(ctx), jc.Contains, "done0001")
	c.Check(cmdtesting.Stderr(ctx), jc.Contains, "all jobs finished")
}

func (s *jobSuite) TestWatchInitValidatesInterval(c *gc.C) {
	com := &watchCommand{jobDir: s.jobDir, clock: s.clock}
	err := cmdtesting.InitCommand(com, []string{"--interval", "0s"})
	c.Assert(err, gc.ErrorMatches, "interval 0s not valid")
}

func (s *jobSuite) TestCleanup(c *gc.C) {
	s.writeRecord(c, jobs.Record{
		ID:           "olde0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		State:        jobs.StateSucceeded,
		Started:      s.clock.Now().Add(-30 * 24 * time.Hour),
		Finished:     s.clock.Now().Add(-29 * 24 * time.Hour),
	})
	s.writeRecord(c, jobs.Record{
		ID:           "live0001",
		Kind:         "iot-hub",
		ResourceName: "mylab-dev-iot",
		State:        jobs.StateRunning,
		PID:          os.Getpid(),
		Started:      s.clock.Now(),
	})

	com := &cleanupCommand{jobDir: s.jobDir, clock: s.clock}
	ctx, err := cmdtesting.RunCommand(c, com, "--yes")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(cmdtesting.Stderr(ctx), jc.Contains, "removed 1 job record(s)")

	recs, err := s.store.List()
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(recs, gc.HasLen, 1)
	c.Check(recs[0].ID, gc.Equals, "live0001")
}

func (s *jobSuite) TestCleanupAborted(c *gc.C) {
	s.writeRecord(c, jobs.Record{
		ID:           "olde0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		State:        jobs.StateSucceeded,
		Started:      s.clock.Now().Add(-30 * 24 * time.Hour),
		Finished:     s.clock.Now().Add(-29 * 24 * time.Hour),
	})

	com := &cleanupCommand{jobDir: s.jobDir, clock: s.clock}
	c.Assert(cmdtesting.InitCommand(com, nil), jc.ErrorIsNil)
	ctx := cmdtesting.Context(c)
	ctx.Stdin = strings.NewReader("n\n")
	c.Assert(com.Run(ctx), jc.ErrorIsNil)
	c.Check(cmdtesting.Stderr(ctx), jc.Contains, "cleanup aborted")

	recs, err := s.store.List()
	c.Assert(err, jc.ErrorIsNil)
	c.Check(recs, gc.HasLen, 1)
}
