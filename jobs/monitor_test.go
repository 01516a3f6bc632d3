// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package jobs_test

import (
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	"github.com/juju/worker/v4"
	gc "gopkg.in/check.v1"

	"github.com/homelab/homelab/jobs"
)

const (
	longWait  = 10 * time.Second
	shortWait = 50 * time.Millisecond
)

type monitorSuite struct {
	testing.IsolationSuite

	clock *testclock.Clock
	store *jobs.Store
}

var _ = gc.Suite(&monitorSuite{})

func (s *monitorSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.clock = testclock.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	// The store keeps a wall clock so its mutex timers do not race the
	// monitor's ticker on the test clock.
	s.store = jobs.NewStore(c.MkDir(), nil)
}

func (s *monitorSuite) newMonitor(c *gc.C) *jobs.Monitor {
	monitor, err := jobs.NewMonitor(jobs.MonitorConfig{
		Store:    s.store,
		Clock:    s.clock,
		Interval: time.Second,
	})
	c.Assert(err, jc.ErrorIsNil)
	s.AddCleanup(func(c *gc.C) {
		c.Check(worker.Stop(monitor), jc.ErrorIsNil)
	})
	return monitor
}

func (s *monitorSuite) waitSnapshot(c *gc.C, monitor *jobs.Monitor) []jobs.Record {
	select {
	case recs := <-monitor.Changes():
		return recs
	case <-time.After(longWait):
		c.Fatalf("timed out waiting for snapshot")
	}
	panic("unreachable")
}

func (s *monitorSuite) TestValidate(c *gc.C) {
	_, err := jobs.NewMonitor(jobs.MonitorConfig{Clock: s.clock, Interval: time.Second})
	c.Assert(err, gc.ErrorMatches, "missing Store not valid")
	_, err = jobs.NewMonitor(jobs.MonitorConfig{Store: s.store, Clock: s.clock})
	c.Assert(err, gc.ErrorMatches, "interval 0s not valid")
}

func (s *monitorSuite) TestInitialSnapshot(c *gc.C) {
	rec := jobs.Record{
		ID:           "aaaa0001",
		Kind:         "website",
		ResourceName: "mylab-dev-web",
		State:        jobs.StateSucceeded,
		Started:      s.clock.Now(),
	}
	c.Assert(s.store.Write(rec), jc.ErrorIsNil)

	monitor := s.newMonitor(c)
	recs := s.waitSnapshot(c, monitor)
	c.Assert(recs, gc.HasLen, 1)
	c.Check(recs[0].ID, gc.Equals, "aaaa0001")
}

func (s *monitorSuite) TestEmitsOnChange(c *gc.C) {
	monitor := s.newMonitor(c)
	c.Assert(s.waitSnapshot(c, monitor), gc.HasLen, 0)

	rec := jobs.Record{
		ID:           "aaaa0002",
		Kind:         "iot-hub",
		ResourceName: "mylab-dev-iot",
		State:        jobs.StatePending,
		Started:      s.clock.Now(),
	}
	c.Assert(s.store.Write(rec), jc.ErrorIsNil)
	// A file notification may already have triggered the emit; the
	// ticker covers filesystems without notifications.
	c.Assert(s.clock.WaitAdvance(time.Second, longWait, 1), jc.ErrorIsNil)

	recs := s.waitSnapshot(c, monitor)
	c.Assert(recs, gc.HasLen, 1)
	c.Check(recs[0].ID, gc.Equals, "aaaa0002")
	c.Check(recs[0].State, gc.Equals, jobs.StatePending)
}

func (s *monitorSuite) TestNoDuplicateSnapshots(c *gc.C) {
	monitor := s.newMonitor(c)
	c.Assert(s.waitSnapshot(c, monitor), gc.HasLen, 0)

	// Nothing changed, so ticks do not emit.
	c.Assert(s.clock.WaitAdvance(time.Second, longWait, 1), jc.ErrorIsNil)
	select {
	case recs := <-monitor.Changes():
		c.Fatalf("unexpected snapshot %v", recs)
	case <-time.After(shortWait):
	}
}
