// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package jobs_test

import (
	"context"
	"os"
	"time"

	"github.com/juju/clock/testclock"
	"github.com/juju/errors"
	"github.com/juju/testing"
	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"

	"github.com/homelab/homelab/jobs"
	"github.com/homelab/homelab/resources"
)

type trackerSuite struct {
	testing.IsolationSuite

	clock *testclock.Clock
	store *jobs.Store
}

var _ = gc.Suite(&trackerSuite{})

func (s *trackerSuite) SetUpTest(c *gc.C) {
	s.IsolationSuite.SetUpTest(c)
	s.clock = testclock.NewClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.store = jobs.NewStore(c.MkDir(), s.clock)
	// Keep job logs inside the test directory.
	s.PatchEnvironment("HOMELAB_DATA", c.MkDir())
}

func (s *trackerSuite) TestRunSuccess(c *gc.C) {
	result := &resources.Result{
		Kind: resources.KindWebsite,
		Name: "mylab-dev-web",
		Keys: map[string]string{"primary": "secret"},
	}
	got, err := jobs.Run(context.Background(), s.store, s.clock, "website", "mylab-dev-web", "azure",
		func(context.Context) (*resources.Result, error) {
			return result, nil
		})
	c.Assert(err, jc.ErrorIsNil)
	c.Check(got, gc.Equals, result)

	recs, err := s.store.List()
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(recs, gc.HasLen, 1)
	rec := recs[0]
	c.Check(rec.State, gc.Equals, jobs.StateSucceeded)
	c.Check(rec.PID, gc.Equals, os.Getpid())
	c.Check(rec.Finished.IsZero(), jc.IsFalse)
	// Keys never land on disk.
	c.Assert(rec.Result, gc.NotNil)
	c.Check(rec.Result.Keys, gc.HasLen, 0)
	c.Check(rec.Result.Name, gc.Equals, "mylab-dev-web")
}

func (s *trackerSuite) TestRunFailure(c *gc.C) {
	_, err := jobs.Run(context.Background(), s.store, s.clock, "website", "mylab-dev-web", "azure",
		func(context.Context) (*resources.Result, error) {
			return nil, errors.New("quota exhausted")
		})
	c.Assert(err, gc.ErrorMatches, "quota exhausted")

	recs, err := s.store.List()
	c.Assert(err, jc.ErrorIsNil)
	c.Assert(recs, gc.HasLen, 1)
	c.Check(recs[0].State, gc.Equals, jobs.StateFailed)
	c.Check(recs[0].Error, gc.Equals, "quota exhausted")
	c.Check(recs[0].Result, gc.IsNil)
}

func (s *trackerSuite) TestAdoptTracker(c *gc.C) {
	rec := jobs.Record{
		ID:           "adopted1",
		Kind:         "sql-database",
		ResourceName: "mylab-dev-sql",
		Provider:     "azure",
		State:        jobs.StatePending,
		Started:      s.clock.Now(),
	}
	c.Assert(s.store.Write(rec), jc.ErrorIsNil)

	tracker, err := jobs.AdoptTracker(s.store, s.clock, "adopted1")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(tracker.ID(), gc.Equals, "adopted1")

	_, err = tracker.Run(context.Background(), func(context.Context) (*resources.Result, error) {
		return &resources.Result{Kind: resources.KindSQLDatabase, Name: "mylab-dev-sql"}, nil
	})
	c.Assert(err, jc.ErrorIsNil)

	got, err := s.store.Get("adopted1")
	c.Assert(err, jc.ErrorIsNil)
	c.Check(got.State, gc.Equals, jobs.StateSucceeded)
	c.Check(got.PID, gc.Equals, os.Getpid())
}

func (s *trackerSuite) TestAdoptTrackerMissing(c *gc.C) {
	_, err := jobs.AdoptTracker(s.store, s.clock, "nope")
	c.Assert(err, jc.Satisfies, errors.IsNotFound)
}
