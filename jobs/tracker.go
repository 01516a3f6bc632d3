// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package jobs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/lumberjack/v2"

	"github.com/homelab/homelab/osenv"
	"github.com/homelab/homelab/resources"
)

// Tracker drives one job record through its lifecycle while the
// deployment runs in this process.
type Tracker struct {
	store  *Store
	clock  clock.Clock
	rec    Record
	logger *lumberjack.Logger
}

// NewTracker creates a tracker for a fresh job.
func NewTracker(store *Store, clk clock.Clock, kind, resourceName, provider string) *Tracker {
	if clk == nil {
		clk = clock.WallClock
	}
	id := NewID()
	return &Tracker{
		store: store,
		clock: clk,
		rec: Record{
			ID:           id,
			Kind:         kind,
			ResourceName: resourceName,
			Provider:     provider,
			State:        StatePending,
			LogFile:      filepath.Join(osenv.LogDir(), id+".log"),
		},
	}
}

// AdoptTracker resumes tracking of an existing record, used by the
// re-executed child of a detached deployment.
func AdoptTracker(store *Store, clk clock.Clock, id string) (*Tracker, error) {
	if clk == nil {
		clk = clock.WallClock
	}
	rec, err := store.Get(id)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &Tracker{store: store, clock: clk, rec: rec}, nil
}

// ID returns the job ID.
func (t *Tracker) ID() string {
	return t.rec.ID
}

// Record returns a copy of the current record.
func (t *Tracker) Record() Record {
	return t.rec
}

// Start marks the job running under this process and routes a copy of
// the log stream to the job's log file.
func (t *Tracker) Start() error {
	t.rec.State = StateRunning
	t.rec.PID = os.Getpid()
	t.rec.Started = t.clock.Now()
	if err := t.store.Write(t.rec); err != nil {
		return errors.Trace(err)
	}
	if t.rec.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(t.rec.LogFile), 0700); err != nil {
			return errors.Trace(err)
		}
		t.logger = &lumberjack.Logger{
			Filename:   t.rec.LogFile,
			MaxSize:    10, // MB
			MaxBackups: 1,
		}
		writer := loggo.NewSimpleWriter(t.logger, loggo.DefaultFormatter)
		if err := loggo.RegisterWriter("job-"+t.rec.ID, writer); err != nil {
			logger.Warningf("cannot attach job log writer: %v", err)
		}
	}
	return nil
}

// Finish records the outcome and detaches the log writer. The result
// is redacted first; keys never land on disk.
func (t *Tracker) Finish(result *resources.Result, runErr error) error {
	if t.logger != nil {
		_, _ = loggo.RemoveWriter("job-" + t.rec.ID)
		_ = t.logger.Close()
	}
	t.rec.Finished = t.clock.Now()
	if runErr != nil {
		t.rec.State = StateFailed
		t.rec.Error = runErr.Error()
	} else {
		t.rec.State = StateSucceeded
		if result != nil {
			t.rec.Result = result.Redacted()
		}
	}
	return errors.Trace(t.store.Write(t.rec))
}

// Run executes fn under a fresh tracked job and returns its result.
func Run(ctx context.Context, store *Store, clk clock.Clock, kind, resourceName, provider string,
	fn func(context.Context) (*resources.Result, error),
) (*resources.Result, error) {
	t := NewTracker(store, clk, kind, resourceName, provider)
	return t.Run(ctx, fn)
}

// Run executes fn under this tracker.
func (t *Tracker) Run(ctx context.Context, fn func(context.Context) (*resources.Result, error)) (*resources.Result, error) {
	if err := t.Start(); err != nil {
		return nil, errors.Trace(err)
	}
	result, err := fn(ctx)
	if ferr := t.Finish(result, err); ferr != nil {
		logger.Errorf("cannot finalize job %s: %v", t.rec.ID, ferr)
	}
	return result, errors.Trace(err)
}
