// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package jobs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/mutex/v2"
	"github.com/juju/utils/v4"
	"gopkg.in/yaml.v2"

	"github.com/homelab/homelab/osenv"
	"github.com/homelab/homelab/resources"
)

var lockTimeout = 5 * time.Second

// Store reads and writes job records, one YAML file per job.
type Store struct {
	dir   string
	clock clock.Clock
}

// NewStore returns a store over dir, which is created on first write.
// An empty dir selects the default jobs directory.
func NewStore(dir string, clk clock.Clock) *Store {
	if dir == "" {
		dir = osenv.JobsDir()
	}
	if clk == nil {
		clk = clock.WallClock
	}
	return &Store{dir: dir, clock: clk}
}

// Dir returns the directory holding the records.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) acquireLock() (mutex.Releaser, error) {
	spec := mutex.Spec{
		Name:    "homelab-jobs",
		Clock:   s.clock,
		Delay:   20 * time.Millisecond,
		Timeout: lockTimeout,
	}
	releaser, err := mutex.Acquire(spec)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return releaser, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".yaml")
}

// Write creates or replaces the record.
func (s *Store) Write(rec Record) error {
	if err := rec.Validate(); err != nil {
		return errors.Trace(err)
	}
	releaser, err := s.acquireLock()
	if err != nil {
		return errors.Annotate(err, "cannot write job record")
	}
	defer releaser.Release()
	return errors.Trace(s.write(rec))
}

// write stores the record. The caller holds the lock.
func (s *Store) write(rec Record) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return errors.Trace(err)
	}
	data, err := yaml.Marshal(rec)
	if err != nil {
		return errors.Trace(err)
	}
	if err := utils.AtomicWriteFile(s.path(rec.ID), data, 0600); err != nil {
		return errors.Trace(err)
	}
	logger.Debugf("job %s: %s", rec.ID, rec.State)
	return nil
}

// RecordPID stores the child process ID on a still-pending record and
// returns the stored record. A fast child may have advanced the record,
// or even finished, before the parent gets here; in that case the
// child's version wins and nothing is written.
func (s *Store) RecordPID(id string, pid int) (Record, error) {
	releaser, err := s.acquireLock()
	if err != nil {
		return Record{}, errors.Annotate(err, "cannot update job record")
	}
	defer releaser.Release()

	rec, err := s.read(s.path(id))
	if err != nil {
		return Record{}, errors.Trace(err)
	}
	if rec.State != StatePending {
		return rec, nil
	}
	rec.PID = pid
	if err := s.write(rec); err != nil {
		return Record{}, errors.Trace(err)
	}
	return rec, nil
}

// Get returns the record with the given ID.
func (s *Store) Get(id string) (Record, error) {
	releaser, err := s.acquireLock()
	if err != nil {
		return Record{}, errors.Annotate(err, "cannot read job record")
	}
	defer releaser.Release()
	return s.read(s.path(id))
}

func (s *Store) read(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		id := strings.TrimSuffix(filepath.Base(path), ".yaml")
		return Record{}, errors.NotFoundf("job %q", id)
	} else if err != nil {
		return Record{}, errors.Trace(err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, errors.Annotatef(err, "cannot parse %q", path)
	}
	if rec.Spec != nil {
		// The YAML decoder nests interface-keyed maps, which the JSON
		// formatter refuses.
		rec.Spec = resources.NormalizeAttrs(rec.Spec)
	}
	return rec, nil
}

// List returns all records, most recently started first. Unparseable
// files are skipped with a warning rather than failing the listing.
func (s *Store) List() ([]Record, error) {
	releaser, err := s.acquireLock()
	if err != nil {
		return nil, errors.Annotate(err, "cannot list job records")
	}
	defer releaser.Release()

	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, errors.Trace(err)
	}
	var recs []Record
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		rec, err := s.read(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			logger.Warningf("skipping job file %q: %v", entry.Name(), err)
			continue
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Started.After(recs[j].Started)
	})
	return recs, nil
}

// Remove deletes the record and its log file, if any.
func (s *Store) Remove(id string) error {
	releaser, err := s.acquireLock()
	if err != nil {
		return errors.Annotate(err, "cannot remove job record")
	}
	defer releaser.Release()

	rec, err := s.read(s.path(id))
	if err != nil {
		return errors.Trace(err)
	}
	if rec.LogFile != "" {
		if err := os.Remove(rec.LogFile); err != nil && !os.IsNotExist(err) {
			logger.Warningf("cannot remove job log %q: %v", rec.LogFile, err)
		}
	}
	if err := os.Remove(s.path(id)); err != nil {
		return errors.Trace(err)
	}
	return nil
}

// Prune removes terminal and interrupted records finished before the
// cutoff, returning the removed records.
func (s *Store) Prune(olderThan time.Duration) ([]Record, error) {
	recs, err := s.List()
	if err != nil {
		return nil, errors.Trace(err)
	}
	cutoff := s.clock.Now().Add(-olderThan)
	var removed []Record
	for _, rec := range recs {
		state := rec.EffectiveState()
		if !state.Terminal() && state != StateInterrupted {
			continue
		}
		when := rec.Finished
		if when.IsZero() {
			when = rec.Started
		}
		if when.After(cutoff) {
			continue
		}
		if err := s.Remove(rec.ID); err != nil {
			return removed, errors.Annotatef(err, "pruning job %q", rec.ID)
		}
		removed = append(removed, rec)
	}
	return removed, nil
}
