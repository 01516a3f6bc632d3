// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package jobs

import (
	"reflect"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/worker/v4/catacomb"
)

// MonitorConfig encapsulates the configuration options for the jobs
// monitor.
type MonitorConfig struct {
	Store *Store
	Clock clock.Clock

	// Interval is the fallback polling interval used when file
	// notifications are unavailable, and as a liveness re-check for
	// records whose process may have died without a file event.
	Interval time.Duration
}

// Validate ensures that the config values are valid.
func (c MonitorConfig) Validate() error {
	if c.Store == nil {
		return errors.NotValidf("missing Store")
	}
	if c.Clock == nil {
		return errors.NotValidf("missing Clock")
	}
	if c.Interval <= 0 {
		return errors.NotValidf("interval %v", c.Interval)
	}
	return nil
}

// Monitor watches the jobs directory and emits a fresh snapshot of
// all records whenever anything changes. It is a worker; kill it to
// stop watching.
type Monitor struct {
	catacomb catacomb.Catacomb
	config   MonitorConfig
	changes  chan []Record
}

// NewMonitor starts a monitor.
func NewMonitor(config MonitorConfig) (*Monitor, error) {
	if err := config.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	m := &Monitor{
		config:  config,
		changes: make(chan []Record),
	}
	if err := catacomb.Invoke(catacomb.Plan{
		Site: &m.catacomb,
		Work: m.loop,
	}); err != nil {
		return nil, errors.Trace(err)
	}
	return m, nil
}

// Changes returns the channel snapshots are delivered on. The first
// snapshot arrives without waiting for a change.
func (m *Monitor) Changes() <-chan []Record {
	return m.changes
}

// Kill is part of the worker.Worker interface.
func (m *Monitor) Kill() {
	m.catacomb.Kill(nil)
}

// Wait is part of the worker.Worker interface.
func (m *Monitor) Wait() error {
	return m.catacomb.Wait()
}

func (m *Monitor) loop() error {
	// File notifications are best effort: the directory may not
	// exist yet, and some filesystems do not support them. The
	// ticker covers those cases.
	var events <-chan fsnotify.Event
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		defer watcher.Close()
		if err := watcher.Add(m.config.Store.Dir()); err == nil {
			events = watcher.Events
		} else {
			logger.Debugf("no file notifications for %q: %v", m.config.Store.Dir(), err)
		}
	}

	var last []Record
	emit := func(force bool) error {
		recs, err := m.config.Store.List()
		if err != nil {
			return errors.Trace(err)
		}
		// Compare on effective state so a process death flips the
		// snapshot even though no file changed.
		effective := make([]Record, len(recs))
		for i, rec := range recs {
			effective[i] = rec
			effective[i].State = rec.EffectiveState()
		}
		if !force && reflect.DeepEqual(effective, last) {
			return nil
		}
		last = effective
		select {
		case <-m.catacomb.Dying():
			return m.catacomb.ErrDying()
		case m.changes <- effective:
		}
		return nil
	}

	if err := emit(true); err != nil {
		return errors.Trace(err)
	}
	for {
		select {
		case <-m.catacomb.Dying():
			return m.catacomb.ErrDying()
		case <-m.config.Clock.After(m.config.Interval):
			if err := emit(false); err != nil {
				return errors.Trace(err)
			}
		case _, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := emit(false); err != nil {
				return errors.Trace(err)
			}
		}
	}
}
