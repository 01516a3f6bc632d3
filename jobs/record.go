// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package jobs tracks deployments as job records on disk. A record is
// written when a deployment starts, finalized when it ends, and left
// behind for the jobs commands to list, watch and clean up. Detached
// deployments re-execute the binary and are matched back to their
// record by ID; the recorded PID lets the monitor notice jobs whose
// process died without finalizing.
package jobs

import (
	"time"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/juju/utils/v4"

	"github.com/homelab/homelab/resources"
)

var logger = loggo.GetLogger("homelab.jobs")

// State is the lifecycle state of a job.
type State string

const (
	// StatePending means the record exists but the deployment has
	// not started running yet.
	StatePending State = "pending"

	// StateRunning means the deployment is in flight.
	StateRunning State = "running"

	// StateSucceeded and StateFailed are terminal.
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"

	// StateInterrupted is reported (never stored) for a running
	// record whose process is gone.
	StateInterrupted State = "interrupted"
)

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed
}

// Record is the serialized snapshot of one deployment job.
type Record struct {
	ID           string    `yaml:"id"`
	Kind         string    `yaml:"kind"`
	ResourceName string    `yaml:"resource-name"`
	Provider     string    `yaml:"provider"`
	State        State     `yaml:"state"`
	PID          int       `yaml:"pid,omitempty"`
	Started      time.Time `yaml:"started"`
	Finished     time.Time `yaml:"finished,omitempty"`
	LogFile      string    `yaml:"log-file,omitempty"`
	Error        string    `yaml:"error,omitempty"`
	// Spec holds the encoded resource spec for detached jobs, so the
	// re-executed child can rebuild what to deploy.
	Spec map[string]interface{} `yaml:"spec,omitempty"`
	// Result holds the redacted deployment result for succeeded
	// jobs.
	Result *resources.Result `yaml:"result,omitempty"`
}

// Validate returns an error if the record is malformed.
func (r Record) Validate() error {
	if r.ID == "" {
		return errors.NotValidf("empty job ID")
	}
	if r.Kind == "" || r.ResourceName == "" {
		return errors.NotValidf("job %q without resource", r.ID)
	}
	switch r.State {
	case StatePending, StateRunning, StateSucceeded, StateFailed:
	default:
		return errors.NotValidf("job state %q", r.State)
	}
	return nil
}

// EffectiveState is the state adjusted for process liveness: a pending
// or running record whose process is gone is reported interrupted.
func (r Record) EffectiveState() State {
	if (r.State == StatePending || r.State == StateRunning) && r.PID != 0 && !processAlive(r.PID) {
		return StateInterrupted
	}
	return r.State
}

// NewID returns a fresh job ID: the first block of a UUID is plenty
// for a per-user job directory.
func NewID() string {
	return utils.MustNewUUID().String()[:8]
}
