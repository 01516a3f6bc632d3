// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package jobs

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/juju/clock"
	"github.com/juju/errors"

	"github.com/homelab/homelab/osenv"
)

// Spawn writes a pending record and re-executes the current binary
// with the given arguments plus "--job-id <id>", detached from the
// terminal. The child adopts the record via AdoptTracker; stdout and
// stderr go to the job's log file.
func Spawn(store *Store, clk clock.Clock, kind, resourceName, provider string, spec map[string]interface{}, args []string) (Record, error) {
	if clk == nil {
		clk = clock.WallClock
	}
	id := NewID()
	rec := Record{
		ID:           id,
		Kind:         kind,
		ResourceName: resourceName,
		Provider:     provider,
		State:        StatePending,
		Started:      clk.Now(),
		LogFile:      filepath.Join(osenv.LogDir(), id+".log"),
		Spec:         spec,
	}
	if err := store.Write(rec); err != nil {
		return Record{}, errors.Trace(err)
	}

	if err := os.MkdirAll(filepath.Dir(rec.LogFile), 0700); err != nil {
		return Record{}, errors.Trace(err)
	}
	logFile, err := os.OpenFile(rec.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return Record{}, errors.Trace(err)
	}
	defer logFile.Close()

	exe, err := os.Executable()
	if err != nil {
		return Record{}, errors.Trace(err)
	}
	cmd := exec.Command(exe, append(args, "--job-id", id)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Env = append(os.Environ(), osenv.HomelabDataEnvKey+"="+filepath.Dir(store.Dir()))
	if err := cmd.Start(); err != nil {
		return Record{}, errors.Annotate(err, "starting background deployment")
	}
	logger.Infof("job %s started in process %d", id, cmd.Process.Pid)
	// The child rewrites the record with its own PID as soon as it
	// starts; recording the spawned PID covers the window before
	// that. RecordPID re-reads under the lock so a fast child's
	// progress is never clobbered by this stale snapshot.
	rec, err = store.RecordPID(id, cmd.Process.Pid)
	if err != nil {
		return Record{}, errors.Trace(err)
	}
	if err := cmd.Process.Release(); err != nil {
		return Record{}, errors.Trace(err)
	}
	return rec, nil
}
