// Copyright 2025 The homelab authors.
// Licensed under the AGPLv3, see LICENCE file for details.

package deploy

import (
	"bufio"
	"context"
	"strings"

	"github.com/juju/clock"
	"github.com/juju/cmd/v3"
	"github.com/juju/errors"
	"github.com/juju/gnuflag"

	"github.com/homelab/homelab/config"
	"github.com/homelab/homelab/environs"
	"github.com/homelab/homelab/jobs"
	"github.com/homelab/homelab/resources"
)

// deployCommandBase holds the plumbing shared by all deploy
// subcommands: the config store, the job store location and the
// environ opener, all replaceable in tests.
type deployCommandBase struct {
	cmd.CommandBase
	out        cmd.Output
	background bool

	configStore config.Store
	jobDir      string
	clock       clock.Clock
	openEnviron func(*config.Config) (environs.Environ, error)
}

func newDeployBase() deployCommandBase {
	return deployCommandBase{
		configStore: config.NewFileStore(""),
		clock:       clock.WallClock,
		openEnviron: environs.Open,
	}
}

func (c *deployCommandBase) setFlags(f *gnuflag.FlagSet) {
	c.out.AddFlags(f, "yaml", map[string]cmd.Formatter{
		"yaml": cmd.FormatYaml,
		"json": cmd.FormatJson,
	})
	f.BoolVar(&c.background, "background", false, "Run the deployment as a detached background job")
}

func (c *deployCommandBase) readConfig() (*config.Config, error) {
	cfg, err := c.configStore.Read()
	if errors.IsNotFound(err) {
		return nil, errors.Annotate(err, `console not initialized, run "homelab config init" first`)
	} else if err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

// deploy validates spec and runs it in the foreground, or spawns a
// detached job when --background was given.
func (c *deployCommandBase) deploy(ctx *cmd.Context, cfg *config.Config, spec resources.Spec) error {
	if err := spec.Validate(); err != nil {
		return errors.Trace(err)
	}
	store := jobs.NewStore(c.jobDir, c.clock)
	if c.background {
		attrs, err := resources.EncodeSpec(spec)
		if err != nil {
			return errors.Trace(err)
		}
		rec, err := jobs.Spawn(store, c.clock, string(spec.Kind()), spec.Name(), cfg.Provider(), attrs, []string{"deploy", "resume"})
		if err != nil {
			return errors.Trace(err)
		}
		ctx.Infof("started job %s, follow it with: homelab jobs watch", rec.ID)
		return nil
	}
	env, err := c.openEnviron(cfg)
	if err != nil {
		return errors.Trace(err)
	}
	tracker := jobs.NewTracker(store, c.clock, string(spec.Kind()), spec.Name(), cfg.Provider())
	logger.Infof("deploying %s %q to %s", spec.Kind(), spec.Name(), cfg.Provider())
	stdctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	result, err := tracker.Run(stdctx, func(stdctx context.Context) (*resources.Result, error) {
		if err := env.PrepareGroup(stdctx); err != nil {
			return nil, errors.Trace(err)
		}
		return env.Deploy(stdctx, spec)
	})
	if err != nil {
		return errors.Trace(err)
	}
	// The job record holds the redacted result; keys are only ever
	// shown here, once.
	return errors.Trace(c.out.Write(ctx, result))
}

// promptLine writes prompt and reads one line from the context's
// stdin.
func promptLine(ctx *cmd.Context, prompt string) (string, error) {
	if _, err := ctx.Stdout.Write([]byte(prompt)); err != nil {
		return "", errors.Trace(err)
	}
	line, err := bufio.NewReader(ctx.Stdin).ReadString('\n')
	if err != nil {
		return "", errors.Annotate(err, "reading input")
	}
	return strings.TrimSpace(line), nil
}

// pick returns value unless it is empty, in which case it returns the
// fallback derived from the lab configuration.
func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
