package cli

// This file contains the sweep command for running a diagnostic collection
// sweep manually, outside a wrapped test command.

import (
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/logsweep/logsweep/dcos"
	"github.com/logsweep/logsweep/model"
	"github.com/logsweep/logsweep/sweep"
)

func (a *App) sweepOnce(ctx *cli.Context) error {
	startTime := time.Now()
	testName := ctx.String("test")

	sweepID, err := newSweepID()
	if err != nil {
		return err
	}

	client := dcos.New(a.logger)
	sweeper := sweep.New(a.logger, client,
		sweep.WithOutputDir(ctx.String("output-dir")),
		sweep.WithUser(ctx.String("user")),
		sweep.WithMaxLines(ctx.Int("lines")),
	)

	captures, err := sweeper.Run(ctx.Context, testName)
	if err != nil {
		return err
	}

	a.logger.Info().
		Str("test", testName).
		Int("captures", len(captures)).
		Msg("Sweep complete")

	manifest := &model.Manifest{
		ID:        sweepID,
		Test:      testName,
		Timestamp: startTime,
		Args:      os.Args,
		Duration:  time.Since(startTime),
		Captures:  captures,
	}
	if cwd, err := os.Getwd(); err == nil {
		manifest.WorkDir = cwd
	}

	// Recording is non-fatal: the capture files on disk are the deliverable.
	if err := a.recordManifest(manifest, "", ""); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to record sweep manifest")
	}

	return nil
}
