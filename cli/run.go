package cli

// This file contains the run command: execute a test command, observe its
// lifecycle, and sweep task logs when it fails.

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/urfave/cli/v2"

	"github.com/logsweep/logsweep/dcos"
	"github.com/logsweep/logsweep/lifecycle"
	"github.com/logsweep/logsweep/model"
	"github.com/logsweep/logsweep/sweep"
)

func (a *App) run(ctx *cli.Context) error {
	startTime := time.Now()

	args := removeFirstDashDash(ctx.Args().Slice())
	if len(args) == 0 {
		return fmt.Errorf("no command specified: please provide a test command to run (e.g., 'logsweep run -- pytest tests/')")
	}

	testName := ctx.String("name")
	if testName == "" {
		testName = defaultTestName(args)
	}

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

	// The sweep is a completion hook on the test lifecycle: it activates
	// exactly once, and only if some phase failed.
	var captures []model.Capture
	var sweepErr error
	observer := lifecycle.NewObserver()
	observer.OnComplete(sweeper.Hook(ctx.Context, func(c []model.Capture, err error) {
		captures, sweepErr = c, err
	}))

	a.logger.Info().
		Str("test", testName).
		Str("command", shellescape.QuoteCommand(args)).
		Msg("Running test command")

	// No setup or teardown work happens in the wrapper itself; only the
	// call phase can fail here.
	observer.Begin(testName, lifecycle.PhaseSetup)
	observer.Finish(testName, lifecycle.PhaseSetup, lifecycle.OutcomePassed)

	observer.Begin(testName, lifecycle.PhaseCall)
	exitCode, stdoutContent, stderrContent, runErr := a.executeCommand(ctx, args)
	callOutcome := lifecycle.OutcomePassed
	if runErr != nil {
		callOutcome = lifecycle.OutcomeFailed
	}
	observer.Finish(testName, lifecycle.PhaseCall, callOutcome)

	observer.Begin(testName, lifecycle.PhaseTeardown)
	observer.Finish(testName, lifecycle.PhaseTeardown, lifecycle.OutcomePassed)

	manifest := &model.Manifest{
		ID:        sweepID,
		Test:      testName,
		Timestamp: startTime,
		Args:      os.Args,
		ExitCode:  exitCode,
		Duration:  time.Since(startTime),
		Captures:  captures,
	}
	if cwd, err := os.Getwd(); err == nil {
		manifest.WorkDir = cwd
	}

	// Recording is non-fatal: the capture files on disk are the deliverable.
	if err := a.recordManifest(manifest, stdoutContent, stderrContent); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to record sweep manifest")
	}

	if sweepErr != nil {
		return sweepErr
	}
	return runErr
}

// executeCommand runs the wrapped test command, mirroring its output to the
// terminal while capturing it for the manifest.
func (a *App) executeCommand(ctx *cli.Context, args []string) (exitCode int, stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx.Context, args[0], args[1:]...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdin = os.Stdin
	cmd.Stdout = io.MultiWriter(os.Stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderrBuf)

	if err := cmd.Run(); err != nil {
		// Test failures are expected to return non-zero exit codes
		if exitErr, ok := err.(*exec.ExitError); ok {
			a.logger.Info().
				Int("exit_code", exitErr.ExitCode()).
				Msg("Test command completed with failures")
			return exitErr.ExitCode(), stdoutBuf.String(), stderrBuf.String(),
				fmt.Errorf("test command failed with exit code %d", exitErr.ExitCode())
		}
		return 1, stdoutBuf.String(), stderrBuf.String(),
			fmt.Errorf("failed to execute test command: %w", err)
	}

	a.logger.Info().Msg("Test command completed successfully")
	return 0, stdoutBuf.String(), stderrBuf.String(), nil
}

func removeFirstDashDash(in []string) []string {
	if len(in) > 0 && in[0] == "--" {
		return in[1:]
	}
	return in
}

// defaultTestName derives a capture name from the wrapped command when no
// --name is given.
func defaultTestName(args []string) string {
	return filepath.Base(args[0])
}

// newSweepID generates a random 16-byte sweep ID.
func newSweepID() (string, error) {
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return "", fmt.Errorf("failed to generate sweep ID: %w", err)
	}
	return hex.EncodeToString(idBytes), nil
}
