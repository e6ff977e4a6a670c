package dcos

// Package dcos provides a client interface to DC/OS clusters via the dcos
// command line. It covers the two operations the diagnostic sweep needs:
// listing cluster tasks and fetching a task's log files.

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
)

// Runner executes a dcos CLI invocation and returns its stdout as text.
// It exists so the sweep logic can be tested without a live cluster.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

// ExecRunner runs the dcos binary found on PATH.
type ExecRunner struct{}

// Run executes `dcos <args...>` and returns the captured stdout.
func (ExecRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "dcos", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("dcos command failed: %w (stderr: %s)", err, stderr.String())
	}

	return stdout.String(), nil
}

// CLI is the narrow surface of the dcos command line consumed by the sweep.
type CLI interface {
	// ListTasks returns the raw tabular output of `dcos task`.
	ListTasks(ctx context.Context) (string, error)
	// FetchLog returns up to lines trailing lines of one task's log file
	// (stdout or stderr).
	FetchLog(ctx context.Context, taskID, file string, lines int) (string, error)
}

// Client implements CLI on top of a Runner.
type Client struct {
	logger zerolog.Logger
	runner Runner
}

// Option is a function that configures a Client.
type Option func(*Client)

// WithRunner substitutes the command runner, typically with a fake in tests.
func WithRunner(r Runner) Option {
	return func(c *Client) {
		c.runner = r
	}
}

// New creates a client that shells out to the dcos CLI.
func New(logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		logger: logger,
		runner: ExecRunner{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ListTasks returns the plain tabular task listing. The --json form is
// deliberately avoided: it reports the wrong user for scheduler tasks.
func (c *Client) ListTasks(ctx context.Context) (string, error) {
	c.logger.Debug().Msg("Listing cluster tasks")

	output, err := c.runner.Run(ctx, "task")
	if err != nil {
		return "", fmt.Errorf("failed to list tasks: %w", err)
	}

	return output, nil
}

// FetchLog retrieves the trailing lines of one task's stdout or stderr file.
func (c *Client) FetchLog(ctx context.Context, taskID, file string, lines int) (string, error) {
	c.logger.Debug().
		Str("task_id", taskID).
		Str("file", file).
		Int("lines", lines).
		Msg("Fetching task log")

	output, err := c.runner.Run(ctx, "task", "log", taskID, "--lines", strconv.Itoa(lines), file)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s log for task %s: %w", file, taskID, err)
	}

	return output, nil
}
