package sweep

// Package sweep implements the failure-triggered diagnostic collection
// sweep: enumerate the tasks running on the cluster, fetch each task's
// stdout and stderr, and persist every non-empty result to a capture file
// named after the failing test.

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/logsweep/logsweep/dcos"
	"github.com/logsweep/logsweep/lifecycle"
	"github.com/logsweep/logsweep/model"
	"github.com/rs/zerolog"
)

// Sweeper runs diagnostic collection sweeps.
type Sweeper struct {
	logger    zerolog.Logger
	enum      *Enumerator
	col       *Collector
	outputDir string
	user      string
}

// Option is a function that configures a Sweeper.
type Option func(*Sweeper)

// WithOutputDir sets the directory capture files are written to. Default is
// the current working directory.
func WithOutputDir(dir string) Option {
	return func(s *Sweeper) {
		s.outputDir = dir
	}
}

// WithUser restricts the sweep to tasks owned by user. By default the sweep
// captures logs for every running task, not just those of the service under
// test: broad diagnostics are intentional on a failing cluster.
func WithUser(user string) Option {
	return func(s *Sweeper) {
		s.user = user
	}
}

// WithMaxLines caps the number of trailing lines fetched per task log.
func WithMaxLines(lines int) Option {
	return func(s *Sweeper) {
		s.col = NewCollector(s.logger, s.col.cli, lines)
	}
}

// New creates a Sweeper over the given cluster CLI.
func New(logger zerolog.Logger, cli dcos.CLI, opts ...Option) *Sweeper {
	s := &Sweeper{
		logger:    logger,
		enum:      NewEnumerator(logger, cli),
		col:       NewCollector(logger, cli, 0),
		outputDir: ".",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CaptureFileName returns the capture file name for one (test, task, stream)
// triple.
func CaptureFileName(testName, taskID string, stream Stream) string {
	return fmt.Sprintf("%s_%s_%s.log", testName, taskID, stream)
}

// Hook returns a lifecycle completion hook that runs one sweep when a test
// reports any failed phase. Sweep results are delivered through done, which
// may be nil.
func (s *Sweeper) Hook(ctx context.Context, done func([]model.Capture, error)) func(lifecycle.Report) {
	return func(rep lifecycle.Report) {
		if !rep.Failed() {
			s.logger.Debug().Str("test", rep.Test).Msg("Test passed, skipping log sweep")
			return
		}

		s.logger.Info().Str("test", rep.Test).Msg("Test failed, sweeping task logs")
		captures, err := s.Run(ctx, rep.Test)
		if done != nil {
			done(captures, err)
		}
	}
}

// Run performs one collection sweep for the named test: tasks in the outer
// loop, streams in the inner loop, one blocking fetch at a time. Each
// present, non-empty log is written to its capture file, overwriting any
// previous capture of the same name. Enumeration and file-write failures
// propagate; per-task fetch failures are absorbed by the Collector.
func (s *Sweeper) Run(ctx context.Context, testName string) ([]model.Capture, error) {
	ids, err := s.enum.TaskIDs(ctx, s.user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("test", testName).
		Int("tasks", len(ids)).
		Msg("Sweeping task logs")

	var captures []model.Capture
	for _, id := range ids {
		for _, stream := range Streams() {
			text, ok := s.col.Fetch(ctx, id, stream)
			if !ok || text == "" {
				continue
			}

			name := CaptureFileName(testName, id, stream)
			path := filepath.Join(s.outputDir, name)
			if err := os.WriteFile(path, []byte(text), 0644); err != nil {
				return captures, fmt.Errorf("failed to write capture file %s: %w", path, err)
			}

			captures = append(captures, model.Capture{
				TaskID: id,
				Stream: string(stream),
				Size:   uint64(len(text)),
				File:   name,
			})

			s.logger.Debug().
				Str("task_id", id).
				Str("stream", string(stream)).
				Str("file", name).
				Msg("Captured task log")
		}
	}

	return captures, nil
}
