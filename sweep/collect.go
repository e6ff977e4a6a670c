package sweep

// This file contains log collection: retrieving the trailing lines of one
// task's stdout or stderr via the cluster CLI.

import (
	"context"

	"github.com/logsweep/logsweep/dcos"
	"github.com/rs/zerolog"
)

// Stream identifies one of a task's two standard output channels.
type Stream string

const (
	Stdout Stream = "stdout"
	Stderr Stream = "stderr"
)

// Streams returns both streams in capture order.
func Streams() []Stream {
	return []Stream{Stdout, Stderr}
}

// DefaultMaxLines is the default cap on lines fetched per task log.
const DefaultMaxLines = 1000000

// Collector fetches task logs from the cluster.
type Collector struct {
	logger   zerolog.Logger
	cli      dcos.CLI
	maxLines int
}

// NewCollector creates a collector over the given cluster CLI. A maxLines of
// zero or less falls back to DefaultMaxLines.
func NewCollector(logger zerolog.Logger, cli dcos.CLI, maxLines int) *Collector {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Collector{
		logger:   logger,
		cli:      cli,
		maxLines: maxLines,
	}
}

// Fetch retrieves one task's log stream. Retrieval failures are expected
// (the task may have vanished mid-sweep): they are logged and reported as
// absent so the sweep continues with the next task or stream.
func (c *Collector) Fetch(ctx context.Context, taskID string, stream Stream) (string, bool) {
	text, err := c.cli.FetchLog(ctx, taskID, string(stream), c.maxLines)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Str("stream", string(stream)).
			Msg("Failed to fetch task log")
		return "", false
	}

	return text, true
}
