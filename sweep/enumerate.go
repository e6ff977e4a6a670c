package sweep

// This file contains task enumeration: turning the tabular `dcos task`
// listing into the set of task IDs the sweep should capture logs for.

import (
	"context"
	"strings"

	"github.com/logsweep/logsweep/dcos"
	"github.com/rs/zerolog"
)

// Column layout of the `dcos task` listing. The first line is a header and
// any data line with fewer than minTaskFields fields is malformed.
const (
	taskUserField = 2
	taskIDField   = 4
	minTaskFields = 5
)

// ParseTaskIDs extracts task IDs from a `dcos task` listing, in file order.
// If user is non-empty only tasks owned by that user are returned.
func ParseTaskIDs(listing, user string) []string {
	lines := strings.Split(listing, "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header line
	}

	var ids []string
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < minTaskFields {
			continue
		}
		if user != "" && fields[taskUserField] != user {
			continue
		}
		ids = append(ids, fields[taskIDField])
	}

	return ids
}

// Enumerator lists the tasks currently running on the cluster.
type Enumerator struct {
	logger zerolog.Logger
	cli    dcos.CLI
}

// NewEnumerator creates an enumerator over the given cluster CLI.
func NewEnumerator(logger zerolog.Logger, cli dcos.CLI) *Enumerator {
	return &Enumerator{
		logger: logger,
		cli:    cli,
	}
}

// TaskIDs returns the IDs of all running tasks, optionally restricted to
// those owned by user. A listing failure is fatal to the caller: there is no
// local recovery when the cluster cannot be enumerated.
func (e *Enumerator) TaskIDs(ctx context.Context, user string) ([]string, error) {
	listing, err := e.cli.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	ids := ParseTaskIDs(listing, user)

	e.logger.Debug().
		Int("tasks", len(ids)).
		Str("user", user).
		Msg("Enumerated cluster tasks")

	return ids, nil
}
