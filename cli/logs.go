package cli

// This file contains the logs command for fetching a single task's log
// stream interactively.

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/logsweep/logsweep/dcos"
)

func (a *App) logs(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("expected exactly one task id, got %d arguments", ctx.NArg())
	}
	taskID := ctx.Args().First()

	stream, err := parseStream(ctx.String("file"))
	if err != nil {
		return err
	}

	// Unlike the sweep, an interactive fetch surfaces retrieval failures
	// directly, so the dcos client is used without the Collector.
	client := dcos.New(a.logger)
	text, err := client.FetchLog(ctx.Context, taskID, string(stream), ctx.Int("lines"))
	if err != nil {
		return err
	}

	if output := ctx.String("output"); output != "" {
		if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write log to %s: %w", output, err)
		}
		a.logger.Info().
			Str("task_id", taskID).
			Str("file", output).
			Msg("Task log written")
		return nil
	}

	fmt.Print(text)
	return nil
}
