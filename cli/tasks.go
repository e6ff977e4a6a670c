package cli

// This file contains the tasks command for listing running cluster tasks.

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/logsweep/logsweep/dcos"
	"github.com/logsweep/logsweep/sweep"
)

func (a *App) tasks(ctx *cli.Context) error {
	client := dcos.New(a.logger)
	enum := sweep.NewEnumerator(a.logger, client)

	ids, err := enum.TaskIDs(ctx.Context, ctx.String("user"))
	if err != nil {
		return err
	}

	for _, id := range ids {
		fmt.Println(id)
	}

	return nil
}
