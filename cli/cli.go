package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/logsweep/logsweep/sweep"
)

const AppName = "logsweep"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() (*App, error) {

	// The log level is process-wide configuration, read once at startup.
	// An invalid TEST_LOG_LEVEL is a fatal configuration error.
	level, err := levelFromEnv()
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(level)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Capture DC/OS task logs when integration tests fail",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run a test command and sweep task logs if it fails",
		ArgsUsage: "[--] <command> [args...]",
		Action:    app.run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "name",
				Usage: "Test name used in capture file names (default: command basename)",
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "Only capture logs of tasks owned by this user (default: all tasks)",
			},
			&cli.IntFlag{
				Name:  "lines",
				Usage: "Maximum trailing log lines to fetch per task stream",
				Value: sweep.DefaultMaxLines,
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directory capture files are written to",
				Value: ".",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "sweep",
		Usage:  "Run one diagnostic collection sweep for a named test",
		Action: app.sweepOnce,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "test",
				Usage:    "Name of the failing test the captures belong to",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "Only capture logs of tasks owned by this user (default: all tasks)",
			},
			&cli.IntFlag{
				Name:  "lines",
				Usage: "Maximum trailing log lines to fetch per task stream",
				Value: sweep.DefaultMaxLines,
			},
			&cli.StringFlag{
				Name:  "output-dir",
				Usage: "Directory capture files are written to",
				Value: ".",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "tasks",
		Usage:  "List the IDs of tasks currently running on the cluster",
		Action: app.tasks,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "user",
				Usage: "Only list tasks owned by this user",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "logs",
		Usage:     "Fetch one task's log stream",
		ArgsUsage: "<task-id>",
		Action:    app.logs,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "Log stream to fetch (stdout or stderr)",
				Value: "stdout",
			},
			&cli.IntFlag{
				Name:  "lines",
				Usage: "Maximum trailing log lines to fetch",
				Value: sweep.DefaultMaxLines,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the log to a file instead of stdout",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List recorded sweeps",
		Action: app.list,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "test",
				Usage: "Filter by test name substring",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	return app, nil
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

// parseStream validates a stream name given on the command line.
func parseStream(name string) (sweep.Stream, error) {
	switch name {
	case "stdout":
		return sweep.Stdout, nil
	case "stderr":
		return sweep.Stderr, nil
	}
	return "", fmt.Errorf("invalid stream %q: use stdout or stderr", name)
}
