package sweep

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/logsweep/logsweep/lifecycle"
	"github.com/logsweep/logsweep/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSweeper_Run(t *testing.T) {
	dir := t.TempDir()
	cli := &fakeCLI{
		listing: "NAME HOST USER STATE ID\nbroker host1 root R t-1\n",
		logs: map[string]string{
			"t-1/stdout": "broker started\n",
			// stderr fetch fails: the task log file does not exist
		},
	}

	s := New(zerolog.Nop(), cli, WithOutputDir(dir))
	captures, err := s.Run(context.Background(), "test_broker_count")
	require.NoError(t, err)

	// One capture: stdout present, stderr absorbed as absent.
	require.Len(t, captures, 1)
	require.Equal(t, "t-1", captures[0].TaskID)
	require.Equal(t, "stdout", captures[0].Stream)
	require.Equal(t, "test_broker_count_t-1_stdout.log", captures[0].File)

	data, err := os.ReadFile(filepath.Join(dir, "test_broker_count_t-1_stdout.log"))
	require.NoError(t, err)
	require.Equal(t, "broker started\n", string(data))

	_, err = os.Stat(filepath.Join(dir, "test_broker_count_t-1_stderr.log"))
	require.True(t, os.IsNotExist(err))

	// Both streams were attempted, stdout first.
	require.Equal(t, []string{"t-1/stdout", "t-1/stderr"}, cli.logCalls)
}

func TestSweeper_RunEmptyLogNotWritten(t *testing.T) {
	dir := t.TempDir()
	cli := &fakeCLI{
		listing: "NAME HOST USER STATE ID\nbroker host1 root R t-1\n",
		logs: map[string]string{
			"t-1/stdout": "",
			"t-1/stderr": "",
		},
	}

	s := New(zerolog.Nop(), cli, WithOutputDir(dir))
	captures, err := s.Run(context.Background(), "test_empty")
	require.NoError(t, err)
	require.Empty(t, captures)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestSweeper_RunOverwritesPriorCaptures(t *testing.T) {
	dir := t.TempDir()
	cli := &fakeCLI{
		listing: "NAME HOST USER STATE ID\nbroker host1 root R t-1\n",
		logs: map[string]string{
			"t-1/stdout": "first run\n",
			"t-1/stderr": "errors\n",
		},
	}

	s := New(zerolog.Nop(), cli, WithOutputDir(dir))
	_, err := s.Run(context.Background(), "test_idempotent")
	require.NoError(t, err)

	cli.logs["t-1/stdout"] = "second run\n"
	_, err = s.Run(context.Background(), "test_idempotent")
	require.NoError(t, err)

	// Same names, overwritten content, no duplicates.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	data, err := os.ReadFile(filepath.Join(dir, "test_idempotent_t-1_stdout.log"))
	require.NoError(t, err)
	require.Equal(t, "second run\n", string(data))
}

func TestSweeper_RunUserFilter(t *testing.T) {
	dir := t.TempDir()
	cli := &fakeCLI{
		listing: "NAME HOST USER STATE ID\n" +
			"broker host1 root R t-1\n" +
			"sidecar host2 nobody R t-2\n",
		logs: map[string]string{
			"t-1/stdout": "root task\n",
			"t-1/stderr": "",
			"t-2/stdout": "nobody task\n",
			"t-2/stderr": "",
		},
	}

	s := New(zerolog.Nop(), cli, WithOutputDir(dir), WithUser("root"))
	captures, err := s.Run(context.Background(), "test_user")
	require.NoError(t, err)
	require.Len(t, captures, 1)
	require.Equal(t, "t-1", captures[0].TaskID)
}

func TestSweeper_RunPropagatesEnumerationFailure(t *testing.T) {
	cli := &fakeCLI{listErr: os.ErrDeadlineExceeded}

	s := New(zerolog.Nop(), cli, WithOutputDir(t.TempDir()))
	_, err := s.Run(context.Background(), "test_down")
	require.Error(t, err)
}

func TestSweeper_HookSweepsOnFailure(t *testing.T) {
	dir := t.TempDir()
	cli := &fakeCLI{
		listing: "NAME HOST USER STATE ID\nbroker host1 root R t-1\n",
		logs: map[string]string{
			"t-1/stdout": "broker started\n",
			"t-1/stderr": "oops\n",
		},
	}

	s := New(zerolog.Nop(), cli, WithOutputDir(dir))

	var captures []string
	hook := s.Hook(context.Background(), func(c []model.Capture, err error) {
		require.NoError(t, err)
		for _, capture := range c {
			captures = append(captures, capture.File)
		}
	})

	obs := lifecycle.NewObserver()
	obs.OnComplete(hook)
	obs.Finish("test_down", lifecycle.PhaseSetup, lifecycle.OutcomePassed)
	obs.Finish("test_down", lifecycle.PhaseCall, lifecycle.OutcomeFailed)
	obs.Finish("test_down", lifecycle.PhaseTeardown, lifecycle.OutcomePassed)

	require.Equal(t, 1, cli.listCalls)
	require.Equal(t, []string{
		"test_down_t-1_stdout.log",
		"test_down_t-1_stderr.log",
	}, captures)
}

func TestSweeper_HookIgnoresPassingTest(t *testing.T) {
	cli := &fakeCLI{
		listing: "NAME HOST USER STATE ID\nbroker host1 root R t-1\n",
		logs:    map[string]string{"t-1/stdout": "noise\n"},
	}

	s := New(zerolog.Nop(), cli, WithOutputDir(t.TempDir()))

	obs := lifecycle.NewObserver()
	obs.OnComplete(s.Hook(context.Background(), nil))
	for _, phase := range lifecycle.Phases() {
		obs.Finish("test_up", phase, lifecycle.OutcomePassed)
	}

	// A passing test triggers no enumeration and no fetches.
	require.Zero(t, cli.listCalls)
	require.Empty(t, cli.logCalls)
}

func TestCaptureFileName(t *testing.T) {
	name := CaptureFileName("test_overlay", "broker-0__a1b2", Stderr)
	require.Equal(t, "test_overlay_broker-0__a1b2_stderr.log", name)
}
