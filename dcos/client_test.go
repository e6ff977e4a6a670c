package dcos

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// fakeRunner records the arguments of every invocation and replays canned
// output or errors.
type fakeRunner struct {
	calls  [][]string
	output string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func TestClient_ListTasks(t *testing.T) {
	runner := &fakeRunner{output: "NAME HOST USER STATE ID\nbroker host1 root R t-1\n"}
	client := New(zerolog.Nop(), WithRunner(runner))

	out, err := client.ListTasks(context.Background())
	require.NoError(t, err)
	require.Equal(t, runner.output, out)

	require.Len(t, runner.calls, 1)
	require.Equal(t, []string{"task"}, runner.calls[0])
}

func TestClient_ListTasksError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("cluster unreachable")}
	client := New(zerolog.Nop(), WithRunner(runner))

	_, err := client.ListTasks(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to list tasks")
}

func TestClient_FetchLog(t *testing.T) {
	runner := &fakeRunner{output: "log line 1\nlog line 2\n"}
	client := New(zerolog.Nop(), WithRunner(runner))

	out, err := client.FetchLog(context.Background(), "t-1", "stdout", 1000000)
	require.NoError(t, err)
	require.Equal(t, runner.output, out)

	require.Len(t, runner.calls, 1)
	require.Equal(t, []string{"task", "log", "t-1", "--lines", "1000000", "stdout"}, runner.calls[0])
}

func TestClient_FetchLogError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	client := New(zerolog.Nop(), WithRunner(runner))

	_, err := client.FetchLog(context.Background(), "t-1", "stderr", 500)
	require.Error(t, err)
	require.Contains(t, err.Error(), "task t-1")
}
