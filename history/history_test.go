package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/logsweep/logsweep/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir string, manifest model.Manifest) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	data, err := json.Marshal(manifest)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0644))
}

func TestLoadEntries(t *testing.T) {
	root := t.TempDir()

	writeManifest(t, filepath.Join(root, "history", "run-a"), model.Manifest{
		ID:        "aaaa",
		Test:      "test_broker_count",
		Timestamp: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	})
	writeManifest(t, filepath.Join(root, "history", "run-b"), model.Manifest{
		ID:   "bbbb",
		Test: "test_overlay",
	})

	entries, err := LoadEntries(zerolog.Nop(), root)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	ids := []string{entries[0].Manifest.ID, entries[1].Manifest.ID}
	require.ElementsMatch(t, []string{"aaaa", "bbbb"}, ids)
}

func TestLoadEntries_SkipsMalformedManifests(t *testing.T) {
	root := t.TempDir()

	bad := filepath.Join(root, "history", "run-bad")
	require.NoError(t, os.MkdirAll(bad, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(bad, "manifest.json"), []byte("{not json"), 0644))

	writeManifest(t, filepath.Join(root, "history", "run-good"), model.Manifest{ID: "good"})

	entries, err := LoadEntries(zerolog.Nop(), root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "good", entries[0].Manifest.ID)
}

func TestLoadEntries_EmptyRoot(t *testing.T) {
	entries, err := LoadEntries(zerolog.Nop(), t.TempDir())
	require.NoError(t, err)
	require.Empty(t, entries)
}
