package history

// This file contains shared utilities for loading and parsing recorded
// sweep manifests.

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/logsweep/logsweep/model"
	"github.com/rs/zerolog"
)

type Entry struct {
	Manifest model.Manifest
	FullPath string
}

// Root returns the .logsweep directory path from the git repository root.
func Root() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	repoRoot := strings.TrimSpace(string(output))
	root := filepath.Join(repoRoot, ".logsweep")

	if _, err := os.Stat(root); os.IsNotExist(err) {
		return "", fmt.Errorf("no recorded sweeps found in %s", root)
	}

	return root, nil
}

// LoadEntries loads all sweep manifests from the .logsweep directory.
func LoadEntries(logger zerolog.Logger, root string) ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			manifestPath := filepath.Join(path, "manifest.json")
			if _, err := os.Stat(manifestPath); err == nil {
				manifest, err := parseManifest(manifestPath)
				if err != nil {
					logger.Warn().Err(err).Str("path", manifestPath).Msg("Failed to parse manifest.json")
					return nil
				}

				entries = append(entries, Entry{
					Manifest: manifest,
					FullPath: path,
				})
			}
		}

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk .logsweep directory: %w", err)
	}

	return entries, nil
}

// parseManifest parses a manifest.json file.
func parseManifest(manifestPath string) (model.Manifest, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return model.Manifest{}, err
	}

	var manifest model.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return model.Manifest{}, err
	}

	return manifest, nil
}
