package cli

// This file contains sweep recording functionality for saving sweep
// manifests and the wrapped command's output to the history directory.

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/logsweep/logsweep/model"
)

func (a *App) recordManifest(manifest *model.Manifest, stdoutContent, stderrContent string) error {
	// Get repository root
	repoRoot, err := gitTopLevel()
	if err != nil {
		return err
	}

	// Capture git info (non-fatal if it fails)
	if commit, branch, err := gitInfo(); err == nil {
		manifest.Git = &model.Git{
			Commit: commit,
			Branch: branch,
			Repo:   filepath.Base(repoRoot),
		}
	}

	// Update WorkDir to be relative to repo root
	relPath := "."
	if manifest.WorkDir != "" {
		if rel, err := filepath.Rel(repoRoot, manifest.WorkDir); err == nil {
			relPath = rel
		}
	}
	manifest.WorkDir = relPath

	// Create directory in .logsweep/history/<timestamp>-<commit>-<id>
	timestamp := manifest.Timestamp.Format("20060102-150405")
	shortCommit := "nogit"
	if manifest.Git != nil && manifest.Git.Commit != "" {
		shortCommit = manifest.Git.Commit
		if len(shortCommit) > 8 {
			shortCommit = shortCommit[:8]
		}
	}
	shortID := manifest.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	runName := fmt.Sprintf("%s-%s-%s", timestamp, shortCommit, shortID)
	runDir := filepath.Join(repoRoot, ".logsweep", "history", runName)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}

	// Write the wrapped command's output if present
	if stdoutContent != "" {
		stdoutPath := filepath.Join(runDir, "stdout.txt")
		if err := os.WriteFile(stdoutPath, []byte(stdoutContent), 0644); err != nil {
			return fmt.Errorf("failed to write stdout: %w", err)
		}
		manifest.StdoutFile = "stdout.txt"
	}

	if stderrContent != "" {
		stderrPath := filepath.Join(runDir, "stderr.txt")
		if err := os.WriteFile(stderrPath, []byte(stderrContent), 0644); err != nil {
			return fmt.Errorf("failed to write stderr: %w", err)
		}
		manifest.StderrFile = "stderr.txt"
	}

	// Write sweep metadata
	manifestPath := filepath.Join(runDir, "manifest.json")
	manifestJSON, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(manifestPath, manifestJSON, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	a.logger.Debug().Str("dir", runDir).Str("id", manifest.ID).Msg("Recorded sweep")
	return nil
}

func gitTopLevel() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

func gitInfo() (commit, branch string, err error) {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	output, err := cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to get git commit: %w", err)
	}
	commit = strings.TrimSpace(string(output))

	cmd = exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	output, err = cmd.Output()
	if err != nil {
		return "", "", fmt.Errorf("failed to get git branch: %w", err)
	}
	branch = strings.TrimSpace(string(output))

	return commit, branch, nil
}
