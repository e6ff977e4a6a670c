package cli

// This file contains the list command for displaying recorded sweeps.

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/logsweep/logsweep/history"
)

func (a *App) list(ctx *cli.Context) error {
	filterTest := ctx.String("test")
	limit := ctx.Int("limit")

	root, err := history.Root()
	if err != nil {
		return err
	}

	entries, err := history.LoadEntries(a.logger, root)
	if err != nil {
		return fmt.Errorf("failed to load sweep history: %w", err)
	}

	// Apply test-name filter if specified
	var filtered []history.Entry
	for _, entry := range entries {
		if filterTest == "" || strings.Contains(entry.Manifest.Test, filterTest) {
			filtered = append(filtered, entry)
		}
	}

	if len(filtered) == 0 {
		if filterTest != "" {
			fmt.Printf("No sweeps found matching test: %s\n", filterTest)
		} else {
			fmt.Println("No sweeps found")
		}
		return nil
	}

	// Sort by timestamp (newest first)
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Manifest.Timestamp.After(filtered[j].Manifest.Timestamp)
	})

	// Apply limit
	display := filtered
	if limit > 0 && limit < len(display) {
		display = display[:limit]
	}

	fmt.Printf("\n=== Sweeps (%d total) ===\n\n", len(filtered))

	for _, entry := range display {
		m := entry.Manifest
		timestamp := m.Timestamp.Format("2006-01-02 15:04:05")
		duration := m.Duration.Round(time.Millisecond)

		status := "✓"
		if m.ExitCode != 0 {
			status = "✗"
		}

		shortID := m.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		fmt.Printf("%s  %s  [%s]  exit=%d  id=%s\n", status, timestamp, duration, m.ExitCode, shortID)
		fmt.Printf("   Test: %s\n", m.Test)
		if m.WorkDir != "" {
			fmt.Printf("   Path: %s\n", m.WorkDir)
		}
		if m.Git != nil && m.Git.Commit != "" {
			shortCommit := m.Git.Commit
			if len(shortCommit) > 8 {
				shortCommit = shortCommit[:8]
			}
			fmt.Printf("   Commit: %s", shortCommit)
			if m.Git.Branch != "" {
				fmt.Printf(" (%s)", m.Git.Branch)
			}
			fmt.Println()
		}
		for _, capture := range m.Captures {
			fmt.Printf("   %s/%s: %s (%.1f KB)\n",
				capture.TaskID, capture.Stream, capture.File, float64(capture.Size)/1024)
		}
		fmt.Printf("   %s\n", entry.FullPath)
		fmt.Println()
	}

	fmt.Println("\nView command output: cat <path>/stdout.txt")

	return nil
}
