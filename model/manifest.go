package model

import "time"

// Manifest records a single diagnostic sweep.
type Manifest struct {
	// Unique ID for this sweep (16 random bytes, hex encoded)
	ID string `json:"id"`
	// Name of the failing test (or wrapped command) that triggered the sweep
	Test string `json:"test"`
	// Timestamp when the sweep started
	Timestamp time.Time `json:"timestamp"`
	// Command-line arguments (including command name)
	Args []string `json:"args"`
	// Working directory where the sweep ran (relative to repo root)
	WorkDir string `json:"workdir"`
	// Exit code of the wrapped command (0 for manual sweeps)
	ExitCode int `json:"exit_code"`
	// Duration of the sweep (or wrapped command plus sweep)
	Duration time.Duration `json:"duration"`
	// Git information
	Git *Git `json:"git,omitempty"`
	// Log files captured during this sweep
	Captures []Capture `json:"captures,omitempty"`
	// Standard output file of the wrapped command (relative to run dir)
	StdoutFile string `json:"stdout_file,omitempty"`
	// Standard error file of the wrapped command (relative to run dir)
	StderrFile string `json:"stderr_file,omitempty"`
}

// Git contains git repository information
type Git struct {
	// Git commit hash at time of the sweep
	Commit string `json:"commit,omitempty"`
	// Git branch at time of the sweep
	Branch string `json:"branch,omitempty"`
	// Repository name
	Repo string `json:"repo,omitempty"`
}

// Capture represents one task log file written by a sweep.
type Capture struct {
	// ID of the task the log belongs to
	TaskID string `json:"task_id"`
	// Log stream (stdout or stderr)
	Stream string `json:"stream"`
	// Size of the captured text in bytes
	Size uint64 `json:"size"`
	// File name, relative to the sweep output directory
	File string `json:"file"`
}
