package cli

// This file contains the TEST_LOG_LEVEL environment configuration for the
// diagnostic logging subsystem.

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const logLevelEnv = "TEST_LOG_LEVEL"

// validLogLevels lists the accepted TEST_LOG_LEVEL values. CRITICAL and
// EXCEPTION are kept for compatibility with older harness configurations.
var validLogLevels = []string{"DEBUG", "INFO", "WARNING", "ERROR", "CRITICAL", "EXCEPTION"}

var logLevels = map[string]zerolog.Level{
	"DEBUG":     zerolog.DebugLevel,
	"INFO":      zerolog.InfoLevel,
	"WARNING":   zerolog.WarnLevel,
	"ERROR":     zerolog.ErrorLevel,
	"CRITICAL":  zerolog.FatalLevel,
	"EXCEPTION": zerolog.ErrorLevel,
}

// levelFromEnv resolves the log level from TEST_LOG_LEVEL, defaulting to
// INFO when unset. An unknown value is an error.
func levelFromEnv() (zerolog.Level, error) {
	raw := os.Getenv(logLevelEnv)
	if raw == "" {
		return zerolog.InfoLevel, nil
	}

	level, ok := logLevels[strings.ToUpper(raw)]
	if !ok {
		return zerolog.NoLevel, fmt.Errorf("%s is not a valid %s. Use one of: %s",
			raw, logLevelEnv, strings.Join(validLogLevels, ", "))
	}

	return level, nil
}
