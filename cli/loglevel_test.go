package cli

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    zerolog.Level
		wantErr bool
	}{
		{
			name:  "unset defaults to info",
			value: "",
			want:  zerolog.InfoLevel,
		},
		{
			name:  "debug",
			value: "DEBUG",
			want:  zerolog.DebugLevel,
		},
		{
			name:  "lowercase is accepted",
			value: "warning",
			want:  zerolog.WarnLevel,
		},
		{
			name:  "critical maps to fatal",
			value: "CRITICAL",
			want:  zerolog.FatalLevel,
		},
		{
			name:  "exception maps to error",
			value: "EXCEPTION",
			want:  zerolog.ErrorLevel,
		},
		{
			name:    "unknown level is fatal configuration",
			value:   "LOUD",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(logLevelEnv, tt.value)

			level, err := levelFromEnv()
			if tt.wantErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), "is not a valid TEST_LOG_LEVEL")
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, level)
		})
	}
}
