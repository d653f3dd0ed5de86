package services

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roulettesim/roulettesim-go/internal/infrastructure/observability/logging"
)

// newTestLogger builds a quiet logger that writes nothing below error level
// and never touches the filesystem.
func newTestLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()

	cfg := logging.DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	cfg.IncludeSource = false
	cfg.DefaultLevel = slog.LevelError

	logger, err := logging.NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger
}
