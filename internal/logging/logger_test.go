package logging

import (
	"os"
	"path/filepath"
	"testing"

	"stayhaven/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testApp = config.AppConfig{Name: "stayhaven-test", Environment: "test", Version: "1.0.0"}

func TestNewLogger(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.LoggingConfig
	}{
		{"DefaultStdout", config.LoggingConfig{Level: "info", Output: "stdout"}},
		{"Stderr", config.LoggingConfig{Level: "debug", Output: "stderr"}},
		{"Console", config.LoggingConfig{Level: "warn", Output: "stdout", Format: "console"}},
		{"UnknownLevelFallsBackToInfo", config.LoggingConfig{Level: "shouting"}},
		{"EmptyConfig", config.LoggingConfig{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logger, closer, err := New(tc.cfg, testApp)
			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.Nil(t, closer)
		})
	}
}

func TestNewLoggerFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "app.log")
	logger, closer, err := New(config.LoggingConfig{Level: "error", Output: "file", FilePath: logPath}, testApp)
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NotNil(t, closer)

	logger.Error().Msg("boom")
	require.NoError(t, closer.Close())

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewLoggerFileOutputRequiresPath(t *testing.T) {
	_, _, err := New(config.LoggingConfig{Output: "file"}, testApp)
	assert.Error(t, err)
}

func TestComponent(t *testing.T) {
	logger, _, err := New(config.LoggingConfig{Level: "info"}, testApp)
	require.NoError(t, err)

	child := Component(logger, "availability")
	assert.NotNil(t, child)
}
