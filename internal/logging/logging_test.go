package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"":        logrus.InfoLevel,
		"info":    logrus.InfoLevel,
		"DEBUG":   logrus.DebugLevel,
		"warning": logrus.WarnLevel,
		" error ": logrus.ErrorLevel,
	}
	for input, want := range tests {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNewWritesToRotatingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.FilePath = filepath.Join(t.TempDir(), "logs", "autoclicker.log")

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.WithField("run", "abc").Debug("Click run started")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(cfg.FilePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Click run started")
	assert.Contains(t, string(data), "run=abc")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestCloseWithoutFile(t *testing.T) {
	logger, err := New(DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, logger.Close())
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
