package logging

import (
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupConsole(t *testing.T) {
	logger := logrus.New()
	closer := Setup(logger, logrus.DebugLevel, "")
	defer closer.Close()

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &prefixed.TextFormatter{}, logger.Formatter)
	assert.Equal(t, os.Stdout, logger.Out)
}

func TestSetupFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger := logrus.New()
	closer := Setup(logger, logrus.InfoLevel, dir)

	logger.WithFields(logrus.Fields{"route": "team-a"}).Info("Server - Received data")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Server - Received data")
	assert.Contains(t, string(data), "route=team-a")
}
