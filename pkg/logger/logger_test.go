package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInitWritesToRotatingFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "api.log")

	require.NoError(t, Init(Options{Environment: "production", File: file}))
	require.Equal(t, logrus.InfoLevel, log.GetLevel())

	Info("hello from test")

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(b), `"msg":"hello from test"`)
}

func TestInitLevelOverride(t *testing.T) {
	require.NoError(t, Init(Options{Environment: "development", Level: "warn"}))
	require.Equal(t, logrus.WarnLevel, log.GetLevel())

	require.Error(t, Init(Options{Level: "loud"}))
}
