package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teatak/vocab/config"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.log")
	logger, err := New(config.LogConfig{Level: "info", Format: "json", OutputPaths: []string{path}})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("using vocabulary")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"using vocabulary"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_TruncatesLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0644))

	logger, err := New(config.LogConfig{Level: "info", Format: "console", OutputPaths: []string{path}})
	require.NoError(t, err)
	logger.Info("building vocabulary")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "previous run")
	assert.Contains(t, string(data), "building vocabulary")
}

func TestNew_BadDestination(t *testing.T) {
	_, err := New(config.LogConfig{Level: "info", Format: "console", OutputPaths: []string{filepath.Join(t.TempDir(), "no", "such", "dir", "x.log")}})
	assert.Error(t, err)
}
