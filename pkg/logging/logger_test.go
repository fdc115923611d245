package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDir points the package globals at a temp directory and
// returns a cleanup restoring them.
func setupTestDir(t *testing.T) func() {
	t.Helper()

	tempDir := t.TempDir()

	origLogDir := logDir
	origInitErr := initErr
	origInitOnce := initOnce
	origRunID := runID
	origRunIDOnce := runIDOnce

	logDir = tempDir
	initErr = nil
	initOnce = sync.Once{}
	initOnce.Do(func() {}) // already "initialized" to the temp dir
	runID = ""
	runIDOnce = sync.Once{}

	return func() {
		logDir = origLogDir
		initErr = origInitErr
		initOnce = origInitOnce
		runID = origRunID
		runIDOnce = origRunIDOnce
	}
}

func TestNewLogger(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("session")
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, "session", logger.component)
	assert.NotEmpty(t, logger.RunID())
	assert.FileExists(t, logger.LogPath())
}

func TestLoggerLevels(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("capture")
	require.NoError(t, err)
	defer logger.Close()

	logger.Debugf("debug %d", 1)
	logger.Infof("info message")
	logger.Warnf("warn message")
	logger.Errorf("error message")

	content, err := os.ReadFile(logger.LogPath())
	require.NoError(t, err)

	for _, want := range []string{
		"[capture] [DEBUG] debug 1",
		"[capture] [INFO] info message",
		"[capture] [WARN] warn message",
		"[capture] [ERROR] error message",
	} {
		assert.Contains(t, string(content), want)
	}
}

func TestComponentsShareRunFile(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	a, err := NewLogger("dispatcher")
	require.NoError(t, err)
	defer a.Close()

	b, err := NewLogger("executor")
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, a.RunID(), b.RunID())
	assert.Equal(t, a.LogPath(), b.LogPath())

	a.Infof("from dispatcher")
	b.Infof("from executor")

	content, err := os.ReadFile(a.LogPath())
	require.NoError(t, err)
	assert.Contains(t, string(content), "[dispatcher]")
	assert.Contains(t, string(content), "[executor]")
}

func TestLogPathFormat(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("session")
	require.NoError(t, err)
	defer logger.Close()

	name := filepath.Base(logger.LogPath())
	assert.True(t, strings.HasSuffix(name, "-pagepilot.log"), "unexpected log file name %q", name)
}

func TestCloseIsIdempotent(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	logger, err := NewLogger("session")
	require.NoError(t, err)

	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}

func TestNopLoggerIsSilent(t *testing.T) {
	logger := Nop()
	logger.Infof("goes nowhere")
	assert.Empty(t, logger.LogPath())
	assert.NoError(t, logger.Close())
}
