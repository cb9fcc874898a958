package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger := Logger(filepath.Join(dir, "ledgerhub.log"))
	logger.Info("started")

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), ".log")
}

func TestLoggerKeepsStdoutWhenFileFails(t *testing.T) {
	// the parent directory does not exist, so the file can not be created
	logger := Logger(filepath.Join(t.TempDir(), "missing", "ledgerhub.log"))
	assert.NotNil(t, logger)
	logger.Info("still alive")
}
