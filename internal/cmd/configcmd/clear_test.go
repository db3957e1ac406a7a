package configcmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/orghtml/internal/config"
)

func TestRunClear_WithExistingConfig(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "orghtml", "config.yml")
	require.NoError(t, (&config.Config{ExportTodo: true}).Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runClear(configPath, true, &out))
	assert.Contains(t, out.String(), "Configuration cleared from "+configPath)

	// Verify file is deleted
	_, err := os.Stat(configPath)
	assert.True(t, os.IsNotExist(err))
}

func TestRunClear_NoConfigFile(t *testing.T) {
	clearEnv(t)

	// Should not error even if file doesn't exist
	var out bytes.Buffer
	require.NoError(t, runClear(filepath.Join(t.TempDir(), "config.yml"), true, &out))
	assert.Contains(t, out.String(), "No config file to remove")
}

func TestRunClear_Idempotent(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	// Running twice should succeed
	require.NoError(t, runClear(configPath, true, &bytes.Buffer{}))
	require.NoError(t, runClear(configPath, true, &bytes.Buffer{}))
}

func TestRunClear_ReportsEnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("ORGHTML_EXPORT_TODO", "true")

	var out bytes.Buffer
	require.NoError(t, runClear(filepath.Join(t.TempDir(), "config.yml"), true, &out))
	assert.Contains(t, out.String(), "ORGHTML_EXPORT_TODO")
}
