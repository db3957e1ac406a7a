package configcmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/orghtml/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range config.EnvVars() {
		t.Setenv(v, "")
	}
}

func TestRunShow_WithConfigFile(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")

	cfg := &config.Config{
		ExportFootnotes: true,
		FootnotesTitle:  "Notes",
		LinkAbbrevs:     map[string]string{"gh": "https://github.com/", "go": "https://go.dev/"},
	}
	require.NoError(t, cfg.Save(configPath))

	var out bytes.Buffer
	require.NoError(t, runShow(configPath, true, &out))

	output := out.String()
	assert.Contains(t, output, "Notes  (source: config)")
	assert.Contains(t, output, "gh=https://github.com/, go=https://go.dev/")
	assert.Contains(t, output, "Config file: "+configPath)
	assert.NotContains(t, output, "(file not found)")
}

func TestRunShow_EnvOverride(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&config.Config{HighlightStyle: "github"}).Save(configPath))
	t.Setenv("ORGHTML_HIGHLIGHT_STYLE", "monokai")

	var out bytes.Buffer
	require.NoError(t, runShow(configPath, true, &out))
	assert.Contains(t, out.String(), "monokai  (source: ORGHTML_HIGHLIGHT_STYLE)")
}

func TestRunShow_NoConfigFile(t *testing.T) {
	clearEnv(t)

	var out bytes.Buffer
	err := runShow(filepath.Join(t.TempDir(), "config.yml"), true, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "(file not found)")
	assert.Contains(t, out.String(), "false  (source: default)")
}
