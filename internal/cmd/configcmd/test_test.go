package configcmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/orghtml/internal/config"
	"github.com/open-cli-collective/orghtml/pkg/org"
)

func TestRunTest_Success(t *testing.T) {
	var out bytes.Buffer
	err := runTest(&config.Config{ExportFootnotes: true, HighlightStyle: "github"}, true, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "✓ Configuration valid")
	assert.Contains(t, out.String(), "✓ Highlighting style github found")
	assert.Contains(t, out.String(), "✓ Sample document rendered")
}

func TestRunTest_InvalidConfig(t *testing.T) {
	var out bytes.Buffer
	err := runTest(&config.Config{FootnotesTitle: " "}, true, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
	assert.Contains(t, out.String(), "✗ Invalid configuration: footnotes_title must not be blank")
	assert.Contains(t, out.String(), "orghtml init")
}

func TestRunTest_UnknownStyle(t *testing.T) {
	var out bytes.Buffer
	err := runTest(&config.Config{HighlightStyle: "no-such-style"}, true, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown highlighting style")
	assert.Contains(t, out.String(), "✗ Unknown highlighting style: no-such-style")
}

func TestRunTest_UnusedStyleWarns(t *testing.T) {
	var out bytes.Buffer
	err := runTest(&config.Config{HighlightStyle: "github", SkipSyntaxHighlight: true}, true, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "! Highlighting style github is unused")
	assert.Contains(t, out.String(), "✓ Sample document rendered")
}

func TestRunTest_MalformedMarkupFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "markup.yml")
	require.NoError(t, os.WriteFile(path, []byte("HtmlBlockTag: [x"), 0644))

	err := runTest(&config.Config{MarkupFile: path}, true, &bytes.Buffer{})
	var loadErr *org.ConfigurationLoadError
	assert.True(t, errors.As(err, &loadErr))
}
