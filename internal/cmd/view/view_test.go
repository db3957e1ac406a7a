package view

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/orghtml/internal/config"
)

func noBrowser(t *testing.T) func(string) error {
	return func(string) error {
		t.Fatal("browser should not be opened")
		return nil
	}
}

func TestRunView_Preview(t *testing.T) {
	var out bytes.Buffer
	opts := &viewOptions{noColor: true}

	err := runView(opts, &config.Config{}, strings.NewReader("# Title\n\nSome **bold** text.\n"), &out, noBrowser(t))
	require.NoError(t, err)

	output := out.String()
	assert.Contains(t, output, "# Title")
	assert.Contains(t, output, "**bold**")
	assert.NotContains(t, output, "<b>")
}

func TestRunView_Raw(t *testing.T) {
	var out bytes.Buffer
	opts := &viewOptions{raw: true, noColor: true}

	err := runView(opts, &config.Config{}, strings.NewReader("Some **bold** text.\n"), &out, noBrowser(t))
	require.NoError(t, err)
	assert.Equal(t, "<p>Some <b>bold</b> text.</p>\n", out.String())
}

func TestRunView_JSONOutput(t *testing.T) {
	var out bytes.Buffer
	opts := &viewOptions{output: "json", noColor: true}

	err := runView(opts, &config.Config{}, strings.NewReader("text\n"), &out, noBrowser(t))
	require.NoError(t, err)

	var result map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	assert.Equal(t, "<p>text</p>", result["html"])
}

func TestRunView_InvalidOutputFormat(t *testing.T) {
	var out bytes.Buffer
	opts := &viewOptions{output: "xml"}

	err := runView(opts, &config.Config{}, strings.NewReader("text"), &out, noBrowser(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestRunView_Empty(t *testing.T) {
	var out bytes.Buffer
	opts := &viewOptions{noColor: true}

	err := runView(opts, &config.Config{}, strings.NewReader(""), &out, noBrowser(t))
	require.NoError(t, err)
	assert.Equal(t, "(No content)\n", out.String())
}

func TestRunView_Web(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(input, []byte("Hello\n"), 0644))

	var opened string
	opts := &viewOptions{input: input, web: true}
	err := runView(opts, &config.Config{}, nil, &bytes.Buffer{}, func(path string) error {
		opened = path
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, opened)
	defer os.Remove(opened)

	data, err := os.ReadFile(opened)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<title>notes.md</title>")
	assert.Contains(t, string(data), "<p>Hello</p>")
}
