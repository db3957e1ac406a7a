package footnotes

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/orghtml/internal/config"
)

const doc = `Second[^b] then first[^a] and again[^b].

Inline [fn:c:third note] too.

[^a]: The first note.
[^b]: The second note.
`

func TestRunFootnotes_Table(t *testing.T) {
	var out bytes.Buffer
	err := runFootnotes(&footnotesOptions{noColor: true}, &config.Config{}, strings.NewReader(doc), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[0], "DEFINITION")
	// numbered in order of first reference
	assert.Contains(t, lines[1], "The second note.")
	assert.Contains(t, lines[2], "The first note.")
	assert.Contains(t, lines[3], "third note")
}

func TestRunFootnotes_JSON(t *testing.T) {
	var out bytes.Buffer
	err := runFootnotes(&footnotesOptions{output: "json"}, &config.Config{}, strings.NewReader(doc), &out)
	require.NoError(t, err)

	var result []map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Len(t, result, 3)
	assert.Equal(t, "c", result[2]["name"])
	assert.Equal(t, "third note", result[2]["definition"])
}

func TestRunFootnotes_Plain(t *testing.T) {
	var out bytes.Buffer
	err := runFootnotes(&footnotesOptions{output: "plain"}, &config.Config{}, strings.NewReader("x [fn:n:note]\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "n\tnote\n", out.String())
}

func TestRunFootnotes_TruncatesLongDefinitions(t *testing.T) {
	long := strings.Repeat("word ", 30)
	var out bytes.Buffer
	err := runFootnotes(&footnotesOptions{output: "plain"}, &config.Config{}, strings.NewReader("x [fn:n:"+long+"]\n"), &out)
	require.NoError(t, err)

	def := strings.TrimSpace(strings.SplitN(out.String(), "\t", 2)[1])
	assert.Len(t, def, maxDefinitionWidth)
	assert.True(t, strings.HasSuffix(def, "..."))
}

func TestRunFootnotes_None(t *testing.T) {
	var out bytes.Buffer
	err := runFootnotes(&footnotesOptions{noColor: true}, &config.Config{}, strings.NewReader("plain text\n"), &out)
	require.NoError(t, err)
	assert.Equal(t, "No footnotes found.\n", out.String())
}
