package org

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	assert.Equal(t, "root", ModeRoot.String())
	assert.Equal(t, "paragraph", ModeParagraph.String())
	assert.Equal(t, "definition_descr", ModeDefinitionDescription.String())
	assert.Equal(t, "mode(99)", Mode(99).String())
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, ok := ParseMode(m.String())
		assert.True(t, ok, m.String())
		assert.Equal(t, m, got)
	}

	_, ok := ParseMode("root")
	assert.False(t, ok, "root is never pushed")
	_, ok = ParseMode("nonsense")
	assert.False(t, ok)
}

func TestModes(t *testing.T) {
	modes := Modes()
	assert.Len(t, modes, 27)
	assert.Equal(t, ModeParagraph, modes[0])
	assert.Equal(t, ModeHorizontalRule, modes[len(modes)-1])
	assert.NotContains(t, modes, ModeRoot)
}

func TestHeadingMode(t *testing.T) {
	tests := []struct {
		level int
		want  Mode
	}{
		{0, ModeHeading1},
		{1, ModeHeading1},
		{3, ModeHeading3},
		{6, ModeHeading6},
		{9, ModeHeading6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HeadingMode(tt.level), "level %d", tt.level)
	}
}

func TestModePredicates(t *testing.T) {
	tests := []struct {
		mode     Mode
		table    bool
		code     bool
		verbatim bool
		rawHTML  bool
	}{
		{ModeParagraph, false, false, false, false},
		{ModeTable, true, false, false, false},
		{ModeTableSeparator, true, false, false, false},
		{ModeExample, false, true, true, false},
		{ModeSrc, false, true, true, false},
		{ModeInlineExample, false, true, true, false},
		{ModeHTML, false, false, true, true},
		{ModeRawText, false, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			assert.Equal(t, tt.table, IsTable(tt.mode))
			assert.Equal(t, tt.code, IsCode(tt.mode))
			assert.Equal(t, tt.verbatim, PreservesWhitespace(tt.mode))
			assert.Equal(t, tt.rawHTML, IsRawHTML(tt.mode))
		})
	}
}
