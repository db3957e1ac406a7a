package org

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func format(opts Options, text string, mode Mode) string {
	return NewInlineFormatter(&opts, nil, nil).Format(text, mode)
}

func TestInlineFormatter_Emphasis(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold and italic", "*bold* and /italic/", "<b>bold</b> and <i>italic</i>"},
		{"underline", "_under_", `<span style="text-decoration:underline;">under</span>`},
		{"strike", "+gone+", "<del>gone</del>"},
		{"code escapes its body once", "=a<b=", "<code>a&lt;b</code>"},
		{"verbatim", "~<br>~", "<code>&lt;br&gt;</code>"},
		{"inside parens", "(*x*)", "(<b>x</b>)"},
		{"followed by punctuation", "*x*, /y/.", "<b>x</b>, <i>y</i>."},
		{"word before marker", "a*b*", "a*b*"},
		{"space after opening marker", "* not*", "* not*"},
		{"doubled marker", "**x**", "**x**"},
		{"letter after closing marker", "*a*b", "*a*b"},
		{"does not cross lines", "*a\nb*", "*a\nb*"},
		{"text around is escaped", "*x* & <y>", "<b>x</b> &amp; &lt;y&gt;"},
		{"markup inside code is literal", "=*x*=", "<code>*x*</code>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(DefaultOptions(), tt.input, ModeParagraph))
		})
	}
}

func TestInlineFormatter_Links(t *testing.T) {
	opts := DefaultOptions()
	opts.LinkAbbrevs = map[string]string{"gh": "https://github.com"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"with description", "[[http://example.com][Example]]", `<a href="http://example.com">Example</a>`},
		{"without description", "[[http://example.com]]", `<a href="http://example.com">http://example.com</a>`},
		{"bare image", "[[./img.png]]", `<img src="./img.png" alt="./img.png" />`},
		{"image description", "[[http://x.com][./logo.png]]", `<a href="http://x.com"><img src="./logo.png" alt="./logo.png" /></a>`},
		{"file scheme stripped", "[[file:notes.org][Notes]]", `<a href="notes.org">Notes</a>`},
		{"file+sys scheme stripped", "[[file+sys:notes.org][Notes]]", `<a href="notes.org">Notes</a>`},
		{"search option stripped", "[[file:notes.org::*heading]]", `<a href="notes.org">notes.org</a>`},
		{"bare file scheme kept", "[[http://x.com][file:]]", `<a href="http://x.com">file:</a>`},
		{"abbreviation", "[[gh][GitHub]]", `<a href="https://github.com">GitHub</a>`},
		{"href is escaped", `[[http://x.com/?a=1&b="2"][q]]`, `<a href="http://x.com/?a=1&amp;b=&quot;2&quot;">q</a>`},
		{"emphasis in description", "[[http://x.com][a *bold* link]]", `<a href="http://x.com">a <b>bold</b> link</a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(opts, tt.input, ModeParagraph))
		})
	}
}

func TestInlineFormatter_TableCells(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, "<td>a</td><td>b</td>", format(opts, "| a | b |", ModeTableRow))
	assert.Equal(t, "<th>a</th><th>b</th>", format(opts, "| a | b |", ModeTableHeader))
	// pipes outside table modes are text
	assert.Equal(t, "| a | b |", format(opts, "| a | b |", ModeParagraph))
	assert.Equal(t, "| a | b |", format(opts, "| a | b |", ModeListItem))
}

func TestInlineFormatter_SubSuperscripts(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "H_{2}O", format(opts, "H_{2}O", ModeParagraph))

	opts.UseSubSuperscripts = true
	assert.Equal(t, "H<sub>2</sub>O and x<sup>2</sup>", format(opts, "H_{2}O and x^{2}", ModeParagraph))
}

func TestInlineFormatter_LineBreak(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, "one<br />\ntwo", format(opts, "one\\\\\ntwo", ModeParagraph))
	// only the first marker is rewritten
	assert.Equal(t, "a<br />\nb\\\\", format(opts, "a\\\\\nb\\\\", ModeParagraph))
	// not inside tables
	assert.Equal(t, "<td>a\\\\</td>", format(opts, "| a\\\\ |", ModeTableRow))
}

func TestInlineFormatter_Footnotes(t *testing.T) {
	t.Run("export disabled leaves markup alone", func(t *testing.T) {
		table := NewFootnoteTable()
		opts := DefaultOptions()
		got := NewInlineFormatter(&opts, nil, table).Format("x[fn:1:note]", ModeParagraph)
		assert.Equal(t, "x[fn:1:note]", got)
		assert.Equal(t, 0, table.Len())
	})

	opts := DefaultOptions()
	opts.ExportFootnotes = true

	t.Run("inline definition is collected", func(t *testing.T) {
		table := NewFootnoteTable()
		got := NewInlineFormatter(&opts, nil, table).Format("x[fn:1:a note]", ModeParagraph)
		assert.Equal(t, `x<sup><a id="fnr.1" class="footref" href="#fn.1">1</a></sup>`, got)

		def, ok := table.Lookup("1")
		assert.True(t, ok)
		assert.Equal(t, "a note", def)
	})

	t.Run("reference only", func(t *testing.T) {
		table := NewFootnoteTable()
		got := NewInlineFormatter(&opts, nil, table).Format("x[fn:n]", ModeParagraph)
		assert.Equal(t, `x<sup><a id="fnr.n" class="footref" href="#fn.n">n</a></sup>`, got)
		assert.Equal(t, 0, table.Len())
	})

	t.Run("definition line renders a back reference", func(t *testing.T) {
		table := NewFootnoteTable()
		got := NewInlineFormatter(&opts, nil, table).Format("[fn:1] The note.", ModeParagraph)
		assert.Equal(t, `<sup><a id="fn.1" class="footnum" href="#fnr.1">1</a></sup> The note.`, got)
		assert.Equal(t, 0, table.Len())
	})

	t.Run("inline definition at line start is collected", func(t *testing.T) {
		table := NewFootnoteTable()
		got := NewInlineFormatter(&opts, nil, table).Format("[fn:1:the note] is cited first", ModeParagraph)
		assert.Equal(t, `<sup><a id="fnr.1" class="footref" href="#fn.1">1</a></sup> is cited first`, got)

		def, ok := table.Lookup("1")
		require.True(t, ok)
		assert.Equal(t, "the note", def)
	})

	t.Run("first definition wins", func(t *testing.T) {
		table := NewFootnoteTable()
		NewInlineFormatter(&opts, nil, table).Format("a[fn:n:first] b[fn:n:second]", ModeParagraph)

		def, _ := table.Lookup("n")
		assert.Equal(t, "first", def)
		assert.Equal(t, 1, table.Len())
	})
}

func TestInlineFormatter_ProtectedSnippetsSurviveEscaping(t *testing.T) {
	opts := DefaultOptions()
	f := NewInlineFormatter(&opts, nil, nil)

	for _, code := range []string{`<script>alert("x")</script>`, "a & b", "'quoted'"} {
		ph := f.snippets.protect(code)
		got := f.Format("before "+ph+" after", ModeParagraph)
		assert.Equal(t, "before "+code+" after", got)
	}
}

func TestInlineFormatter_CustomMarkup(t *testing.T) {
	markup := DefaultMarkup()
	markup.Emphasis['*'] = EmphasisTag{Open: "strong", Close: "strong"}
	opts := DefaultOptions()

	got := NewInlineFormatter(&opts, markup, nil).Format("*x*", ModeParagraph)
	assert.Equal(t, "<strong>x</strong>", got)
}

func TestRewriteEmphasis_NoSpans(t *testing.T) {
	s := strings.Repeat("plain text ", 10)
	calls := 0
	got := rewriteEmphasis(s, func(byte, string) string {
		calls++
		return ""
	})
	assert.Equal(t, s, got)
	assert.Zero(t, calls)
}
