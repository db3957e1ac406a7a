// engine.go drives the mode stack and writes block tags and formatted text.
package org

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultHighlightStyle is the chroma style used when no highlighter is supplied.
const DefaultHighlightStyle = "github"

// paragraphState tracks where the next tag lands relative to the last write.
type paragraphState int

const (
	atDocumentStart paragraphState = iota // nothing written yet
	inText                                // text just written; a closing tag follows inline
	afterBlock                            // a tag was just written; the next one starts a new line
)

var protectiveCommaPattern = regexp.MustCompile(`(?m)^([ \t]*),([ \t]*)(\*|#\+)`)

// Engine renders one document to HTML. A producer feeds it mode transitions
// and raw text; it is not safe for concurrent use and must not be reused
// for a second document.
type Engine struct {
	opts        Options
	markup      *Markup
	highlighter Highlighter
	inline      *InlineFormatter
	footnotes   *FootnoteTable
	headlines   headlineNumbers

	stack ModeStack
	out   strings.Builder
	buf   strings.Builder

	state         paragraphState
	decorateTitle bool
	codeIndent    int // -1 until a code line is noted
	rawBlockStart bool
}

// NewEngine creates an engine for one document. Tag overrides are read from
// opts.MarkupFile when set. A nil highlighter selects chroma.
func NewEngine(opts Options, hl Highlighter) (*Engine, error) {
	markup, err := LoadMarkup(opts.MarkupFile)
	if err != nil {
		return nil, err
	}
	if hl == nil {
		hl = NewChromaHighlighter(DefaultHighlightStyle)
	}

	e := &Engine{
		opts:        opts,
		markup:      markup,
		highlighter: hl,
		footnotes:   NewFootnoteTable(),
		codeIndent:  -1,
	}
	e.inline = NewInlineFormatter(&e.opts, markup, e.footnotes)
	return e, nil
}

// Output returns everything written so far.
func (e *Engine) Output() string {
	return e.out.String()
}

// Footnotes returns the footnotes collected so far.
func (e *Engine) Footnotes() *FootnoteTable {
	return e.footnotes
}

// CurrentMode returns the innermost open mode.
func (e *Engine) CurrentMode() Mode {
	return e.stack.Current()
}

// Depth returns the number of open modes.
func (e *Engine) Depth() int {
	return e.stack.Depth()
}

// DecorateTitle marks the next opened tag with class="title".
func (e *Engine) DecorateTitle() {
	e.decorateTitle = true
}

// AddText appends raw text to the buffer of the current mode.
func (e *Engine) AddText(text string) {
	e.buf.WriteString(text)
}

// NoteCodeLine records the indentation of a non-blank line inside a code block,
// so the common indentation can be stripped on flush.
func (e *Engine) NoteCodeLine(indent int) {
	if !IsCode(e.stack.Current()) {
		return
	}
	if e.codeIndent < 0 || indent < e.codeIndent {
		e.codeIndent = indent
	}
}

// EnterMode opens mode and writes its opening tag, if it has one.
func (e *Engine) EnterMode(mode Mode, indent int, props Properties) {
	e.stack.Push(mode, indent, props)
	defer func() { e.decorateTitle = false }()
	if IsRawHTML(mode) {
		e.rawBlockStart = true
	}

	tag, ok := e.markup.BlockTags[mode]
	if !ok || e.skipTag(mode) {
		return
	}

	attrs := e.cssAttr(mode, props)
	e.newLine(e.state != atDocumentStart, e.stack.Depth()-1)

	if start, ok := restartNumber(mode, props); ok {
		fmt.Fprintf(&e.out, "<%s start=%d%s>", tag, start, attrs)
		return
	}
	fmt.Fprintf(&e.out, "<%s%s>", tag, attrs)
}

// ExitMode closes the innermost mode.
func (e *Engine) ExitMode() error {
	m, err := e.stack.Pop()
	if err != nil {
		return err
	}
	e.closeTag(m)
	return nil
}

// ExitModeExpect closes the innermost mode, failing if it is not expected.
func (e *Engine) ExitModeExpect(expected Mode) error {
	m, err := e.stack.PopExpect(expected)
	if err != nil {
		return err
	}
	e.closeTag(m)
	return nil
}

func (e *Engine) closeTag(m Mode) {
	tag, ok := e.markup.BlockTags[m]
	if !ok || e.skipTag(m) {
		return
	}
	e.newLine(e.state != inText, e.stack.Depth())
	e.out.WriteString("</" + tag + ">")
}

// restartNumber reports the start number of an ordered list resuming an interrupted one.
func restartNumber(mode Mode, props Properties) (int, bool) {
	if mode != ModeOrderedList {
		return 0, false
	}
	v, ok := props[PropListItem]
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// skipTag reports whether mode's tag is suppressed. Tables are dropped when
// table export is off; src blocks carry no <pre> of their own while the
// highlighter, which emits one, is in use.
func (e *Engine) skipTag(mode Mode) bool {
	return (IsTable(mode) && e.opts.SkipTables) ||
		(mode == ModeSrc && !e.opts.SkipSyntaxHighlight)
}

func (e *Engine) cssAttr(mode Mode, props Properties) string {
	switch {
	case mode == ModeSrc:
		if lang := props[PropLang]; lang != "" {
			return ` class="src" lang="` + Escape(lang) + `"`
		}
		return ` class="src"`
	case mode == ModeExample || mode == ModeInlineExample:
		return ` class="example"`
	case mode == ModeCenter:
		return ` style="text-align: center"`
	case e.decorateTitle:
		return ` class="title"`
	}
	return ""
}

// newLine starts a new indented line when cond holds.
func (e *Engine) newLine(cond bool, level int) {
	if cond {
		e.out.WriteString("\n")
		e.out.WriteString(strings.Repeat("  ", max(level, 0)))
	}
	e.state = afterBlock
}

// Flush formats the buffered text for the current mode and writes it out.
// The buffer is empty afterwards, even on error.
func (e *Engine) Flush() error {
	if e.buf.Len() == 0 {
		return nil
	}
	text := e.buf.String()
	e.buf.Reset()

	mode := e.stack.Current()
	if IsTable(mode) && e.opts.SkipTables {
		return nil
	}
	if PreservesWhitespace(mode) {
		return e.flushVerbatim(mode, text)
	}

	text = strings.TrimLeft(text, " \t\r\n\f\v")
	atStart := e.state == atDocumentStart
	e.state = inText

	switch mode {
	case ModeDefinitionTerm:
		return e.flushDefinitionTerm(text)
	case ModeHorizontalRule:
		if !atStart {
			e.newLine(true, e.stack.Depth()-1)
		}
		e.state = afterBlock
		e.out.WriteString("<hr />")
	default:
		e.out.WriteString(e.inline.Format(text, mode))
	}
	return nil
}

func (e *Engine) flushVerbatim(mode Mode, text string) error {
	if IsCode(mode) {
		text = e.stripCodeBlock(text)
	}

	switch {
	case mode == ModeSrc:
		if e.opts.SkipSyntaxHighlight {
			text = Escape(text)
			break
		}
		lang, _ := e.stack.Property(PropLang)
		lang = NormalizeLang(lang)
		highlighted, err := e.highlighter.Highlight(text, lang)
		if err != nil {
			return &HighlightError{Lang: lang, Err: err}
		}
		text = highlighted
	case IsRawHTML(mode):
		if e.rawBlockStart {
			text = strings.TrimPrefix(text, "\n")
		}
		e.rawBlockStart = false
		e.state = afterBlock
	default:
		text = Escape(text)
	}

	e.out.WriteString(text)
	return nil
}

// stripCodeBlock removes the common indentation and protective commas of a code block.
func (e *Engine) stripCodeBlock(text string) string {
	if e.codeIndent > 0 {
		prefix := strings.Repeat(" ", e.codeIndent)
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimPrefix(line, prefix)
		}
		text = strings.Join(lines, "\n")
	}
	e.codeIndent = -1
	return protectiveCommaPattern.ReplaceAllString(text, "$1$2$3")
}

var definitionPattern = regexp.MustCompile(`\A(.*?[ \t]+|)::(|[ \t]+.*?)(?m:$)`)

// flushDefinitionTerm splits "term :: description" at the first delimiter,
// closing the term and opening a description for the rest of the text. The
// producer then closes the description where it would have closed the term.
func (e *Engine) flushDefinitionTerm(text string) error {
	term, descr := text, ""
	if loc := definitionPattern.FindStringSubmatchIndex(text); loc != nil {
		term = text[loc[2]:loc[3]]
		descr = strings.TrimSpace(text[loc[4]:loc[5]]) + text[loc[1]:]
	}

	if term = strings.TrimSpace(term); term == "" {
		e.out.WriteString("???")
	} else {
		e.out.WriteString(e.inline.Format(term, ModeDefinitionTerm))
	}

	indent := e.stack.Indent()
	if err := e.ExitModeExpect(ModeDefinitionTerm); err != nil {
		return err
	}

	e.state = atDocumentStart
	e.EnterMode(ModeDefinitionDescription, indent, nil)
	e.out.WriteString(e.inline.Format(descr, ModeDefinitionDescription))
	e.state = inText
	return nil
}

// AddLineAttributes writes heading numbers and TODO keywords for a headline.
func (e *Engine) AddLineAttributes(h Headline) error {
	if e.opts.ExportHeadingNumber {
		number, err := e.headlines.next(h.Level)
		if err != nil {
			return err
		}
		fmt.Fprintf(&e.out, `<span class="heading-number heading-number-%d">%s</span> `, h.Level, number)
	}
	if e.opts.ExportTodo && h.Keyword != "" {
		kw := Escape(h.Keyword)
		fmt.Fprintf(&e.out, `<span class="todo-keyword %s">%s</span> `, kw, kw)
	}
	return nil
}

// EmitFootnotes writes the footnotes section. It does nothing when footnote
// export is off or no footnote was defined.
func (e *Engine) EmitFootnotes() {
	if !e.opts.ExportFootnotes || e.footnotes.Len() == 0 {
		return
	}

	fmt.Fprintf(&e.out, "\n<div id=\"footnotes\">\n<h2 class=\"footnotes\">%s</h2>\n<div id=\"text-footnotes\">\n",
		Escape(e.opts.footnotesTitle()))
	// Definitions may reference footnotes not seen before; those are appended and emitted too.
	for i := 0; i < e.footnotes.Len(); i++ {
		fn := e.footnotes.At(i)
		name := Escape(fn.Name)
		fmt.Fprintf(&e.out, `<div class="footdef"><sup><a id="fn.%s" href="#fnr.%s">%s</a></sup>`, name, name, name)
		e.out.WriteString(`<p class="footpara">`)
		e.out.WriteString(e.inline.Format(fn.Definition, ModeParagraph))
		e.out.WriteString("</p></div>\n")
	}
	e.out.WriteString("</div>\n</div>")
}

// EndDocument signals the end of input: it requires every mode to be closed
// and then writes the footnotes section.
func (e *Engine) EndDocument() error {
	if e.stack.Depth() > 0 {
		return &StackMismatchError{Expected: ModeRoot, Actual: e.stack.Current()}
	}
	e.EmitFootnotes()
	return nil
}
