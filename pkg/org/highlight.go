package org

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter turns source code into highlighted HTML.
type Highlighter interface {
	Highlight(code, lang string) (string, error)
}

// HighlighterFunc adapts a function to Highlighter.
type HighlighterFunc func(code, lang string) (string, error)

// Highlight calls f.
func (f HighlighterFunc) Highlight(code, lang string) (string, error) {
	return f(code, lang)
}

// HighlightError reports a highlighter failure. It is never replaced by escaped text.
type HighlightError struct {
	Lang string
	Err  error
}

func (e *HighlightError) Error() string {
	return fmt.Sprintf("failed to highlight %s block: %v", e.Lang, e.Err)
}

func (e *HighlightError) Unwrap() error {
	return e.Err
}

// ChromaHighlighter highlights with chroma, emitting CSS classes.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter using the named chroma style.
func NewChromaHighlighter(style string) *ChromaHighlighter {
	return &ChromaHighlighter{
		style:     styles.Get(style),
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}
}

// Highlight renders code as a chroma <pre> block.
func (h *ChromaHighlighter) Highlight(code, lang string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// NormalizeLang maps legacy language names onto ones the highlighter knows.
func NormalizeLang(lang string) string {
	switch lang {
	case "emacs-lisp", "common-lisp", "lisp":
		return "scheme"
	case "ipython":
		return "python"
	case "js2":
		return "javascript"
	case "":
		return "text"
	}
	return lang
}
