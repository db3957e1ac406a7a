// markdown.go feeds markdown documents through the engine.
package org

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// mdParser parses markdown into the AST the walker turns into mode transitions.
var mdParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Table,
		extension.Strikethrough,
		extension.Footnote,
		extension.DefinitionList,
	),
)

// Document is a rendered markdown document.
type Document struct {
	HTML      string
	Footnotes []Footnote
}

// RenderMarkdown renders markdown source to HTML with the given options.
// Inline markup the engine understands (e.g. [[link][text]] or [fn:n:note])
// may also appear in the markdown text.
func RenderMarkdown(source []byte, opts Options, hl Highlighter) (string, error) {
	doc, err := RenderMarkdownDocument(source, opts, hl)
	if err != nil {
		return "", err
	}
	return doc.HTML, nil
}

// RenderMarkdownDocument is RenderMarkdown that also returns the footnotes
// collected while rendering.
func RenderMarkdownDocument(source []byte, opts Options, hl Highlighter) (*Document, error) {
	e, err := NewEngine(opts, hl)
	if err != nil {
		return nil, err
	}
	if len(source) == 0 {
		return &Document{}, nil
	}

	root := mdParser.Parser().Parse(text.NewReader(source))

	w := &markdownWalker{
		source:      source,
		engine:      e,
		footnoteDef: make(map[int]string),
	}
	w.collectFootnotes(root)

	if err := w.children(root, 0); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	if err := e.EndDocument(); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	return &Document{HTML: e.Output(), Footnotes: e.Footnotes().Entries()}, nil
}

// markdownWalker holds state while walking a markdown AST.
type markdownWalker struct {
	source      []byte
	engine      *Engine
	footnoteDef map[int]string
}

// collectFootnotes records the inline text of every footnote body by index.
func (w *markdownWalker) collectFootnotes(doc ast.Node) {
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		list, ok := child.(*extast.FootnoteList)
		if !ok {
			continue
		}
		for fn := list.FirstChild(); fn != nil; fn = fn.NextSibling() {
			footnote, ok := fn.(*extast.Footnote)
			if !ok {
				continue
			}
			var parts []string
			for block := footnote.FirstChild(); block != nil; block = block.NextSibling() {
				if s := strings.TrimSpace(w.inline(block)); s != "" {
					parts = append(parts, s)
				}
			}
			w.footnoteDef[footnote.Index] = strings.Join(parts, " ")
		}
	}
}

func (w *markdownWalker) children(n ast.Node, indent int) error {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if err := w.block(child, indent); err != nil {
			return err
		}
	}
	return nil
}

// leaf opens mode, flushes text into it and closes it again.
func (w *markdownWalker) leaf(mode Mode, indent int, props Properties, content string) error {
	w.engine.EnterMode(mode, indent, props)
	w.engine.AddText(content)
	if err := w.engine.Flush(); err != nil {
		return err
	}
	return w.engine.ExitModeExpect(mode)
}

// container opens mode, renders n's children inside it and closes it.
func (w *markdownWalker) container(mode Mode, indent int, props Properties, n ast.Node) error {
	w.engine.EnterMode(mode, indent, props)
	if err := w.children(n, indent); err != nil {
		return err
	}
	return w.engine.ExitModeExpect(mode)
}

func (w *markdownWalker) block(n ast.Node, indent int) error {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock:
		return w.leaf(ModeParagraph, indent, nil, w.inline(node))

	case *ast.Heading:
		mode := HeadingMode(node.Level)
		w.engine.EnterMode(mode, indent, nil)
		if err := w.engine.AddLineAttributes(Headline{Level: node.Level}); err != nil {
			return err
		}
		w.engine.AddText(w.inline(node))
		if err := w.engine.Flush(); err != nil {
			return err
		}
		return w.engine.ExitModeExpect(mode)

	case *ast.List:
		mode, props := ModeUnorderedList, Properties(nil)
		if node.IsOrdered() {
			mode = ModeOrderedList
			if node.Start > 1 {
				props = Properties{PropListItem: strconv.Itoa(node.Start)}
			}
		}
		return w.container(mode, indent, props, node)

	case *ast.ListItem:
		return w.listItem(node, indent+2)

	case *ast.FencedCodeBlock:
		props := Properties{PropLang: string(node.Language(w.source))}
		return w.code(ModeSrc, indent, props, node)

	case *ast.CodeBlock:
		return w.code(ModeExample, indent, nil, node)

	case *ast.Blockquote:
		return w.container(ModeQuote, indent, nil, node)

	case *ast.ThematicBreak:
		return w.leaf(ModeHorizontalRule, indent, nil, "-----")

	case *ast.HTMLBlock:
		var sb strings.Builder
		w.writeLines(&sb, node.Lines())
		if node.HasClosure() {
			sb.Write(node.ClosureLine.Value(w.source))
		}
		return w.leaf(ModeHTML, indent, nil, sb.String())

	case *extast.Table:
		return w.container(ModeTable, indent, nil, node)

	case *extast.TableHeader:
		w.engine.EnterMode(ModeTableRow, indent, nil)
		if err := w.leaf(ModeTableHeader, indent, nil, w.tableRow(node)); err != nil {
			return err
		}
		return w.engine.ExitModeExpect(ModeTableRow)

	case *extast.TableRow:
		return w.leaf(ModeTableRow, indent, nil, w.tableRow(node))

	case *extast.DefinitionList:
		return w.definitionList(node, indent)

	case *extast.FootnoteList:
		// Bodies were collected up front; the engine emits them at the end.
		return nil

	default:
		return w.children(n, indent)
	}
}

func (w *markdownWalker) listItem(n *ast.ListItem, indent int) error {
	w.engine.EnterMode(ModeListItem, indent, nil)
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		// Tight list text belongs to the item itself rather than to a paragraph.
		if tb, ok := child.(*ast.TextBlock); ok {
			w.engine.AddText(w.inline(tb))
			if err := w.engine.Flush(); err != nil {
				return err
			}
			continue
		}
		if err := w.block(child, indent); err != nil {
			return err
		}
	}
	return w.engine.ExitModeExpect(ModeListItem)
}

func (w *markdownWalker) code(mode Mode, indent int, props Properties, n ast.Node) error {
	w.engine.EnterMode(mode, indent, props)
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		line := seg.Value(w.source)
		if trimmed := strings.TrimLeft(string(line), " "); strings.TrimSpace(trimmed) != "" {
			w.engine.NoteCodeLine(len(line) - len(trimmed))
		}
		sb.Write(line)
	}
	w.engine.AddText(sb.String())
	if err := w.engine.Flush(); err != nil {
		return err
	}
	return w.engine.ExitModeExpect(mode)
}

// definitionList writes each term with its descriptions as "term :: description",
// which the engine splits into dt and dd.
func (w *markdownWalker) definitionList(n *extast.DefinitionList, indent int) error {
	w.engine.EnterMode(ModeDefinitionList, indent, nil)
	for child := n.FirstChild(); child != nil; {
		term, ok := child.(*extast.DefinitionTerm)
		if !ok {
			child = child.NextSibling()
			continue
		}

		var descs []string
		next := term.NextSibling()
		for ; next != nil; next = next.NextSibling() {
			desc, ok := next.(*extast.DefinitionDescription)
			if !ok {
				break
			}
			for block := desc.FirstChild(); block != nil; block = block.NextSibling() {
				if s := strings.TrimSpace(w.inline(block)); s != "" {
					descs = append(descs, s)
				}
			}
		}

		w.engine.EnterMode(ModeDefinitionTerm, indent, nil)
		w.engine.AddText(w.inline(term) + " :: " + strings.Join(descs, " "))
		if err := w.engine.Flush(); err != nil {
			return err
		}
		if err := w.engine.ExitModeExpect(ModeDefinitionDescription); err != nil {
			return err
		}
		child = next
	}
	return w.engine.ExitModeExpect(ModeDefinitionList)
}

// tableRow renders a row as pipe-delimited text for the engine's cell rewriting.
func (w *markdownWalker) tableRow(n ast.Node) string {
	var sb strings.Builder
	sb.WriteString("|")
	for cell := n.FirstChild(); cell != nil; cell = cell.NextSibling() {
		if _, ok := cell.(*extast.TableCell); !ok {
			continue
		}
		sb.WriteString(" ")
		// a pipe left in cell content would split the cell again
		sb.WriteString(strings.ReplaceAll(w.inline(cell), "|", w.protect("|")))
		sb.WriteString(" |")
	}
	return sb.String()
}

func (w *markdownWalker) writeLines(sb *strings.Builder, lines *text.Segments) {
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(w.source))
	}
}

// text resolves entity references and backslash escapes in a source segment.
// Escaped characters are protected so the engine reads them literally.
func (w *markdownWalker) text(v []byte) string {
	var sb strings.Builder
	start := 0
	resolve := func(end int) {
		if end > start {
			sb.Write(util.ResolveNumericReferences(util.ResolveEntityNames(v[start:end])))
		}
	}
	for i := 0; i+1 < len(v); i++ {
		if v[i] != '\\' || !util.IsPunct(v[i+1]) {
			continue
		}
		resolve(i)
		sb.WriteString(w.protect(string(v[i+1])))
		i++
		start = i + 1
	}
	resolve(len(v))
	return sb.String()
}

// protect hides s from the engine's inline rewrites; it is written escaped.
func (w *markdownWalker) protect(s string) string {
	return w.engine.inline.snippets.protect(Escape(s))
}

// inline renders the inline children of n in the engine's inline syntax.
func (w *markdownWalker) inline(n ast.Node) string {
	var sb strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		w.inlineNode(&sb, child)
	}
	return sb.String()
}

func (w *markdownWalker) inlineNode(sb *strings.Builder, n ast.Node) {
	markup := w.engine.markup
	switch node := n.(type) {
	case *ast.Text:
		sb.WriteString(w.text(node.Segment.Value(w.source)))
		switch {
		case node.HardLineBreak():
			sb.WriteString(QuoteRaw("<br />"))
			sb.WriteString("\n")
		case node.SoftLineBreak():
			sb.WriteString("\n")
		}

	case *ast.String:
		sb.Write(node.Value)

	case *ast.Emphasis:
		marker := byte('/')
		if node.Level >= 2 {
			marker = '*'
		}
		w.wrap(sb, markup.Emphasis[marker], node)

	case *extast.Strikethrough:
		w.wrap(sb, markup.Emphasis['+'], node)

	case *ast.CodeSpan:
		tag := markup.Emphasis['=']
		var code strings.Builder
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch t := child.(type) {
			case *ast.Text:
				code.Write(t.Segment.Value(w.source))
			case *ast.String:
				code.Write(t.Value)
			}
		}
		sb.WriteString(w.engine.inline.snippets.protect("<" + tag.Open + ">" + Escape(code.String()) + "</" + tag.Close + ">"))

	case *ast.Link:
		desc := w.inline(node)
		dest := string(node.Destination)
		if strings.ContainsAny(dest+desc, "[]") {
			sb.WriteString(QuoteRaw(`<a href="` + Escape(dest) + `">`))
			sb.WriteString(desc)
			sb.WriteString(QuoteRaw("</a>"))
			return
		}
		if desc == "" {
			desc = dest
		}
		sb.WriteString("[[" + dest + "][" + desc + "]]")

	case *ast.AutoLink:
		url := string(node.URL(w.source))
		if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(url, "mailto:") {
			sb.WriteString("[[mailto:" + url + "][" + url + "]]")
			return
		}
		sb.WriteString("[[" + url + "]]")

	case *ast.Image:
		dest := string(node.Destination)
		if imageFilePattern.MatchString(dest) && !strings.ContainsAny(dest, "[]") {
			sb.WriteString("[[" + dest + "]]")
			return
		}
		sb.WriteString(imgTag(dest))

	case *ast.RawHTML:
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			sb.WriteString(QuoteRaw(string(seg.Value(w.source))))
		}

	case *extast.FootnoteLink:
		if !w.engine.opts.ExportFootnotes {
			return
		}
		name := strconv.Itoa(node.Index)
		if def, ok := w.footnoteDef[node.Index]; ok {
			w.engine.footnotes.Add(name, def)
		}
		sb.WriteString(footnoteReference(name))

	case *extast.FootnoteBacklink:
		// dropped; the footnotes section links back on its own

	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			w.inlineNode(sb, child)
		}
	}
}

// wrap writes n's inline content between a passthrough-quoted tag pair.
func (w *markdownWalker) wrap(sb *strings.Builder, tag EmphasisTag, n ast.Node) {
	sb.WriteString(QuoteRaw("<" + tag.Open + ">"))
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		w.inlineNode(sb, child)
	}
	sb.WriteString(QuoteRaw("</" + tag.Close + ">"))
}
