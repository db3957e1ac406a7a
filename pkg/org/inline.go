// inline.go applies inline markup rewrites to a block's text.
package org

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Placeholder markers for code snippets hidden from later rewrite passes.
const (
	snippetPlaceholderPrefix = "\x00ORGCODE"
	snippetPlaceholderSuffix = "END\x00"
)

var (
	subSupPattern       = regexp.MustCompile(`([_^])\{(.*?)\}`)
	linkPattern         = regexp.MustCompile(`\[\[([^\]\[]+)\](?:\[([^\]\[]+)\])?\]`)
	imageFilePattern    = regexp.MustCompile(`(?i)\.(gif|jpe?g|p(?:bm|gm|n[gm]|pm)|svgz?|tiff?|x[bp]m)`)
	fileSearchPattern   = regexp.MustCompile(`^(file:\S+)::\S*$`)
	fileSchemePattern   = regexp.MustCompile(`^file(|\+emacs|\+sys):`)
	footnoteDefPattern  = regexp.MustCompile(`(?m)^\[fn:([^:\]]+)\]( (.+))?`)
	footnoteRefPattern  = regexp.MustCompile(`\[fn:(.+?)(:(.*?))?\]`)
	lineBreakPattern    = regexp.MustCompile(`(?m)\\\\$`)
	cellOpenPattern     = regexp.MustCompile(`(?m)^\|[ \t]*`)
	cellClosePattern    = regexp.MustCompile(`(?m)[ \t]*\|$`)
	cellBoundaryPattern = regexp.MustCompile(`[ \t]*\|[ \t]*`)
	snippetPattern      = regexp.MustCompile(regexp.QuoteMeta(snippetPlaceholderPrefix) + `(\d+)` + regexp.QuoteMeta(snippetPlaceholderSuffix))
)

// snippetStore holds code snippets replaced by placeholders before escaping.
type snippetStore struct {
	items []string
}

// protect stores s and returns the placeholder standing in for it.
func (st *snippetStore) protect(s string) string {
	id := len(st.items)
	st.items = append(st.items, s)
	return snippetPlaceholderPrefix + strconv.Itoa(id) + snippetPlaceholderSuffix
}

// restore puts protected snippets back in place of their placeholders.
func (st *snippetStore) restore(s string) string {
	if !strings.Contains(s, snippetPlaceholderPrefix) {
		return s
	}
	return snippetPattern.ReplaceAllStringFunc(s, func(ph string) string {
		id, err := strconv.Atoi(snippetPattern.FindStringSubmatch(ph)[1])
		if err != nil || id >= len(st.items) {
			return ph
		}
		return st.items[id]
	})
}

// InlineFormatter rewrites inline markup into HTML. Footnote definitions it
// encounters are recorded in its FootnoteTable.
type InlineFormatter struct {
	opts      *Options
	markup    *Markup
	footnotes *FootnoteTable
	snippets  snippetStore
}

// NewInlineFormatter creates a formatter recording footnotes into table.
func NewInlineFormatter(opts *Options, markup *Markup, table *FootnoteTable) *InlineFormatter {
	if markup == nil {
		markup = DefaultMarkup()
	}
	if table == nil {
		table = NewFootnoteTable()
	}
	return &InlineFormatter{opts: opts, markup: markup, footnotes: table}
}

// Format renders text found in a block of the given mode.
func (f *InlineFormatter) Format(text string, mode Mode) string {
	s := rewriteEmphasis(text, f.emphasis)

	if f.opts.UseSubSuperscripts {
		s = subSupPattern.ReplaceAllStringFunc(s, func(m string) string {
			g := subSupPattern.FindStringSubmatch(m)
			tag := "sub"
			if g[1] == "^" {
				tag = "sup"
			}
			return QuoteRaw("<"+tag+">") + g[2] + QuoteRaw("</"+tag+">")
		})
	}

	s = f.links(s)

	switch mode {
	case ModeTableRow:
		s = tableCells(s, "td")
	case ModeTableHeader:
		s = tableCells(s, "th")
	}

	if f.opts.ExportFootnotes {
		s = f.footnoteRefs(s)
	}

	if mode != ModeTableRow && mode != ModeTableHeader {
		if loc := lineBreakPattern.FindStringIndex(s); loc != nil {
			s = s[:loc[0]] + QuoteRaw("<br />") + s[loc[1]:]
		}
	}

	s = EscapeText(s)
	return f.snippets.restore(s)
}

func (f *InlineFormatter) emphasis(marker byte, body string) string {
	tag := f.markup.Emphasis[marker]
	if marker == '=' || marker == '~' {
		return f.snippets.protect("<" + tag.Open + ">" + Escape(body) + "</" + tag.Close + ">")
	}
	return QuoteRaw("<"+tag.Open+">") + body + QuoteRaw("</"+tag.Close+">")
}

func (f *InlineFormatter) links(s string) string {
	return replaceAllSubmatchIndex(linkPattern, s, func(loc []int) string {
		desc, hasDesc := "", loc[4] >= 0
		if hasDesc {
			desc = s[loc[4]:loc[5]]
		}
		return f.link(s[loc[2]:loc[3]], desc, hasDesc)
	})
}

func (f *InlineFormatter) link(link, desc string, hasDesc bool) string {
	link = stripFileLink(link)
	if hasDesc {
		desc = stripFileLink(desc)
	}

	// An image target without a description is inlined as a bare image.
	if !hasDesc && !imageFilePattern.MatchString(link) {
		desc, hasDesc = link, true
	}
	if hasDesc && imageFilePattern.MatchString(desc) {
		desc = imgTag(desc)
	}

	if !hasDesc {
		return imgTag(link)
	}
	if abbrev, ok := f.opts.LinkAbbrevs[link]; ok {
		link = abbrev
	}
	return QuoteRaw(`<a href="`+Escape(link)+`">`) + desc + QuoteRaw("</a>")
}

func imgTag(src string) string {
	src = Escape(src)
	return QuoteRaw(`<img src="` + src + `" alt="` + src + `" />`)
}

// stripFileLink drops search options and file scheme prefixes, which have no HTML form.
func stripFileLink(s string) string {
	s = fileSearchPattern.ReplaceAllString(s, "$1")
	if loc := fileSchemePattern.FindStringIndex(s); loc != nil {
		rest := s[loc[1]:]
		if rest != "" && !strings.ContainsAny(rest, " \t\r\n\f\v") {
			s = rest
		}
	}
	return s
}

func tableCells(s, cell string) string {
	s = cellOpenPattern.ReplaceAllLiteralString(s, QuoteRaw("<"+cell+">"))
	s = cellClosePattern.ReplaceAllLiteralString(s, QuoteRaw("</"+cell+">"))
	return cellBoundaryPattern.ReplaceAllLiteralString(s, QuoteRaw("</"+cell+"><"+cell+">"))
}

func (f *InlineFormatter) footnoteRefs(s string) string {
	s = footnoteDefPattern.ReplaceAllStringFunc(s, func(m string) string {
		g := footnoteDefPattern.FindStringSubmatch(m)
		name, content := g[1], g[3]
		return QuoteRaw(fmt.Sprintf(`<sup><a id="fn.%s" class="footnum" href="#fnr.%s">`, Escape(name), Escape(name))) +
			name + QuoteRaw("</a></sup>") + " " + content
	})

	return replaceAllSubmatchIndex(footnoteRefPattern, s, func(loc []int) string {
		name := s[loc[2]:loc[3]]
		if loc[4] >= 0 {
			f.footnotes.Add(name, s[loc[6]:loc[7]])
		}
		return footnoteReference(name)
	})
}

// footnoteReference renders the inline anchor pointing at a footnote.
func footnoteReference(name string) string {
	return QuoteRaw(fmt.Sprintf(`<sup><a id="fnr.%s" class="footref" href="#fn.%s">`, Escape(name), Escape(name))) +
		name + QuoteRaw("</a></sup>")
}

// replaceAllSubmatchIndex replaces every match of re in s with fn(submatch indices).
func replaceAllSubmatchIndex(re *regexp.Regexp, s string, fn func(loc []int) string) string {
	locs := re.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return s
	}
	var sb strings.Builder
	last := 0
	for _, loc := range locs {
		sb.WriteString(s[last:loc[0]])
		sb.WriteString(fn(loc))
		last = loc[1]
	}
	sb.WriteString(s[last:])
	return sb.String()
}
