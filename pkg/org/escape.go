// escape.go provides HTML escaping with a passthrough for pre-approved tags.
package org

import (
	"regexp"
	"strings"
)

// Passthrough markers. A single HTML tag wrapped as @@html:<tag>@@ reaches
// the output verbatim instead of being entity-escaped.
const (
	rawPrefix = "@@html:"
	rawSuffix = "@@"
)

var (
	htmlEscaper = strings.NewReplacer(
		"'", "&#39;",
		"&", "&amp;",
		`"`, "&quot;",
		"<", "&lt;",
		">", "&gt;",
	)
	htmlUnescaper = strings.NewReplacer(
		"&#39;", "'",
		"&amp;", "&",
		"&quot;", `"`,
		"&lt;", "<",
		"&gt;", ">",
	)

	tagPattern    = regexp.MustCompile(`(<[^<>\n]*>)`)
	quotedPattern = regexp.MustCompile(`@@html:(<[^<>\n]*>)@@`)
)

// Escape replaces the five HTML-reserved characters with entities.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// Unescape reverses Escape.
func Unescape(s string) string {
	return htmlUnescaper.Replace(s)
}

// QuoteRaw wraps every tag in s in the passthrough marker.
func QuoteRaw(s string) string {
	return tagPattern.ReplaceAllString(s, rawPrefix+"$1"+rawSuffix)
}

// UnquoteRaw strips passthrough markers, leaving the wrapped tags in place.
func UnquoteRaw(s string) string {
	return quotedPattern.ReplaceAllString(s, "$1")
}

// EscapeText escapes s except for passthrough-quoted tags, which are unwrapped verbatim.
func EscapeText(s string) string {
	locs := quotedPattern.FindAllStringSubmatchIndex(s, -1)
	if len(locs) == 0 {
		return Escape(s)
	}

	var sb strings.Builder
	sb.Grow(len(s))
	last := 0
	for _, loc := range locs {
		sb.WriteString(Escape(s[last:loc[0]]))
		sb.WriteString(s[loc[2]:loc[3]])
		last = loc[1]
	}
	sb.WriteString(Escape(s[last:]))
	return sb.String()
}
