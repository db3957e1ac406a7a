// emphasis.go finds emphasis spans such as *bold* and =code=.
package org

import "strings"

const (
	emphasisMarkers = "*/_=~+"
	// characters allowed right before an opening marker (besides line start)
	preEmphasis = " \t('\"\n"
	// characters allowed right after a closing marker (besides line end)
	postEmphasis = "- \t.,:!?;'\")\n"
	// characters that may not touch the inside of a marker
	borderForbidden = " \t\r\n\f\v,\"'"
)

func isEmphasisMarker(c byte) bool {
	return strings.IndexByte(emphasisMarkers, c) >= 0
}

func isBorderForbidden(c byte) bool {
	return strings.IndexByte(borderForbidden, c) >= 0
}

// rewriteEmphasis replaces every emphasis span in s with fn(marker, body).
// Spans do not nest and do not cross line boundaries; replaced text is not rescanned.
func rewriteEmphasis(s string, fn func(marker byte, body string) string) string {
	var sb strings.Builder
	last := 0
	for i := 0; i < len(s); i++ {
		if !isEmphasisMarker(s[i]) {
			continue
		}
		if i > 0 && strings.IndexByte(preEmphasis, s[i-1]) < 0 {
			continue
		}
		end := emphasisEnd(s, i)
		if end < 0 {
			continue
		}
		sb.WriteString(s[last:i])
		sb.WriteString(fn(s[i], s[i+1:end]))
		last = end + 1
		i = end
	}
	if last == 0 {
		return s
	}
	sb.WriteString(s[last:])
	return sb.String()
}

// emphasisEnd returns the index of the marker closing the span opened at start, or -1.
func emphasisEnd(s string, start int) int {
	marker := s[start]
	if start+1 >= len(s) {
		return -1
	}
	if first := s[start+1]; first == marker || isBorderForbidden(first) {
		return -1
	}
	for j := start + 2; j < len(s); j++ {
		c := s[j]
		if c == '\n' {
			return -1
		}
		if c != marker || isBorderForbidden(s[j-1]) {
			continue
		}
		if j+1 < len(s) && strings.IndexByte(postEmphasis, s[j+1]) < 0 {
			continue
		}
		return j
	}
	return -1
}
