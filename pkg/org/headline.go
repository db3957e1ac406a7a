package org

import (
	"fmt"
	"strconv"
	"strings"
)

// Headline is the line-level information a producer supplies for a heading.
type Headline struct {
	Level   int
	Keyword string // TODO-style keyword, empty if none
}

// headlineNumbers counts headings per level for dotted section numbers.
type headlineNumbers struct {
	stack []int
}

// next advances the counter at level and returns the dotted number, e.g. "4.3".
func (h *headlineNumbers) next(level int) (string, error) {
	if level <= 0 {
		return "", fmt.Errorf("invalid headline level: %d", level)
	}
	for len(h.stack) < level {
		h.stack = append(h.stack, 0)
	}
	h.stack = h.stack[:level]
	h.stack[level-1]++

	parts := make([]string, len(h.stack))
	for i, n := range h.stack {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "."), nil
}
