package org

// Footnote is a footnote collected from an inline definition.
type Footnote struct {
	Name       string
	Definition string
}

// FootnoteTable keeps footnotes in the order they were first defined.
// A name keeps the definition it was first given.
type FootnoteTable struct {
	order []string
	defs  map[string]string
}

// NewFootnoteTable returns an empty table.
func NewFootnoteTable() *FootnoteTable {
	return &FootnoteTable{defs: make(map[string]string)}
}

// Add records a definition and reports whether name was new.
func (t *FootnoteTable) Add(name, definition string) bool {
	if _, ok := t.defs[name]; ok {
		return false
	}
	t.defs[name] = definition
	t.order = append(t.order, name)
	return true
}

// Lookup returns the definition recorded for name.
func (t *FootnoteTable) Lookup(name string) (string, bool) {
	d, ok := t.defs[name]
	return d, ok
}

// Len returns the number of footnotes.
func (t *FootnoteTable) Len() int {
	return len(t.order)
}

// At returns the i-th footnote in first-definition order.
func (t *FootnoteTable) At(i int) Footnote {
	name := t.order[i]
	return Footnote{Name: name, Definition: t.defs[name]}
}

// Entries returns the footnotes in first-definition order.
func (t *FootnoteTable) Entries() []Footnote {
	out := make([]Footnote, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, Footnote{Name: name, Definition: t.defs[name]})
	}
	return out
}
