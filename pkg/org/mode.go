// mode.go defines the block-level modes the renderer tracks and their HTML tags.
package org

import "fmt"

// Mode is a block-level construct the engine can be inside of.
type Mode int

const (
	ModeRoot Mode = iota // reported by an empty stack, never pushed
	ModeParagraph
	ModeOrderedList
	ModeUnorderedList
	ModeListItem
	ModeDefinitionList
	ModeDefinitionTerm
	ModeDefinitionDescription
	ModeTable
	ModeTableRow
	ModeTableHeader
	ModeTableSeparator
	ModeQuote
	ModeExample
	ModeSrc
	ModeInlineExample
	ModeCenter
	ModeHeading1
	ModeHeading2
	ModeHeading3
	ModeHeading4
	ModeHeading5
	ModeHeading6
	ModeTitle
	ModeHTML
	ModeRawText
	ModeCode
	ModeHorizontalRule
)

var modeNames = map[Mode]string{
	ModeRoot:                  "root",
	ModeParagraph:             "paragraph",
	ModeOrderedList:           "ordered_list",
	ModeUnorderedList:         "unordered_list",
	ModeListItem:              "list_item",
	ModeDefinitionList:        "definition_list",
	ModeDefinitionTerm:        "definition_term",
	ModeDefinitionDescription: "definition_descr",
	ModeTable:                 "table",
	ModeTableRow:              "table_row",
	ModeTableHeader:           "table_header",
	ModeTableSeparator:        "table_separator",
	ModeQuote:                 "quote",
	ModeExample:               "example",
	ModeSrc:                   "src",
	ModeInlineExample:         "inline_example",
	ModeCenter:                "center",
	ModeHeading1:              "heading1",
	ModeHeading2:              "heading2",
	ModeHeading3:              "heading3",
	ModeHeading4:              "heading4",
	ModeHeading5:              "heading5",
	ModeHeading6:              "heading6",
	ModeTitle:                 "title",
	ModeHTML:                  "html",
	ModeRawText:               "raw_text",
	ModeCode:                  "code",
	ModeHorizontalRule:        "horizontal_rule",
}

// String returns the snake_case name used in tag override files.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// ParseMode looks a mode up by its snake_case name.
func ParseMode(name string) (Mode, bool) {
	for m, n := range modeNames {
		if n == name && m != ModeRoot {
			return m, true
		}
	}
	return ModeRoot, false
}

// DefaultBlockTags maps every tag-emitting mode to its HTML element.
// Modes missing from this table (table_header, table_separator, html,
// raw_text, code, horizontal_rule) never open a tag of their own.
var DefaultBlockTags = map[Mode]string{
	ModeParagraph:             "p",
	ModeOrderedList:           "ol",
	ModeUnorderedList:         "ul",
	ModeListItem:              "li",
	ModeDefinitionList:        "dl",
	ModeDefinitionTerm:        "dt",
	ModeDefinitionDescription: "dd",
	ModeTable:                 "table",
	ModeTableRow:              "tr",
	ModeQuote:                 "blockquote",
	ModeExample:               "pre",
	ModeSrc:                   "pre",
	ModeInlineExample:         "pre",
	ModeCenter:                "div",
	ModeHeading1:              "h1",
	ModeHeading2:              "h2",
	ModeHeading3:              "h3",
	ModeHeading4:              "h4",
	ModeHeading5:              "h5",
	ModeHeading6:              "h6",
	ModeTitle:                 "h1",
}

// Modes returns every mode a producer can push, in declaration order.
func Modes() []Mode {
	modes := make([]Mode, 0, int(ModeHorizontalRule))
	for m := ModeParagraph; m <= ModeHorizontalRule; m++ {
		modes = append(modes, m)
	}
	return modes
}

// HeadingMode returns the heading mode for a level, clamped to 1..6.
func HeadingMode(level int) Mode {
	switch {
	case level <= 1:
		return ModeHeading1
	case level >= 6:
		return ModeHeading6
	}
	return ModeHeading1 + Mode(level-1)
}

// IsTable reports whether m belongs to the table family.
func IsTable(m Mode) bool {
	switch m {
	case ModeTable, ModeTableRow, ModeTableHeader, ModeTableSeparator:
		return true
	}
	return false
}

// IsCode reports whether m is a code-like block whose common indentation is stripped.
func IsCode(m Mode) bool {
	switch m {
	case ModeExample, ModeInlineExample, ModeSrc:
		return true
	}
	return false
}

// PreservesWhitespace reports whether text in m bypasses inline formatting.
func PreservesWhitespace(m Mode) bool {
	switch m {
	case ModeExample, ModeInlineExample, ModeSrc, ModeHTML, ModeRawText:
		return true
	}
	return false
}

// IsRawHTML reports whether m passes its text through unescaped.
func IsRawHTML(m Mode) bool {
	return m == ModeHTML || m == ModeRawText
}

// Properties carries per-frame metadata supplied by the producer.
type Properties map[string]string

const (
	// PropListItem holds the number an interrupted ordered list resumes at.
	PropListItem = "li"
	// PropLang holds the language of a src block.
	PropLang = "lang"
)
