// options.go holds rendering options and the optional tag override file.
package org

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFootnotesTitle heads the footnotes section unless overridden.
const DefaultFootnotesTitle = "Footnotes:"

// Options controls what the engine exports. The zero value is usable.
type Options struct {
	SkipTables          bool              `yaml:"skip_tables"`
	SkipSyntaxHighlight bool              `yaml:"skip_syntax_highlight"`
	ExportFootnotes     bool              `yaml:"export_footnotes"`
	FootnotesTitle      string            `yaml:"footnotes_title,omitempty"`
	ExportHeadingNumber bool              `yaml:"export_heading_number"`
	ExportTodo          bool              `yaml:"export_todo"`
	UseSubSuperscripts  bool              `yaml:"use_sub_superscripts"`
	LinkAbbrevs         map[string]string `yaml:"link_abbrevs,omitempty"`
	// MarkupFile names a YAML file overriding block and emphasis tags.
	MarkupFile string `yaml:"markup_file,omitempty"`
}

// DefaultOptions returns options with every export switched off.
func DefaultOptions() Options {
	return Options{FootnotesTitle: DefaultFootnotesTitle}
}

func (o Options) footnotesTitle() string {
	if o.FootnotesTitle == "" {
		return DefaultFootnotesTitle
	}
	return o.FootnotesTitle
}

// ConfigurationLoadError reports a tag override file that could not be parsed.
type ConfigurationLoadError struct {
	Path string
	Err  error
}

func (e *ConfigurationLoadError) Error() string {
	return fmt.Sprintf("failed to load markup file %s: %v", e.Path, e.Err)
}

func (e *ConfigurationLoadError) Unwrap() error {
	return e.Err
}

// EmphasisTag is the element pair an emphasis marker renders as.
type EmphasisTag struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// Markup is the tag vocabulary of one engine.
type Markup struct {
	BlockTags map[Mode]string
	Emphasis  map[byte]EmphasisTag
}

var defaultEmphasis = map[byte]EmphasisTag{
	'*': {Open: "b", Close: "b"},
	'/': {Open: "i", Close: "i"},
	'_': {Open: `span style="text-decoration:underline;"`, Close: "span"},
	'=': {Open: "code", Close: "code"},
	'~': {Open: "code", Close: "code"},
	'+': {Open: "del", Close: "del"},
}

// DefaultMarkup returns a fresh copy of the built-in tags.
func DefaultMarkup() *Markup {
	m := &Markup{
		BlockTags: make(map[Mode]string, len(DefaultBlockTags)),
		Emphasis:  make(map[byte]EmphasisTag, len(defaultEmphasis)),
	}
	for k, v := range DefaultBlockTags {
		m.BlockTags[k] = v
	}
	for k, v := range defaultEmphasis {
		m.Emphasis[k] = v
	}
	return m
}

// markupFile is the on-disk shape of a tag override file.
type markupFile struct {
	BlockTags map[string]string      `yaml:"HtmlBlockTag"`
	Tags      map[string]EmphasisTag `yaml:"Tags"`
}

// LoadMarkup reads tag overrides from path on top of the defaults.
// A missing file or one without recognized keys leaves the defaults in place.
func LoadMarkup(path string) (*Markup, error) {
	m := DefaultMarkup()
	if path == "" {
		return m, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARN: markup file %s does not exist, using default tags", path)
		return m, nil
	}
	if err != nil {
		return nil, &ConfigurationLoadError{Path: path, Err: err}
	}

	var mf markupFile
	if err := yaml.Unmarshal(data, &mf); err != nil {
		return nil, &ConfigurationLoadError{Path: path, Err: err}
	}
	if len(mf.BlockTags) == 0 && len(mf.Tags) == 0 {
		log.Printf("WARN: no valid markup found in %s, using default tags", path)
		return m, nil
	}

	for name, tag := range mf.BlockTags {
		mode, ok := ParseMode(name)
		if !ok {
			log.Printf("WARN: unknown mode %q in %s", name, path)
			continue
		}
		m.BlockTags[mode] = tag
	}
	for marker, tag := range mf.Tags {
		if len(marker) != 1 || !isEmphasisMarker(marker[0]) {
			log.Printf("WARN: unknown emphasis marker %q in %s", marker, path)
			continue
		}
		m.Emphasis[marker[0]] = tag
	}
	return m, nil
}
