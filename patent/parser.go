// Package patent extracts a structured record from a Google Patents page.
//
// Patent pages annotate their markup with microdata-style attributes:
// itemprop names the property an element contributes, itemscope marks an
// element whose content is a nested record rather than a scalar, and repeat
// marks properties that occur more than once. Definition terms and headings
// open implicit groups of sibling properties. Different pages nest the same
// logical content at different depths, so extraction is a recursive walk
// over the tree rather than a fixed set of selectors.
package patent

import (
	"log"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Schema markers recognized by the walker. Together with the section
// property names in sections.go these are the whole configuration surface of
// the extraction schema.
const (
	propAttr   = "itemprop"
	scopeAttr  = "itemscope"
	repeatAttr = "repeat"
	sectionTag = "section"
)

// groupHeaderTags are the element names whose text opens a sibling group.
var groupHeaderTags = []string{"dt", "h2"}

// ErrSchema reports a document that violates the expected page structure.
// Parse never returns a partial record alongside it.
var ErrSchema = errors.New("document does not match patent schema")

// Parser extracts patent records. The zero value is usable. Log receives
// data-quality diagnostics and defaults to the standard logger, keeping the
// degraded-extraction channel separate from whatever the caller prints.
type Parser struct {
	Log *log.Logger
}

// Parse extracts the patent record from a full page using a default Parser.
func Parse(doc string) (*Record, error) {
	var p Parser
	return p.Parse(doc)
}

// Parse builds the record for one page. The document must contain an
// article element; its absence is a schema violation, not missing data.
func (p *Parser) Parse(doc string) (*Record, error) {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, errors.Wrap(err, "could not parse document")
	}
	root := document.Find("html")
	if root.Length() == 0 {
		return nil, errors.Wrap(ErrSchema, "document has no html element")
	}
	article := root.Find("article")
	if article.Length() == 0 {
		return nil, errors.Wrap(ErrSchema, "document has no article element")
	}

	w := &walker{
		logf:    p.logf,
		visited: make(map[*html.Node]struct{}),
	}
	record := NewRecord()
	w.walk(element{article.Get(0)}, record)
	if err := w.sections(article.First(), record); err != nil {
		return nil, err
	}
	return record, nil
}

func (p *Parser) logf(format string, args ...interface{}) {
	l := p.Log
	if l == nil {
		l = log.Default()
	}
	l.Printf(format, args...)
}

// walker carries the state of one parse invocation: the diagnostics sink and
// the set of nodes already consumed. The visited set prevents an element
// swallowed by a sibling group or nested scope from being walked again when
// its parent's children come up in pass-through recursion.
type walker struct {
	logf    func(format string, args ...interface{})
	visited map[*html.Node]struct{}
}

// walk classifies el and merges its extracted properties into rec.
func (w *walker) walk(el element, rec *Record) {
	if _, ok := w.visited[el.n]; ok {
		return
	}
	w.visited[el.n] = struct{}{}

	if isGroupHeader(el) {
		group := NewRecord()
		w.walkSiblings(el, group)
		rec.Set(w.parseLabel(el), group)
		return
	}

	prop, ok := el.attr(propAttr)
	if !ok {
		// Not a property itself, but its descendants may be.
		w.walkChildren(el, rec)
		return
	}
	if el.name() == sectionTag {
		// Sections get schema-specific parsing; see sections.go.
		return
	}

	value := w.propertyValue(prop, el)
	if el.hasAttr(repeatAttr) {
		if !rec.Append(prop, value) {
			w.logf("property %q: accumulating over a non-list value, restarting list", prop)
		}
		return
	}
	rec.Set(prop, value)
}

func (w *walker) walkChildren(el element, rec *Record) {
	for _, child := range el.children() {
		w.walk(child, rec)
	}
}

// walkSiblings consumes the run of siblings following a group header,
// stopping before the next header. Groups have no closing marker; only the
// next header or the end of the parent terminates one.
func (w *walker) walkSiblings(el element, rec *Record) {
	for _, sib := range el.nextSiblings() {
		if isGroupHeader(sib) {
			return
		}
		w.walk(sib, rec)
	}
}

func isGroupHeader(el element) bool {
	for _, name := range groupHeaderTags {
		if el.name() == name {
			return true
		}
	}
	return false
}

// propertyValue resolves one annotated element. The precedence is fixed: a
// nested scope wins, then the content, href and src attributes, then
// flattened text for properties literally named "content" (narrative blocks
// spread their text across nested inline markup), then the element's own
// text.
func (w *walker) propertyValue(prop string, el element) Value {
	if el.hasAttr(scopeAttr) {
		nested := NewRecord()
		w.walkChildren(el, nested)
		return nested
	}
	if content, ok := el.attr("content"); ok && content != "" {
		return Text(content)
	}
	if href, ok := el.attr("href"); ok && href != "" {
		return Text(href)
	}
	if src, ok := el.attr("src"); ok && src != "" {
		return Text(src)
	}
	if prop == "content" {
		return Text(el.flatText())
	}
	text, ok := el.directText()
	if !ok {
		w.logf("property %q: element <%s> has no text", prop, el.name())
		return Null{}
	}
	return Text(strings.TrimSpace(text))
}

// parseLabel turns a group header's text into a camel-case property key.
// Words are consumed until one starts with a non-alphanumeric rune; that
// word and everything after it is trailing punctuation or annotation, not
// part of the label. Trailing punctuation attached to retained words is
// dropped too, so "Publication number:" yields "publicationNumber".
func (w *walker) parseLabel(el element) string {
	raw, ok := el.directText()
	if !ok {
		w.logf("group header <%s> has no text", el.name())
		return ""
	}
	var b strings.Builder
	for i, word := range strings.Fields(strings.TrimSpace(raw)) {
		first, size := utf8.DecodeRuneInString(word)
		if !isAlnum(first) {
			break
		}
		word = strings.TrimRightFunc(word, func(r rune) bool { return !isAlnum(r) })
		if i == 0 {
			b.WriteString(strings.ToLower(word))
			continue
		}
		b.WriteRune(unicode.ToUpper(first))
		b.WriteString(word[size:])
	}
	return b.String()
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
