package patent

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Section property names with dedicated parsers. Sections carrying any other
// name produce a null value and a diagnostic.
const (
	sectionAbstract    = "abstract"
	sectionDescription = "description"
	sectionClaims      = "claims"
)

// sections finds every scoped section under the article and dispatches it to
// its parser. The walker skips section elements entirely, so the values
// stored here are the only extraction those subtrees get.
func (w *walker) sections(article *goquery.Selection, rec *Record) error {
	var err error
	article.Find(sectionTag + "[" + scopeAttr + "]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		sec := element{s.Get(0)}
		prop, ok := sec.attr(propAttr)
		if !ok {
			err = errors.Wrapf(ErrSchema, "section has no %s attribute", propAttr)
			return false
		}
		var value Value
		switch prop {
		case sectionAbstract:
			value, err = w.parseAbstract(s)
		case sectionDescription:
			value, err = w.parseDescription(s)
		case sectionClaims:
			value, err = w.parseClaims(s)
		default:
			w.logf("unhandled section %q", prop)
			value = Null{}
		}
		if err != nil {
			return false
		}
		rec.Set(prop, value)
		return true
	})
	return err
}

// parseAbstract extracts the short narrative section: the attributes of its
// abstract element plus the flattened narrative text.
func (w *walker) parseAbstract(s *goquery.Selection) (Value, error) {
	abstract := s.Find("abstract").First()
	if abstract.Length() == 0 {
		return nil, errors.Wrap(ErrSchema, "abstract section has no abstract element")
	}
	el := element{abstract.Get(0)}
	rec := NewRecord()
	for _, a := range el.attrs() {
		rec.Set(a.Key, Text(a.Val))
	}
	rec.Set("content", Text(el.flatText()))
	return rec, nil
}

// parseDescription extracts the multi-part narrative: the attributes of the
// class-marked description element, then its headings and lines partitioned
// into ordered parts. Lines before the first heading land in a preamble part
// with an empty heading; the preamble is kept even when empty.
func (w *walker) parseDescription(s *goquery.Selection) (Value, error) {
	description := s.Find(".description").First()
	if description.Length() == 0 {
		return nil, errors.Wrap(ErrSchema, "description section has no description element")
	}
	rec := recordFromAttrs(element{description.Get(0)})

	var parts List
	heading := ""
	lines := List{}
	closePart := func() {
		part := NewRecord()
		part.Set("heading", Text(heading))
		part.Set("lines", lines)
		parts = append(parts, part)
	}

	description.Find("heading, .description-line").Each(func(_ int, t *goquery.Selection) {
		el := element{t.Get(0)}
		text := el.flatText()
		if el.name() == "heading" {
			closePart()
			heading = text
			lines = List{}
			return
		}
		line := NewRecord()
		if num, ok := el.attr("num"); ok {
			line.Set("num", Text(num))
		} else {
			line.Set("num", Null{})
		}
		line.Set("text", Text(text))
		lines = append(lines, line)
	})
	closePart()

	rec.Set("parts", parts)
	return rec, nil
}

// parseClaims extracts the repeated-item block. Pages nest the class-marked
// claim wrappers at different depths, so items are found from their
// claim-text leaves and rolled up to the nearest claim ancestor,
// deduplicated by node identity in first-seen order.
func (w *walker) parseClaims(s *goquery.Selection) (Value, error) {
	claimsRoot := s.Find(".claims").First()
	if claimsRoot.Length() == 0 {
		return nil, errors.Wrap(ErrSchema, "claims section has no claims element")
	}
	rec := recordFromAttrs(element{claimsRoot.Get(0)})

	seen := make(map[*html.Node]struct{})
	claims := List{}
	var err error
	claimsRoot.Find(".claim-text").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		claim, ok := closestClass(element{t.Get(0)}, "claim")
		if !ok {
			err = errors.Wrap(ErrSchema, "claim-text element has no claim ancestor")
			return false
		}
		if _, dup := seen[claim.n]; dup {
			return true
		}
		seen[claim.n] = struct{}{}

		entry := recordFromAttrs(claim)
		entry.Set("text", Text(claim.flatText()))
		claims = append(claims, entry)
		return true
	})
	if err != nil {
		return nil, err
	}

	rec.Set("claims", claims)
	return rec, nil
}

// recordFromAttrs seeds a record with an element's attributes, minus the
// class attribute used to locate it.
func recordFromAttrs(el element) *Record {
	rec := NewRecord()
	for _, a := range el.attrs() {
		if a.Key == "class" {
			continue
		}
		rec.Set(a.Key, Text(a.Val))
	}
	return rec
}

// closestClass walks up from el to the nearest ancestor carrying the class.
func closestClass(el element, class string) (element, bool) {
	for cur, ok := el.parent(); ok; cur, ok = cur.parent() {
		if cur.hasClass(class) {
			return cur, true
		}
	}
	return element{}, false
}
