// Package field addresses single leaf fields of a newsletter document and
// applies edits to them.
//
// Inside the program a field is named by an Address value. At the edge,
// addresses are also exchanged as dash-delimited identifiers:
//
//	header-<attr>
//	newsletter-title
//	hero-<attr>
//	block-<id>-<attr>
//	resource-<id>-<attr>
//	footer-text
package field

import (
	"strings"
)

// Delimiter separates the segments of a field identifier.
const Delimiter = "-"

type Kind int

const (
	KindUnknown Kind = iota
	KindHeader
	KindTitle
	KindHero
	KindBlock
	KindResource
	KindFooterText
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindTitle:
		return "title"
	case KindHero:
		return "hero"
	case KindBlock:
		return "block"
	case KindResource:
		return "resource"
	case KindFooterText:
		return "footer"
	default:
		return "unknown"
	}
}

// Attributes accepted per kind. The short names are the ones used by
// field identifiers; the long names mirror the document schema.
const (
	AttrTitle       = "title"
	AttrLogo        = "logo"
	AttrContent     = "content"
	AttrIcon        = "icon"
	AttrImage       = "image"
	AttrDescription = "description"
	AttrURL         = "url"
	AttrText        = "text"
)

var aliases = map[string]string{
	"logoUrl":  AttrLogo,
	"iconUrl":  AttrIcon,
	"imageUrl": AttrImage,
}

func canonicalAttr(attr string) string {
	if a, ok := aliases[attr]; ok {
		return a
	}
	return attr
}

// Address names one leaf field of a document.
type Address struct {
	Kind Kind
	// ID is set for KindBlock and KindResource.
	ID   string
	Attr string
}

func Header(attr string) Address { return Address{Kind: KindHeader, Attr: canonicalAttr(attr)} }

func Title() Address { return Address{Kind: KindTitle} }

func Hero(attr string) Address { return Address{Kind: KindHero, Attr: canonicalAttr(attr)} }

func Block(id, attr string) Address {
	return Address{Kind: KindBlock, ID: id, Attr: canonicalAttr(attr)}
}

func Resource(id, attr string) Address {
	return Address{Kind: KindResource, ID: id, Attr: canonicalAttr(attr)}
}

func FooterText() Address { return Address{Kind: KindFooterText, Attr: AttrText} }

// Parse converts a field identifier into an Address. It reports false for
// identifiers that match none of the known forms.
//
// Block and resource identifiers are split positionally: the id is always
// the second segment and the attribute the third. Further segments are
// ignored rather than folded into the attribute.
func Parse(id string) (Address, bool) {
	switch id {
	case "newsletter-title":
		return Title(), true
	case "footer-text":
		return FooterText(), true
	}

	if attr, ok := strings.CutPrefix(id, "header"+Delimiter); ok {
		return Header(attr), true
	}
	if attr, ok := strings.CutPrefix(id, "hero"+Delimiter); ok {
		return Hero(attr), true
	}

	parts := strings.Split(id, Delimiter)
	if len(parts) < 3 {
		return Address{}, false
	}
	switch parts[0] {
	case "block":
		return Block(parts[1], parts[2]), true
	case "resource":
		return Resource(parts[1], parts[2]), true
	}

	return Address{}, false
}

// String returns the field identifier of the address.
func (a Address) String() string {
	switch a.Kind {
	case KindHeader:
		return "header" + Delimiter + a.Attr
	case KindTitle:
		return "newsletter-title"
	case KindHero:
		return "hero" + Delimiter + a.Attr
	case KindBlock:
		return "block" + Delimiter + a.ID + Delimiter + a.Attr
	case KindResource:
		return "resource" + Delimiter + a.ID + Delimiter + a.Attr
	case KindFooterText:
		return "footer-text"
	default:
		return ""
	}
}
