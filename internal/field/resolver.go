package field

import (
	"strconv"

	"github.com/stateful/newsletter/internal/newsletter"
)

// Apply returns a copy of doc with the field at addr set to value.
//
// Exactly one leaf changes; all other fields and the order of blocks and
// resources are kept. An unknown attribute, or a block or resource id
// that is not in the document, leaves the document unchanged. This is not
// an error: callers may address fields this version does not know yet.
//
// doc itself is never modified.
func Apply(doc newsletter.Document, addr Address, value string) newsletter.Document {
	switch addr.Kind {
	case KindHeader:
		switch addr.Attr {
		case AttrTitle:
			doc.Header.Title = value
		case AttrLogo:
			doc.Header.LogoURL = value
		}
	case KindTitle:
		doc.Title = value
	case KindHero:
		switch addr.Attr {
		case AttrTitle:
			doc.Hero.Title = value
		case AttrContent:
			doc.Hero.Content = value
		case AttrIcon:
			doc.Hero.IconURL = value
		}
	case KindBlock:
		idx := doc.BlockIndex(addr.ID)
		if idx < 0 {
			return doc
		}
		block, ok := setBlockAttr(doc.ContentBlocks[idx], addr.Attr, value)
		if !ok {
			return doc
		}
		blocks := append([]newsletter.ContentBlock(nil), doc.ContentBlocks...)
		blocks[idx] = block
		doc.ContentBlocks = blocks
	case KindResource:
		idx := doc.ResourceIndex(addr.ID)
		if idx < 0 {
			return doc
		}
		resource, ok := setResourceAttr(doc.Resources[idx], addr.Attr, value)
		if !ok {
			return doc
		}
		resources := append([]newsletter.Resource(nil), doc.Resources...)
		resources[idx] = resource
		doc.Resources = resources
	case KindFooterText:
		doc.Footer.Text = value
	}
	return doc
}

// ApplyID is Apply for a field identifier. Identifiers that do not parse
// leave the document unchanged.
func ApplyID(doc newsletter.Document, id string, value string) newsletter.Document {
	addr, ok := Parse(id)
	if !ok {
		return doc
	}
	return Apply(doc, addr, value)
}

func setBlockAttr(b newsletter.ContentBlock, attr, value string) (newsletter.ContentBlock, bool) {
	switch attr {
	case AttrTitle:
		b.Title = value
	case AttrContent:
		b.Content = value
	case AttrImage:
		b.ImageURL = value
	default:
		return b, false
	}
	return b, true
}

func setResourceAttr(r newsletter.Resource, attr, value string) (newsletter.Resource, bool) {
	switch attr {
	case AttrTitle:
		r.Title = value
	case AttrDescription:
		r.Description = value
	case AttrURL:
		r.URL = value
	default:
		return r, false
	}
	return r, true
}

// Value returns the current value of the field at addr. It reports false
// when the address does not resolve.
func Value(doc newsletter.Document, addr Address) (string, bool) {
	switch addr.Kind {
	case KindHeader:
		switch addr.Attr {
		case AttrTitle:
			return doc.Header.Title, true
		case AttrLogo:
			return doc.Header.LogoURL, true
		}
	case KindTitle:
		return doc.Title, true
	case KindHero:
		switch addr.Attr {
		case AttrTitle:
			return doc.Hero.Title, true
		case AttrContent:
			return doc.Hero.Content, true
		case AttrIcon:
			return doc.Hero.IconURL, true
		}
	case KindBlock:
		if idx := doc.BlockIndex(addr.ID); idx >= 0 {
			b := doc.ContentBlocks[idx]
			switch addr.Attr {
			case AttrTitle:
				return b.Title, true
			case AttrContent:
				return b.Content, true
			case AttrImage:
				return b.ImageURL, true
			}
		}
	case KindResource:
		if idx := doc.ResourceIndex(addr.ID); idx >= 0 {
			r := doc.Resources[idx]
			switch addr.Attr {
			case AttrTitle:
				return r.Title, true
			case AttrDescription:
				return r.Description, true
			case AttrURL:
				return r.URL, true
			}
		}
	case KindFooterText:
		return doc.Footer.Text, true
	}
	return "", false
}

// Entry is one editable field of a document.
type Entry struct {
	Address Address
	Label   string
	Value   string
	// Multiline is set for the free-text fields that accept markup.
	Multiline bool
	// Image is set for fields holding an image URL or data URL.
	Image bool
}

// Entries lists every editable field of doc in document order.
func Entries(doc newsletter.Document) []Entry {
	entries := []Entry{
		{Address: Header(AttrTitle), Label: "Header title", Value: doc.Header.Title},
		{Address: Header(AttrLogo), Label: "Header logo", Value: doc.Header.LogoURL, Image: true},
		{Address: Title(), Label: "Newsletter title", Value: doc.Title},
		{Address: Hero(AttrIcon), Label: "Hero icon", Value: doc.Hero.IconURL, Image: true},
		{Address: Hero(AttrTitle), Label: "Hero title", Value: doc.Hero.Title},
		{Address: Hero(AttrContent), Label: "Hero content", Value: doc.Hero.Content, Multiline: true},
	}

	for i, b := range doc.ContentBlocks {
		entries = append(entries,
			Entry{Address: Block(b.ID, AttrTitle), Label: blockLabel(i, "title"), Value: b.Title},
			Entry{Address: Block(b.ID, AttrContent), Label: blockLabel(i, "content"), Value: b.Content, Multiline: true},
			Entry{Address: Block(b.ID, AttrImage), Label: blockLabel(i, "image"), Value: b.ImageURL, Image: true},
		)
	}

	for i, r := range doc.Resources {
		entries = append(entries,
			Entry{Address: Resource(r.ID, AttrTitle), Label: resourceLabel(i, "title"), Value: r.Title},
			Entry{Address: Resource(r.ID, AttrDescription), Label: resourceLabel(i, "description"), Value: r.Description, Multiline: true},
			Entry{Address: Resource(r.ID, AttrURL), Label: resourceLabel(i, "url"), Value: r.URL},
		)
	}

	return append(entries, Entry{Address: FooterText(), Label: "Footer text", Value: doc.Footer.Text})
}

func blockLabel(i int, attr string) string {
	return "Block " + strconv.Itoa(i+1) + " " + attr
}

func resourceLabel(i int, attr string) string {
	return "Resource " + strconv.Itoa(i+1) + " " + attr
}
