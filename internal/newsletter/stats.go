package newsletter

import (
	"strings"

	"github.com/stateful/newsletter/internal/markup"
)

type Stats struct {
	Sections  int
	Resources int
	Words     int
}

// Stats counts sections, resources and the words of the hero and block
// contents after markup is stripped.
func (d Document) Stats() Stats {
	words := len(strings.Fields(markup.StripToPlainText(d.Hero.Content)))
	for _, b := range d.ContentBlocks {
		words += len(strings.Fields(markup.StripToPlainText(b.Content)))
	}
	return Stats{
		Sections:  len(d.ContentBlocks),
		Resources: len(d.Resources),
		Words:     words,
	}
}
