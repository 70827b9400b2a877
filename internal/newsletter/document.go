// Package newsletter defines the newsletter document schema.
//
// A Document is a value. Code outside of the store treats it as read-only;
// edits produce a new Document with fresh slices instead of mutating the
// existing ones, which keeps history snapshots immutable.
package newsletter

type Header struct {
	Title   string `json:"title" yaml:"title" toml:"title"`
	LogoURL string `json:"logoUrl" yaml:"logoUrl" toml:"logoUrl"`
}

type Hero struct {
	Title   string `json:"title" yaml:"title" toml:"title"`
	Content string `json:"content" yaml:"content" toml:"content"`
	IconURL string `json:"iconUrl" yaml:"iconUrl" toml:"iconUrl"`
}

type Footer struct {
	Text string `json:"text" yaml:"text" toml:"text"`
}

// ContentBlock is one titled, orderable section. An empty ImageURL means
// the block has no image.
type ContentBlock struct {
	ID       string `json:"id" yaml:"id" toml:"id"`
	Title    string `json:"title" yaml:"title" toml:"title"`
	Content  string `json:"content" yaml:"content" toml:"content"`
	ImageURL string `json:"imageUrl,omitempty" yaml:"imageUrl,omitempty" toml:"imageUrl,omitempty"`
}

func (b ContentBlock) HasImage() bool { return b.ImageURL != "" }

// Resource is a titled link. URL is expected to be an absolute http(s)
// URL but it is not enforced here.
type Resource struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Title       string `json:"title" yaml:"title" toml:"title"`
	Description string `json:"description" yaml:"description" toml:"description"`
	URL         string `json:"url" yaml:"url" toml:"url"`
}

type Document struct {
	Header        Header         `json:"header" yaml:"header" toml:"header"`
	Title         string         `json:"title" yaml:"title" toml:"title"`
	Hero          Hero           `json:"hero" yaml:"hero" toml:"hero"`
	ContentBlocks []ContentBlock `json:"contentBlocks" yaml:"contentBlocks" toml:"contentBlocks"`
	Resources     []Resource     `json:"resources" yaml:"resources" toml:"resources"`
	Footer        Footer         `json:"footer" yaml:"footer" toml:"footer"`
}

// BlockDraft carries the caller-provided fields of a new content block.
// The id is assigned by the store.
type BlockDraft struct {
	Title    string
	Content  string
	ImageURL string
}

// Clone returns a copy of d that shares no slices with it.
func (d Document) Clone() Document {
	c := d
	if d.ContentBlocks != nil {
		c.ContentBlocks = append([]ContentBlock(nil), d.ContentBlocks...)
	}
	if d.Resources != nil {
		c.Resources = append([]Resource(nil), d.Resources...)
	}
	return c
}

// BlockIndex returns the position of the block with the given id or -1.
func (d Document) BlockIndex(id string) int {
	for i, b := range d.ContentBlocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// ResourceIndex returns the position of the resource with the given id or -1.
func (d Document) ResourceIndex(id string) int {
	for i, r := range d.Resources {
		if r.ID == id {
			return i
		}
	}
	return -1
}
