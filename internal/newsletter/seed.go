package newsletter

// Seed returns the document every editing session starts from unless
// another one is loaded.
func Seed() Document {
	return Document{
		Header: Header{
			Title:   "Banking Production Services & Engineering",
			LogoURL: "/placeholder.svg?height=69&width=263&text=Company+Logo",
		},
		Title: "MONTHLY SERVICE NEWSLETTER - June 2024",
		Hero: Hero{
			Title:   "Main Article Title",
			Content: "Enter your main article content here. This is the hero section that will grab readers' attention.",
			IconURL: "/placeholder.svg?height=81&width=84&text=Icon",
		},
		ContentBlocks: []ContentBlock{
			{
				ID:       "1",
				Title:    "Incident Management",
				Content:  "Add your incident management content here...",
				ImageURL: "/placeholder.svg?height=400&width=600&text=Chart+or+Graph",
			},
		},
		Resources: []Resource{
			{
				ID:          "1",
				Title:       "24x7 SharePoint",
				Description: "View 24x7 shift rotas, documentation and information related to 24x7.",
				URL:         "https://example.com",
			},
			{
				ID:          "2",
				Title:       "myITSM",
				Description: "Service management for Service Request, Incident and Problem.",
				URL:         "https://example.com",
			},
		},
		Footer: Footer{
			Text: "June 2024 | Banking Production Services & Engineering",
		},
	}
}

// Defaults of a resource created with the "add resource" action.
const (
	DefaultResourceTitle       = "New Resource"
	DefaultResourceDescription = "Resource description..."
	DefaultResourceURL         = "https://example.com"
)

const sectionImage = "/placeholder.svg?height=200&width=400&text=Section+Image"

// Quick-add drafts offered by the editor.

func TextOnly() BlockDraft {
	return BlockDraft{
		Title:   "Text Section",
		Content: "Add your text content here...",
	}
}

func TextWithImage() BlockDraft {
	return BlockDraft{
		Title:    "Image Section",
		Content:  "Add your content with an image...",
		ImageURL: sectionImage,
	}
}

func Metrics() BlockDraft {
	return BlockDraft{
		Title:    "Metrics Section",
		Content:  "Add metrics and data visualization content...",
		ImageURL: "/placeholder.svg?height=300&width=500&text=Chart+or+Graph",
	}
}

// Titled is the draft used when the user names a new section.
func Titled(title string) BlockDraft {
	return BlockDraft{
		Title:    title,
		Content:  "Enter your content here...",
		ImageURL: sectionImage,
	}
}
