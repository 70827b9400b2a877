// Package validate reviews a newsletter document before it is exported.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"go.uber.org/multierr"

	"github.com/stateful/newsletter/internal/newsletter"
)

const (
	MaxHeroContent  = 800
	MaxBlockContent = 1500
)

var (
	md       = goldmark.New()
	validate = validator.New()
)

// Report lists findings by severity. Issues block publishing, warnings
// and info are advisory.
type Report struct {
	Issues   []string
	Warnings []string
	Info     []string
}

// OK reports whether the document has no issues.
func (r Report) OK() bool { return len(r.Issues) == 0 }

// Err combines the issues into a single error, or returns nil.
func (r Report) Err() error {
	var err error
	for _, issue := range r.Issues {
		err = multierr.Append(err, errors.New(issue))
	}
	return err
}

// Strict is like Err but treats warnings as issues too.
func (r Report) Strict() error {
	err := r.Err()
	for _, w := range r.Warnings {
		err = multierr.Append(err, errors.New(w))
	}
	return err
}

func Document(doc newsletter.Document) Report {
	var r Report

	if blank(doc.Header.Title) {
		r.Issues = append(r.Issues, "Header title is required")
	}
	if blank(doc.Title) {
		r.Issues = append(r.Issues, "Newsletter title is required")
	}
	if blank(doc.Hero.Title) {
		r.Issues = append(r.Issues, "Hero title is required")
	}
	if blank(doc.Hero.Content) {
		r.Issues = append(r.Issues, "Hero content is required")
	}

	for i, b := range doc.ContentBlocks {
		n := strconv.Itoa(i + 1)
		if blank(b.Title) {
			r.Issues = append(r.Issues, "Content block "+n+" is missing a title")
		}
		if blank(b.Content) {
			r.Issues = append(r.Issues, "Content block "+n+" is missing content")
		}
	}

	for i, res := range doc.Resources {
		n := strconv.Itoa(i + 1)
		if blank(res.Title) {
			r.Issues = append(r.Issues, "Resource "+n+" is missing a title")
		}
		if blank(res.URL) || !strings.HasPrefix(res.URL, "http") {
			r.Issues = append(r.Issues, "Resource "+n+" has an invalid URL")
		}
	}

	if l := len([]rune(doc.Hero.Content)); l > MaxHeroContent {
		r.Warnings = append(r.Warnings, fmt.Sprintf("Hero content is long (%d characters)", l))
	}
	for i, b := range doc.ContentBlocks {
		if l := len([]rune(b.Content)); l > MaxBlockContent {
			r.Warnings = append(r.Warnings, fmt.Sprintf("Content block %d is long (%d characters)", i+1, l))
		}
	}
	if len(doc.Resources) == 0 {
		r.Warnings = append(r.Warnings, "No resources added")
	}

	r.Warnings = append(r.Warnings, linkWarnings("Hero content", doc.Hero.Content)...)
	for i, b := range doc.ContentBlocks {
		r.Warnings = append(r.Warnings, linkWarnings("Content block "+strconv.Itoa(i+1), b.Content)...)
	}
	for i, res := range doc.Resources {
		r.Warnings = append(r.Warnings, linkWarnings("Resource "+strconv.Itoa(i+1), res.Description)...)
	}

	missing := 0
	for _, b := range doc.ContentBlocks {
		if !b.HasImage() {
			missing++
		}
	}
	if missing > 0 {
		r.Info = append(r.Info, fmt.Sprintf("%d content block(s) without images", missing))
	}

	return r
}

// Links returns the destinations of all inline links found in s.
func Links(s string) []string {
	source := []byte(s)
	root := md.Parser().Parse(text.NewReader(source))

	var links []string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			links = append(links, string(link.Destination))
		}
		return ast.WalkContinue, nil
	})
	return links
}

func linkWarnings(where, s string) []string {
	var warnings []string
	for _, dest := range Links(s) {
		if err := validate.Var(dest, "required,http_url"); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s links to %q which is not an http(s) URL", where, dest))
		}
	}
	return warnings
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
