// Package export serializes a newsletter document into a styled HTML
// document and into an XML document.
//
// Both serializers are pure functions of the document. Blocks and
// resources are written in their stored order and image elements are
// left out when the image URL is empty.
package export

import (
	"bytes"
	"html"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/stateful/newsletter/internal/newsletter"
	"github.com/stateful/newsletter/internal/version"
)

// Mode selects how field values are interpolated. A single export never
// mixes modes.
type Mode int

const (
	// Escape replaces the reserved characters of the output format.
	Escape Mode = iota
	// Verbatim interpolates field values byte for byte. Values containing
	// reserved characters can produce malformed output.
	Verbatim
)

func (m Mode) String() string {
	if m == Verbatim {
		return "verbatim"
	}
	return "escape"
}

type Option func(*options)

type options struct {
	mode Mode
}

func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func identity(s string) string { return s }

func generator() string { return "newsletter " + version.BaseVersion() }

var (
	markupTemplates = map[Mode]*template.Template{
		Escape:   mustParse("markup", markupTemplate, html.EscapeString),
		Verbatim: mustParse("markup", markupTemplate, identity),
	}
	structuredTemplates = map[Mode]*template.Template{
		Escape:   mustParse("structured", structuredTemplate, xmlEscaper.Replace),
		Verbatim: mustParse("structured", structuredTemplate, identity),
	}
)

func mustParse(name, text string, esc func(string) string) *template.Template {
	funcs := template.FuncMap{
		"esc":       esc,
		"generator": generator,
	}
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

// Markup renders doc as a standalone HTML document.
func Markup(doc newsletter.Document, opts ...Option) (string, error) {
	o := newOptions(opts)
	return execute(markupTemplates[o.mode], doc)
}

// Structured renders doc as an XML document.
func Structured(doc newsletter.Document, opts ...Option) (string, error) {
	o := newOptions(opts)
	return execute(structuredTemplates[o.mode], doc)
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.mode != Verbatim {
		o.mode = Escape
	}
	return o
}

func execute(tmpl *template.Template, doc newsletter.Document) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", errors.Wrapf(err, "failed to render %s document", tmpl.Name())
	}
	return buf.String(), nil
}
