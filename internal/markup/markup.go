// Package markup converts between the small formatting subset accepted in
// text fields (bold, italic, links, bullet lines) and HTML fragments.
package markup

import (
	"html"
	"regexp"
	"strings"
)

// Bullet starts a list item line.
const Bullet = "• "

var (
	boldRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.*?)\*`)
	linkRe   = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	itemRe   = regexp.MustCompile(`(?m)^` + Bullet + `(.+)$`)
	listRe   = regexp.MustCompile(`(?m)^<li>.*</li>(?:\n<li>.*</li>)*$`)
	tagRe    = regexp.MustCompile(`<[^>]*>`)
)

// RenderPreview renders text as an HTML fragment. The input is HTML-escaped
// first and the constructs are then applied in a fixed order, because later
// passes key off the output of earlier ones:
//
//  1. **x** becomes <strong>x</strong>
//  2. *x* becomes <em>x</em>
//  3. [label](url) becomes a link opened in a new browsing context
//  4. lines starting with "• " become <li>; each run of them is wrapped in one <ul>
//  5. remaining newlines become <br>
func RenderPreview(text string) string {
	if text == "" {
		return ""
	}

	out := html.EscapeString(text)
	out = boldRe.ReplaceAllString(out, "<strong>$1</strong>")
	out = italicRe.ReplaceAllString(out, "<em>$1</em>")
	out = linkRe.ReplaceAllString(out, `<a href="$2" target="_blank" rel="noopener noreferrer">$1</a>`)
	out = itemRe.ReplaceAllString(out, "<li>$1</li>")
	out = listRe.ReplaceAllStringFunc(out, func(items string) string {
		return "<ul>" + strings.ReplaceAll(items, "\n", "") + "</ul>"
	})
	return strings.ReplaceAll(out, "\n", "<br>")
}

// StripToPlainText removes markup tags and the formatting markers while
// keeping their inner text: links collapse to their label and bullet
// markers are dropped wherever they appear. The result is trimmed.
//
// Removing one construct can expose another, as in "[[a](b)](c)", so the
// passes repeat until nothing changes. This makes the function idempotent.
func StripToPlainText(text string) string {
	for {
		next := stripOnce(text)
		if next == text {
			return next
		}
		text = next
	}
}

func stripOnce(text string) string {
	out := tagRe.ReplaceAllString(text, "")
	out = boldRe.ReplaceAllString(out, "$1")
	out = italicRe.ReplaceAllString(out, "$1")
	out = linkRe.ReplaceAllString(out, "$1")
	out = strings.ReplaceAll(out, Bullet, "")
	return strings.TrimSpace(out)
}

// StripTags removes markup tags only, leaving the formatting markers intact.
func StripTags(text string) string {
	return strings.TrimSpace(tagRe.ReplaceAllString(text, ""))
}
