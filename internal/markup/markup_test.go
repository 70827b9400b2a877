package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderPreview(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "bold",
			input:    "a **b** c",
			expected: "a <strong>b</strong> c",
		},
		{
			name:     "italic",
			input:    "a *b* c",
			expected: "a <em>b</em> c",
		},
		{
			name:     "bold before italic",
			input:    "**b** and *i*",
			expected: "<strong>b</strong> and <em>i</em>",
		},
		{
			name:     "link",
			input:    "see [docs](https://example.com)",
			expected: `see <a href="https://example.com" target="_blank" rel="noopener noreferrer">docs</a>`,
		},
		{
			name:     "single list item",
			input:    "• one",
			expected: "<ul><li>one</li></ul>",
		},
		{
			name:     "list run between paragraphs",
			input:    "intro\n• one\n• two\noutro",
			expected: "intro<br><ul><li>one</li><li>two</li></ul><br>outro",
		},
		{
			name:     "separate runs",
			input:    "• a\ntext\n• b",
			expected: "<ul><li>a</li></ul><br>text<br><ul><li>b</li></ul>",
		},
		{
			name:     "bullet not at line start",
			input:    "x • y",
			expected: "x • y",
		},
		{
			name:     "line breaks",
			input:    "a\nb",
			expected: "a<br>b",
		},
		{
			name:     "escapes html",
			input:    "<script>alert(1)</script> & **ok**",
			expected: "&lt;script&gt;alert(1)&lt;/script&gt; &amp; <strong>ok</strong>",
		},
		{
			name:     "formatting inside list item",
			input:    "• **bold** item",
			expected: "<ul><li><strong>bold</strong> item</li></ul>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, RenderPreview(tc.input))
		})
	}
}

func TestStripToPlainText(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "all constructs",
			input:    "**bold** and *italic* and [text](http://x) and • item",
			expected: "bold and italic and text and item",
		},
		{
			name:     "tags",
			input:    "<p>Hello <strong>there</strong></p>",
			expected: "Hello there",
		},
		{
			name:     "bullets on lines",
			input:    "• a\n• b",
			expected: "a\nb",
		},
		{
			name:     "trims",
			input:    "  padded  ",
			expected: "padded",
		},
		{
			name:     "nested link",
			input:    "[[a](b)](c)",
			expected: "a",
		},
		{
			name:     "indented bullet",
			input:    " • x",
			expected: "x",
		},
		{
			name:     "rendered preview",
			input:    RenderPreview("**b** [l](http://u)\n• i"),
			expected: "b li",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StripToPlainText(tc.input))
		})
	}
}

func TestStripToPlainTextIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"***a***",
		"** ** **",
		"[[a](b)](c)",
		"• • item",
		" • x",
		"<<a>b>",
		"a<<b>c>",
		"*[*](u)*x*",
		"**bold** and *italic* and [text](http://x) and • item",
		"<p>**x**</p>\n• [y](z)\n*",
		RenderPreview("• **a**\n• *b*\n[c](d)"),
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := StripToPlainText(input)
			assert.Equal(t, once, StripToPlainText(once))
		})
	}
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, "**keep** markers", StripTags("<b>**keep**</b> markers"))
}
