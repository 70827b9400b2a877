package export

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stateful/newsletter/internal/newsletter"
)

func TestShareLink(t *testing.T) {
	doc := newsletter.Seed()

	link, err := ShareLink("https://news.example.com/", doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://news.example.com/preview?data="))

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Contains(t, u.Query().Get("data"), `"contentBlocks"`)

	decoded, err := DecodeShareLink(link)
	require.NoError(t, err)
	if diff := cmp.Diff(doc, decoded); diff != "" {
		t.Fatalf("decoded document mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeShareLinkWithoutData(t *testing.T) {
	_, err := DecodeShareLink("https://news.example.com/preview")
	assert.Error(t, err)
}

func TestDecodeShareLinkChecksIDs(t *testing.T) {
	link := func(data string) string {
		return "https://news.example.com/preview?" + url.Values{"data": []string{data}}.Encode()
	}

	testCases := []struct {
		name string
		data string
		err  string
	}{
		{name: "delimiter in block id", data: `{"contentBlocks":[{"id":"a-b","title":"T"}]}`, err: "must not contain"},
		{name: "duplicate block id", data: `{"contentBlocks":[{"id":"x"},{"id":"x"}]}`, err: "duplicate block id"},
		{name: "duplicate resource id", data: `{"resources":[{"id":"r"},{"id":"r"}]}`, err: "duplicate resource id"},
		{name: "malformed", data: `{"title":`, err: "failed to decode document"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeShareLink(link(tc.data))
			assert.ErrorContains(t, err, tc.err)
		})
	}

	t.Run("missing ids are generated", func(t *testing.T) {
		doc, err := DecodeShareLink(link(`{"contentBlocks":[{"title":"A"},{"title":"B"}],"resources":[{"title":"R"}]}`))
		require.NoError(t, err)
		require.Len(t, doc.ContentBlocks, 2)
		assert.NotEmpty(t, doc.ContentBlocks[0].ID)
		assert.NotEqual(t, doc.ContentBlocks[0].ID, doc.ContentBlocks[1].ID)
		assert.NotContains(t, doc.ContentBlocks[0].ID, "-")
		assert.NotEmpty(t, doc.Resources[0].ID)
	})
}

func TestCopy(t *testing.T) {
	var copied string
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = defaultClipboardWrite })

	require.NoError(t, Copy("<newsletter/>", nil))
	assert.Equal(t, "<newsletter/>", copied)
}

func TestCopyFailureIsLogged(t *testing.T) {
	clipboardWrite = func(string) error {
		return errors.New("no clipboard utilities available")
	}
	t.Cleanup(func() { clipboardWrite = defaultClipboardWrite })

	core, logs := observer.New(zap.WarnLevel)
	err := Copy("text", zap.New(core))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no clipboard utilities available")
	assert.Equal(t, 1, logs.FilterMessage("failed to copy to clipboard").Len())
}
