package export

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/stateful/newsletter/internal/newsletter"
)

var (
	defaultClipboardWrite = clipboard.WriteAll
	clipboardWrite        = defaultClipboardWrite
)

// Copy writes text to the system clipboard. A failure is logged and
// returned so that callers can show it, but it never affects the document.
func Copy(text string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := clipboardWrite(text); err != nil {
		logger.Warn("failed to copy to clipboard", zap.Error(err))
		return errors.Wrap(err, "failed to copy to clipboard")
	}
	logger.Debug("copied to clipboard", zap.Int("len", len(text)))
	return nil
}

// ShareLink builds a read-only preview link that carries the whole
// document JSON-encoded in the "data" query parameter.
func ShareLink(origin string, doc newsletter.Document) (string, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode document")
	}

	u, err := url.Parse(strings.TrimSuffix(origin, "/") + "/preview")
	if err != nil {
		return "", errors.Wrapf(err, "invalid origin %q", origin)
	}
	u.RawQuery = url.Values{"data": []string{string(data)}}.Encode()
	return u.String(), nil
}

// DecodeShareLink extracts the document carried by a link from ShareLink.
// The document is checked like a loaded file: missing ids are generated,
// duplicate ids and ids containing the field delimiter are rejected.
func DecodeShareLink(link string) (newsletter.Document, error) {
	u, err := url.Parse(link)
	if err != nil {
		return newsletter.Document{}, errors.Wrap(err, "invalid link")
	}
	data := u.Query().Get("data")
	if data == "" {
		return newsletter.Document{}, errors.New("link carries no document")
	}
	doc, err := newsletter.Parse([]byte(data), "json")
	if err != nil {
		return newsletter.Document{}, errors.Wrap(err, "failed to decode document")
	}
	return doc, nil
}
