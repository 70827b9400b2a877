// Package upload turns user supplied images into values for the image
// fields of a newsletter document.
package upload

import (
	"bytes"
	"encoding/base64"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// MaxFileSize is the largest image file accepted, in bytes.
const MaxFileSize = 5 << 20

var (
	ErrEmptyURL   = errors.New("image URL is empty")
	ErrInvalidURL = errors.New("image URL is not a valid absolute URL")
	ErrNotImage   = errors.New("file is not an image")
	ErrTooLarge   = errors.New("image file is larger than 5MB")
)

// FromURL validates a URL entered by the user and returns it trimmed.
func FromURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || (u.Host == "" && u.Scheme != "data") {
		return "", errors.Wrapf(ErrInvalidURL, "%q", raw)
	}
	return raw, nil
}

// FromFile reads an image from r and encodes it as a data URL. The content
// type is detected from the bytes; name is used in error messages only.
func FromFile(r io.Reader, name string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", name)
	}
	if len(data) > MaxFileSize {
		return "", errors.Wrapf(ErrTooLarge, "%s", name)
	}

	mtype, err := mimetype.DetectReader(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrapf(err, "failed to detect type of %s", name)
	}
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", errors.Wrapf(ErrNotImage, "%s is %s", name, mtype.String())
	}

	// Drop parameters such as "; charset=utf-8" for SVG.
	mediaType, _, _ := strings.Cut(mtype.String(), ";")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// FromInput accepts either a URL or "@path" naming a local image file.
func FromInput(input string) (string, error) {
	input = strings.TrimSpace(input)
	path, ok := strings.CutPrefix(input, "@")
	if !ok {
		return FromURL(input)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	defer f.Close()

	return FromFile(f, path)
}
