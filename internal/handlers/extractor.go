package handler

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// Extractor turns an uploaded document blob into plain text. The real
// binary-to-text conversion lives outside this service; the default
// just passes UTF-8 through.
type Extractor interface {
	ExtractText(r io.Reader) (string, error)
}

// PlainTextExtractor reads the blob as UTF-8 text.
type PlainTextExtractor struct{}

func (PlainTextExtractor) ExtractText(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("document is not valid UTF-8 text")
	}
	return string(data), nil
}
