package document

import (
	"io"
	"strings"
)

// PlainTextDecoder decodes a source as UTF-8 text, splitting pages on form
// feed characters. It is the default decoder; format-specific decoders such
// as PDF plug in through the PageDecoder interface.
type PlainTextDecoder struct{}

// NewPlainTextDecoder creates a new PlainTextDecoder.
func NewPlainTextDecoder() *PlainTextDecoder {
	return &PlainTextDecoder{}
}

// DecodePages implements PageDecoder.
func (d *PlainTextDecoder) DecodePages(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text := string(data)
	if text == "" {
		return nil, nil
	}

	pages := strings.Split(text, "\f")
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out, nil
}
