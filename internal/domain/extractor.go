package domain

import "context"

// ExtractedDocument is the text content of a source document. TooLarge is
// the distinguished oversize signal: when set, Pages still carries the page
// texts so the concept-extraction path can batch them, but raw-text
// generation must not run.
type ExtractedDocument struct {
	Pages    []string
	TooLarge bool
}

// Text joins the page texts in page order.
func (d *ExtractedDocument) Text() string {
	var out string
	for _, p := range d.Pages {
		out += p + "\n"
	}
	return out
}

// Length returns the total extracted character count.
func (d *ExtractedDocument) Length() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p) + 1
	}
	return n
}

// TextExtractor defines the interface (port) to the document-to-text
// collaborator. Source may be an HTTP(S) URL or a local path, possibly
// percent-encoded or carrying a file:// prefix.
type TextExtractor interface {
	ExtractText(ctx context.Context, source string) (*ExtractedDocument, error)
}
