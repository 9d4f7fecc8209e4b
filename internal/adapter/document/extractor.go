// Package document implements the document-to-text collaborator. It fetches
// the source bytes (HTTP(S) URL or local path) and hands them to a pluggable
// page decoder; decoding a specific format such as PDF is deliberately
// outside this package.
package document

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"go.uber.org/zap"
)

// PageDecoder turns raw document bytes into per-page text.
type PageDecoder interface {
	DecodePages(r io.Reader) ([]string, error)
}

// maxDocumentBytes bounds how much of a source document is read into
// memory before decoding.
const maxDocumentBytes = 32 << 20

// Extractor implements domain.TextExtractor. Extracted documents longer
// than the configured ceiling carry the distinguished too-large signal so
// generation switches to the concept-extraction path instead of sending
// raw text to a provider.
type Extractor struct {
	decoder    PageDecoder
	httpClient *http.Client
	ceiling    int
}

// NewExtractor creates an extractor with the given page decoder and content
// ceiling in characters.
func NewExtractor(decoder PageDecoder, ceiling int) *Extractor {
	return &Extractor{
		decoder:    decoder,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		ceiling:    ceiling,
	}
}

// ExtractText implements domain.TextExtractor.
func (e *Extractor) ExtractText(ctx context.Context, source string) (*domain.ExtractedDocument, error) {
	l := logger.Get()

	reader, err := e.open(ctx, source)
	if err != nil {
		return nil, domain.NewExtractionError(source, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxDocumentBytes))
	if err != nil {
		return nil, domain.NewExtractionError(source, err)
	}

	pages, err := e.decoder.DecodePages(bytes.NewReader(data))
	if err != nil {
		return nil, domain.NewExtractionError(source, err)
	}

	doc := &domain.ExtractedDocument{Pages: pages}
	if doc.Length() > e.ceiling {
		doc.TooLarge = true
		l.Info("Extracted document exceeds content ceiling",
			zap.String("source", source),
			zap.Int("length", doc.Length()),
			zap.Int("ceiling", e.ceiling))
	}

	l.Debug("Extracted document text",
		zap.String("source", source),
		zap.Int("pages", len(pages)),
		zap.Int("length", doc.Length()))

	return doc, nil
}

// open resolves the source into a byte stream. URLs are fetched over HTTP;
// anything else is treated as a local path, with the file:// prefix removed
// and percent-encoding decoded.
func (e *Extractor) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := e.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %d fetching document", resp.StatusCode)
		}
		return resp.Body, nil
	}

	path := strings.TrimPrefix(source, "file://")
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}
	return os.Open(path)
}
