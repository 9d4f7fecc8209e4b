package service

import (
	"context"
	"fmt"
	"strings"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"
	"quiz-forge/internal/parser"

	"go.uber.org/zap"
)

// pseudoPageSize is the slice length used to synthesize pages when oversized
// content arrives as one string instead of page-structured document text.
const pseudoPageSize = 3000

const conceptSystemPrompt = `You are a study assistant. You extract the key concepts from course material and respond with valid JSON only.`

const conceptUserPromptTemplate = `Read the following excerpt of a larger document and list its key concepts
as short, self-contained sentences. Return at most 10 concepts.

Excerpt:
%s

Return JSON in exactly this format:
{
    "concepts": ["First key concept sentence.", "Second key concept sentence."]
}`

// ContentPreparer normalizes notes and document text into the content string
// fed to generation. Oversized documents are condensed through a two-stage
// concept-extraction pass so the tokens sent per provider call stay bounded
// regardless of document length.
type ContentPreparer struct {
	registry domain.ProviderRegistry
	cfg      config.PipelineConfig
}

// NewContentPreparer creates a new ContentPreparer.
func NewContentPreparer(registry domain.ProviderRegistry, cfg config.PipelineConfig) *ContentPreparer {
	return &ContentPreparer{registry: registry, cfg: cfg}
}

// Combine merges notes and document text into one content string.
func (p *ContentPreparer) Combine(notes, documentText string) string {
	if notes == "" {
		return documentText
	}
	if documentText == "" {
		return notes
	}
	return notes + "\n" + documentText
}

// Chunk splits content at the fixed character boundary. Chunks are consumed
// round-robin across generation batches, never concatenated back.
func (p *ContentPreparer) Chunk(content string) []domain.ContentChunk {
	if content == "" {
		return nil
	}
	size := p.cfg.ChunkSize
	chunks := make([]domain.ContentChunk, 0, len(content)/size+1)
	for i := 0; i < len(content); i += size {
		end := i + size
		if end > len(content) {
			end = len(content)
		}
		chunks = append(chunks, domain.ContentChunk{
			Index: len(chunks),
			Text:  content[i:end],
		})
	}
	return chunks
}

// Prepare produces the generation content from notes and document text.
// Document text beyond the content ceiling is replaced with a concept
// digest instead of being sent raw.
func (p *ContentPreparer) Prepare(ctx context.Context, notes, documentText, providerID string) (string, error) {
	if len(documentText) > p.cfg.ContentCeiling {
		doc := &domain.ExtractedDocument{
			Pages:    splitIntoPages(documentText, pseudoPageSize),
			TooLarge: true,
		}
		return p.prepareOversized(ctx, notes, doc, providerID)
	}
	return p.Combine(notes, documentText), nil
}

// PrepareDocument produces the generation content from notes and an
// extracted document, honoring the document's too-large signal.
func (p *ContentPreparer) PrepareDocument(ctx context.Context, notes string, doc *domain.ExtractedDocument, providerID string) (string, error) {
	if doc == nil {
		return notes, nil
	}
	if doc.TooLarge {
		return p.prepareOversized(ctx, notes, doc, providerID)
	}
	return p.Prepare(ctx, notes, doc.Text(), providerID)
}

func (p *ContentPreparer) prepareOversized(ctx context.Context, notes string, doc *domain.ExtractedDocument, providerID string) (string, error) {
	digest, err := p.ExtractConcepts(ctx, doc, providerID)
	if err != nil {
		return "", err
	}
	return p.Combine(notes, digest), nil
}

// ExtractConcepts runs the two-stage strategy's first stage: the document's
// pages are grouped into fixed-size batches and each batch yields a short
// list of key-concept sentences through one provider call. Concept lists are
// concatenated in batch order. A failed batch contributes nothing; only all
// batches failing is an error.
func (p *ContentPreparer) ExtractConcepts(ctx context.Context, doc *domain.ExtractedDocument, providerID string) (string, error) {
	l := logger.Get()

	prov, err := p.registry.Get(providerID)
	if err != nil {
		return "", err
	}

	batches := batchPages(doc.Pages, p.cfg.PagesPerBatch)
	l.Info("Starting concept extraction for oversized document",
		zap.Int("pages", len(doc.Pages)),
		zap.Int("batches", len(batches)),
		zap.String("provider", prov.ID()))

	var concepts []string
	failed := 0
	for i, batch := range batches {
		userPrompt := fmt.Sprintf(conceptUserPromptTemplate, strings.Join(batch, "\n"))

		raw, err := prov.Complete(ctx, conceptSystemPrompt, userPrompt, domain.CompletionOptions{
			Temperature: 0.2,
			MaxTokens:   1024,
		})
		if err != nil {
			l.Warn("Concept extraction batch failed, skipping",
				zap.Int("batch", i),
				zap.Error(err))
			failed++
			continue
		}

		batchConcepts, err := parser.ParseConceptList(raw)
		if err != nil {
			l.Warn("Concept extraction batch unparsable, skipping",
				zap.Int("batch", i),
				zap.Error(err))
			failed++
			continue
		}
		concepts = append(concepts, batchConcepts...)
	}

	if len(concepts) == 0 {
		return "", domain.NewError(domain.CodeProviderError,
			fmt.Sprintf("Concept extraction failed for all %d batches", len(batches)), nil)
	}

	l.Info("Concept extraction complete",
		zap.Int("concepts", len(concepts)),
		zap.Int("failed_batches", failed))

	return strings.Join(concepts, "\n"), nil
}

func batchPages(pages []string, perBatch int) [][]string {
	if perBatch <= 0 {
		perBatch = config.DefaultPagesPerBatch
	}
	var batches [][]string
	for i := 0; i < len(pages); i += perBatch {
		end := i + perBatch
		if end > len(pages) {
			end = len(pages)
		}
		batches = append(batches, pages[i:end])
	}
	return batches
}

func splitIntoPages(text string, pageSize int) []string {
	var pages []string
	for i := 0; i < len(text); i += pageSize {
		end := i + pageSize
		if end > len(text) {
			end = len(text)
		}
		pages = append(pages, text[i:end])
	}
	return pages
}
