package document

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(&config.Config{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func newTestExtractor(ceiling int) *Extractor {
	return NewExtractor(NewPlainTextDecoder(), ceiling)
}

func TestExtractTextFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("page one\fpage two"))
	}))
	defer server.Close()

	doc, err := newTestExtractor(60000).ExtractText(context.Background(), server.URL)

	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	assert.Equal(t, "page one", doc.Pages[0])
	assert.Equal(t, "page two", doc.Pages[1])
	assert.False(t, doc.TooLarge)
}

func TestExtractTextHTTPErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestExtractor(60000).ExtractText(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeExtractionError))
}

func TestExtractTextFromLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("local file content"), 0o644))

	doc, err := newTestExtractor(60000).ExtractText(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "local file content", doc.Pages[0])
}

func TestExtractTextFileURLWithPercentEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("encoded path content"), 0o644))

	source := "file://" + filepath.Join(dir, "my%20notes.txt")

	doc, err := newTestExtractor(60000).ExtractText(context.Background(), source)

	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "encoded path content", doc.Pages[0])
}

func TestExtractTextMissingFile(t *testing.T) {
	_, err := newTestExtractor(60000).ExtractText(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))

	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeExtractionError))
}

func TestExtractTextFlagsOversizedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 500)))
	}))
	defer server.Close()

	doc, err := newTestExtractor(100).ExtractText(context.Background(), server.URL)

	require.NoError(t, err)
	assert.True(t, doc.TooLarge)
	// Pages still carry the text so concept extraction can batch them.
	assert.NotEmpty(t, doc.Pages)
}

func TestPlainTextDecoderSplitsOnFormFeed(t *testing.T) {
	pages, err := NewPlainTextDecoder().DecodePages(strings.NewReader("one\ftwo\f\fthree"))

	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, pages)
}

func TestPlainTextDecoderSinglePage(t *testing.T) {
	pages, err := NewPlainTextDecoder().DecodePages(strings.NewReader("just one page"))

	require.NoError(t, err)
	assert.Equal(t, []string{"just one page"}, pages)
}
