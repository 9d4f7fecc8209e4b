package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
	"quiz-forge/internal/logger"

	"github.com/gofiber/fiber/v2"
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

func appReturning(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func doRequest(t *testing.T, err error) (*http.Response, []byte) {
	t.Helper()
	resp, testErr := appReturning(err).Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, testErr)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	return resp, body
}

func TestErrorHandlerStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"quiz not found", domain.NewQuizNotFoundError("q1"), http.StatusNotFound, "QUIZ_NOT_FOUND"},
		{"invalid input", domain.NewInvalidInputError("bad"), http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown provider", domain.NewUnknownProviderError("slow"), http.StatusBadRequest, "UNKNOWN_PROVIDER"},
		{"content too large", domain.NewContentTooLargeError(70000, 60000), http.StatusRequestEntityTooLarge, "CONTENT_TOO_LARGE"},
		{"extraction error", domain.NewExtractionError("doc.pdf", errors.New("bad archive")), http.StatusUnprocessableEntity, "EXTRACTION_ERROR"},
		{"parse error", domain.NewParseError("no JSON object found in response", nil), http.StatusBadGateway, "PARSE_ERROR"},
		{"all batches failed", domain.NewAllBatchesFailedError(3), http.StatusBadGateway, "ALL_BATCHES_FAILED"},
		{"provider error", domain.NewProviderError("fast", errors.New("refused")), http.StatusServiceUnavailable, "PROVIDER_ERROR"},
		{"validation unavailable", domain.NewValidationUnavailableError(errors.New("refused")), http.StatusServiceUnavailable, "VALIDATION_UNAVAILABLE"},
		{"internal", domain.NewInternalError("boom", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doRequest(t, tt.err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(body, &errResp))
			assert.Equal(t, tt.wantCode, errResp.Code)
			assert.Equal(t, tt.wantStatus, errResp.Status)
		})
	}
}

func TestErrorHandlerValidationErrors(t *testing.T) {
	errs := domain.ValidationErrors{
		domain.NewMissingFieldError("title"),
		domain.NewOutOfRangeError("questionCount", 500, 1, 200),
	}

	resp, body := doRequest(t, errs)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errResp ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, string(domain.CodeValidation), errResp.Code)
	require.Len(t, errResp.Errors, 2)
	assert.Equal(t, "title", errResp.Errors[0].Field)
}

func TestErrorHandlerFiberError(t *testing.T) {
	resp, body := doRequest(t, fiber.NewError(fiber.StatusTeapot, "short and stout"))

	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "HTTP_ERROR", errResp.Code)
}

func TestErrorHandlerUnknownError(t *testing.T) {
	resp, body := doRequest(t, errors.New("something unexpected"))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, string(domain.CodeInternal), errResp.Code)
	// Internal details are never leaked to the client.
	assert.Equal(t, "Internal server error", errResp.Message)
}
