package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contaluz/internal/config"
	"contaluz/internal/domain"
	"contaluz/internal/extractor/gemini"
	"contaluz/internal/port"
)

func testConfig() *config.ExtractorConfig {
	return &config.ExtractorConfig{APIKey: "test-key", DefaultModel: "gemini-2.5-flash"}
}

func geminiReply(text string) string {
	reply := map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]interface{}{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
	out, _ := json.Marshal(reply)
	return string(out)
}

func testDocs() []port.BillDocument {
	return []port.BillDocument{{MIMEType: "application/pdf", Data: "aGVsbG8="}}
}

func TestExtractor_Extract_Success(t *testing.T) {
	var gotRequest map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRequest))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(geminiReply(`[{"company":"CEMIG","installationNumber":"3001","date":"2026-01","cost":321.5,"consumption":240}]`)))
	}))
	defer server.Close()

	ext := gemini.NewExtractorWithEndpoint(testConfig(), server.URL)
	candidates, err := ext.Extract(context.Background(), testDocs())

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "CEMIG", candidates[0].Company)
	assert.Equal(t, "3001", candidates[0].InstallationNumber)
	assert.Equal(t, "2026-01", candidates[0].Date)
	assert.InDelta(t, 321.5, candidates[0].Cost, 1e-9)

	// The batch request carries the instruction plus one part per document.
	contents := gotRequest["contents"].([]interface{})
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	assert.Len(t, parts, 2)
	genCfg := gotRequest["generationConfig"].(map[string]interface{})
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
}

func TestExtractor_Extract_StripsMarkdownFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text := "```json\n[{\"company\":\"Enel\",\"installationNumber\":\"42\",\"date\":\"2025-11\"}]\n```"
		_, _ = w.Write([]byte(geminiReply(text)))
	}))
	defer server.Close()

	ext := gemini.NewExtractorWithEndpoint(testConfig(), server.URL)
	candidates, err := ext.Extract(context.Background(), testDocs())

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "Enel", candidates[0].Company)
}

func TestExtractor_Extract_APIErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	ext := gemini.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := ext.Extract(context.Background(), testDocs())

	assert.ErrorIs(t, err, domain.ErrExtraction)
	assert.Contains(t, err.Error(), "429")
}

func TestExtractor_Extract_MalformedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiReply("this is not json at all")))
	}))
	defer server.Close()

	ext := gemini.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := ext.Extract(context.Background(), testDocs())

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractor_Extract_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	ext := gemini.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := ext.Extract(context.Background(), testDocs())

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractor_Extract_ServerUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	ext := gemini.NewExtractorWithEndpoint(testConfig(), server.URL)
	_, err := ext.Extract(context.Background(), testDocs())

	assert.ErrorIs(t, err, domain.ErrExtraction)
}

func TestExtractor_Extract_EmptyArrayIsValid(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(geminiReply("[]")))
	}))
	defer server.Close()

	ext := gemini.NewExtractorWithEndpoint(testConfig(), server.URL)
	candidates, err := ext.Extract(context.Background(), testDocs())

	assert.NoError(t, err)
	assert.Empty(t, candidates)
}
