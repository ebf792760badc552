package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/retail-ops/backend-go/internal/config"
	"github.com/freshmart/retail-ops/backend-go/internal/domain"
)

func testProduct() domain.Product {
	return domain.Product{
		ID:           1,
		Name:         "Organic Bananas",
		Category:     "Fruits",
		Supplier:     "Fresh Produce Inc.",
		Unit:         "Lbs",
		CurrentStock: 40,
		ForecastRec:  120,
		SpoilageRate: 8.5,
	}
}

func newTestClient(url string) *GeminiClient {
	return NewGeminiClient(config.RecommendConfig{
		APIKey:         "test-key",
		Endpoint:       url,
		Model:          "gemini-2.5-flash",
		TimeoutSeconds: 5,
	})
}

func candidatePayload(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{"parts": []map[string]string{{"text": text}}}},
		},
	}
}

func TestGeminiRecommendSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req, "contents")

		answer := `{"recommended_quantity": 150, "reasoning": "Forecast exceeds stock."}`
		require.NoError(t, json.NewEncoder(w).Encode(candidatePayload(answer)))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	rec, err := client.Recommend(context.Background(), testProduct(),
		time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 150, rec.RecommendedQuantity)
	assert.Equal(t, "Forecast exceeds stock.", rec.Reasoning)
}

func TestGeminiRecommendUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Recommend(context.Background(), testProduct(), time.Now(), time.Now())
	require.Error(t, err)

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "Failed to get a recommendation from the AI. Please try again.", depErr.Message)
}

func TestGeminiRecommendMalformedAnswer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(candidatePayload("not json at all")))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Recommend(context.Background(), testProduct(), time.Now(), time.Now())

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.NotNil(t, depErr.Err)
}

func TestGeminiRecommendEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}}))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Recommend(context.Background(), testProduct(), time.Now(), time.Now())

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
}

func TestGeminiRecommendUnreachable(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")
	_, err := client.Recommend(context.Background(), testProduct(), time.Now(), time.Now())

	var depErr *DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "Failed to get a recommendation from the AI. Please try again.", depErr.Message)
}

func TestDependencyErrorUnwrap(t *testing.T) {
	inner := context.DeadlineExceeded
	err := &DependencyError{Message: "failed", Err: inner}
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "failed")
}
